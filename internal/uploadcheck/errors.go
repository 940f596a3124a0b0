package uploadcheck

import "errors"

// Sentinel errors reported by the check.
var (
	ErrCountMismatch      = errors.New("token counts differ")
	ErrOrderMismatch      = errors.New("word order differs")
	ErrScoreMismatch      = errors.New("score differs")
	ErrNotSorted          = errors.New("idf not non-increasing")
	ErrTFSum              = errors.New("tf values do not sum to 1")
	ErrUploadRejected     = errors.New("upload rejected")
	ErrVerificationFailed = errors.New("verification failed")
)
