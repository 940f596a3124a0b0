package service

import "errors"

// Sentinel causes wrapped into internal-failure upload errors.
var (
	ErrPipeline = errors.New("text pipeline failed")
)
