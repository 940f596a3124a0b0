package uploadcheck

// HTTP status code constants.
const (
	StatusOK = 200
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	// maxReportedProblems bounds how many mismatches are logged one by one.
	maxReportedProblems = 10
)

// Verification tolerances. The server computes the same float64 expressions,
// so differences only come from JSON formatting.
const (
	scoreTolerance = 1e-12
	tfSumTolerance = 1e-9
)
