package orchestrator

import (
	"os"
	"time"
)

// Timeout constants for pipeline operations
var (
	// DefaultPipelineTimeout bounds a full import pipeline run
	DefaultPipelineTimeout = getTimeoutOrDefault("DCX_PIPELINE_TIMEOUT", 10*time.Minute)
	// RollbackTimeout bounds the compensation phase after a failed run
	RollbackTimeout = getTimeoutOrDefault("DCX_ROLLBACK_TIMEOUT", 2*time.Minute)
	// DefaultRetryCount is the number of retries per pipeline step
	DefaultRetryCount = uint64(3)
	// DefaultRetryDelay is the initial delay for exponential backoff
	DefaultRetryDelay = getTimeoutOrDefault("DCX_RETRY_DELAY", 500*time.Millisecond)
)

func getTimeoutOrDefault(envVar string, fallback time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil {
			return duration
		}
	}
	return fallback
}
