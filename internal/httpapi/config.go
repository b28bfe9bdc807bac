package httpapi

import "time"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes configures the maximum request body size; non-positive
// restores the 1 MiB default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// predictTimeout bounds one predict request (a whole batch for the batch
// endpoint). Zero means no additional timeout beyond server/connection timeouts.
var predictTimeout time.Duration

// SetPredictTimeout sets the per-request timeout (non-positive disables).
func SetPredictTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	predictTimeout = d
}

// maxBatchItems caps the number of prompts in one batch request (0 = unlimited).
var maxBatchItems = 64

// SetMaxBatchItems configures the batch size cap; negative means unlimited.
func SetMaxBatchItems(n int) {
	if n < 0 {
		n = 0
	}
	maxBatchItems = n
}

// batchConcurrency caps how many batch items are predicted at once.
var batchConcurrency = 4

// SetBatchConcurrency configures batch fan-out; non-positive means sequential.
func SetBatchConcurrency(n int) {
	if n <= 0 {
		n = 1
	}
	batchConcurrency = n
}

// CORS configuration. When disabled, no CORS middleware is added.
var (
	corsEnabled        = true
	corsAllowedOrigins = []string{"*"}
	corsAllowedMethods = []string{"GET", "POST", "OPTIONS"}
	corsAllowedHeaders = []string{"*"}
)

// SetCORSOptions configures CORS behavior for the HTTP server. Empty slices
// keep the allow-all defaults.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	if len(origins) > 0 {
		corsAllowedOrigins = append([]string(nil), origins...)
	}
	if len(methods) > 0 {
		corsAllowedMethods = append([]string(nil), methods...)
	}
	if len(headers) > 0 {
		corsAllowedHeaders = append([]string(nil), headers...)
	}
}
