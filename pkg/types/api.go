package types

// DefaultCandidateLabels is used when a request omits candidate_labels.
var DefaultCandidateLabels = []string{"tourism", "not_tourism"}

// TourismLabel is the label that marks a prediction as tourism-related.
const TourismLabel = "tourism"

// PredictRequest is the body of POST /api/v1/predict and one item of a batch.
type PredictRequest struct {
	// Required text prompt to classify.
	// example: Can I find my soulmate if I go to Siem Reap?
	Prompt string `json:"prompt" example:"Can I find my soulmate if I go to Siem Reap?"`
	// Candidate labels for classification. Omit to use ["tourism","not_tourism"].
	// example: ["tourism","not_tourism"]
	CandidateLabels []string `json:"candidate_labels,omitempty" example:"tourism,not_tourism"`
	// Optional model type override (zero_shot or fine_tuned).
	// example: zero_shot
	ModelType string `json:"model_type,omitempty" example:"zero_shot"`
}

// PredictionResult is the normalized output of one classification.
type PredictionResult struct {
	// Echo of the classified text.
	Sequence string `json:"sequence" example:"Can I find my soulmate if I go to Siem Reap?"`
	// Candidate labels ordered by descending score.
	Labels []string `json:"labels"`
	// Scores in [0,1], same order as Labels.
	Scores []float64 `json:"scores"`
	// Top label (Labels[0]).
	// example: tourism
	Prediction string `json:"prediction" example:"tourism"`
	// Top score (Scores[0]).
	// example: 0.93
	Confidence float64 `json:"confidence" example:"0.93"`
	// True when Prediction is "tourism".
	IsTourism bool `json:"is_tourism" example:"true"`
	// Model variant that served the request.
	// example: zero_shot
	ModelType string `json:"model_type" example:"zero_shot"`
	// Concrete model that served the request.
	// example: facebook/bart-large-mnli
	ModelName string `json:"model_name" example:"facebook/bart-large-mnli"`
}

// PredictionResponse is returned by the predict endpoints.
type PredictionResponse struct {
	PredictionResult
	ModelInfo ModelInfo `json:"model_info"`
}

// ModelInfo reports the state of the model lifecycle manager.
type ModelInfo struct {
	// Active variant; null before the first successful initialization.
	// example: zero_shot
	ModelType *string `json:"model_type" example:"zero_shot"`
	// Model currently serving requests (empty when none is loaded).
	// example: facebook/bart-large-mnli
	ModelName string `json:"model_name" example:"facebook/bart-large-mnli"`
	// Whether a backend is loaded.
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// Resolved device (cpu or an accelerator such as cuda:0).
	// example: cpu
	Device string `json:"device" example:"cpu"`
	// Lifecycle state: uninitialized, loading or ready.
	// example: ready
	State string `json:"state" example:"ready"`
	// Configured primary model.
	PrimaryModel string `json:"primary_model" example:"facebook/bart-large-mnli"`
	// Fixed fallback model.
	FallbackModel string `json:"fallback_model" example:"typeform/distilbert-base-uncased-mnli"`
	// True when the fallback model is the one serving requests.
	FallbackActive bool `json:"fallback_active"`
	// Configured location of the fine-tuned checkpoint (not loadable yet).
	FineTunedModelPath string `json:"fine_tuned_model_path,omitempty"`
	// Last initialization error, cleared on success.
	LastError string `json:"last_error,omitempty"`
	// Successful backend constructions.
	LoadsTotal uint64 `json:"loads_total" example:"1"`
	// Successful constructions that used the fallback model.
	FallbacksTotal uint64 `json:"fallbacks_total" example:"0"`
	// When the active backend was loaded (unix seconds, 0 when none).
	LoadedAtUnix int64 `json:"loaded_at_unix" example:"1700000000"`
	// Predictions currently running against the active backend.
	Inflight int64 `json:"inflight" example:"0"`
	// Manager uptime in seconds.
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// example: healthy
	Status      string    `json:"status" example:"healthy"`
	ModelLoaded bool      `json:"model_loaded" example:"true"`
	ModelInfo   ModelInfo `json:"model_info"`
}

// ModelInfoResponse is returned by GET /api/model-info.
type ModelInfoResponse struct {
	ModelInfo ModelInfo `json:"model_info"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: Fine-tuned model loading not implemented yet
	Detail string `json:"detail" example:"Fine-tuned model loading not implemented yet"`
	// Machine-readable error category.
	// example: model_not_implemented
	ErrorType string `json:"error_type" example:"model_not_implemented"`
}
