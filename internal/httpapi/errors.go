package httpapi

import (
	"encoding/json"
	"net/http"

	"tourismd/internal/manager"
	"tourismd/pkg/types"
)

// error_type values.
const (
	errTypeNotImplemented  = "model_not_implemented"
	errTypeInvalidRequest  = "invalid_request"
	errTypeTooBusy         = "too_busy"
	errTypePrediction      = "prediction_error"
	errTypeBatchPrediction = "batch_prediction_error"
)

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, detail, errType string) {
	writeJSON(w, status, types.ErrorResponse{Detail: detail, ErrorType: errType})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// mapPredictError maps a manager error to status, error_type and detail.
func mapPredictError(err error) (int, string, string) {
	switch {
	case manager.IsNotSupported(err):
		return http.StatusBadRequest, errTypeNotImplemented, err.Error()
	case manager.IsInvalidInput(err):
		return http.StatusBadRequest, errTypeInvalidRequest, err.Error()
	case manager.IsTooBusy(err):
		IncrementBackpressure("admission")
		return http.StatusTooManyRequests, errTypeTooBusy, err.Error()
	default:
		return http.StatusInternalServerError, errTypePrediction, "Error making prediction: " + err.Error()
	}
}
