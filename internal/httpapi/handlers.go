package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"tourismd/internal/manager"
	"tourismd/pkg/types"
)

// handleHealth godoc
// @Summary      Health check
// @Description  Reports service health and model status. Never triggers a model load.
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /health [get]
func handleHealth(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := svc.Status()
		writeJSON(w, http.StatusOK, types.HealthResponse{Status: "healthy", ModelLoaded: info.ModelLoaded, ModelInfo: info})
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReadyz(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	}
}

// handleModelInfo godoc
// @Summary      Get model information
// @Description  Returns the state of the model currently in use.
// @Tags         model-info
// @Produce      json
// @Success      200  {object}  types.ModelInfoResponse
// @Router       /api/model-info [get]
func handleModelInfo(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ModelInfoResponse{ModelInfo: svc.Status()})
	}
}

// predictItem is a validated PredictRequest.
type predictItem struct {
	prompt  string
	labels  []string
	variant *manager.Variant
}

func parsePredictRequest(req types.PredictRequest) (predictItem, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return predictItem{}, errors.New("prompt is required")
	}
	labels := req.CandidateLabels
	if labels == nil {
		labels = types.DefaultCandidateLabels
	} else if len(labels) == 0 {
		return predictItem{}, errors.New("candidate_labels must not be empty")
	}
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			return predictItem{}, errors.New("candidate_labels must not contain blank labels")
		}
	}
	item := predictItem{prompt: req.Prompt, labels: labels}
	if req.ModelType != "" {
		v, err := manager.ParseVariant(req.ModelType)
		if err != nil {
			return predictItem{}, err
		}
		item.variant = &v
	}
	return item, nil
}

// decodeJSONBody enforces the content type and body limit and decodes into v.
// It writes the error response itself and reports whether decoding succeeded.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", errTypeInvalidRequest)
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large", errTypeInvalidRequest)
			return false
		}
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body", errTypeInvalidRequest)
		return false
	}
	if dec.Decode(&struct{}{}) != io.EOF {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body", errTypeInvalidRequest)
		return false
	}
	return true
}

// handlePredict godoc
// @Summary      Classify a prompt
// @Description  Classifies a text prompt as tourism or not_tourism using zero-shot classification.
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        request  body      types.PredictRequest  true  "Prompt to classify"
// @Success      200      {object}  types.PredictionResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      429      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /api/v1/predict [post]
func handlePredict(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.PredictRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		item, err := parsePredictRequest(req)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error(), errTypeInvalidRequest)
			return
		}

		rl := startRequestLog(r, 1)
		ctx, cancel := requestContext(r)
		defer cancel()
		res, err := svc.PredictWithVariant(ctx, item.prompt, item.labels, item.variant)
		if err != nil {
			// If context was canceled (client disconnect or shutdown), just return.
			if aborted(r) {
				rl.end(499, err)
				return
			}
			status, errType, detail := mapPredictError(err)
			writeJSONError(w, status, detail, errType)
			rl.end(status, err)
			return
		}
		rl.debugResult(res.Prediction, res.Confidence, res.ModelName)
		writeJSON(w, http.StatusOK, types.PredictionResponse{PredictionResult: res, ModelInfo: svc.Status()})
		rl.end(http.StatusOK, nil)
	}
}

// handlePredictBatch godoc
// @Summary      Classify prompts in batch
// @Description  Classifies several prompts. Any failing item fails the whole batch.
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        request  body      []types.PredictRequest  true  "Prompts to classify"
// @Success      200      {array}   types.PredictionResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /api/v1/predict/batch [post]
func handlePredictBatch(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reqs []types.PredictRequest
		if !decodeJSONBody(w, r, &reqs) {
			return
		}
		if maxBatchItems > 0 && len(reqs) > maxBatchItems {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("batch exceeds %d items", maxBatchItems), errTypeInvalidRequest)
			return
		}
		items := make([]predictItem, len(reqs))
		for i, req := range reqs {
			item, err := parsePredictRequest(req)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("item %d: %v", i, err), errTypeInvalidRequest)
				return
			}
			items[i] = item
		}

		rl := startRequestLog(r, len(items))
		ctx, cancel := requestContext(r)
		defer cancel()
		results := make([]types.PredictionResponse, len(items))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchConcurrency)
		for i, item := range items {
			i, item := i, item
			g.Go(func() error {
				res, err := svc.PredictWithVariant(gctx, item.prompt, item.labels, item.variant)
				if err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
				results[i] = types.PredictionResponse{PredictionResult: res, ModelInfo: svc.Status()}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			if aborted(r) {
				rl.end(499, err)
				return
			}
			writeJSONError(w, http.StatusInternalServerError, "Error making batch prediction: "+err.Error(), errTypeBatchPrediction)
			rl.end(http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, results)
		rl.end(http.StatusOK, nil)
	}
}
