package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"tourismd/internal/backend/hfinference"
	"tourismd/internal/httpapi"
	"tourismd/internal/manager"
)

const (
	primaryModel  = "facebook/bart-large-mnli"
	fallbackModel = manager.FallbackModel
)

// fakeInference serves the zero-shot protocol for the models it knows.
// Texts containing "slow" are held for slowDelay; texts containing "boom"
// fail with 500.
type fakeInference struct {
	models    map[string]bool
	slowDelay time.Duration
	calls     atomic.Int32
}

func (f *fakeInference) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	model := strings.TrimPrefix(r.URL.Path, "/models/")
	if !f.models[model] {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Model `+model+` does not exist"}`)
		return
	}
	var req struct {
		Inputs     string `json:"inputs"`
		Parameters struct {
			CandidateLabels []string `json:"candidate_labels"`
		} `json:"parameters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if strings.Contains(req.Inputs, "boom") {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"CUDA out of memory"}`)
		return
	}
	if strings.Contains(req.Inputs, "slow") && f.slowDelay > 0 {
		select {
		case <-time.After(f.slowDelay):
		case <-r.Context().Done():
			return
		}
	}
	labels := append([]string(nil), req.Parameters.CandidateLabels...)
	scores := make([]float64, len(labels))
	for i := range labels {
		scores[i] = 0.1 / float64(i+1)
	}
	if len(labels) > 0 {
		scores[0] = 0.85
	}
	// Texts about code rank the second label first.
	if strings.Contains(strings.ToLower(req.Inputs), "golang") && len(labels) > 1 {
		labels[0], labels[1] = labels[1], labels[0]
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"sequence": req.Inputs, "labels": labels, "scores": scores})
}

// newStack wires a fake inference server to the real loader, Manager and
// HTTP mux.
func newStack(t *testing.T, f *fakeInference, cfg manager.ManagerConfig) (*httptest.Server, *manager.Manager) {
	t.Helper()
	inf := httptest.NewServer(f)
	t.Cleanup(inf.Close)
	cfg.Loader = hfinference.NewLoader(hfinference.Options{
		BaseURL:        inf.URL + "/models",
		RequestTimeout: 5 * time.Second,
		Concurrency:    2,
	})
	if cfg.PrimaryModel == "" {
		cfg.PrimaryModel = primaryModel
	}
	mgr := manager.NewWithConfig(cfg)
	t.Cleanup(func() { _ = mgr.Close() })
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv, mgr
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewBufferString(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func decode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}
