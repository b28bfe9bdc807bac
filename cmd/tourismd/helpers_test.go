package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// runCLI executes the command tree with an empty environment so host
// variables cannot leak into configuration.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := buildRootCmd(&rootOptions{environ: []string{}})
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// fakeInference answers zero-shot requests, ranking the first candidate
// label on top when the text mentions a temple.
type fakeInference struct {
	calls atomic.Int32
}

func (f *fakeInference) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	var req struct {
		Inputs     string `json:"inputs"`
		Parameters struct {
			CandidateLabels []string `json:"candidate_labels"`
		} `json:"parameters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Parameters.CandidateLabels) < 2 {
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
		return
	}
	if strings.Contains(req.Inputs, "fail") {
		http.Error(w, `{"error":"inference exploded"}`, http.StatusInternalServerError)
		return
	}
	labels := append([]string(nil), req.Parameters.CandidateLabels...)
	if !strings.Contains(strings.ToLower(req.Inputs), "temple") {
		labels[0], labels[1] = labels[1], labels[0]
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"sequence": req.Inputs,
		"labels":   labels,
		"scores":   []float64{0.9, 0.1},
	})
}

// writeConfig points the service at srv and returns the config path.
func writeConfig(t *testing.T, srv *httptest.Server, extra string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tourismd.yaml")
	body := "device: cpu\nlog_level: error\ninference_url: " + srv.URL + "/models\n" + extra
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}
