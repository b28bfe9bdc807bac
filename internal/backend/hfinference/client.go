// Package hfinference implements manager.Loader and manager.Backend on top of
// the Hugging Face Inference zero-shot-classification HTTP API, or any
// self-hosted endpoint speaking the same protocol.
package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"tourismd/internal/manager"
	"tourismd/pkg/types"
)

// DefaultBaseURL is the public serverless inference endpoint.
const DefaultBaseURL = "https://api-inference.huggingface.co/models"

// warmupText is classified once at load time so that a model that cannot be
// served fails the load rather than the first prediction.
const warmupText = "Where can I buy tickets for Angkor Wat?"

// Options configures the Loader.
type Options struct {
	BaseURL        string
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
	// Concurrency is how many Classify calls one backend accepts in parallel.
	Concurrency int
	// HTTPClient overrides the default transport (tests).
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Loader constructs Backends bound to one hosted model each.
type Loader struct {
	baseURL     string
	reqTimeout  time.Duration
	concurrency int
	httpClient  *http.Client
	log         zerolog.Logger
}

var _ manager.Loader = (*Loader)(nil)

// NewLoader returns a Loader for opts.
func NewLoader(opts Options) *Loader {
	cli := opts.HTTPClient
	if cli == nil {
		connectTimeout := opts.ConnectTimeout
		if connectTimeout <= 0 {
			connectTimeout = 10 * time.Second
		}
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   connectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		// Timeout stays zero: every request carries a context deadline.
		cli = &http.Client{Transport: tr}
	}
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	conc := opts.Concurrency
	if conc <= 0 {
		conc = 1
	}
	l := &Loader{
		baseURL:     base,
		reqTimeout:  opts.RequestTimeout,
		concurrency: conc,
		httpClient:  cli,
		log:         zerolog.Nop(),
	}
	if opts.Logger != nil {
		l.log = opts.Logger.With().Str("adapter", "hf_inference").Logger()
	}
	return l
}

// Load binds a backend to spec.Model and warms it up. The call blocks while
// the hosted model is brought up.
func (l *Loader) Load(ctx context.Context, spec manager.LoadSpec) (manager.Backend, error) {
	model := strings.Trim(strings.TrimSpace(spec.Model), "/")
	if model == "" {
		return nil, errors.New("model name is empty")
	}
	segs := strings.Split(model, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	b := &Backend{
		loader:   l,
		model:    model,
		endpoint: l.baseURL + "/" + strings.Join(segs, "/"),
		token:    spec.Token,
		useGPU:   spec.Device.Accelerated(),
	}
	start := time.Now()
	if _, err := b.classify(ctx, warmupText, types.DefaultCandidateLabels); err != nil {
		return nil, fmt.Errorf("warm-up: %w", err)
	}
	l.log.Debug().Str("model", model).Str("device", spec.Device.String()).Dur("dur", time.Since(start)).Msg("backend warmed up")
	return b, nil
}

// Backend classifies text with one hosted model.
type Backend struct {
	loader   *Loader
	model    string
	endpoint string
	token    string
	useGPU   bool
	closed   atomic.Bool
}

var _ manager.Backend = (*Backend)(nil)

// Classify scores text against labels.
func (b *Backend) Classify(ctx context.Context, text string, labels []string) (manager.Classification, error) {
	if b.closed.Load() {
		return manager.Classification{}, errors.New("backend closed")
	}
	return b.classify(ctx, text, labels)
}

// Concurrency reports how many Classify calls may run in parallel.
func (b *Backend) Concurrency() int { return b.loader.concurrency }

// Close marks the backend unusable and drops idle connections. Active
// connections of sibling backends are left alone.
func (b *Backend) Close() error {
	b.closed.Store(true)
	b.loader.httpClient.CloseIdleConnections()
	return nil
}

type classifyRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters classifyParameters `json:"parameters"`
	Options    classifyOptions    `json:"options"`
}

type classifyParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type classifyOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseGPU       bool `json:"use_gpu,omitempty"`
}

// StatusError is a non-2xx answer from the inference server.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference server returned %d: %s", e.Code, e.Message)
}

func (b *Backend) classify(ctx context.Context, text string, labels []string) (manager.Classification, error) {
	if b.loader.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.loader.reqTimeout)
		defer cancel()
	}
	payload := classifyRequest{
		Inputs:     text,
		Parameters: classifyParameters{CandidateLabels: labels},
		Options:    classifyOptions{WaitForModel: true, UseGPU: b.useGPU},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return manager.Classification{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return manager.Classification{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	resp, err := b.loader.httpClient.Do(req)
	if err != nil {
		// Translate context timeouts/cancels
		if ctx.Err() != nil {
			return manager.Classification{}, ctx.Err()
		}
		return manager.Classification{}, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return manager.Classification{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return manager.Classification{}, &StatusError{Code: resp.StatusCode, Message: errorMessage(raw)}
	}
	out, err := decodeClassification(raw)
	if err != nil {
		return manager.Classification{}, err
	}
	if out.Sequence == "" {
		out.Sequence = text
	}
	return out, nil
}

// decodeClassification accepts the pipeline object
// {"sequence","labels","scores"}, a one-element list of it, or a list of
// {"label","score"} pairs in any order.
func decodeClassification(raw []byte) (manager.Classification, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return manager.Classification{}, errors.New("empty response")
	}
	type pipelineOutput struct {
		Sequence string          `json:"sequence"`
		Labels   []string        `json:"labels"`
		Scores   []float64       `json:"scores"`
		Label    string          `json:"label"`
		Score    float64         `json:"score"`
		Error    json.RawMessage `json:"error"`
	}
	switch raw[0] {
	case '{':
		var o pipelineOutput
		if err := json.Unmarshal(raw, &o); err != nil {
			return manager.Classification{}, fmt.Errorf("decode response: %w", err)
		}
		if len(o.Error) > 0 {
			return manager.Classification{}, errors.New(errorMessage(raw))
		}
		return manager.Classification{Sequence: o.Sequence, Labels: o.Labels, Scores: o.Scores}, nil
	case '[':
		var items []pipelineOutput
		if err := json.Unmarshal(raw, &items); err != nil {
			return manager.Classification{}, fmt.Errorf("decode response: %w", err)
		}
		if len(items) == 0 {
			return manager.Classification{}, errors.New("empty response")
		}
		if len(items[0].Labels) > 0 {
			return manager.Classification{Sequence: items[0].Sequence, Labels: items[0].Labels, Scores: items[0].Scores}, nil
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
		out := manager.Classification{Labels: make([]string, len(items)), Scores: make([]float64, len(items))}
		for i, it := range items {
			out.Labels[i] = it.Label
			out.Scores[i] = it.Score
		}
		return out, nil
	default:
		return manager.Classification{}, fmt.Errorf("unexpected response: %.64q", raw)
	}
}

// errorMessage extracts {"error": ...} from a response body, falling back to
// the body itself.
func errorMessage(raw []byte) string {
	var e struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(raw, &e); err == nil && e.Error != nil {
		switch v := e.Error.(type) {
		case string:
			return v
		case []any:
			parts := make([]string, 0, len(v))
			for _, p := range v {
				parts = append(parts, fmt.Sprint(p))
			}
			return strings.Join(parts, "; ")
		default:
			return fmt.Sprint(v)
		}
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 512 {
		msg = msg[:512]
	}
	return msg
}
