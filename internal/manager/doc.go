// Package manager owns the classification model lifecycle: which variant is
// active, which backend serves it, how load failures fall back to a smaller
// model, and how concurrent callers share the single loaded backend.
// It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, Ready/Close.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: Variant, State, Classification and LoadSpec.
//   - backend.go: Backend and Loader interfaces implemented by runtimes.
//   - errors.go: error types and helpers (IsLoadFailure, IsNotSupported, ...).
//   - initialize.go: Initialize, the load policy and the primary→fallback branch.
//   - predict.go: Predict/PredictWithVariant, lazy initialization and normalization.
//   - admission.go: per-backend semaphore admission and backend retirement.
//   - status_report.go: Status reporting.
//   - cache.go: optional prediction cache hook.
//   - events.go, metrics.go: lifecycle events and Prometheus metrics.
//
// State transitions are all-or-nothing: a successful load replaces the
// backend, variant and model name together; a failed load changes none of
// them, so a previously working backend keeps serving.
//
// External packages should use the exported methods only (NewWithConfig,
// Initialize, Predict, PredictWithVariant, Status, Ready, Close).
package manager
