package manager

import (
	"strings"

	"tourismd/internal/device"
)

// Variant is the configured model family.
type Variant string

const (
	VariantZeroShot  Variant = "zero_shot"
	VariantFineTuned Variant = "fine_tuned"
)

// ParseVariant maps a wire/config string to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantZeroShot, VariantFineTuned:
		return v, nil
	default:
		return "", invalidInputError{msg: "unknown model type: " + s}
	}
}

// State represents the lifecycle state of the manager.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
)

// Classification is the raw output of one backend call: labels ordered by
// descending score, scores in the same order.
type Classification struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// LoadSpec describes one backend construction.
type LoadSpec struct {
	Model  string
	Device device.Device
	Token  string
}
