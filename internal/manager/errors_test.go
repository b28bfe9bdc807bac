package manager

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorHelpers(t *testing.T) {
	le := &LoadError{Model: "m", Err: errors.New("boom")}
	cases := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"load", loadFailureError{primary: le}, IsLoadFailure},
		{"not supported", notSupportedError{variant: VariantFineTuned}, IsNotSupported},
		{"inference", inferenceError{model: "m", err: errors.New("x")}, IsInferenceFailure},
		{"invalid", invalidInputError{msg: "bad"}, IsInvalidInput},
		{"busy", tooBusyError{model: "m"}, IsTooBusy},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("ctx: %w", c.err)
		if !c.is(wrapped) {
			t.Fatalf("%s: helper did not match wrapped error", c.name)
		}
		if IsTooBusy(c.err) != (c.name == "busy") {
			t.Fatalf("%s: IsTooBusy mismatch", c.name)
		}
	}
}

func TestLoadFailureUnwrapsBoth(t *testing.T) {
	p := errors.New("primary oom")
	f := errors.New("fallback oom")
	err := loadFailureError{primary: &LoadError{Model: "a", Err: p}, fallback: &LoadError{Model: "b", Err: f}}
	if !errors.Is(err, p) || !errors.Is(err, f) {
		t.Fatalf("expected both causes in chain: %v", err)
	}
}

func TestParseVariant(t *testing.T) {
	if v, err := ParseVariant(" Zero_Shot "); err != nil || v != VariantZeroShot {
		t.Fatalf("ParseVariant zero_shot = %q, %v", v, err)
	}
	if v, err := ParseVariant("fine_tuned"); err != nil || v != VariantFineTuned {
		t.Fatalf("ParseVariant fine_tuned = %q, %v", v, err)
	}
	if _, err := ParseVariant("gpt"); !IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
