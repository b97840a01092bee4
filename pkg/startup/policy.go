package startup

import "fmt"

// Policy controls how a migration failure affects server launch.
//
// The three policies correspond to the deployment modes tradebook supports:
//   - Tolerant: log a warning on migration failure and launch the server anyway.
//   - Strict: abort immediately on migration failure; the server never starts.
//   - StrictTrace: like Strict, but with a distinguishable error message and
//     per-step trace logging for debugging deployments.
type Policy int

const (
	// PolicyStrict aborts the startup sequence when migrations fail.
	// This is the default: serving requests against an unknown schema
	// is worse than not serving at all.
	PolicyStrict Policy = iota

	// PolicyTolerant continues to server launch even when migrations fail.
	PolicyTolerant

	// PolicyStrictTrace behaves like PolicyStrict and additionally logs
	// every sequencer step, mirroring shell `set -x` style tracing.
	PolicyStrictTrace
)

// ParsePolicy converts a configuration string into a Policy.
// Accepted values: "strict", "tolerant", "strict-trace".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "strict", "":
		return PolicyStrict, nil
	case "tolerant":
		return PolicyTolerant, nil
	case "strict-trace":
		return PolicyStrictTrace, nil
	default:
		return PolicyStrict, fmt.Errorf("unknown startup policy %q (valid: tolerant, strict, strict-trace)", s)
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyTolerant:
		return "tolerant"
	case PolicyStrict:
		return "strict"
	case PolicyStrictTrace:
		return "strict-trace"
	default:
		return "unknown"
	}
}

// strict reports whether migration failure aborts the sequence.
func (p Policy) strict() bool {
	return p == PolicyStrict || p == PolicyStrictTrace
}

// trace reports whether per-step trace logging is enabled.
func (p Policy) trace() bool {
	return p == PolicyStrictTrace
}
