package dynamo

import "errors"

// Domain errors for engine operations.
var (
	// ErrNonFinite indicates a NaN or Inf input that was replaced by a default.
	ErrNonFinite = errors.New("dynamo: non-finite value (NaN or Inf) replaced")

	// ErrInvalidMass indicates a non-positive mass that was replaced by a default.
	ErrInvalidMass = errors.New("dynamo: mass must be positive")

	// ErrUnknownIntegrator indicates an integrator name with no registered stepper.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrUnknownPreset indicates a spring preset that does not exist.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrInvalidKeyframes indicates an empty or malformed keyframe list.
	ErrInvalidKeyframes = errors.New("dynamo: invalid keyframes")
)
