package testspec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStepStructure is returned when a step fails strict validation.
	ErrInvalidStepStructure = errors.New("invalid step structure")

	// ErrTooManySteps is returned when the number of steps exceeds the maximum.
	ErrTooManySteps = errors.New("too many steps")
)

// MaxStepsCount bounds how many steps a single caller-supplied test may carry.
const MaxStepsCount = 200

// requiredStringFields lists the fields each step kind must carry.
// The wait kind has no required fields; its timeout is optional.
var requiredStringFields = map[string][]string{
	KindNavigate:   {"value"},
	KindInput:      {"targetSelector", "value"},
	KindTap:        {"targetSelector"},
	KindScreenshot: {"name"},
	KindAssert:     {"targetSelector"},
}

// ValidateSteps strictly validates caller-supplied steps: every step must carry
// a recognized type and that type's required fields. This is used for tests
// authored directly through the API; AI-derived steps bypass it and rely on
// lenient rendering instead.
func ValidateSteps(steps Steps) error {
	if len(steps) > MaxStepsCount {
		return fmt.Errorf("%w: %d steps (max %d)", ErrTooManySteps, len(steps), MaxStepsCount)
	}

	for i, step := range steps {
		kind := step.Kind()
		if kind == "" {
			return fmt.Errorf("%w: step %d missing 'type' field", ErrInvalidStepStructure, i)
		}
		if !RecognizedKinds[kind] {
			return fmt.Errorf("%w: step %d has unknown type %q", ErrInvalidStepStructure, i, kind)
		}

		for _, field := range requiredStringFields[kind] {
			v, ok := step[field]
			if !ok {
				return fmt.Errorf("%w: step %d (%s) missing required %q field", ErrInvalidStepStructure, i, kind, field)
			}
			if _, ok := v.(string); !ok {
				return fmt.Errorf("%w: step %d field %q must be a string", ErrInvalidStepStructure, i, field)
			}
		}

		if kind == KindWait {
			switch step["timeoutMs"].(type) {
			case nil, float64, int, int64:
			default:
				return fmt.Errorf("%w: step %d field 'timeoutMs' must be a number", ErrInvalidStepStructure, i)
			}
		}
	}

	return nil
}
