package dom

import (
	"fmt"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// DecodeStep reads the StepDescriptor carried by a step element's data
// attributes. Numeric attributes are strings in markup and decoded weakly;
// empty attributes count as absent.
func DecodeStep(e *Element) (domain.StepDescriptor, error) {
	var step domain.StepDescriptor
	if e == nil {
		return step, fmt.Errorf("%w: nil element", domain.ErrMalformedStep)
	}

	raw := e.Data()
	if raw["step"] == "" {
		return step, fmt.Errorf("%w: missing data-step", domain.ErrMalformedStep)
	}

	input := make(map[string]any, len(raw))
	for k, v := range raw {
		if v != "" {
			input[k] = v
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &step,
	})
	if err != nil {
		return step, fmt.Errorf("failed to build step decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return step, fmt.Errorf("%w: %v", domain.ErrMalformedStep, err)
	}

	step.ContentType = domain.ParseContentType(string(step.ContentType))
	switch {
	case step.TextPercent < 0:
		step.TextPercent = 0
	case step.TextPercent > 100:
		step.TextPercent = 100
	}
	return step, nil
}
