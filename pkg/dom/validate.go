package dom

import (
	"fmt"

	"github.com/aretw0/scrolly/pkg/domain"
	"go.uber.org/multierr"
)

// Validate checks the page against the markup contract and reports every
// problem found. A nil result means every step can be driven.
func Validate(d *Document) error {
	var errs error

	instances := d.FindAll(ClassInstance)
	if len(instances) == 0 {
		return fmt.Errorf("%w: page has no .%s element", domain.ErrNoInstance, ClassInstance)
	}

	for i, inst := range instances {
		name := inst.ID()
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		errs = multierr.Append(errs, validateInstance(name, inst))
	}

	for _, s := range d.Steps() {
		if s.Closest(ClassInstance) == nil {
			errs = multierr.Append(errs, fmt.Errorf("step %q: %w", s.Attr("data-step"), domain.ErrNoInstance))
		}
	}
	return errs
}

func validateInstance(name string, inst *Element) error {
	var errs error

	if inst.Find(ClassSteps) == nil {
		errs = multierr.Append(errs, fmt.Errorf("instance %s: %w: missing .%s", name, domain.ErrIncompleteSticky, ClassSteps))
	}

	sticky := inst.Find(ClassSticky)
	if sticky == nil {
		errs = multierr.Append(errs, fmt.Errorf("instance %s: %w: missing .%s", name, domain.ErrIncompleteSticky, ClassSticky))
	} else {
		for _, class := range []string{ClassImageContainer, ClassMapContainer, ClassVideoContainer} {
			if n := len(sticky.FindAll(class)); n != 1 {
				errs = multierr.Append(errs, fmt.Errorf("instance %s: %w: want exactly one .%s, found %d", name, domain.ErrIncompleteSticky, class, n))
			}
		}
		if img := sticky.Find(ClassImageContainer); img != nil && img.FindTag("img") == nil {
			errs = multierr.Append(errs, fmt.Errorf("instance %s: %w: image container has no <img>", name, domain.ErrIncompleteSticky))
		}
		if m := sticky.Find(ClassMapContainer); m != nil && m.ID() == "" {
			errs = multierr.Append(errs, fmt.Errorf("instance %s: %w: map container has no id", name, domain.ErrIncompleteSticky))
		}
	}

	seen := make(map[int]bool)
	for _, el := range inst.FindAll(ClassStep) {
		step, err := DecodeStep(el)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("instance %s: %w", name, err))
			continue
		}
		if seen[step.Index] {
			errs = multierr.Append(errs, fmt.Errorf("instance %s: step %d: %w: duplicate index", name, step.Index, domain.ErrMalformedStep))
		}
		seen[step.Index] = true

		if !step.ContentType.Known() {
			errs = multierr.Append(errs, fmt.Errorf("instance %s: step %d: %w %q", name, step.Index, domain.ErrUnknownContentType, step.ContentType))
		}
		if step.ContentType == domain.ContentMap && !step.HasCoordinates() {
			errs = multierr.Append(errs, fmt.Errorf("instance %s: step %d: %w: map step without coordinates", name, step.Index, domain.ErrMalformedStep))
		}
		if step.ContentType != domain.ContentMap && step.FilePath == "" && step.ContentType.Known() {
			errs = multierr.Append(errs, fmt.Errorf("instance %s: step %d: %w: %s step without file path", name, step.Index, domain.ErrMalformedStep, step.ContentType))
		}
	}
	return errs
}
