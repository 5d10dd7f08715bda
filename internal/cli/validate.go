package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/scrolly/pkg/dom"
	"go.uber.org/multierr"
)

// ErrInvalidPages is returned by RunValidate when any page has problems.
var ErrInvalidPages = errors.New("validation failed")

// RunValidate checks each page and lists its problems on out.
func RunValidate(paths []string, out io.Writer) error {
	if len(paths) == 0 {
		return fmt.Errorf("no pages given")
	}

	failed := 0
	for _, path := range paths {
		doc, err := dom.ReadFile(path)
		if err != nil {
			fmt.Fprintf(out, "✗ %s\n  - %v\n", path, err)
			failed++
			continue
		}
		problems := multierr.Errors(dom.Validate(doc))
		if len(problems) == 0 {
			fmt.Fprintf(out, "✓ %s (%d steps)\n", path, len(doc.Steps()))
			continue
		}
		failed++
		fmt.Fprintf(out, "✗ %s\n", path)
		for _, p := range problems {
			fmt.Fprintf(out, "  - %v\n", p)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d page(s)", ErrInvalidPages, failed, len(paths))
	}
	return nil
}
