// Package panicerr turns panics in background goroutines into errors.
package panicerr

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/panics"
)

// SafeContext wraps fn so that a panic is returned as an error naming the
// goroutine instead of crashing the process.
func SafeContext(name string, fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		var (
			catcher panics.Catcher
			err     error
		)
		catcher.Try(func() {
			err = fn(ctx)
		})
		if r := catcher.Recovered(); r != nil {
			return fmt.Errorf("%s: %w", name, r.AsError())
		}
		return err
	}
}
