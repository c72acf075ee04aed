package main

import (
	"fmt"

	"github.com/fornellas/slogxt/log"
	"github.com/spf13/cobra"
)

// ExitError carries an exit code up to main() past all deferred
// cleanups.
type ExitError struct {
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

func Exit(code int) {
	panic(ExitError{Code: code})
}

// GetRunFn adapts an error-returning command function to cobra's Run,
// logging the error and exiting non-zero.
func GetRunFn(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := fn(cmd, args); err != nil {
			logger := log.MustLogger(cmd.Context())
			logger.Error("Failed", "err", err)
			Exit(1)
		}
	}
}
