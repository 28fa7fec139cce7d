// Package main provides the linkdeck CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/linkdecklabs/linkdeck/internal/api"
	"github.com/linkdecklabs/linkdeck/internal/validation"
	"github.com/linkdecklabs/linkdeck/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// userErrors are failures caused by the invocation, not the system.
var userErrors = []error{
	types.ErrTitleRequired,
	types.ErrInvalidURL,
	types.ErrEmailRequired,
	types.ErrPasswordRequired,
	types.ErrPasswordTooShort,
	types.ErrPasswordMismatch,
	types.ErrUsernameTooShort,
	types.ErrUsernameInvalid,
	types.ErrNotAuthenticated,
	types.ErrProfileNotFound,
}

// exitCode maps an error to the process exit code: validation failures
// and rejected requests exit 1, everything else exits 2.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, sentinel := range userErrors {
		if errors.Is(err, sentinel) {
			return exitUserError
		}
	}
	var fieldErrs *validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		return exitUserError
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return exitUserError
	}
	return exitSysError
}
