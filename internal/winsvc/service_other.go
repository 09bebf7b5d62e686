//go:build !windows

package winsvc

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
)

func unsupported(what string) error {
	return errors.New().WithData(errors.ErrService, what+" is only supported on Windows")
}

// IsWindowsService always returns false on non-Windows platforms.
func IsWindowsService() bool { return false }

// RunService is not supported on non-Windows platforms.
func RunService(_ string, _ func(ctx context.Context) error) error {
	return unsupported("running as a service")
}

// SetupEventLog is a no-op on non-Windows platforms.
func SetupEventLog(_ string) {}

// Install is not supported on non-Windows platforms.
func Install(_, _, _, _ string, _ []string) error {
	return unsupported("service install")
}

// Uninstall is not supported on non-Windows platforms.
func Uninstall(_ string) error {
	return unsupported("service uninstall")
}

// ExePath returns the path to the currently running executable.
func ExePath() (string, error) {
	return "", unsupported("service install")
}
