package bootstrap

import (
	"github.com/cockroachdb/errors"
)

// Every bootstrap failure is terminal. Errors returned by this package are
// marked with exactly one of these, so callers classify them with errors.Is.
var (
	// ErrMissingCapability means a required diagnostic layer is not installed.
	ErrMissingCapability = errors.New("bootstrap: required diagnostic layer missing")
	// ErrExtensionUnsupported means a required instance or device extension
	// is not supported.
	ErrExtensionUnsupported = errors.New("bootstrap: required extension unsupported")
	// ErrContextCreationFailed means the API instance could not be created.
	ErrContextCreationFailed = errors.New("bootstrap: context creation failed")
	// ErrDiagnosticsUnavailable means the diagnostics messenger entry points
	// could not be resolved or the messenger could not be registered.
	ErrDiagnosticsUnavailable = errors.New("bootstrap: diagnostics messenger unavailable")
	// ErrSurfaceCreationFailed means the window surface could not be created.
	ErrSurfaceCreationFailed = errors.New("bootstrap: surface creation failed")
	// ErrNoSuitableDevice means no enumerated physical device passed every
	// suitability check, including when none were enumerated.
	ErrNoSuitableDevice = errors.New("bootstrap: no suitable physical device")
	// ErrDeviceCreationFailed means the logical device could not be created.
	ErrDeviceCreationFailed = errors.New("bootstrap: logical device creation failed")
	// ErrSwapChainCreationFailed means the swap chain could not be created
	// or its images could not be retrieved.
	ErrSwapChainCreationFailed = errors.New("bootstrap: swap chain creation failed")
	// ErrImageViewCreationFailed means a swap chain image view could not be
	// created.
	ErrImageViewCreationFailed = errors.New("bootstrap: image view creation failed")
	// ErrInvalidOptions means the Options passed to New failed validation.
	ErrInvalidOptions = errors.New("bootstrap: invalid options")
)

// fail wraps err with a message and marks it with kind.
func fail(err error, kind error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), kind)
}

// failf builds a new error marked with kind.
func failf(kind error, format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), kind)
}
