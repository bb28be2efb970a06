package bootstrap

import (
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/bootstrap/driver"
)

// Messages below warning severity are not delivered; every category is.
const (
	diagnosticSeverities = driver.SeverityWarning | driver.SeverityError
	diagnosticTypes      = driver.TypeGeneral | driver.TypeValidation | driver.TypePerformance
)

// DebugMessengerInfo returns the messenger configuration used both for the
// instance creation chain and the standalone messenger.
func DebugMessengerInfo(log logrus.FieldLogger) driver.DebugMessengerCreateInfo {
	return driver.DebugMessengerCreateInfo{
		Severities: diagnosticSeverities,
		Types:      diagnosticTypes,
		Callback:   LogDiagnostics(log),
	}
}

// LogDiagnostics returns a callback that logs driver messages. The driver
// may call it from its own thread: it only reads its arguments, never
// panics across the driver boundary, and never asks the driver to abort
// the triggering call.
func LogDiagnostics(log logrus.FieldLogger) driver.DebugCallback {
	return func(msg driver.Message) (abort bool) {
		defer func() {
			if r := recover(); r != nil {
				abort = false
			}
		}()

		entry := log.WithFields(logrus.Fields{
			"severity": msg.Severity.String(),
			"type":     msg.Type.String(),
		})
		if msg.IDName != "" {
			entry = entry.WithField("id", msg.IDName)
		}

		switch {
		case msg.Severity&driver.SeverityError != 0:
			entry.Error(msg.Text)
		case msg.Severity&driver.SeverityWarning != 0:
			entry.Warn(msg.Text)
		case msg.Severity&driver.SeverityInfo != 0:
			entry.Info(msg.Text)
		default:
			entry.Debug(msg.Text)
		}
		return false
	}
}

// Diagnostics is a registered diagnostics messenger.
type Diagnostics struct {
	messenger driver.DebugMessenger
}

// RegisterDiagnostics looks up the messenger entry points on instance and
// registers info. Unresolvable entry points fail with
// ErrDiagnosticsUnavailable.
func RegisterDiagnostics(instance driver.Instance, info driver.DebugMessengerCreateInfo) (*Diagnostics, error) {
	if err := info.Validate(); err != nil {
		return nil, fail(err, ErrDiagnosticsUnavailable, "setup debug messenger")
	}

	factory, ok := instance.DebugMessengerFactory()
	if !ok || factory == nil {
		return nil, failf(ErrDiagnosticsUnavailable, "setup debug messenger: entry points for %s not found", driver.DebugUtilsExtensionName)
	}

	messenger, err := factory.CreateDebugMessenger(info)
	if err != nil {
		return nil, fail(err, ErrDiagnosticsUnavailable, "setup debug messenger")
	}
	return &Diagnostics{messenger: messenger}, nil
}

// Destroy unregisters the messenger. It is safe to call on a nil
// Diagnostics and more than once.
func (d *Diagnostics) Destroy() {
	if d == nil || d.messenger == nil {
		return
	}
	d.messenger.Destroy()
	d.messenger = nil
}
