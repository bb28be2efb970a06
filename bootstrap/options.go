package bootstrap

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/bootstrap/driver"
)

// Options configure a bootstrap run. Start from DefaultOptions and
// override fields.
type Options struct {
	ApplicationName    string
	ApplicationVersion driver.Version
	EngineName         string
	EngineVersion      driver.Version

	// EnableDiagnostics turns on the validation layers, the diagnostics
	// messenger and verbose enumeration output.
	EnableDiagnostics bool
	ValidationLayers  []string

	// DeviceExtensions must all be supported by the selected device.
	DeviceExtensions []string
	// RequiredFeatures must all be supported by the selected device and
	// are enabled on the logical device.
	RequiredFeatures driver.Features

	// QueuePriority is assigned to every requested queue.
	QueuePriority float32

	Logger logrus.FieldLogger
}

// DefaultOptions returns the options used by the tutorial application:
// Khronos validation in debug builds, the swap chain extension and
// geometry shader support.
func DefaultOptions() Options {
	return Options{
		ApplicationName:    "Hello Triangle",
		ApplicationVersion: driver.MakeVersion(1, 0, 0),
		EngineName:         "No Engine",
		EngineVersion:      driver.MakeVersion(1, 0, 0),

		EnableDiagnostics: DebugBuild,
		ValidationLayers:  []string{driver.KhronosValidationLayerName},

		DeviceExtensions: []string{driver.SwapchainExtensionName},
		RequiredFeatures: driver.Features{GeometryShader: true},

		QueuePriority: 1.0,

		Logger: logrus.StandardLogger(),
	}
}

func (o Options) Validate() error {
	if o.ApplicationName == "" {
		return errors.Mark(errors.New("application name is empty"), ErrInvalidOptions)
	}
	if o.QueuePriority <= 0 || o.QueuePriority > 1 {
		return errors.Mark(errors.Newf("queue priority %f outside (0, 1]", o.QueuePriority), ErrInvalidOptions)
	}
	if err := validateNames("device extension", o.DeviceExtensions); err != nil {
		return err
	}
	if o.EnableDiagnostics {
		if err := validateNames("validation layer", o.ValidationLayers); err != nil {
			return err
		}
	}
	return nil
}

// validateNames rejects empty and repeated names. Device creation accepts
// each layer and extension once.
func validateNames(kind string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return errors.Mark(errors.Newf("%s name is empty", kind), ErrInvalidOptions)
		}
		if _, ok := seen[name]; ok {
			return errors.Mark(errors.Newf("%s %s listed more than once", kind, name), ErrInvalidOptions)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

// layers returns the diagnostic layers to enable on the instance and the
// device.
func (o Options) layers() []string {
	if !o.EnableDiagnostics {
		return nil
	}
	return o.ValidationLayers
}
