package bootstrap

import (
	"github.com/vkngwrapper/bootstrap/driver"
)

// Probe creates an instance and a surface, evaluates every physical device
// against the requirements in opts and tears both down again. Unlike New
// it reports every device, not just the first suitable one.
func Probe(loader driver.Loader, window driver.SurfaceProvider, opts Options) ([]Verdict, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	c := newContext(opts)
	defer c.Destroy()

	if err := c.createInstance(loader, window); err != nil {
		return nil, err
	}
	if err := c.createSurface(window); err != nil {
		return nil, err
	}

	return EvaluateDevices(c.instance, c.surface, Requirements{
		Features:   opts.RequiredFeatures,
		Extensions: opts.DeviceExtensions,
	})
}
