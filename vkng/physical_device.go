package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/core/v3/core1_0"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// PhysicalDevice is a driver.PhysicalDevice backed by a vkngwrapper handle.
type PhysicalDevice struct {
	instance *Instance
	handle   core1_0.PhysicalDevice
}

func (p *PhysicalDevice) Properties() (driver.PhysicalDeviceProperties, error) {
	props, err := p.instance.driver.GetPhysicalDeviceProperties(p.handle)
	if err != nil {
		return driver.PhysicalDeviceProperties{}, errors.Wrap(err, "vkng: physical device properties")
	}
	if props == nil {
		return driver.PhysicalDeviceProperties{}, errors.New("vkng: physical device properties unavailable")
	}

	return driver.PhysicalDeviceProperties{
		Name:              props.DriverName,
		Type:              deviceType(props.DriverType),
		VendorID:          props.VendorID,
		DeviceID:          props.DeviceID,
		PipelineCacheUUID: props.PipelineCacheUUID,
	}, nil
}

func (p *PhysicalDevice) Features() (driver.Features, error) {
	features := p.instance.driver.GetPhysicalDeviceFeatures(p.handle)
	if features == nil {
		return driver.Features{}, errors.New("vkng: physical device features unavailable")
	}

	return driver.Features{
		GeometryShader:     features.GeometryShader,
		TessellationShader: features.TessellationShader,
		SamplerAnisotropy:  features.SamplerAnisotropy,
	}, nil
}

func (p *PhysicalDevice) QueueFamilies() ([]driver.QueueFamily, error) {
	properties := p.instance.driver.GetPhysicalDeviceQueueFamilyProperties(p.handle)

	families := make([]driver.QueueFamily, 0, len(properties))
	for _, family := range properties {
		families = append(families, driver.QueueFamily{
			Flags:      driver.QueueFlags(family.QueueFlags),
			QueueCount: int(family.QueueCount),
		})
	}
	return families, nil
}

func (p *PhysicalDevice) Extensions() ([]string, error) {
	extensions, _, err := p.instance.driver.EnumerateDeviceExtensionProperties(p.handle)
	if err != nil {
		return nil, errors.Wrap(err, "vkng: enumerate device extensions")
	}

	names := maps.Keys(extensions)
	slices.Sort(names)
	return names, nil
}

func (p *PhysicalDevice) SurfaceSupport(surface driver.Surface, family int) (bool, error) {
	s, err := asSurface(surface)
	if err != nil {
		return false, err
	}

	supported, _, err := p.instance.surface.GetPhysicalDeviceSurfaceSupport(s.handle, p.handle, family)
	if err != nil {
		return false, errors.Wrapf(err, "vkng: surface support for family %d", family)
	}
	return supported, nil
}

func (p *PhysicalDevice) SurfaceCapabilities(surface driver.Surface) (driver.SurfaceCapabilities, error) {
	s, err := asSurface(surface)
	if err != nil {
		return driver.SurfaceCapabilities{}, err
	}

	caps, _, err := p.instance.surface.GetPhysicalDeviceSurfaceCapabilities(s.handle, p.handle)
	if err != nil {
		return driver.SurfaceCapabilities{}, errors.Wrap(err, "vkng: surface capabilities")
	}

	return driver.SurfaceCapabilities{
		MinImageCount:           int(caps.MinImageCount),
		MaxImageCount:           int(caps.MaxImageCount),
		CurrentExtent:           extent(caps.CurrentExtent),
		MinImageExtent:          extent(caps.MinImageExtent),
		MaxImageExtent:          extent(caps.MaxImageExtent),
		SupportedTransforms:     driver.SurfaceTransformFlags(caps.SupportedTransforms),
		CurrentTransform:        driver.SurfaceTransformFlags(caps.CurrentTransform),
		SupportedCompositeAlpha: driver.CompositeAlphaFlags(caps.SupportedCompositeAlpha),
	}, nil
}

func (p *PhysicalDevice) SurfaceFormats(surface driver.Surface) ([]driver.SurfaceFormat, error) {
	s, err := asSurface(surface)
	if err != nil {
		return nil, err
	}

	formats, _, err := p.instance.surface.GetPhysicalDeviceSurfaceFormats(s.handle, p.handle)
	if err != nil {
		return nil, errors.Wrap(err, "vkng: surface formats")
	}

	out := make([]driver.SurfaceFormat, 0, len(formats))
	for _, format := range formats {
		out = append(out, driver.SurfaceFormat{
			Format:     driver.Format(format.Format),
			ColorSpace: driver.ColorSpace(format.ColorSpace),
		})
	}
	return out, nil
}

func (p *PhysicalDevice) SurfacePresentModes(surface driver.Surface) ([]driver.PresentMode, error) {
	s, err := asSurface(surface)
	if err != nil {
		return nil, err
	}

	modes, _, err := p.instance.surface.GetPhysicalDeviceSurfacePresentModes(s.handle, p.handle)
	if err != nil {
		return nil, errors.Wrap(err, "vkng: surface present modes")
	}

	out := make([]driver.PresentMode, 0, len(modes))
	for _, mode := range modes {
		out = append(out, driver.PresentMode(mode))
	}
	return out, nil
}
