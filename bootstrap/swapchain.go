package bootstrap

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/driver"
)

// SwapchainSupport is a joint snapshot of the swap chain capabilities of
// one (physical device, surface) pair. It is never reused for another pair.
type SwapchainSupport struct {
	Capabilities driver.SurfaceCapabilities
	Formats      []driver.SurfaceFormat
	PresentModes []driver.PresentMode
}

// Adequate reports whether at least one format and one present mode are
// supported.
func (s SwapchainSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// QuerySwapchainSupport queries capabilities, formats and present modes of
// device against surface.
func QuerySwapchainSupport(device driver.PhysicalDevice, surface driver.Surface) (SwapchainSupport, error) {
	var support SwapchainSupport
	var err error

	support.Capabilities, err = device.SurfaceCapabilities(surface)
	if err != nil {
		return support, errors.Wrap(err, "query surface capabilities")
	}

	support.Formats, err = device.SurfaceFormats(surface)
	if err != nil {
		return support, errors.Wrap(err, "query surface formats")
	}

	support.PresentModes, err = device.SurfacePresentModes(surface)
	if err != nil {
		return support, errors.Wrap(err, "query surface present modes")
	}
	return support, nil
}

// ChooseSurfaceFormat prefers 8-bit BGRA SRGB in the SRGB nonlinear color
// space wherever it appears in formats, and otherwise takes the first
// format. An empty list yields the undefined format.
func ChooseSurfaceFormat(formats []driver.SurfaceFormat) driver.SurfaceFormat {
	for _, format := range formats {
		if format.Format == driver.FormatB8G8R8A8SRGB && format.ColorSpace == driver.ColorSpaceSRGBNonlinear {
			return format
		}
	}

	if len(formats) == 0 {
		return driver.SurfaceFormat{Format: driver.FormatUndefined}
	}
	return formats[0]
}

// ChoosePresentMode prefers mailbox and otherwise falls back to FIFO, which
// every driver supports.
func ChoosePresentMode(modes []driver.PresentMode) driver.PresentMode {
	for _, mode := range modes {
		if mode == driver.PresentModeMailbox {
			return mode
		}
	}
	return driver.PresentModeFIFO
}

// ChooseExtent returns the current surface extent, or the window size
// clamped into the supported range when the surface lets the swap chain
// decide.
func ChooseExtent(capabilities driver.SurfaceCapabilities, width, height int) driver.Extent2D {
	if !capabilities.ExtentMatchesWindow() {
		return capabilities.CurrentExtent
	}

	return driver.Extent2D{
		Width:  clamp(width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

func clamp(value, lo, hi int) int {
	if value < lo {
		value = lo
	}
	if value > hi {
		value = hi
	}
	return value
}

// ChooseImageCount asks for one image more than the minimum, capped at the
// maximum when one is declared.
func ChooseImageCount(capabilities driver.SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

// ChooseSharingMode shares swap chain images concurrently between distinct
// graphics and presentation families, and exclusively otherwise.
func ChooseSharingMode(indices QueueFamilyIndices) (driver.SharingMode, []int) {
	if !indices.IsComplete() || indices.Shared() {
		return driver.SharingModeExclusive, nil
	}
	return driver.SharingModeConcurrent, []int{*indices.GraphicsFamily, *indices.PresentFamily}
}

var compositeAlphaPreference = []driver.CompositeAlphaFlags{
	driver.CompositeAlphaOpaque,
	driver.CompositeAlphaPreMultiplied,
	driver.CompositeAlphaPostMultiplied,
	driver.CompositeAlphaInherit,
}

// ChooseCompositeAlpha returns the first supported composite alpha mode,
// preferring opaque.
func ChooseCompositeAlpha(capabilities driver.SurfaceCapabilities) driver.CompositeAlphaFlags {
	for _, mode := range compositeAlphaPreference {
		if capabilities.SupportedCompositeAlpha&mode != 0 {
			return mode
		}
	}
	return driver.CompositeAlphaOpaque
}

// NegotiateSwapchain resolves a complete swap chain configuration from a
// support snapshot. width and height are the window's drawable size.
func NegotiateSwapchain(support SwapchainSupport, indices QueueFamilyIndices, surface driver.Surface, width, height int) driver.SwapchainCreateInfo {
	surfaceFormat := ChooseSurfaceFormat(support.Formats)
	sharingMode, queueFamilyIndices := ChooseSharingMode(indices)

	return driver.SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    ChooseImageCount(support.Capabilities),
		ImageFormat:      surfaceFormat.Format,
		ImageColorSpace:  surfaceFormat.ColorSpace,
		ImageExtent:      ChooseExtent(support.Capabilities, width, height),
		ImageArrayLayers: 1,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: queueFamilyIndices,

		PreTransform:   support.Capabilities.CurrentTransform,
		CompositeAlpha: ChooseCompositeAlpha(support.Capabilities),
		PresentMode:    ChoosePresentMode(support.PresentModes),
		Clipped:        true,
	}
}

// Swapchain is a created swap chain and the images the driver allocated
// for it.
type Swapchain struct {
	handle driver.Swapchain

	// Images are owned by the swap chain. Their count may exceed the
	// requested minimum.
	Images      []driver.Image
	Format      driver.Format
	ColorSpace  driver.ColorSpace
	Extent      driver.Extent2D
	PresentMode driver.PresentMode
	SharingMode driver.SharingMode
}

// CreateSwapchain validates info, creates the swap chain and retrieves its
// images. On failure nothing stays allocated.
func CreateSwapchain(device driver.Device, info driver.SwapchainCreateInfo) (*Swapchain, error) {
	if err := info.Validate(); err != nil {
		return nil, fail(err, ErrSwapChainCreationFailed, "create swapchain")
	}

	handle, err := device.CreateSwapchain(info)
	if err != nil {
		return nil, fail(err, ErrSwapChainCreationFailed, "create swapchain")
	}

	images, err := handle.Images()
	if err != nil {
		handle.Destroy()
		return nil, fail(err, ErrSwapChainCreationFailed, "get swapchain images")
	}

	return &Swapchain{
		handle:      handle,
		Images:      images,
		Format:      info.ImageFormat,
		ColorSpace:  info.ImageColorSpace,
		Extent:      info.ImageExtent,
		PresentMode: info.PresentMode,
		SharingMode: info.ImageSharingMode,
	}, nil
}

// Handle returns the driver swap chain.
func (s *Swapchain) Handle() driver.Swapchain {
	return s.handle
}

// Destroy destroys the swap chain. Its images are released with it. It is
// safe to call more than once.
func (s *Swapchain) Destroy() {
	if s == nil || s.handle == nil {
		return
	}
	s.handle.Destroy()
	s.handle = nil
}
