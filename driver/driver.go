// Package driver defines the boundary between the bootstrap sequence and
// the underlying graphics API.
//
// Every method is a blocking call into the driver. Enumeration methods
// return ordered slices in driver order; the count-then-fill pattern of the
// native API is an implementation detail of each backend.
package driver

// Loader is the process-level entry point into the graphics API, valid
// before any instance exists.
type Loader interface {
	// AvailableLayers returns the names of the diagnostic layers
	// installed in the runtime.
	AvailableLayers() ([]string, error)
	// AvailableExtensions returns the names of the instance extensions
	// the runtime supports.
	AvailableExtensions() ([]string, error)
	CreateInstance(info InstanceCreateInfo) (Instance, error)
}

// Instance is the root handle of one graphics API session.
type Instance interface {
	EnumeratePhysicalDevices() ([]PhysicalDevice, error)

	// DebugMessengerFactory looks up the diagnostics messenger entry
	// points. The second result is false when the entry points could not
	// be resolved.
	DebugMessengerFactory() (DebugMessengerFactory, bool)

	CreateDevice(physicalDevice PhysicalDevice, info DeviceCreateInfo) (Device, error)
	Destroy()
}

// PhysicalDevice is a GPU enumerated by an Instance. All of its methods
// are read-only queries.
type PhysicalDevice interface {
	Properties() (PhysicalDeviceProperties, error)
	Features() (Features, error)
	QueueFamilies() ([]QueueFamily, error)
	Extensions() ([]string, error)

	SurfaceSupport(surface Surface, queueFamily int) (bool, error)
	SurfaceCapabilities(surface Surface) (SurfaceCapabilities, error)
	SurfaceFormats(surface Surface) ([]SurfaceFormat, error)
	SurfacePresentModes(surface Surface) ([]PresentMode, error)
}

// Device is a logical device created from a PhysicalDevice.
type Device interface {
	GetQueue(queueFamily, index int) Queue
	CreateSwapchain(info SwapchainCreateInfo) (Swapchain, error)
	CreateImageView(info ImageViewCreateInfo) (ImageView, error)
	Destroy()
}

// Queue is a work queue retrieved from a Device. Queues are owned by the
// device and are never destroyed individually.
type Queue interface {
	Initialized() bool
}

// Image is a driver-owned image, such as a swap chain image.
type Image interface {
	Initialized() bool
}

// Surface is a presentable target bound to a window.
type Surface interface {
	Destroy()
}

// Swapchain is a driver-managed ring of presentable images.
type Swapchain interface {
	// Images returns the images owned by the swap chain. The driver may
	// allocate more images than requested.
	Images() ([]Image, error)
	Destroy()
}

// ImageView describes how to interpret an Image.
type ImageView interface {
	Destroy()
}

// DebugMessengerFactory holds the runtime-resolved entry points used to
// register a diagnostics callback.
type DebugMessengerFactory interface {
	CreateDebugMessenger(info DebugMessengerCreateInfo) (DebugMessenger, error)
}

// DebugMessenger is a registered diagnostics callback. Destroy is a no-op
// when the destroy entry point is unavailable.
type DebugMessenger interface {
	Destroy()
}

// SurfaceProvider is the windowing collaborator. It never creates or
// polls windows on behalf of the caller.
type SurfaceProvider interface {
	// RequiredInstanceExtensions returns the instance extensions needed
	// to present to the provider's surface type.
	RequiredInstanceExtensions() ([]string, error)
	CreateSurface(instance Instance) (Surface, error)
	// DrawableSize returns the window's size in pixels.
	DrawableSize() (width, height int)
}
