package driver

import (
	"github.com/cockroachdb/errors"
)

// Version is a packed API or application version.
type Version uint32

// MakeVersion packs a major.minor.patch version.
func MakeVersion(major, minor, patch uint32) Version {
	return Version(major<<22 | minor<<12 | patch)
}

// InstanceCreateInfo configures instance creation.
type InstanceCreateInfo struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string
	EngineVersion      Version

	EnabledLayerNames     []string
	EnabledExtensionNames []string

	// EnumeratePortability lists portability-subset devices.
	EnumeratePortability bool

	// DebugMessenger, when set, is chained into instance creation so
	// messages emitted while creating and destroying the instance are
	// captured.
	DebugMessenger *DebugMessengerCreateInfo
}

func (i InstanceCreateInfo) Validate() error {
	if i.ApplicationName == "" {
		return errors.New("instance: application name is empty")
	}
	if err := validateNames("instance: layer", i.EnabledLayerNames); err != nil {
		return err
	}
	if err := validateNames("instance: extension", i.EnabledExtensionNames); err != nil {
		return err
	}
	if i.DebugMessenger != nil {
		return i.DebugMessenger.Validate()
	}
	return nil
}

// DebugMessengerCreateInfo configures a diagnostics messenger.
type DebugMessengerCreateInfo struct {
	Severities MessageSeverity
	Types      MessageType
	Callback   DebugCallback
}

func (i DebugMessengerCreateInfo) Validate() error {
	if i.Callback == nil {
		return errors.New("debug messenger: callback is nil")
	}
	if i.Severities == 0 || i.Types == 0 {
		return errors.New("debug messenger: no severities or types selected")
	}
	return nil
}

// DeviceQueueCreateInfo requests queues from one queue family.
type DeviceQueueCreateInfo struct {
	QueueFamilyIndex int
	QueuePriorities  []float32
}

// DeviceCreateInfo configures logical device creation.
type DeviceCreateInfo struct {
	QueueCreateInfos      []DeviceQueueCreateInfo
	EnabledLayerNames     []string
	EnabledExtensionNames []string
	EnabledFeatures       Features
}

func (i DeviceCreateInfo) Validate() error {
	if len(i.QueueCreateInfos) == 0 {
		return errors.New("device: no queues requested")
	}

	seen := make(map[int]struct{}, len(i.QueueCreateInfos))
	for _, queue := range i.QueueCreateInfos {
		if queue.QueueFamilyIndex < 0 {
			return errors.Newf("device: negative queue family index %d", queue.QueueFamilyIndex)
		}
		if _, dup := seen[queue.QueueFamilyIndex]; dup {
			return errors.Newf("device: queue family %d requested more than once", queue.QueueFamilyIndex)
		}
		seen[queue.QueueFamilyIndex] = struct{}{}

		if len(queue.QueuePriorities) == 0 {
			return errors.Newf("device: queue family %d requests no queues", queue.QueueFamilyIndex)
		}
		for _, priority := range queue.QueuePriorities {
			if priority < 0 || priority > 1 {
				return errors.Newf("device: queue priority %f outside [0, 1]", priority)
			}
		}
	}

	if err := validateNames("device: layer", i.EnabledLayerNames); err != nil {
		return err
	}
	return validateNames("device: extension", i.EnabledExtensionNames)
}

// SwapchainCreateInfo configures swap chain creation. There is no
// predecessor chain: every swap chain is built fresh.
type SwapchainCreateInfo struct {
	Surface Surface

	MinImageCount    int
	ImageFormat      Format
	ImageColorSpace  ColorSpace
	ImageExtent      Extent2D
	ImageArrayLayers int

	ImageSharingMode   SharingMode
	QueueFamilyIndices []int

	PreTransform   SurfaceTransformFlags
	CompositeAlpha CompositeAlphaFlags
	PresentMode    PresentMode
	Clipped        bool
}

func (i SwapchainCreateInfo) Validate() error {
	if i.Surface == nil {
		return errors.New("swapchain: surface is nil")
	}
	if i.MinImageCount < 1 {
		return errors.Newf("swapchain: image count %d is not positive", i.MinImageCount)
	}
	if i.ImageFormat == FormatUndefined {
		return errors.New("swapchain: image format is undefined")
	}
	if i.ImageExtent.Width < 1 || i.ImageExtent.Height < 1 {
		return errors.Newf("swapchain: invalid image extent %s", i.ImageExtent)
	}
	if i.ImageArrayLayers < 1 {
		return errors.New("swapchain: image must have at least one array layer")
	}

	switch i.ImageSharingMode {
	case SharingModeExclusive:
		if len(i.QueueFamilyIndices) != 0 {
			return errors.New("swapchain: exclusive sharing must not list queue families")
		}
	case SharingModeConcurrent:
		if len(i.QueueFamilyIndices) < 2 {
			return errors.New("swapchain: concurrent sharing needs at least two queue families")
		}
	default:
		return errors.Newf("swapchain: unknown sharing mode %s", i.ImageSharingMode)
	}

	return nil
}

// ImageViewType is the dimensionality of an image view.
type ImageViewType int

const (
	ImageViewType1D ImageViewType = iota
	ImageViewType2D
	ImageViewType3D
)

// ImageAspectFlags select the aspects of an image a view addresses.
type ImageAspectFlags uint32

const (
	ImageAspectColor ImageAspectFlags = 1 << iota
	ImageAspectDepth
	ImageAspectStencil
)

// ComponentSwizzle remaps one channel of an image view.
type ComponentSwizzle int

const (
	SwizzleIdentity ComponentSwizzle = iota
	SwizzleZero
	SwizzleOne
	SwizzleR
	SwizzleG
	SwizzleB
	SwizzleA
)

// ComponentMapping remaps the channels of an image view.
type ComponentMapping struct {
	R, G, B, A ComponentSwizzle
}

// ImageSubresourceRange selects mip levels and array layers of an image.
type ImageSubresourceRange struct {
	AspectMask     ImageAspectFlags
	BaseMipLevel   int
	LevelCount     int
	BaseArrayLayer int
	LayerCount     int
}

// ImageViewCreateInfo configures image view creation.
type ImageViewCreateInfo struct {
	Image            Image
	ViewType         ImageViewType
	Format           Format
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
}

func (i ImageViewCreateInfo) Validate() error {
	if i.Image == nil || !i.Image.Initialized() {
		return errors.New("image view: image is not initialized")
	}
	if i.Format == FormatUndefined {
		return errors.New("image view: format is undefined")
	}
	if i.SubresourceRange.AspectMask == 0 {
		return errors.New("image view: no aspect selected")
	}
	if i.SubresourceRange.LevelCount < 1 || i.SubresourceRange.LayerCount < 1 {
		return errors.New("image view: empty subresource range")
	}
	return nil
}

func validateNames(kind string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return errors.Newf("%s name is empty", kind)
		}
		if _, dup := seen[name]; dup {
			return errors.Newf("%s %s listed more than once", kind, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
