package driver

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DeviceType classifies a physical device.
type DeviceType int

const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

var deviceTypeNames = map[DeviceType]string{
	DeviceTypeOther:         "Other",
	DeviceTypeIntegratedGPU: "Integrated GPU",
	DeviceTypeDiscreteGPU:   "Discrete GPU",
	DeviceTypeVirtualGPU:    "Virtual GPU",
	DeviceTypeCPU:           "CPU",
}

func (t DeviceType) String() string {
	name, ok := deviceTypeNames[t]
	if !ok {
		return fmt.Sprintf("DeviceType(%d)", int(t))
	}
	return name
}

// QueueFlags describe the capabilities of a queue family.
type QueueFlags uint32

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

func (f QueueFlags) String() string {
	var names []string
	if f&QueueGraphics != 0 {
		names = append(names, "Graphics")
	}
	if f&QueueCompute != 0 {
		names = append(names, "Compute")
	}
	if f&QueueTransfer != 0 {
		names = append(names, "Transfer")
	}
	if f&QueueSparseBinding != 0 {
		names = append(names, "SparseBinding")
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// QueueFamily is one entry of a physical device's queue-family table.
type QueueFamily struct {
	Flags      QueueFlags
	QueueCount int
}

// Features is the subset of device features the bootstrap cares about.
type Features struct {
	GeometryShader     bool
	TessellationShader bool
	SamplerAnisotropy  bool
}

// Satisfies reports whether every feature set in required is also set in f.
func (f Features) Satisfies(required Features) bool {
	if required.GeometryShader && !f.GeometryShader {
		return false
	}
	if required.TessellationShader && !f.TessellationShader {
		return false
	}
	if required.SamplerAnisotropy && !f.SamplerAnisotropy {
		return false
	}
	return true
}

// PhysicalDeviceProperties identify a physical device.
type PhysicalDeviceProperties struct {
	Name              string
	Type              DeviceType
	VendorID          uint32
	DeviceID          uint32
	PipelineCacheUUID uuid.UUID
}

// Format is a pixel format. Values match the native API.
type Format int32

const (
	FormatUndefined                  Format = 0
	FormatR8G8B8A8UnsignedNormalized Format = 37
	FormatR8G8B8A8SRGB               Format = 43
	FormatB8G8R8A8UnsignedNormalized Format = 44
	FormatB8G8R8A8SRGB               Format = 50
)

var formatNames = map[Format]string{
	FormatUndefined:                  "Undefined",
	FormatR8G8B8A8UnsignedNormalized: "R8G8B8A8 Unsigned Normalized",
	FormatR8G8B8A8SRGB:               "R8G8B8A8 SRGB",
	FormatB8G8R8A8UnsignedNormalized: "B8G8R8A8 Unsigned Normalized",
	FormatB8G8R8A8SRGB:               "B8G8R8A8 SRGB",
}

func (f Format) String() string {
	name, ok := formatNames[f]
	if !ok {
		return fmt.Sprintf("Format(%d)", int32(f))
	}
	return name
}

// ColorSpace is a presentation color space. Values match the native API.
type ColorSpace int32

const (
	ColorSpaceSRGBNonlinear ColorSpace = 0
)

func (c ColorSpace) String() string {
	if c == ColorSpaceSRGBNonlinear {
		return "SRGB Nonlinear"
	}
	return fmt.Sprintf("ColorSpace(%d)", int32(c))
}

// SurfaceFormat pairs a format with the color space it is presented in.
type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

// PresentMode is a presentation mode. Values match the native API.
type PresentMode int32

const (
	PresentModeImmediate   PresentMode = 0
	PresentModeMailbox     PresentMode = 1
	PresentModeFIFO        PresentMode = 2
	PresentModeFIFORelaxed PresentMode = 3
)

var presentModeNames = map[PresentMode]string{
	PresentModeImmediate:   "Immediate",
	PresentModeMailbox:     "Mailbox",
	PresentModeFIFO:        "FIFO",
	PresentModeFIFORelaxed: "FIFO Relaxed",
}

func (m PresentMode) String() string {
	name, ok := presentModeNames[m]
	if !ok {
		return fmt.Sprintf("PresentMode(%d)", int32(m))
	}
	return name
}

// Extent2D is a size in pixels.
type Extent2D struct {
	Width  int
	Height int
}

func (e Extent2D) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// ExtentMatchWindow is the CurrentExtent width a surface reports when the
// swap chain extent is chosen by the application.
const ExtentMatchWindow = -1

// SurfaceTransformFlags are surface pre-transforms. Values match the native API.
type SurfaceTransformFlags uint32

const (
	TransformIdentity SurfaceTransformFlags = 1 << iota
	TransformRotate90
	TransformRotate180
	TransformRotate270
)

// CompositeAlphaFlags are alpha compositing modes. Values match the native API.
type CompositeAlphaFlags uint32

const (
	CompositeAlphaOpaque CompositeAlphaFlags = 1 << iota
	CompositeAlphaPreMultiplied
	CompositeAlphaPostMultiplied
	CompositeAlphaInherit
)

// SurfaceCapabilities are the swap chain limits of a (device, surface) pair.
type SurfaceCapabilities struct {
	MinImageCount int
	// MaxImageCount is 0 when the number of images is unbounded.
	MaxImageCount int

	CurrentExtent  Extent2D
	MinImageExtent Extent2D
	MaxImageExtent Extent2D

	SupportedTransforms     SurfaceTransformFlags
	CurrentTransform        SurfaceTransformFlags
	SupportedCompositeAlpha CompositeAlphaFlags
}

// ExtentMatchesWindow reports whether the surface defers the swap chain
// extent to the window size.
func (c SurfaceCapabilities) ExtentMatchesWindow() bool {
	return c.CurrentExtent.Width == ExtentMatchWindow
}

// SharingMode controls queue-family ownership of swap chain images.
type SharingMode int

const (
	SharingModeExclusive SharingMode = iota
	SharingModeConcurrent
)

func (m SharingMode) String() string {
	switch m {
	case SharingModeExclusive:
		return "Exclusive"
	case SharingModeConcurrent:
		return "Concurrent"
	}
	return fmt.Sprintf("SharingMode(%d)", int(m))
}

// MessageSeverity classifies a diagnostics message.
type MessageSeverity uint32

const (
	SeverityVerbose MessageSeverity = 0x1
	SeverityInfo    MessageSeverity = 0x10
	SeverityWarning MessageSeverity = 0x100
	SeverityError   MessageSeverity = 0x1000
)

func (s MessageSeverity) String() string {
	switch {
	case s&SeverityError != 0:
		return "Error"
	case s&SeverityWarning != 0:
		return "Warning"
	case s&SeverityInfo != 0:
		return "Info"
	case s&SeverityVerbose != 0:
		return "Verbose"
	}
	return "None"
}

// MessageType is the category of a diagnostics message.
type MessageType uint32

const (
	TypeGeneral MessageType = 1 << iota
	TypeValidation
	TypePerformance
)

func (t MessageType) String() string {
	var names []string
	if t&TypeGeneral != 0 {
		names = append(names, "General")
	}
	if t&TypeValidation != 0 {
		names = append(names, "Validation")
	}
	if t&TypePerformance != 0 {
		names = append(names, "Performance")
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// Message is a diagnostics message emitted by the driver.
type Message struct {
	Severity MessageSeverity
	Type     MessageType
	IDName   string
	Text     string
}

// DebugCallback receives driver diagnostics, possibly from a driver-owned
// thread. Returning true asks the driver to abort the call that triggered
// the message.
type DebugCallback func(msg Message) bool
