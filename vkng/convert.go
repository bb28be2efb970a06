package vkng

import (
	"math"

	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/core/v3/core1_0"
	"golang.org/x/exp/constraints"
)

// The driver enums share their values with the Vulkan enums, so
// conversions are plain casts. assign converts into whatever integer type
// the destination field declares.
func assign[T constraints.Integer](dst *T, value int64) {
	*dst = T(value)
}

func deviceType(t core1_0.PhysicalDeviceType) driver.DeviceType {
	switch t {
	case core1_0.PhysicalDeviceTypeIntegratedGPU:
		return driver.DeviceTypeIntegratedGPU
	case core1_0.PhysicalDeviceTypeDiscreteGPU:
		return driver.DeviceTypeDiscreteGPU
	case core1_0.PhysicalDeviceTypeVirtualGPU:
		return driver.DeviceTypeVirtualGPU
	case core1_0.PhysicalDeviceTypeCPU:
		return driver.DeviceTypeCPU
	default:
		return driver.DeviceTypeOther
	}
}

// extent normalizes the "match the window" sentinel, which the bindings
// may surface either as -1 or as the raw 0xFFFFFFFF.
func extent(e core1_0.Extent2D) driver.Extent2D {
	width, height := int64(e.Width), int64(e.Height)
	if width == -1 || width == math.MaxUint32 {
		return driver.Extent2D{Width: driver.ExtentMatchWindow, Height: driver.ExtentMatchWindow}
	}
	return driver.Extent2D{Width: int(width), Height: int(height)}
}

func sharingMode(mode driver.SharingMode) core1_0.SharingMode {
	if mode == driver.SharingModeConcurrent {
		return core1_0.SharingModeConcurrent
	}
	return core1_0.SharingModeExclusive
}
