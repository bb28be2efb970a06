package vkng

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

func TestExtensionNames(t *testing.T) {
	assert.Equal(t, khr_surface.ExtensionName, driver.SurfaceExtensionName)
	assert.Equal(t, khr_swapchain.ExtensionName, driver.SwapchainExtensionName)
	assert.Equal(t, ext_debug_utils.ExtensionName, driver.DebugUtilsExtensionName)
	assert.Equal(t, khr_portability_enumeration.ExtensionName, driver.PortabilityEnumerationExtensionName)
	assert.Equal(t, khr_portability_subset.ExtensionName, driver.PortabilitySubsetExtensionName)
}

func TestExtent(t *testing.T) {
	assert.Equal(t, driver.Extent2D{Width: 800, Height: 600}, extent(core1_0.Extent2D{Width: 800, Height: 600}))

	matchWindow := driver.Extent2D{Width: driver.ExtentMatchWindow, Height: driver.ExtentMatchWindow}
	assert.Equal(t, matchWindow, extent(core1_0.Extent2D{Width: -1, Height: -1}))
	assert.Equal(t, matchWindow, extent(core1_0.Extent2D{Width: math.MaxUint32, Height: math.MaxUint32}))
}

func TestDeviceType(t *testing.T) {
	assert.Equal(t, driver.DeviceTypeDiscreteGPU, deviceType(core1_0.PhysicalDeviceTypeDiscreteGPU))
	assert.Equal(t, driver.DeviceTypeIntegratedGPU, deviceType(core1_0.PhysicalDeviceTypeIntegratedGPU))
	assert.Equal(t, driver.DeviceTypeCPU, deviceType(core1_0.PhysicalDeviceTypeCPU))
	assert.Equal(t, driver.DeviceTypeOther, deviceType(core1_0.PhysicalDeviceTypeOther))
}

func TestEnumValuesMatchBindings(t *testing.T) {
	assert.EqualValues(t, core1_0.QueueGraphics, driver.QueueGraphics)
	assert.EqualValues(t, khr_surface.PresentModeMailbox, driver.PresentModeMailbox)
	assert.EqualValues(t, khr_surface.PresentModeFIFO, driver.PresentModeFIFO)
	assert.EqualValues(t, khr_surface.ColorSpaceSRGBNonlinear, driver.ColorSpaceSRGBNonlinear)
	assert.EqualValues(t, khr_surface.CompositeAlphaOpaque, driver.CompositeAlphaOpaque)
	assert.EqualValues(t, core1_0.FormatB8G8R8A8SRGB, driver.FormatB8G8R8A8SRGB)
	assert.EqualValues(t, ext_debug_utils.SeverityError, driver.SeverityError)
	assert.EqualValues(t, ext_debug_utils.SeverityWarning, driver.SeverityWarning)
	assert.EqualValues(t, ext_debug_utils.TypeValidation, driver.TypeValidation)
}

func TestAssign(t *testing.T) {
	var options khr_swapchain.SwapchainCreateInfo
	assign(&options.PresentMode, int64(driver.PresentModeMailbox))
	assign(&options.CompositeAlpha, int64(driver.CompositeAlphaOpaque))

	assert.Equal(t, khr_surface.PresentModeMailbox, options.PresentMode)
	assert.Equal(t, khr_surface.CompositeAlphaOpaque, options.CompositeAlpha)
}
