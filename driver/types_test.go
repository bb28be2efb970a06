package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vkngwrapper/bootstrap/driver"
)

func TestFeaturesSatisfies(t *testing.T) {
	all := driver.Features{GeometryShader: true, TessellationShader: true, SamplerAnisotropy: true}
	geometry := driver.Features{GeometryShader: true}

	assert.True(t, all.Satisfies(geometry))
	assert.True(t, geometry.Satisfies(geometry))
	assert.True(t, geometry.Satisfies(driver.Features{}))
	assert.True(t, driver.Features{}.Satisfies(driver.Features{}))

	assert.False(t, geometry.Satisfies(all))
	assert.False(t, driver.Features{SamplerAnisotropy: true}.Satisfies(geometry))
}

func TestExtentMatchesWindow(t *testing.T) {
	assert.True(t, driver.SurfaceCapabilities{
		CurrentExtent: driver.Extent2D{Width: driver.ExtentMatchWindow, Height: driver.ExtentMatchWindow},
	}.ExtentMatchesWindow())
	assert.False(t, driver.SurfaceCapabilities{
		CurrentExtent: driver.Extent2D{Width: 800, Height: 600},
	}.ExtentMatchesWindow())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "Discrete GPU", driver.DeviceTypeDiscreteGPU.String())
	assert.Equal(t, "DeviceType(42)", driver.DeviceType(42).String())

	assert.Equal(t, "Graphics|Transfer", (driver.QueueGraphics | driver.QueueTransfer).String())
	assert.Equal(t, "None", driver.QueueFlags(0).String())

	assert.Equal(t, "B8G8R8A8 SRGB", driver.FormatB8G8R8A8SRGB.String())
	assert.Equal(t, "Format(1000)", driver.Format(1000).String())

	assert.Equal(t, "Mailbox", driver.PresentModeMailbox.String())
	assert.Equal(t, "800x600", driver.Extent2D{Width: 800, Height: 600}.String())
	assert.Equal(t, "Concurrent", driver.SharingModeConcurrent.String())

	assert.Equal(t, "Error", (driver.SeverityWarning | driver.SeverityError).String())
	assert.Equal(t, "General|Performance", (driver.TypeGeneral | driver.TypePerformance).String())
}
