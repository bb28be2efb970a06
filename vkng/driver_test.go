package vkng

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	mock_loader "github.com/vkngwrapper/core/v3/loader/mocks"
	"github.com/vkngwrapper/core/v3/mocks"
	"github.com/vkngwrapper/core/v3/mocks/mocks1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	mock_surface "github.com/vkngwrapper/extensions/v3/khr_surface/mocks"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	mock_swapchain "github.com/vkngwrapper/extensions/v3/khr_swapchain/mocks"
	"go.uber.org/mock/gomock"
)

func nullLoader(ctrl *gomock.Controller) *mock_loader.MockLoader {
	loader := mock_loader.NewMockLoader(ctrl)
	loader.EXPECT().LoadProcAddr(gomock.Any()).Return(nil).AnyTimes()
	loader.EXPECT().Version().Return(common.Vulkan1_2).AnyTimes()
	return loader
}

func TestLoaderCreateInstance(t *testing.T) {
	ctrl := gomock.NewController(t)

	handle := mocks.NewDummyInstance(common.Vulkan1_2, []string{khr_surface.ExtensionName})
	global := mocks1_0.NewMockGlobalDriver(ctrl)
	instanceDriver := mocks1_0.NewMockCoreInstanceDriver(ctrl)
	instanceDriver.EXPECT().Instance().Return(handle).AnyTimes()
	instanceDriver.EXPECT().Loader().Return(nullLoader(ctrl)).AnyTimes()

	global.EXPECT().CreateInstance(gomock.Nil(), gomock.Any()).DoAndReturn(
		func(_ interface{}, options core1_0.InstanceCreateInfo) (core1_0.Instance, common.VkResult, error) {
			assert.Equal(t, "Hello Triangle", options.ApplicationName)
			assert.Equal(t, common.CreateVersion(1, 0, 0), options.ApplicationVersion)
			assert.Equal(t, common.Vulkan1_2, options.APIVersion)
			assert.Equal(t, []string{driver.KhronosValidationLayerName}, options.EnabledLayerNames)
			assert.Equal(t, khr_portability_enumeration.InstanceCreateEnumeratePortability, options.Flags)
			assert.NotNil(t, options.Next)
			return handle, core1_0.VKSuccess, nil
		})
	global.EXPECT().BuildInstanceDriver(handle).Return(instanceDriver, nil)

	loader := &Loader{global: global}
	instance, err := loader.CreateInstance(driver.InstanceCreateInfo{
		ApplicationName:       "Hello Triangle",
		ApplicationVersion:    driver.MakeVersion(1, 0, 0),
		EnabledLayerNames:     []string{driver.KhronosValidationLayerName},
		EnabledExtensionNames: []string{khr_surface.ExtensionName},
		EnumeratePortability:  true,
		DebugMessenger:        &driver.DebugMessengerCreateInfo{},
	})
	require.NoError(t, err)

	instanceDriver.EXPECT().DestroyInstance(gomock.Nil())
	instance.Destroy()
}

func TestLoaderCreateInstanceWithoutSurface(t *testing.T) {
	ctrl := gomock.NewController(t)

	handle := mocks.NewDummyInstance(common.Vulkan1_2, nil)
	global := mocks1_0.NewMockGlobalDriver(ctrl)
	instanceDriver := mocks1_0.NewMockCoreInstanceDriver(ctrl)
	instanceDriver.EXPECT().Instance().Return(handle).AnyTimes()

	global.EXPECT().CreateInstance(gomock.Nil(), gomock.Any()).Return(handle, core1_0.VKSuccess, nil)
	global.EXPECT().BuildInstanceDriver(handle).Return(instanceDriver, nil)
	instanceDriver.EXPECT().DestroyInstance(gomock.Nil())

	loader := &Loader{global: global}
	_, err := loader.CreateInstance(driver.InstanceCreateInfo{ApplicationName: "test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), khr_surface.ExtensionName)
}

func TestPhysicalDeviceProperties(t *testing.T) {
	ctrl := gomock.NewController(t)

	handle := mocks.NewDummyInstance(common.Vulkan1_2, nil)
	gpu := mocks.NewDummyPhysicalDevice(handle, common.Vulkan1_2)
	cacheID := uuid.New()

	instanceDriver := mocks1_0.NewMockCoreInstanceDriver(ctrl)
	instanceDriver.EXPECT().GetPhysicalDeviceProperties(gpu).Return(&core1_0.PhysicalDeviceProperties{
		DriverType:        core1_0.PhysicalDeviceTypeDiscreteGPU,
		DriverName:        "Test GPU",
		VendorID:          0x10de,
		DeviceID:          0x2204,
		PipelineCacheUUID: cacheID,
	}, nil)

	device := &PhysicalDevice{instance: &Instance{driver: instanceDriver}, handle: gpu}
	props, err := device.Properties()
	require.NoError(t, err)
	assert.Equal(t, driver.PhysicalDeviceProperties{
		Name:              "Test GPU",
		Type:              driver.DeviceTypeDiscreteGPU,
		VendorID:          0x10de,
		DeviceID:          0x2204,
		PipelineCacheUUID: cacheID,
	}, props)
}

func TestInstanceCreateDevice(t *testing.T) {
	ctrl := gomock.NewController(t)

	handle := mocks.NewDummyInstance(common.Vulkan1_2, nil)
	gpu := mocks.NewDummyPhysicalDevice(handle, common.Vulkan1_2)
	deviceHandle := mocks.NewDummyDevice(common.Vulkan1_2, []string{khr_swapchain.ExtensionName})

	instanceDriver := mocks1_0.NewMockCoreInstanceDriver(ctrl)
	deviceDriver := mocks1_0.NewMockCoreDeviceDriver(ctrl)
	deviceDriver.EXPECT().Device().Return(deviceHandle).AnyTimes()
	deviceDriver.EXPECT().Loader().Return(nullLoader(ctrl)).AnyTimes()

	instanceDriver.EXPECT().CreateDevice(gpu, gomock.Nil(), gomock.Any()).DoAndReturn(
		func(_ core1_0.PhysicalDevice, _ interface{}, options core1_0.DeviceCreateInfo) (core1_0.Device, common.VkResult, error) {
			require.Len(t, options.QueueCreateInfos, 2)
			assert.Equal(t, 2, options.QueueCreateInfos[1].QueueFamilyIndex)
			assert.Equal(t, []float32{1}, options.QueueCreateInfos[1].QueuePriorities)
			assert.Equal(t, []string{khr_swapchain.ExtensionName}, options.EnabledExtensionNames)
			require.NotNil(t, options.EnabledFeatures)
			assert.True(t, options.EnabledFeatures.GeometryShader)
			return deviceHandle, core1_0.VKSuccess, nil
		})
	instanceDriver.EXPECT().BuildDeviceDriver(deviceHandle).Return(deviceDriver, nil)

	instance := &Instance{driver: instanceDriver}
	device, err := instance.CreateDevice(&PhysicalDevice{instance: instance, handle: gpu}, driver.DeviceCreateInfo{
		QueueCreateInfos: []driver.DeviceQueueCreateInfo{
			{QueueFamilyIndex: 0, QueuePriorities: []float32{1}},
			{QueueFamilyIndex: 2, QueuePriorities: []float32{1}},
		},
		EnabledLayerNames:     []string{driver.KhronosValidationLayerName},
		EnabledExtensionNames: []string{khr_swapchain.ExtensionName},
		EnabledFeatures:       driver.Features{GeometryShader: true},
	})
	require.NoError(t, err)
	assert.NotNil(t, device.(*Device).swapchain)

	deviceDriver.EXPECT().DestroyDevice(gomock.Nil())
	device.Destroy()
}

func TestDeviceCreateSwapchain(t *testing.T) {
	ctrl := gomock.NewController(t)

	instanceHandle := mocks.NewDummyInstance(common.Vulkan1_2, nil)
	deviceHandle := mocks.NewDummyDevice(common.Vulkan1_2, []string{khr_swapchain.ExtensionName})
	surface := &Surface{handle: mock_surface.NewDummySurface(instanceHandle)}
	swapchainHandle := khr_swapchain.NewDummySwapchain(deviceHandle)

	swapchainDriver := mock_swapchain.NewMockExtensionDriver(ctrl)
	swapchainDriver.EXPECT().CreateSwapchain(gomock.Nil(), gomock.Any()).DoAndReturn(
		func(_ interface{}, options khr_swapchain.SwapchainCreateInfo) (khr_swapchain.Swapchain, common.VkResult, error) {
			assert.Equal(t, surface.handle, options.Surface)
			assert.Equal(t, 3, options.MinImageCount)
			assert.Equal(t, core1_0.FormatB8G8R8A8SRGB, options.ImageFormat)
			assert.Equal(t, khr_surface.ColorSpaceSRGBNonlinear, options.ImageColorSpace)
			assert.Equal(t, core1_0.Extent2D{Width: 800, Height: 600}, options.ImageExtent)
			assert.Equal(t, core1_0.ImageUsageColorAttachment, options.ImageUsage)
			assert.Equal(t, core1_0.SharingModeConcurrent, options.ImageSharingMode)
			assert.Equal(t, []int{0, 1}, options.QueueFamilyIndices)
			assert.Equal(t, khr_surface.CompositeAlphaOpaque, options.CompositeAlpha)
			assert.Equal(t, khr_surface.PresentModeMailbox, options.PresentMode)
			assert.True(t, options.Clipped)
			return swapchainHandle, core1_0.VKSuccess, nil
		})

	device := &Device{swapchain: swapchainDriver}
	swapchain, err := device.CreateSwapchain(driver.SwapchainCreateInfo{
		Surface:            surface,
		MinImageCount:      3,
		ImageFormat:        driver.FormatB8G8R8A8SRGB,
		ImageColorSpace:    driver.ColorSpaceSRGBNonlinear,
		ImageExtent:        driver.Extent2D{Width: 800, Height: 600},
		ImageArrayLayers:   1,
		ImageSharingMode:   driver.SharingModeConcurrent,
		QueueFamilyIndices: []int{0, 1},
		CompositeAlpha:     driver.CompositeAlphaOpaque,
		PresentMode:        driver.PresentModeMailbox,
		Clipped:            true,
	})
	require.NoError(t, err)

	swapchainDriver.EXPECT().DestroySwapchain(swapchainHandle, gomock.Nil())
	swapchain.Destroy()
	swapchain.Destroy()
}

func TestDeviceCreateSwapchainWithoutExtension(t *testing.T) {
	device := &Device{}
	_, err := device.CreateSwapchain(driver.SwapchainCreateInfo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), khr_swapchain.ExtensionName)
}
