package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// Instance is a driver.Instance backed by a vkngwrapper instance driver.
type Instance struct {
	driver  core1_0.CoreInstanceDriver
	surface khr_surface.ExtensionDriver
}

func (i *Instance) EnumeratePhysicalDevices() ([]driver.PhysicalDevice, error) {
	handles, _, err := i.driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "vkng: enumerate physical devices")
	}

	devices := make([]driver.PhysicalDevice, 0, len(handles))
	for _, handle := range handles {
		devices = append(devices, &PhysicalDevice{instance: i, handle: handle})
	}
	return devices, nil
}

// DebugMessengerFactory resolves the debug utils entry points. They are
// only available when the instance was created with the debug utils
// extension.
func (i *Instance) DebugMessengerFactory() (driver.DebugMessengerFactory, bool) {
	debugDriver := ext_debug_utils.CreateExtensionDriverFromCoreDriver(i.driver)
	if debugDriver == nil {
		return nil, false
	}
	return messengerFactory{driver: debugDriver}, true
}

func (i *Instance) CreateDevice(physicalDevice driver.PhysicalDevice, info driver.DeviceCreateInfo) (driver.Device, error) {
	gpu, ok := physicalDevice.(*PhysicalDevice)
	if !ok {
		return nil, errors.Newf("vkng: physical device %T does not belong to this driver", physicalDevice)
	}

	var queueInfos []core1_0.DeviceQueueCreateInfo
	for _, queue := range info.QueueCreateInfos {
		queueInfos = append(queueInfos, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queue.QueueFamilyIndex,
			QueuePriorities:  queue.QueuePriorities,
		})
	}

	// Device layers are deprecated; the instance layers cover the device.
	handle, _, err := i.driver.CreateDevice(gpu.handle, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: queueInfos,
		EnabledFeatures: &core1_0.PhysicalDeviceFeatures{
			GeometryShader:     info.EnabledFeatures.GeometryShader,
			TessellationShader: info.EnabledFeatures.TessellationShader,
			SamplerAnisotropy:  info.EnabledFeatures.SamplerAnisotropy,
		},
		EnabledExtensionNames: info.EnabledExtensionNames,
	})
	if err != nil {
		return nil, errors.Wrap(err, "vkng: create device")
	}

	deviceDriver, err := i.driver.BuildDeviceDriver(handle)
	if err != nil {
		return nil, errors.Wrap(err, "vkng: build device driver")
	}

	// Nil unless the swap chain extension was enabled.
	return &Device{
		driver:    deviceDriver,
		swapchain: khr_swapchain.CreateExtensionDriverFromCoreDriver(deviceDriver),
	}, nil
}

func (i *Instance) Destroy() {
	i.driver.DestroyInstance(nil)
}

// Surface is a driver.Surface backed by a khr_surface surface.
type Surface struct {
	instance *Instance
	handle   khr_surface.Surface
}

func (s *Surface) Destroy() {
	if !s.handle.Initialized() {
		return
	}
	s.instance.surface.DestroySurface(s.handle, nil)
	s.handle = khr_surface.Surface{}
}

func asSurface(surface driver.Surface) (*Surface, error) {
	s, ok := surface.(*Surface)
	if !ok {
		return nil, errors.Newf("vkng: surface %T does not belong to this driver", surface)
	}
	return s, nil
}
