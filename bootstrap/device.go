package bootstrap

import (
	"github.com/vkngwrapper/bootstrap/driver"
)

// LogicalDevice is the created device and its work queues.
type LogicalDevice struct {
	handle driver.Device

	Indices QueueFamilyIndices
	// GraphicsQueue and PresentQueue are the same queue when the two
	// roles share a family.
	GraphicsQueue driver.Queue
	PresentQueue  driver.Queue
}

// DeviceInfo builds the device configuration for a selected candidate:
// one queue per unique family at priority, the required extensions plus
// the portability subset when the device advertises it, the diagnostic
// layers, and the required features.
func DeviceInfo(candidate *Candidate, indices QueueFamilyIndices, extensions, layers []string, features driver.Features, priority float32) driver.DeviceCreateInfo {
	var queueInfos []driver.DeviceQueueCreateInfo
	for _, family := range indices.Unique() {
		queueInfos = append(queueInfos, driver.DeviceQueueCreateInfo{
			QueueFamilyIndex: family,
			QueuePriorities:  []float32{priority},
		})
	}

	extensionNames := appendMissing(nil, extensions...)
	if candidate.SupportsExtension(driver.PortabilitySubsetExtensionName) {
		extensionNames = appendMissing(extensionNames, driver.PortabilitySubsetExtensionName)
	}

	return driver.DeviceCreateInfo{
		QueueCreateInfos:      queueInfos,
		EnabledLayerNames:     appendMissing(nil, layers...),
		EnabledExtensionNames: extensionNames,
		EnabledFeatures:       features,
	}
}

// CreateLogicalDevice creates the device for candidate and retrieves one
// queue per role. Failure is marked ErrDeviceCreationFailed and leaves no
// device behind.
func CreateLogicalDevice(instance driver.Instance, candidate *Candidate, indices QueueFamilyIndices, info driver.DeviceCreateInfo) (*LogicalDevice, error) {
	if !indices.IsComplete() {
		return nil, failf(ErrDeviceCreationFailed, "create logical device: queue families of %s are incomplete", candidate.Properties.Name)
	}
	if err := info.Validate(); err != nil {
		return nil, fail(err, ErrDeviceCreationFailed, "create logical device")
	}

	device, err := instance.CreateDevice(candidate.Device, info)
	if err != nil {
		return nil, fail(err, ErrDeviceCreationFailed, "create logical device for %s", candidate.Properties.Name)
	}

	return &LogicalDevice{
		handle:        device,
		Indices:       indices,
		GraphicsQueue: device.GetQueue(*indices.GraphicsFamily, 0),
		PresentQueue:  device.GetQueue(*indices.PresentFamily, 0),
	}, nil
}

// Handle returns the driver device.
func (d *LogicalDevice) Handle() driver.Device {
	return d.handle
}

// Destroy destroys the device. It is safe to call more than once.
func (d *LogicalDevice) Destroy() {
	if d == nil || d.handle == nil {
		return
	}
	d.handle.Destroy()
	d.handle = nil
}
