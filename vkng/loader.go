// Package vkng implements the bootstrap driver boundary on top of the
// vkngwrapper Vulkan bindings.
package vkng

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Loader is a driver.Loader backed by a vkngwrapper global driver.
type Loader struct {
	global core1_0.GlobalDriver
}

// NewLoader loads Vulkan through a vkGetInstanceProcAddr pointer.
func NewLoader(procAddr unsafe.Pointer) (*Loader, error) {
	if procAddr == nil {
		return nil, errors.New("vkng: vkGetInstanceProcAddr is nil")
	}

	global, err := core.CreateDriverFromProcAddr(procAddr)
	if err != nil {
		return nil, errors.Wrap(err, "vkng: load vulkan")
	}
	return &Loader{global: global}, nil
}

func (l *Loader) AvailableLayers() ([]string, error) {
	layers, _, err := l.global.AvailableLayers()
	if err != nil {
		return nil, errors.Wrap(err, "vkng: enumerate instance layers")
	}

	names := maps.Keys(layers)
	slices.Sort(names)
	return names, nil
}

func (l *Loader) AvailableExtensions() ([]string, error) {
	extensions, _, err := l.global.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "vkng: enumerate instance extensions")
	}

	names := maps.Keys(extensions)
	slices.Sort(names)
	return names, nil
}

func (l *Loader) CreateInstance(info driver.InstanceCreateInfo) (driver.Instance, error) {
	options := core1_0.InstanceCreateInfo{
		ApplicationName:    info.ApplicationName,
		ApplicationVersion: common.Version(info.ApplicationVersion),
		EngineName:         info.EngineName,
		EngineVersion:      common.Version(info.EngineVersion),
		APIVersion:         common.Vulkan1_2,

		EnabledLayerNames:     info.EnabledLayerNames,
		EnabledExtensionNames: info.EnabledExtensionNames,
	}

	if info.EnumeratePortability {
		options.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if info.DebugMessenger != nil {
		options.Next = messengerCreateInfo(*info.DebugMessenger)
	}

	handle, _, err := l.global.CreateInstance(nil, options)
	if err != nil {
		return nil, errors.Wrap(err, "vkng: create instance")
	}

	instanceDriver, err := l.global.BuildInstanceDriver(handle)
	if err != nil {
		return nil, errors.Wrap(err, "vkng: build instance driver")
	}

	surface := khr_surface.CreateExtensionDriverFromCoreDriver(instanceDriver)
	if surface == nil {
		instanceDriver.DestroyInstance(nil)
		return nil, errors.Newf("vkng: instance created without %s", khr_surface.ExtensionName)
	}
	return &Instance{driver: instanceDriver, surface: surface}, nil
}
