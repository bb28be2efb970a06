// Package bootstrap brings up a graphics device context: instance,
// diagnostics messenger, window surface, physical and logical device, swap
// chain and swap chain image views.
//
// Construction is a single-threaded, fail-fast sequence. Every resource is
// registered with a Lifecycle as soon as it exists, so a failure at any
// step releases exactly what was acquired, in reverse order, and
// Context.Destroy tears a complete context down the same way.
package bootstrap

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/bootstrap/driver"
	"golang.org/x/exp/slices"
)

// Context owns every resource of one bootstrap run.
type Context struct {
	id        uuid.UUID
	opts      Options
	log       logrus.FieldLogger
	lifecycle *Lifecycle

	instance    driver.Instance
	diagnostics *Diagnostics
	surface     driver.Surface
	selection   Verdict
	device      *LogicalDevice
	swapchain   *Swapchain
	views       []driver.ImageView
}

// New runs the bootstrap sequence against loader, presenting to window.
// On failure every resource acquired so far has been released when New
// returns.
func New(loader driver.Loader, window driver.SurfaceProvider, opts Options) (*Context, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	c := newContext(opts)
	if err := c.init(loader, window); err != nil {
		c.log.WithError(err).Error("bootstrap failed")
		c.Destroy()
		return nil, err
	}

	c.log.WithFields(c.Summary().Fields()).Info("bootstrap complete")
	return c, nil
}

func newContext(opts Options) *Context {
	c := &Context{
		id:   uuid.New(),
		opts: opts,
	}
	c.log = opts.logger().WithField("session", c.id.String())
	c.lifecycle = NewLifecycle(c.log)
	return c
}

func (c *Context) init(loader driver.Loader, window driver.SurfaceProvider) error {
	if err := c.createInstance(loader, window); err != nil {
		return err
	}
	if err := c.setupDiagnostics(); err != nil {
		return err
	}
	if err := c.createSurface(window); err != nil {
		return err
	}
	if err := c.pickPhysicalDevice(); err != nil {
		return err
	}
	if err := c.createLogicalDevice(); err != nil {
		return err
	}
	if err := c.createSwapchain(window); err != nil {
		return err
	}
	return c.createImageViews()
}

func (c *Context) instanceInfo(loader driver.Loader, window driver.SurfaceProvider) (driver.InstanceCreateInfo, error) {
	info := driver.InstanceCreateInfo{
		ApplicationName:    c.opts.ApplicationName,
		ApplicationVersion: c.opts.ApplicationVersion,
		EngineName:         c.opts.EngineName,
		EngineVersion:      c.opts.EngineVersion,
	}

	windowExtensions, err := window.RequiredInstanceExtensions()
	if err != nil {
		return info, fail(err, ErrExtensionUnsupported, "query window instance extensions")
	}

	available, err := loader.AvailableExtensions()
	if err != nil {
		return info, fail(err, ErrContextCreationFailed, "enumerate instance extensions")
	}

	if c.opts.EnableDiagnostics {
		logNames(c.log, "available instance extensions", available)
		logNames(c.log, "window instance extensions", windowExtensions)
	}

	if err := CheckInstanceExtensions(available, windowExtensions); err != nil {
		return info, err
	}
	info.EnabledExtensionNames = appendMissing(info.EnabledExtensionNames, windowExtensions...)

	if c.opts.EnableDiagnostics {
		if err := CheckLayerSupport(loader, c.opts.ValidationLayers, true, c.log); err != nil {
			return info, err
		}
		info.EnabledLayerNames = appendMissing(info.EnabledLayerNames, c.opts.ValidationLayers...)

		// Without the extension the messenger entry points cannot be
		// resolved; setupDiagnostics reports that.
		if slices.Contains(available, driver.DebugUtilsExtensionName) {
			info.EnabledExtensionNames = appendMissing(info.EnabledExtensionNames, driver.DebugUtilsExtensionName)
			messengerInfo := DebugMessengerInfo(c.log)
			info.DebugMessenger = &messengerInfo
		}
	}

	if slices.Contains(available, driver.PortabilityEnumerationExtensionName) {
		info.EnabledExtensionNames = appendMissing(info.EnabledExtensionNames, driver.PortabilityEnumerationExtensionName)
		info.EnumeratePortability = true
	}

	return info, nil
}

func (c *Context) createInstance(loader driver.Loader, window driver.SurfaceProvider) error {
	info, err := c.instanceInfo(loader, window)
	if err != nil {
		return err
	}
	if err := info.Validate(); err != nil {
		return fail(err, ErrContextCreationFailed, "create instance")
	}

	return c.lifecycle.Acquire(StageContext, func() (func(), error) {
		instance, err := loader.CreateInstance(info)
		if err != nil {
			return nil, fail(err, ErrContextCreationFailed, "create instance")
		}
		c.instance = instance
		return func() {
			instance.Destroy()
			c.instance = nil
		}, nil
	})
}

func (c *Context) setupDiagnostics() error {
	if !c.opts.EnableDiagnostics {
		return nil
	}

	return c.lifecycle.Acquire(StageDiagnostics, func() (func(), error) {
		diagnostics, err := RegisterDiagnostics(c.instance, DebugMessengerInfo(c.log))
		if err != nil {
			return nil, err
		}
		c.diagnostics = diagnostics
		return func() {
			diagnostics.Destroy()
			c.diagnostics = nil
		}, nil
	})
}

func (c *Context) createSurface(window driver.SurfaceProvider) error {
	return c.lifecycle.Acquire(StageSurface, func() (func(), error) {
		surface, err := window.CreateSurface(c.instance)
		if err != nil {
			return nil, fail(err, ErrSurfaceCreationFailed, "create surface")
		}
		c.surface = surface
		return func() {
			surface.Destroy()
			c.surface = nil
		}, nil
	})
}

func (c *Context) pickPhysicalDevice() error {
	return c.lifecycle.Acquire(StagePhysicalDevice, func() (func(), error) {
		requirements := Requirements{
			Features:   c.opts.RequiredFeatures,
			Extensions: c.opts.DeviceExtensions,
		}
		selection, err := SelectDevice(c.instance, c.surface, requirements, c.log)
		if err != nil {
			return nil, err
		}
		c.selection = selection
		return nil, nil
	})
}

func (c *Context) createLogicalDevice() error {
	return c.lifecycle.Acquire(StageLogicalDevice, func() (func(), error) {
		candidate := c.selection.Candidate
		info := DeviceInfo(candidate, c.selection.Indices, c.opts.DeviceExtensions, c.opts.layers(), c.opts.RequiredFeatures, c.opts.QueuePriority)

		device, err := CreateLogicalDevice(c.instance, candidate, c.selection.Indices, info)
		if err != nil {
			return nil, err
		}
		c.device = device
		return func() {
			device.Destroy()
			c.device = nil
		}, nil
	})
}

func (c *Context) createSwapchain(window driver.SurfaceProvider) error {
	return c.lifecycle.Acquire(StageSwapchain, func() (func(), error) {
		support, err := QuerySwapchainSupport(c.selection.Candidate.Device, c.surface)
		if err != nil {
			return nil, fail(err, ErrSwapChainCreationFailed, "create swapchain")
		}

		width, height := window.DrawableSize()
		info := NegotiateSwapchain(support, c.device.Indices, c.surface, width, height)

		swapchain, err := CreateSwapchain(c.device.Handle(), info)
		if err != nil {
			return nil, err
		}
		c.swapchain = swapchain
		return func() {
			swapchain.Destroy()
			c.swapchain = nil
		}, nil
	})
}

func (c *Context) createImageViews() error {
	return c.lifecycle.Acquire(StageImageViews, func() (func(), error) {
		views, err := CreateImageViews(c.device.Handle(), c.swapchain.Images, c.swapchain.Format)
		c.views = views

		var release func()
		if len(views) > 0 {
			release = func() {
				DestroyImageViews(views)
				c.views = nil
			}
		}
		return release, err
	})
}

// Destroy releases every resource the context holds, in reverse
// acquisition order. It is safe to call more than once.
func (c *Context) Destroy() {
	if c == nil {
		return
	}
	c.lifecycle.Release()
}

// ID identifies the bootstrap run in log entries.
func (c *Context) ID() uuid.UUID { return c.id }

// Instance returns the API instance, or nil once destroyed.
func (c *Context) Instance() driver.Instance { return c.instance }

// Surface returns the window surface, or nil once destroyed.
func (c *Context) Surface() driver.Surface { return c.surface }

// PhysicalDevice returns the selected physical device.
func (c *Context) PhysicalDevice() *Candidate { return c.selection.Candidate }

// Device returns the logical device, or nil once destroyed.
func (c *Context) Device() *LogicalDevice { return c.device }

// Swapchain returns the swap chain, or nil once destroyed.
func (c *Context) Swapchain() *Swapchain { return c.swapchain }

// ImageViews returns one view per swap chain image, in image order.
func (c *Context) ImageViews() []driver.ImageView { return c.views }

// Timings returns how long each stage took to acquire.
func (c *Context) Timings() []Timing { return c.lifecycle.Timings() }
