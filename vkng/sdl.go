package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/bootstrap/driver"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
)

// NewSDLLoader loads Vulkan through the loader SDL was initialized with.
func NewSDLLoader() (*Loader, error) {
	return NewLoader(sdl.VulkanGetVkGetInstanceProcAddr())
}

// Window presents to an SDL window created with sdl.WINDOW_VULKAN.
type Window struct {
	window *sdl.Window
}

func NewWindow(window *sdl.Window) *Window {
	return &Window{window: window}
}

func (w *Window) RequiredInstanceExtensions() ([]string, error) {
	extensions := w.window.VulkanGetInstanceExtensions()
	if len(extensions) == 0 {
		return nil, errors.Newf("vkng: sdl reports no vulkan instance extensions: %v", sdl.GetError())
	}
	return extensions, nil
}

func (w *Window) CreateSurface(instance driver.Instance) (driver.Surface, error) {
	inst, ok := instance.(*Instance)
	if !ok {
		return nil, errors.Newf("vkng: instance %T does not belong to this driver", instance)
	}

	handle, err := vkng_sdl2.CreateSurface(inst.driver.Instance(), inst.surface, w.window)
	if err != nil {
		return nil, errors.Wrap(err, "vkng: create sdl surface")
	}
	return &Surface{instance: inst, handle: handle}, nil
}

func (w *Window) DrawableSize() (int, int) {
	width, height := w.window.VulkanGetDrawableSize()
	return int(width), int(height)
}
