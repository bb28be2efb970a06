package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// Device is a driver.Device backed by a vkngwrapper device driver.
type Device struct {
	driver    core1_0.CoreDeviceDriver
	swapchain khr_swapchain.ExtensionDriver
}

func (d *Device) GetQueue(family, index int) driver.Queue {
	return Queue{handle: d.driver.GetQueue(family, index)}
}

func (d *Device) CreateSwapchain(info driver.SwapchainCreateInfo) (driver.Swapchain, error) {
	if d.swapchain == nil {
		return nil, errors.Newf("vkng: device created without %s", khr_swapchain.ExtensionName)
	}
	surface, err := asSurface(info.Surface)
	if err != nil {
		return nil, err
	}

	options := khr_swapchain.SwapchainCreateInfo{
		Surface: surface.handle,

		MinImageCount:    info.MinImageCount,
		ImageFormat:      core1_0.Format(info.ImageFormat),
		ImageExtent:      core1_0.Extent2D{Width: info.ImageExtent.Width, Height: info.ImageExtent.Height},
		ImageArrayLayers: info.ImageArrayLayers,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode(info.ImageSharingMode),
		QueueFamilyIndices: info.QueueFamilyIndices,

		Clipped: info.Clipped,
	}
	assign(&options.ImageColorSpace, int64(info.ImageColorSpace))
	assign(&options.PreTransform, int64(info.PreTransform))
	assign(&options.CompositeAlpha, int64(info.CompositeAlpha))
	assign(&options.PresentMode, int64(info.PresentMode))

	handle, _, err := d.swapchain.CreateSwapchain(nil, options)
	if err != nil {
		return nil, errors.Wrap(err, "vkng: create swapchain")
	}
	return &Swapchain{device: d, handle: handle}, nil
}

func (d *Device) CreateImageView(info driver.ImageViewCreateInfo) (driver.ImageView, error) {
	image, ok := info.Image.(Image)
	if !ok {
		return nil, errors.Newf("vkng: image %T does not belong to this driver", info.Image)
	}
	if info.ViewType != driver.ImageViewType2D {
		return nil, errors.Newf("vkng: unsupported image view type %d", info.ViewType)
	}
	if info.Components != (driver.ComponentMapping{}) {
		return nil, errors.New("vkng: only identity component swizzles are supported")
	}

	handle, _, err := d.driver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:    image.handle,
		ViewType: core1_0.ImageViewType2D,
		Format:   core1_0.Format(info.Format),
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     core1_0.ImageAspectFlags(info.SubresourceRange.AspectMask),
			BaseMipLevel:   info.SubresourceRange.BaseMipLevel,
			LevelCount:     info.SubresourceRange.LevelCount,
			BaseArrayLayer: info.SubresourceRange.BaseArrayLayer,
			LayerCount:     info.SubresourceRange.LayerCount,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "vkng: create image view")
	}
	return &ImageView{device: d, handle: handle}, nil
}

func (d *Device) Destroy() {
	d.driver.DestroyDevice(nil)
}

type Queue struct {
	handle core1_0.Queue
}

func (q Queue) Initialized() bool { return q.handle.Initialized() }

type Image struct {
	handle core1_0.Image
}

func (i Image) Initialized() bool { return i.handle.Initialized() }

// Swapchain is a driver.Swapchain backed by a khr_swapchain handle.
type Swapchain struct {
	device *Device
	handle khr_swapchain.Swapchain
}

func (s *Swapchain) Images() ([]driver.Image, error) {
	handles, _, err := s.device.swapchain.GetSwapchainImages(s.handle)
	if err != nil {
		return nil, errors.Wrap(err, "vkng: swapchain images")
	}

	images := make([]driver.Image, 0, len(handles))
	for _, handle := range handles {
		images = append(images, Image{handle: handle})
	}
	return images, nil
}

func (s *Swapchain) Destroy() {
	if !s.handle.Initialized() {
		return
	}
	s.device.swapchain.DestroySwapchain(s.handle, nil)
	s.handle = khr_swapchain.Swapchain{}
}

type ImageView struct {
	device *Device
	handle core1_0.ImageView
}

func (v *ImageView) Destroy() {
	if !v.handle.Initialized() {
		return
	}
	v.device.driver.DestroyImageView(v.handle, nil)
	v.handle = core1_0.ImageView{}
}
