// Package drivertest provides an in-memory driver for tests.
//
// Every create and destroy call is appended to a shared Journal, so tests
// can assert construction and teardown order. Failures can be injected at
// each step through Loader.Fail.
package drivertest

import (
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/vkngwrapper/bootstrap/driver"
)

// ErrInjected is returned by every call that fails through Failures.
var ErrInjected = errors.New("drivertest: injected failure")

// Journal records create and destroy events in call order.
type Journal struct {
	mu     sync.Mutex
	events []string
}

func (j *Journal) record(format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

// Events returns a copy of every recorded event.
func (j *Journal) Events() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	events := make([]string, len(j.events))
	copy(events, j.events)
	return events
}

// WithPrefix returns the recorded events that start with prefix.
func (j *Journal) WithPrefix(prefix string) []string {
	var events []string
	for _, event := range j.Events() {
		if len(event) >= len(prefix) && event[:len(prefix)] == prefix {
			events = append(events, event)
		}
	}
	return events
}

// Reset clears the journal.
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = nil
}

// Failures selects the calls that fail with ErrInjected.
type Failures struct {
	Layers     bool
	Extensions bool
	Instance   bool
	Enumerate  bool
	Surface    bool
	Device     bool
	Swapchain  bool
	Images     bool
	// ImageView fails the n-th image view creation, counting from 1.
	// Zero never fails.
	ImageView int
}

// Loader is a fake driver.Loader.
type Loader struct {
	Layers     []string
	Extensions []string
	Devices    []*PhysicalDevice

	// NoDebugMessenger makes the debug messenger entry points unresolvable.
	NoDebugMessenger bool
	// SwapchainImages overrides the number of images a swap chain
	// allocates. Zero allocates the requested minimum.
	SwapchainImages int

	Fail    Failures
	Journal *Journal

	// Instances holds every instance created, in order.
	Instances []*Instance
}

// NewLoader returns a loader exposing the Khronos validation layer, the
// instance extensions a typical window system needs, and devices.
func NewLoader(devices ...*PhysicalDevice) *Loader {
	return &Loader{
		Layers: []string{driver.KhronosValidationLayerName},
		Extensions: []string{
			driver.SurfaceExtensionName,
			"VK_KHR_xcb_surface",
			driver.DebugUtilsExtensionName,
		},
		Devices: devices,
		Journal: &Journal{},
	}
}

func (l *Loader) journal() *Journal {
	if l.Journal == nil {
		l.Journal = &Journal{}
	}
	return l.Journal
}

func (l *Loader) AvailableLayers() ([]string, error) {
	if l.Fail.Layers {
		return nil, ErrInjected
	}
	return append([]string(nil), l.Layers...), nil
}

func (l *Loader) AvailableExtensions() ([]string, error) {
	if l.Fail.Extensions {
		return nil, ErrInjected
	}
	return append([]string(nil), l.Extensions...), nil
}

func (l *Loader) CreateInstance(info driver.InstanceCreateInfo) (driver.Instance, error) {
	if l.Fail.Instance {
		return nil, ErrInjected
	}
	instance := &Instance{loader: l, Info: info}
	l.Instances = append(l.Instances, instance)
	l.journal().record("create instance")
	return instance, nil
}

// LastInstance returns the most recently created instance, or nil.
func (l *Loader) LastInstance() *Instance {
	if len(l.Instances) == 0 {
		return nil
	}
	return l.Instances[len(l.Instances)-1]
}

// NewWindow returns a window whose surfaces are created through l.
func (l *Loader) NewWindow(width, height int) *Window {
	return &Window{
		loader:     l,
		Extensions: []string{driver.SurfaceExtensionName, "VK_KHR_xcb_surface"},
		Width:      width,
		Height:     height,
	}
}

// Instance is a fake driver.Instance.
type Instance struct {
	loader    *Loader
	destroyed bool

	Info       driver.InstanceCreateInfo
	Messengers []*DebugMessenger
	Devices    []*Device
}

func (i *Instance) EnumeratePhysicalDevices() ([]driver.PhysicalDevice, error) {
	if i.loader.Fail.Enumerate {
		return nil, ErrInjected
	}
	devices := make([]driver.PhysicalDevice, 0, len(i.loader.Devices))
	for _, device := range i.loader.Devices {
		devices = append(devices, device)
	}
	return devices, nil
}

func (i *Instance) DebugMessengerFactory() (driver.DebugMessengerFactory, bool) {
	if i.loader.NoDebugMessenger {
		return nil, false
	}
	return messengerFactory{instance: i}, true
}

func (i *Instance) CreateDevice(physicalDevice driver.PhysicalDevice, info driver.DeviceCreateInfo) (driver.Device, error) {
	if i.loader.Fail.Device {
		return nil, ErrInjected
	}
	gpu, ok := physicalDevice.(*PhysicalDevice)
	if !ok {
		return nil, errors.Newf("drivertest: foreign physical device %T", physicalDevice)
	}
	device := &Device{
		instance: i,
		Physical: gpu,
		Info:     info,
		queues:   make(map[[2]int]*Queue),
	}
	i.Devices = append(i.Devices, device)
	i.loader.journal().record("create device %s", gpu.Props.Name)
	return device, nil
}

func (i *Instance) Destroy() {
	if i.destroyed {
		i.loader.journal().record("double destroy instance")
		return
	}
	i.destroyed = true
	i.loader.journal().record("destroy instance")
}

// Destroyed reports whether Destroy has been called.
func (i *Instance) Destroyed() bool { return i.destroyed }

type messengerFactory struct {
	instance *Instance
}

func (f messengerFactory) CreateDebugMessenger(info driver.DebugMessengerCreateInfo) (driver.DebugMessenger, error) {
	messenger := &DebugMessenger{instance: f.instance, Info: info}
	f.instance.Messengers = append(f.instance.Messengers, messenger)
	f.instance.loader.journal().record("create debug messenger")
	return messenger, nil
}

// DebugMessenger is a fake driver.DebugMessenger.
type DebugMessenger struct {
	instance  *Instance
	destroyed bool

	Info driver.DebugMessengerCreateInfo
}

// Emit delivers msg to the registered callback if the messenger
// subscribed to its severity and type, the way the driver would.
func (m *DebugMessenger) Emit(msg driver.Message) (abort bool, delivered bool) {
	if m.Info.Severities&msg.Severity == 0 || m.Info.Types&msg.Type == 0 {
		return false, false
	}
	return m.Info.Callback(msg), true
}

func (m *DebugMessenger) Destroy() {
	if m.destroyed {
		m.instance.loader.journal().record("double destroy debug messenger")
		return
	}
	m.destroyed = true
	m.instance.loader.journal().record("destroy debug messenger")
}

// PhysicalDevice is a fake driver.PhysicalDevice.
type PhysicalDevice struct {
	Props            driver.PhysicalDeviceProperties
	Feats            driver.Features
	Families         []driver.QueueFamily
	DeviceExtensions []string

	// PresentFamilies lists the queue families able to present.
	PresentFamilies []int

	Capabilities driver.SurfaceCapabilities
	Formats      []driver.SurfaceFormat
	PresentModes []driver.PresentMode

	// QueryErr, when set, fails every query.
	QueryErr error
}

// NewGPU returns a discrete GPU that satisfies every default bootstrap
// requirement: one graphics family able to present, the swap chain
// extension, geometry shaders, and an SRGB surface format.
func NewGPU(name string) *PhysicalDevice {
	return &PhysicalDevice{
		Props: driver.PhysicalDeviceProperties{
			Name:              name,
			Type:              driver.DeviceTypeDiscreteGPU,
			VendorID:          0x10de,
			DeviceID:          0x2204,
			PipelineCacheUUID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		},
		Feats: driver.Features{GeometryShader: true, SamplerAnisotropy: true},
		Families: []driver.QueueFamily{
			{Flags: driver.QueueGraphics | driver.QueueCompute | driver.QueueTransfer, QueueCount: 16},
		},
		DeviceExtensions: []string{driver.SwapchainExtensionName},
		PresentFamilies:  []int{0},
		Capabilities: driver.SurfaceCapabilities{
			MinImageCount:           2,
			MaxImageCount:           8,
			CurrentExtent:           driver.Extent2D{Width: 800, Height: 600},
			MinImageExtent:          driver.Extent2D{Width: 1, Height: 1},
			MaxImageExtent:          driver.Extent2D{Width: 4096, Height: 4096},
			SupportedTransforms:     driver.TransformIdentity,
			CurrentTransform:        driver.TransformIdentity,
			SupportedCompositeAlpha: driver.CompositeAlphaOpaque,
		},
		Formats: []driver.SurfaceFormat{
			{Format: driver.FormatB8G8R8A8UnsignedNormalized, ColorSpace: driver.ColorSpaceSRGBNonlinear},
			{Format: driver.FormatB8G8R8A8SRGB, ColorSpace: driver.ColorSpaceSRGBNonlinear},
		},
		PresentModes: []driver.PresentMode{driver.PresentModeFIFO, driver.PresentModeMailbox},
	}
}

func (p *PhysicalDevice) Properties() (driver.PhysicalDeviceProperties, error) {
	return p.Props, p.QueryErr
}

func (p *PhysicalDevice) Features() (driver.Features, error) {
	return p.Feats, p.QueryErr
}

func (p *PhysicalDevice) QueueFamilies() ([]driver.QueueFamily, error) {
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	return append([]driver.QueueFamily(nil), p.Families...), nil
}

func (p *PhysicalDevice) Extensions() ([]string, error) {
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	return append([]string(nil), p.DeviceExtensions...), nil
}

func (p *PhysicalDevice) SurfaceSupport(surface driver.Surface, queueFamily int) (bool, error) {
	if p.QueryErr != nil {
		return false, p.QueryErr
	}
	if err := checkSurface(surface); err != nil {
		return false, err
	}
	for _, family := range p.PresentFamilies {
		if family == queueFamily {
			return true, nil
		}
	}
	return false, nil
}

func (p *PhysicalDevice) SurfaceCapabilities(surface driver.Surface) (driver.SurfaceCapabilities, error) {
	if p.QueryErr != nil {
		return driver.SurfaceCapabilities{}, p.QueryErr
	}
	return p.Capabilities, checkSurface(surface)
}

func (p *PhysicalDevice) SurfaceFormats(surface driver.Surface) ([]driver.SurfaceFormat, error) {
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	return append([]driver.SurfaceFormat(nil), p.Formats...), checkSurface(surface)
}

func (p *PhysicalDevice) SurfacePresentModes(surface driver.Surface) ([]driver.PresentMode, error) {
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	return append([]driver.PresentMode(nil), p.PresentModes...), checkSurface(surface)
}

func checkSurface(surface driver.Surface) error {
	s, ok := surface.(*Surface)
	if !ok {
		return errors.Newf("drivertest: foreign surface %T", surface)
	}
	if s.destroyed {
		return errors.New("drivertest: surface used after destroy")
	}
	return nil
}

// Device is a fake driver.Device.
type Device struct {
	instance  *Instance
	destroyed bool
	queues    map[[2]int]*Queue
	viewCount int

	Physical   *PhysicalDevice
	Info       driver.DeviceCreateInfo
	Swapchains []*Swapchain
	Views      []*ImageView
}

func (d *Device) journal() *Journal { return d.instance.loader.journal() }

func (d *Device) GetQueue(queueFamily, index int) driver.Queue {
	key := [2]int{queueFamily, index}
	queue, ok := d.queues[key]
	if !ok {
		queue = &Queue{Family: queueFamily, Index: index}
		d.queues[key] = queue
	}
	return queue
}

func (d *Device) CreateSwapchain(info driver.SwapchainCreateInfo) (driver.Swapchain, error) {
	if d.instance.loader.Fail.Swapchain {
		return nil, ErrInjected
	}
	if err := checkSurface(info.Surface); err != nil {
		return nil, err
	}

	count := info.MinImageCount
	if d.instance.loader.SwapchainImages > 0 {
		count = d.instance.loader.SwapchainImages
	}
	swapchain := &Swapchain{device: d, Info: info}
	for i := 0; i < count; i++ {
		swapchain.images = append(swapchain.images, &Image{Index: i})
	}
	d.Swapchains = append(d.Swapchains, swapchain)
	d.journal().record("create swapchain")
	return swapchain, nil
}

func (d *Device) CreateImageView(info driver.ImageViewCreateInfo) (driver.ImageView, error) {
	d.viewCount++
	if d.instance.loader.Fail.ImageView == d.viewCount {
		return nil, ErrInjected
	}
	image, ok := info.Image.(*Image)
	if !ok {
		return nil, errors.Newf("drivertest: foreign image %T", info.Image)
	}
	view := &ImageView{device: d, Info: info, Image: image}
	d.Views = append(d.Views, view)
	d.journal().record("create image view %d", image.Index)
	return view, nil
}

func (d *Device) Destroy() {
	if d.destroyed {
		d.journal().record("double destroy device")
		return
	}
	d.destroyed = true
	d.journal().record("destroy device")
}

// Destroyed reports whether Destroy has been called.
func (d *Device) Destroyed() bool { return d.destroyed }

// Queue is a fake driver.Queue.
type Queue struct {
	Family int
	Index  int
}

func (q *Queue) Initialized() bool { return q != nil }

// Image is a fake swap chain image.
type Image struct {
	Index int
}

func (i *Image) Initialized() bool { return i != nil }

// Swapchain is a fake driver.Swapchain.
type Swapchain struct {
	device    *Device
	destroyed bool
	images    []*Image

	Info driver.SwapchainCreateInfo
}

func (s *Swapchain) Images() ([]driver.Image, error) {
	if s.device.instance.loader.Fail.Images {
		return nil, ErrInjected
	}
	images := make([]driver.Image, 0, len(s.images))
	for _, image := range s.images {
		images = append(images, image)
	}
	return images, nil
}

func (s *Swapchain) Destroy() {
	if s.destroyed {
		s.device.journal().record("double destroy swapchain")
		return
	}
	s.destroyed = true
	s.device.journal().record("destroy swapchain")
}

// ImageView is a fake driver.ImageView.
type ImageView struct {
	device    *Device
	destroyed bool

	Info  driver.ImageViewCreateInfo
	Image *Image
}

func (v *ImageView) Destroy() {
	if v.destroyed {
		v.device.journal().record("double destroy image view %d", v.Image.Index)
		return
	}
	v.destroyed = true
	v.device.journal().record("destroy image view %d", v.Image.Index)
}

// Window is a fake driver.SurfaceProvider.
type Window struct {
	loader *Loader

	Extensions []string
	Width      int
	Height     int
	Surfaces   []*Surface
}

func (w *Window) RequiredInstanceExtensions() ([]string, error) {
	return append([]string(nil), w.Extensions...), nil
}

func (w *Window) CreateSurface(instance driver.Instance) (driver.Surface, error) {
	if w.loader.Fail.Surface {
		return nil, ErrInjected
	}
	inst, ok := instance.(*Instance)
	if !ok {
		return nil, errors.Newf("drivertest: foreign instance %T", instance)
	}
	if inst.destroyed {
		return nil, errors.New("drivertest: instance used after destroy")
	}
	surface := &Surface{journal: w.loader.journal()}
	w.Surfaces = append(w.Surfaces, surface)
	w.loader.journal().record("create surface")
	return surface, nil
}

func (w *Window) DrawableSize() (int, int) {
	return w.Width, w.Height
}

// Surface is a fake driver.Surface.
type Surface struct {
	journal   *Journal
	destroyed bool
}

func (s *Surface) Destroy() {
	if s.destroyed {
		s.journal.record("double destroy surface")
		return
	}
	s.destroyed = true
	s.journal.record("destroy surface")
}
