package bootstrap

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/bootstrap/driver"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Candidate is a read-only snapshot of one enumerated physical device.
type Candidate struct {
	Device driver.PhysicalDevice
	// Index is the device's position in enumeration order.
	Index int

	Properties    driver.PhysicalDeviceProperties
	Features      driver.Features
	QueueFamilies []driver.QueueFamily

	extensions map[string]struct{}
}

// QueryCandidate snapshots device.
func QueryCandidate(device driver.PhysicalDevice, index int) (*Candidate, error) {
	properties, err := device.Properties()
	if err != nil {
		return nil, errors.Wrapf(err, "query properties of physical device %d", index)
	}

	features, err := device.Features()
	if err != nil {
		return nil, errors.Wrapf(err, "query features of %s", properties.Name)
	}

	families, err := device.QueueFamilies()
	if err != nil {
		return nil, errors.Wrapf(err, "query queue families of %s", properties.Name)
	}

	extensions, err := device.Extensions()
	if err != nil {
		return nil, errors.Wrapf(err, "enumerate device extensions of %s", properties.Name)
	}

	candidate := &Candidate{
		Device:        device,
		Index:         index,
		Properties:    properties,
		Features:      features,
		QueueFamilies: families,
		extensions:    make(map[string]struct{}, len(extensions)),
	}
	for _, name := range extensions {
		candidate.extensions[name] = struct{}{}
	}
	return candidate, nil
}

// SupportsExtension reports whether the device supports the named extension.
func (c *Candidate) SupportsExtension(name string) bool {
	_, ok := c.extensions[name]
	return ok
}

// Extensions returns the supported device extensions, sorted.
func (c *Candidate) Extensions() []string {
	names := maps.Keys(c.extensions)
	slices.Sort(names)
	return names
}

// Requirements a physical device must meet to be selected.
type Requirements struct {
	Features   driver.Features
	Extensions []string
}

// Reason names a failed suitability check.
type Reason string

const (
	ReasonDeviceType    Reason = "not a discrete or integrated GPU"
	ReasonFeatures      Reason = "required features unsupported"
	ReasonQueueFamilies Reason = "no graphics or presentation queue family"
	ReasonExtensions    Reason = "required device extensions unsupported"
	ReasonSwapchain     Reason = "no surface format or present mode"
	ReasonQueryFailed   Reason = "device query failed"
)

// Verdict is the outcome of evaluating one candidate.
type Verdict struct {
	Candidate *Candidate
	Indices   QueueFamilyIndices
	// Support is only queried when the device supports every required
	// extension.
	Support  SwapchainSupport
	Failures []Reason
	// Err is the query error behind ReasonQueryFailed.
	Err error
}

// Suitable reports whether every check passed.
func (v Verdict) Suitable() bool {
	return len(v.Failures) == 0
}

func (v *Verdict) reject(reason Reason) {
	v.Failures = append(v.Failures, reason)
}

// EvaluateCandidate runs every suitability check against candidate and
// surface. A failing query makes the candidate unsuitable.
func EvaluateCandidate(candidate *Candidate, surface driver.Surface, requirements Requirements) Verdict {
	verdict := Verdict{Candidate: candidate}

	switch candidate.Properties.Type {
	case driver.DeviceTypeDiscreteGPU, driver.DeviceTypeIntegratedGPU:
	default:
		verdict.reject(ReasonDeviceType)
	}

	if !candidate.Features.Satisfies(requirements.Features) {
		verdict.reject(ReasonFeatures)
	}

	indices, err := FindQueueFamilies(candidate.Device, candidate.QueueFamilies, surface)
	if err != nil {
		verdict.Err = err
		verdict.reject(ReasonQueryFailed)
		return verdict
	}
	verdict.Indices = indices
	if !indices.IsComplete() {
		verdict.reject(ReasonQueueFamilies)
	}

	if CheckDeviceExtensions(candidate, requirements.Extensions) != nil {
		verdict.reject(ReasonExtensions)
		return verdict
	}

	support, err := QuerySwapchainSupport(candidate.Device, surface)
	if err != nil {
		verdict.Err = err
		verdict.reject(ReasonQueryFailed)
		return verdict
	}
	verdict.Support = support
	if !support.Adequate() {
		verdict.reject(ReasonSwapchain)
	}

	return verdict
}

// EvaluateDevices evaluates every physical device of instance. Devices are
// queried concurrently; the verdicts keep enumeration order.
func EvaluateDevices(instance driver.Instance, surface driver.Surface, requirements Requirements) ([]Verdict, error) {
	devices, err := instance.EnumeratePhysicalDevices()
	if err != nil {
		return nil, fail(err, ErrNoSuitableDevice, "enumerate physical devices")
	}

	verdicts := make([]Verdict, len(devices))
	var g errgroup.Group
	for idx, device := range devices {
		idx, device := idx, device
		g.Go(func() error {
			candidate, err := QueryCandidate(device, idx)
			if err != nil {
				verdicts[idx] = Verdict{
					Candidate: &Candidate{Device: device, Index: idx},
					Failures:  []Reason{ReasonQueryFailed},
					Err:       err,
				}
				return nil
			}
			verdicts[idx] = EvaluateCandidate(candidate, surface, requirements)
			return nil
		})
	}
	// Query failures land in the verdicts, so the group only joins.
	_ = g.Wait()
	return verdicts, nil
}

// SelectDevice returns the verdict of the first physical device, in
// enumeration order, that passes every suitability check. Later devices
// are not examined. It fails with ErrNoSuitableDevice when there is no
// such device.
func SelectDevice(instance driver.Instance, surface driver.Surface, requirements Requirements, log logrus.FieldLogger) (Verdict, error) {
	devices, err := instance.EnumeratePhysicalDevices()
	if err != nil {
		return Verdict{}, fail(err, ErrNoSuitableDevice, "enumerate physical devices")
	}
	if len(devices) == 0 {
		return Verdict{}, failf(ErrNoSuitableDevice, "failed to find GPUs with Vulkan support")
	}

	for idx, device := range devices {
		candidate, err := QueryCandidate(device, idx)
		if err != nil {
			log.WithError(err).WithField("index", idx).Warn("skipping physical device")
			continue
		}

		verdict := EvaluateCandidate(candidate, surface, requirements)
		entry := log.WithFields(logrus.Fields{
			"index":  idx,
			"device": candidate.Properties.Name,
			"type":   candidate.Properties.Type.String(),
		})
		if verdict.Suitable() {
			entry.Debug("physical device suitable")
			return verdict, nil
		}

		if verdict.Err != nil {
			entry = entry.WithError(verdict.Err)
		}
		entry.WithField("failures", verdict.Failures).Debug("physical device unsuitable")
	}

	return Verdict{}, failf(ErrNoSuitableDevice, "failed to find a suitable GPU among %d devices", len(devices))
}
