package bootstrap

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/driver"
)

// QueueFamilyIndices maps queue roles to queue families of one physical
// device, resolved against one surface.
type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

// IsComplete reports whether both roles resolved.
func (i QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// Shared reports whether both roles resolved to the same family.
func (i QueueFamilyIndices) Shared() bool {
	return i.IsComplete() && *i.GraphicsFamily == *i.PresentFamily
}

// Unique returns the distinct resolved families, graphics first.
func (i QueueFamilyIndices) Unique() []int {
	var families []int
	if i.GraphicsFamily != nil {
		families = append(families, *i.GraphicsFamily)
	}
	if i.PresentFamily != nil && (i.GraphicsFamily == nil || *i.PresentFamily != *i.GraphicsFamily) {
		families = append(families, *i.PresentFamily)
	}
	return families
}

// FindQueueFamilies resolves the graphics and presentation families of
// device. The two roles are scanned independently, each taking the first
// family with at least one queue that offers the capability; the result
// is incomplete when either scan finds nothing.
func FindQueueFamilies(device driver.PhysicalDevice, families []driver.QueueFamily, surface driver.Surface) (QueueFamilyIndices, error) {
	var indices QueueFamilyIndices

	for idx, family := range families {
		if family.QueueCount > 0 && family.Flags&driver.QueueGraphics != 0 {
			indices.GraphicsFamily = new(int)
			*indices.GraphicsFamily = idx
			break
		}
	}

	for idx, family := range families {
		if family.QueueCount == 0 {
			continue
		}

		supported, err := device.SurfaceSupport(surface, idx)
		if err != nil {
			return indices, errors.Wrapf(err, "query presentation support of queue family %d", idx)
		}
		if supported {
			indices.PresentFamily = new(int)
			*indices.PresentFamily = idx
			break
		}
	}

	return indices, nil
}
