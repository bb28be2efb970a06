package bootstrap

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/bootstrap/driver"
)

// Summary describes a bootstrapped context.
type Summary struct {
	Session uuid.UUID

	DeviceName        string
	DeviceType        driver.DeviceType
	PipelineCacheUUID uuid.UUID

	GraphicsFamily int
	PresentFamily  int

	Format      driver.Format
	ColorSpace  driver.ColorSpace
	PresentMode driver.PresentMode
	SharingMode driver.SharingMode
	Extent      driver.Extent2D
	ImageCount  int
	ViewCount   int

	Timings []Timing
}

// Summary reports the negotiated configuration. Fields of stages that
// never completed are left zero.
func (c *Context) Summary() Summary {
	s := Summary{
		Session: c.id,
		Timings: c.Timings(),
	}

	if candidate := c.selection.Candidate; candidate != nil {
		s.DeviceName = candidate.Properties.Name
		s.DeviceType = candidate.Properties.Type
		s.PipelineCacheUUID = candidate.Properties.PipelineCacheUUID
	}
	if indices := c.selection.Indices; indices.IsComplete() {
		s.GraphicsFamily = *indices.GraphicsFamily
		s.PresentFamily = *indices.PresentFamily
	}
	if c.swapchain != nil {
		s.Format = c.swapchain.Format
		s.ColorSpace = c.swapchain.ColorSpace
		s.PresentMode = c.swapchain.PresentMode
		s.SharingMode = c.swapchain.SharingMode
		s.Extent = c.swapchain.Extent
		s.ImageCount = len(c.swapchain.Images)
	}
	s.ViewCount = len(c.views)
	return s
}

// Fields renders the summary for structured logging.
func (s Summary) Fields() logrus.Fields {
	fields := logrus.Fields{
		"device":          s.DeviceName,
		"device_type":     s.DeviceType.String(),
		"pipeline_cache":  s.PipelineCacheUUID.String(),
		"graphics_family": s.GraphicsFamily,
		"present_family":  s.PresentFamily,
		"format":          s.Format.String(),
		"color_space":     s.ColorSpace.String(),
		"present_mode":    s.PresentMode.String(),
		"sharing_mode":    s.SharingMode.String(),
		"extent":          s.Extent.String(),
		"images":          s.ImageCount,
	}
	for _, timing := range s.Timings {
		fields["t_"+strings.ReplaceAll(string(timing.Stage), " ", "_")] = timing.Duration
	}
	return fields
}
