package bootstrap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bootstrap/bootstrap"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/bootstrap/driver/drivertest"
)

func TestFindQueueFamilies(t *testing.T) {
	testCases := []struct {
		name     string
		families []driver.QueueFamily
		present  []int
		graphics *int
		presents *int
	}{
		{
			name:     "Shared",
			families: []driver.QueueFamily{{Flags: driver.QueueGraphics | driver.QueueCompute, QueueCount: 16}},
			present:  []int{0},
			graphics: intPtr(0),
			presents: intPtr(0),
		},
		{
			name: "PresentOnlyFamilyAfterShared",
			families: []driver.QueueFamily{
				{Flags: driver.QueueGraphics, QueueCount: 1},
				{Flags: driver.QueueTransfer, QueueCount: 1},
			},
			present:  []int{0, 1},
			graphics: intPtr(0),
			presents: intPtr(0),
		},
		{
			name: "ScannedIndependently",
			families: []driver.QueueFamily{
				{Flags: driver.QueueCompute, QueueCount: 2},
				{Flags: driver.QueueGraphics, QueueCount: 1},
			},
			present:  []int{0, 1},
			graphics: intPtr(1),
			presents: intPtr(0),
		},
		{
			name: "FirstMatchWins",
			families: []driver.QueueFamily{
				{Flags: driver.QueueTransfer, QueueCount: 1},
				{Flags: driver.QueueGraphics, QueueCount: 1},
				{Flags: driver.QueueGraphics, QueueCount: 1},
			},
			present:  []int{2, 1},
			graphics: intPtr(1),
			presents: intPtr(1),
		},
		{
			name: "EmptyFamiliesSkipped",
			families: []driver.QueueFamily{
				{Flags: driver.QueueGraphics, QueueCount: 0},
				{Flags: driver.QueueGraphics, QueueCount: 4},
			},
			present:  []int{0, 1},
			graphics: intPtr(1),
			presents: intPtr(1),
		},
		{
			name:     "NoGraphics",
			families: []driver.QueueFamily{{Flags: driver.QueueCompute | driver.QueueTransfer, QueueCount: 1}},
			present:  []int{0},
			presents: intPtr(0),
		},
		{
			name:     "NoPresentation",
			families: []driver.QueueFamily{{Flags: driver.QueueGraphics, QueueCount: 1}},
			graphics: intPtr(0),
		},
		{
			name: "NoFamilies",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gpu := drivertest.NewGPU(gpuName)
			gpu.Families = tc.families
			gpu.PresentFamilies = tc.present

			indices, err := bootstrap.FindQueueFamilies(gpu, tc.families, &drivertest.Surface{})
			require.NoError(t, err)

			assert.Equal(t, tc.graphics, indices.GraphicsFamily)
			assert.Equal(t, tc.presents, indices.PresentFamily)
			assert.Equal(t, tc.graphics != nil && tc.presents != nil, indices.IsComplete())
		})
	}
}

func TestFindQueueFamiliesQueryError(t *testing.T) {
	gpu := drivertest.NewGPU(gpuName)
	gpu.QueryErr = drivertest.ErrInjected

	_, err := bootstrap.FindQueueFamilies(gpu, []driver.QueueFamily{{Flags: driver.QueueGraphics, QueueCount: 1}}, &drivertest.Surface{})
	assert.ErrorIs(t, err, drivertest.ErrInjected)
}

func TestQueueFamilyIndices(t *testing.T) {
	shared := bootstrap.QueueFamilyIndices{GraphicsFamily: intPtr(2), PresentFamily: intPtr(2)}
	assert.True(t, shared.IsComplete())
	assert.True(t, shared.Shared())
	assert.Equal(t, []int{2}, shared.Unique())

	distinct := bootstrap.QueueFamilyIndices{GraphicsFamily: intPtr(0), PresentFamily: intPtr(1)}
	assert.False(t, distinct.Shared())
	assert.Equal(t, []int{0, 1}, distinct.Unique())

	partial := bootstrap.QueueFamilyIndices{PresentFamily: intPtr(3)}
	assert.False(t, partial.IsComplete())
	assert.False(t, partial.Shared())
	assert.Equal(t, []int{3}, partial.Unique())
}
