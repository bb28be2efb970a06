package bootstrap_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bootstrap/bootstrap"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/bootstrap/driver/drivertest"
)

const gpuName = "Test GPU"

func testOptions(diagnostics bool) (bootstrap.Options, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	opts := bootstrap.DefaultOptions()
	opts.EnableDiagnostics = diagnostics
	opts.Logger = logger
	return opts, hook
}

func nullLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

// newInstance returns a live fake instance over devices, with an empty
// journal.
func newInstance(t *testing.T, devices ...*drivertest.PhysicalDevice) (*drivertest.Loader, *drivertest.Instance) {
	t.Helper()

	loader := drivertest.NewLoader(devices...)
	instance, err := loader.CreateInstance(driver.InstanceCreateInfo{ApplicationName: "test"})
	require.NoError(t, err)
	loader.Journal.Reset()
	return loader, instance.(*drivertest.Instance)
}

// newDevice returns a live fake logical device on gpu, with an empty
// journal.
func newDevice(t *testing.T, gpu *drivertest.PhysicalDevice) (*drivertest.Loader, *drivertest.Device) {
	t.Helper()

	loader, instance := newInstance(t, gpu)
	device, err := instance.CreateDevice(gpu, driver.DeviceCreateInfo{
		QueueCreateInfos: []driver.DeviceQueueCreateInfo{{QueueFamilyIndex: 0, QueuePriorities: []float32{1}}},
	})
	require.NoError(t, err)
	loader.Journal.Reset()
	return loader, device.(*drivertest.Device)
}

func intPtr(v int) *int { return &v }
