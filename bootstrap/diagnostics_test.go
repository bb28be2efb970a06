package bootstrap_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bootstrap/bootstrap"
	"github.com/vkngwrapper/bootstrap/driver"
)

type panicHook struct{}

func (panicHook) Levels() []logrus.Level { return logrus.AllLevels }

func (panicHook) Fire(*logrus.Entry) error { panic("hook exploded") }

func TestDebugMessengerInfo(t *testing.T) {
	logger, _ := nullLogger()
	info := bootstrap.DebugMessengerInfo(logger)

	assert.Equal(t, driver.SeverityWarning|driver.SeverityError, info.Severities)
	assert.Equal(t, driver.TypeGeneral|driver.TypeValidation|driver.TypePerformance, info.Types)
	assert.NotNil(t, info.Callback)
	assert.NoError(t, info.Validate())
}

func TestLogDiagnostics(t *testing.T) {
	testCases := []struct {
		severity driver.MessageSeverity
		level    logrus.Level
	}{
		{driver.SeverityError, logrus.ErrorLevel},
		{driver.SeverityWarning, logrus.WarnLevel},
		{driver.SeverityInfo, logrus.InfoLevel},
		{driver.SeverityVerbose, logrus.DebugLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.severity.String(), func(t *testing.T) {
			logger, hook := nullLogger()
			callback := bootstrap.LogDiagnostics(logger)

			abort := callback(driver.Message{
				Severity: tc.severity,
				Type:     driver.TypeValidation,
				IDName:   "VUID-vkDestroyDevice-device-00378",
				Text:     "objects not destroyed",
			})
			assert.False(t, abort)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tc.level, entry.Level)
			assert.Equal(t, "objects not destroyed", entry.Message)
			assert.Equal(t, tc.severity.String(), entry.Data["severity"])
			assert.Equal(t, "Validation", entry.Data["type"])
			assert.Equal(t, "VUID-vkDestroyDevice-device-00378", entry.Data["id"])
		})
	}
}

func TestLogDiagnosticsRecoversPanics(t *testing.T) {
	logger, _ := nullLogger()
	logger.AddHook(panicHook{})
	callback := bootstrap.LogDiagnostics(logger)

	var abort bool
	assert.NotPanics(t, func() {
		abort = callback(driver.Message{Severity: driver.SeverityError, Type: driver.TypeGeneral, Text: "boom"})
	})
	assert.False(t, abort)
}

func TestRegisterDiagnostics(t *testing.T) {
	loader, instance := newInstance(t)
	logger, hook := nullLogger()

	diagnostics, err := bootstrap.RegisterDiagnostics(instance, bootstrap.DebugMessengerInfo(logger))
	require.NoError(t, err)
	require.Len(t, instance.Messengers, 1)
	assert.Equal(t, []string{"create debug messenger"}, loader.Journal.Events())

	messenger := instance.Messengers[0]

	abort, delivered := messenger.Emit(driver.Message{Severity: driver.SeverityError, Type: driver.TypeValidation, Text: "validation failed"})
	assert.True(t, delivered)
	assert.False(t, abort)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "validation failed", hook.LastEntry().Message)

	hook.Reset()
	_, delivered = messenger.Emit(driver.Message{Severity: driver.SeverityVerbose, Type: driver.TypeGeneral, Text: "loader chatter"})
	assert.False(t, delivered)
	assert.Empty(t, hook.AllEntries())

	diagnostics.Destroy()
	diagnostics.Destroy()
	assert.Equal(t, []string{"create debug messenger", "destroy debug messenger"}, loader.Journal.Events())
}

func TestRegisterDiagnosticsUnavailable(t *testing.T) {
	loader, instance := newInstance(t)
	loader.NoDebugMessenger = true
	logger, _ := nullLogger()

	diagnostics, err := bootstrap.RegisterDiagnostics(instance, bootstrap.DebugMessengerInfo(logger))
	require.Error(t, err)
	assert.Nil(t, diagnostics)
	assert.True(t, errors.Is(err, bootstrap.ErrDiagnosticsUnavailable))
	assert.Empty(t, loader.Journal.Events())
}

func TestRegisterDiagnosticsInvalidInfo(t *testing.T) {
	_, instance := newInstance(t)

	_, err := bootstrap.RegisterDiagnostics(instance, driver.DebugMessengerCreateInfo{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, bootstrap.ErrDiagnosticsUnavailable))
	assert.Empty(t, instance.Messengers)
}

func TestDiagnosticsDestroyNil(t *testing.T) {
	var diagnostics *bootstrap.Diagnostics
	assert.NotPanics(t, diagnostics.Destroy)
}
