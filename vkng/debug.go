package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/driver"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
)

type messengerFactory struct {
	driver ext_debug_utils.ExtensionDriver
}

func (f messengerFactory) CreateDebugMessenger(info driver.DebugMessengerCreateInfo) (driver.DebugMessenger, error) {
	handle, _, err := f.driver.CreateDebugUtilsMessenger(nil, messengerCreateInfo(info))
	if err != nil {
		return nil, errors.Wrap(err, "vkng: create debug messenger")
	}
	return &DebugMessenger{driver: f.driver, handle: handle}, nil
}

// DebugMessenger is a driver.DebugMessenger backed by ext_debug_utils.
type DebugMessenger struct {
	driver ext_debug_utils.ExtensionDriver
	handle ext_debug_utils.DebugUtilsMessenger
}

func (m *DebugMessenger) Destroy() {
	if !m.handle.Initialized() {
		return
	}
	m.driver.DestroyDebugUtilsMessenger(m.handle, nil)
	m.handle = ext_debug_utils.DebugUtilsMessenger{}
}

func messengerCreateInfo(info driver.DebugMessengerCreateInfo) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	callback := info.Callback
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.DebugUtilsMessageSeverityFlags(info.Severities),
		MessageType:     ext_debug_utils.DebugUtilsMessageTypeFlags(info.Types),
		UserCallback: func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			if callback == nil {
				return false
			}

			msg := driver.Message{
				Severity: driver.MessageSeverity(severity),
				Type:     driver.MessageType(msgType),
			}
			if data != nil {
				msg.Text = data.Message
			}
			return callback(msg)
		},
	}
}
