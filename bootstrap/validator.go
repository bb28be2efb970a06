package bootstrap

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/bootstrap/driver"
	"golang.org/x/exp/slices"
)

// ValidateLayers reports whether every name in required appears in
// available.
func ValidateLayers(required, available []string) bool {
	return len(MissingNames(required, available)) == 0
}

// MissingNames returns the names in required that are absent from
// available, in required order.
func MissingNames(required, available []string) []string {
	present := make(map[string]struct{}, len(available))
	for _, name := range available {
		present[name] = struct{}{}
	}

	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// CheckLayerSupport queries the installed diagnostic layers and fails with
// ErrMissingCapability unless every required layer is installed. With
// verbose set, the installed layers are logged at debug level.
func CheckLayerSupport(loader driver.Loader, required []string, verbose bool, log logrus.FieldLogger) error {
	available, err := loader.AvailableLayers()
	if err != nil {
		return fail(err, ErrMissingCapability, "enumerate instance layers")
	}

	if verbose {
		logNames(log, "available validation layers", available)
	}

	missing := MissingNames(required, available)
	if len(missing) > 0 {
		return failf(ErrMissingCapability, "validation layers not available: %s (install the LunarG Vulkan SDK)", strings.Join(missing, ", "))
	}
	return nil
}

// CheckInstanceExtensions fails with ErrExtensionUnsupported unless every
// required instance extension is available.
func CheckInstanceExtensions(available, required []string) error {
	missing := MissingNames(required, available)
	if len(missing) > 0 {
		return failf(ErrExtensionUnsupported, "missing instance extensions: %s", strings.Join(missing, ", "))
	}
	return nil
}

// CheckDeviceExtensions fails with ErrExtensionUnsupported unless the
// candidate supports every required device extension.
func CheckDeviceExtensions(candidate *Candidate, required []string) error {
	var missing []string
	for _, name := range required {
		if !candidate.SupportsExtension(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return failf(ErrExtensionUnsupported, "device %s is missing extensions: %s", candidate.Properties.Name, strings.Join(missing, ", "))
	}
	return nil
}

// logNames logs a sorted name list at debug level, one entry per name.
func logNames(log logrus.FieldLogger, title string, names []string) {
	sorted := append([]string(nil), names...)
	slices.Sort(sorted)
	log.WithField("count", len(sorted)).Debug(title)
	for _, name := range sorted {
		log.Debugf("\t* %s", name)
	}
}

// appendMissing appends the names not already in names.
func appendMissing(names []string, extra ...string) []string {
	for _, name := range extra {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}
