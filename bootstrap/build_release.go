//go:build release

package bootstrap

// DebugBuild enables diagnostic layers, the diagnostics messenger and
// verbose enumeration output by default.
const DebugBuild = false
