//go:build !release

package bootstrap

// DebugBuild enables diagnostic layers, the diagnostics messenger and
// verbose enumeration output by default. Build with -tags release to turn
// them off.
const DebugBuild = true
