package main

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"
)

// Config is read from the environment; envy also picks up a .env file in
// the working directory.
type Config struct {
	AppName     string
	Width       int32
	Height      int32
	LogLevel    log.Level
	Diagnostics bool

	ListDevices bool
}

func LoadConfig(debugBuild bool) (Config, error) {
	cfg := Config{
		AppName: envy.Get("VKBOOTSTRAP_APP_NAME", "Hello Triangle"),
	}

	width, err := strconv.ParseInt(envy.Get("VKBOOTSTRAP_WIDTH", "800"), 10, 32)
	if err != nil || width <= 0 {
		return cfg, errors.Newf("VKBOOTSTRAP_WIDTH: invalid window width %q", envy.Get("VKBOOTSTRAP_WIDTH", ""))
	}
	cfg.Width = int32(width)

	height, err := strconv.ParseInt(envy.Get("VKBOOTSTRAP_HEIGHT", "600"), 10, 32)
	if err != nil || height <= 0 {
		return cfg, errors.Newf("VKBOOTSTRAP_HEIGHT: invalid window height %q", envy.Get("VKBOOTSTRAP_HEIGHT", ""))
	}
	cfg.Height = int32(height)

	cfg.LogLevel, err = log.ParseLevel(envy.Get("VKBOOTSTRAP_LOG_LEVEL", "info"))
	if err != nil {
		return cfg, errors.Wrap(err, "VKBOOTSTRAP_LOG_LEVEL")
	}

	cfg.Diagnostics, err = strconv.ParseBool(envy.Get("VKBOOTSTRAP_DIAGNOSTICS", strconv.FormatBool(debugBuild)))
	if err != nil {
		return cfg, errors.Wrap(err, "VKBOOTSTRAP_DIAGNOSTICS")
	}

	return cfg, nil
}

// ProcessCommandLineArgs applies the command line on top of the
// environment. It reports false when the program should exit.
func (c *Config) ProcessCommandLineArgs(args []string) (bool, error) {
	for _, arg := range args {
		switch arg {
		case "--list-devices":
			c.ListDevices = true
		case "--help", "-h":
			printUsage()
			return false, nil
		default:
			return false, errors.Newf("unrecognized option: %s (use --help or -h for the option list)", arg)
		}
	}
	return true, nil
}

func printUsage() {
	fmt.Println("Usage: vkbootstrap [options]")
	fmt.Println("\nOptions")
	fmt.Println("\t--list-devices")
	fmt.Println("\t\tReport the suitability of every physical device and exit")
	fmt.Println("\t--help, -h")
	fmt.Println("\t\tShow this help")
	fmt.Println("\nEnvironment")
	fmt.Println("\tVKBOOTSTRAP_APP_NAME      application name reported to the driver")
	fmt.Println("\tVKBOOTSTRAP_WIDTH         window width (default 800)")
	fmt.Println("\tVKBOOTSTRAP_HEIGHT        window height (default 600)")
	fmt.Println("\tVKBOOTSTRAP_LOG_LEVEL     panic, fatal, error, warn, info, debug or trace")
	fmt.Println("\tVKBOOTSTRAP_DIAGNOSTICS   enable validation layers and the debug messenger")
}
