// Command vkbootstrap opens a window, brings up a complete device context
// for it and waits until the window is closed.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/bootstrap/bootstrap"
	"github.com/vkngwrapper/bootstrap/vkng"
)

func main() {
	runtime.LockOSThread()

	cfg, err := LoadConfig(bootstrap.DebugBuild)
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
	proceed, err := cfg.ProcessCommandLineArgs(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	if !proceed {
		return
	}

	if err := run(cfg); err != nil {
		log.Fatalf("%+v\n", err)
	}
}

func run(cfg Config) error {
	logger := log.New()
	logger.SetLevel(cfg.LogLevel)

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return errors.Wrap(err, "init sdl")
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(cfg.AppName, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, cfg.Width, cfg.Height, sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	defer window.Destroy()

	loader, err := vkng.NewSDLLoader()
	if err != nil {
		return err
	}
	surfaceProvider := vkng.NewWindow(window)

	opts := bootstrap.DefaultOptions()
	opts.ApplicationName = cfg.AppName
	opts.EnableDiagnostics = cfg.Diagnostics
	opts.Logger = logger

	if cfg.ListDevices {
		verdicts, err := bootstrap.Probe(loader, surfaceProvider, opts)
		if err != nil {
			return err
		}
		printVerdicts(verdicts)
		return nil
	}

	ctx, err := bootstrap.New(loader, surfaceProvider, opts)
	if err != nil {
		return err
	}
	defer ctx.Destroy()

	summary := ctx.Summary()
	fmt.Printf("%s on %s (%s): %d images of %s, %s, %s\n",
		summary.Session, summary.DeviceName, summary.DeviceType,
		summary.ImageCount, summary.Format, summary.Extent, summary.PresentMode)

	waitForQuit()
	return nil
}

func waitForQuit() {
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return
			}
		}
		sdl.Delay(16)
	}
}

func printVerdicts(verdicts []bootstrap.Verdict) {
	if len(verdicts) == 0 {
		fmt.Println("No physical devices found")
		return
	}

	for _, verdict := range verdicts {
		candidate := verdict.Candidate
		status := "suitable"
		if !verdict.Suitable() {
			reasons := make([]string, 0, len(verdict.Failures))
			for _, reason := range verdict.Failures {
				reasons = append(reasons, string(reason))
			}
			status = "unsuitable: " + strings.Join(reasons, "; ")
		}

		fmt.Printf("[%d] %s (%s) %s\n", candidate.Index, candidate.Properties.Name, candidate.Properties.Type, status)
		if verdict.Err != nil {
			fmt.Printf("\t%v\n", verdict.Err)
		}
		if verdict.Indices.IsComplete() {
			fmt.Printf("\tgraphics family %d, present family %d\n", *verdict.Indices.GraphicsFamily, *verdict.Indices.PresentFamily)
		}
	}
}
