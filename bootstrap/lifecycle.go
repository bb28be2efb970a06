package bootstrap

import (
	"time"

	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"
)

// Stage names one step of the bootstrap sequence.
type Stage string

const (
	StageContext        Stage = "context"
	StageDiagnostics    Stage = "diagnostics"
	StageSurface        Stage = "surface"
	StagePhysicalDevice Stage = "physical device"
	StageLogicalDevice  Stage = "logical device"
	StageSwapchain      Stage = "swapchain"
	StageImageViews     Stage = "image views"
)

// Timing is how long one stage took to acquire.
type Timing struct {
	Stage    Stage
	Duration time.Duration
}

type held struct {
	stage   Stage
	release func()
}

// Lifecycle releases acquired resources in reverse acquisition order. A
// resource is pushed as soon as it is acquired, so Release frees exactly
// what exists no matter where construction stopped.
type Lifecycle struct {
	log     logrus.FieldLogger
	held    []held
	timings []Timing
}

// NewLifecycle returns an empty Lifecycle logging to log.
func NewLifecycle(log logrus.FieldLogger) *Lifecycle {
	return &Lifecycle{log: log}
}

// Acquire runs acquire for stage and times it. A non-nil release returned
// by acquire is held even when acquire also fails, so partially acquired
// resources are still released.
func (l *Lifecycle) Acquire(stage Stage, acquire func() (release func(), err error)) error {
	start := hrtime.Now()
	release, err := acquire()
	elapsed := hrtime.Since(start)

	if release != nil {
		l.held = append(l.held, held{stage: stage, release: release})
	}
	if err != nil {
		return err
	}

	l.timings = append(l.timings, Timing{Stage: stage, Duration: elapsed})
	l.log.WithFields(logrus.Fields{
		"stage":   string(stage),
		"elapsed": elapsed,
	}).Debug("acquired")
	return nil
}

// Held returns the stages currently holding resources, in acquisition order.
func (l *Lifecycle) Held() []Stage {
	stages := make([]Stage, 0, len(l.held))
	for _, h := range l.held {
		stages = append(stages, h.stage)
	}
	return stages
}

// Timings returns the acquisition time of every completed stage.
func (l *Lifecycle) Timings() []Timing {
	return append([]Timing(nil), l.timings...)
}

// Release releases every held resource, most recent first. Each release
// runs once; calling Release again does nothing.
func (l *Lifecycle) Release() {
	for len(l.held) > 0 {
		last := l.held[len(l.held)-1]
		l.held = l.held[:len(l.held)-1]

		last.release()
		l.log.WithField("stage", string(last.stage)).Debug("released")
	}
}
