package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ironsheep/filmgrade/internal/frame"
	"github.com/ironsheep/filmgrade/internal/stage"
)

// ErrNilStage is returned when a nil stage is added to a pipeline.
var ErrNilStage = errors.New("pipeline: nil stage")

// Pipeline is an immutable ordered list of stages.
type Pipeline struct {
	stages []stage.Stage
}

// New returns a pipeline running stages in the given order. The slice is
// copied; nil stages are rejected.
func New(stages ...stage.Stage) (*Pipeline, error) {
	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilStage, i)
		}
	}
	cp := make([]stage.Stage, len(stages))
	copy(cp, stages)
	return &Pipeline{stages: cp}, nil
}

// Stages returns a copy of the stage list.
func (p *Pipeline) Stages() []stage.Stage {
	cp := make([]stage.Stage, len(p.stages))
	copy(cp, p.stages)
	return cp
}

// Len returns the number of stages.
func (p *Pipeline) Len() int { return len(p.stages) }

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Process applies every stage to img in order. The context is checked before
// each stage; a stage that has started always runs to completion. On error
// the frame holds the output of the stages that completed.
func (p *Pipeline) Process(ctx context.Context, img *frame.Frame) error {
	if img == nil {
		return errors.New("pipeline: nil frame")
	}

	log := Logger()
	total := time.Now()
	for i, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline: stopped before stage %d (%s): %w", i, s.Name(), err)
		}

		start := time.Now()
		if err := s.Process(img); err != nil {
			return fmt.Errorf("pipeline: stage %d (%s): %w", i, s.Name(), err)
		}
		log.Debug("stage complete",
			"index", i,
			"stage", s.Name(),
			"pixels", img.Len(),
			"elapsed", time.Since(start))
	}
	log.Debug("pipeline complete", "stages", len(p.stages), "elapsed", time.Since(total))
	return nil
}
