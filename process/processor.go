package process

import (
	"context"
	"fmt"

	"ewintr.nl/learnpath/model"
	"ewintr.nl/learnpath/storage"
	"golang.org/x/exp/slog"
)

type PlanProcessor interface {
	Name() string
	Do(ctx context.Context, plan *model.Plan) error
}

type Processors struct {
	procs map[model.PlanStatus]PlanProcessor
}

func NewProcessors(cataloger *Cataloger, scheduler *Scheduler, noteWriter *NoteWriter, publisher *Publisher, deliverer *Deliverer) *Processors {
	procs := map[model.PlanStatus]PlanProcessor{}
	if cataloger != nil {
		procs[model.PlanStatusNew] = cataloger
	}
	if scheduler != nil {
		procs[model.PlanStatusHasCatalog] = scheduler
	}
	if noteWriter != nil {
		procs[model.PlanStatusHasSchedule] = noteWriter
	}
	if publisher != nil {
		procs[model.PlanStatusHasNotes] = publisher
	}
	if deliverer != nil {
		procs[model.PlanStatusRendered] = deliverer
	}

	return &Processors{procs: procs}
}

// Next returns the processor that moves the plan on from its current status,
// or nil when the plan is finished.
func (p *Processors) Next(plan *model.Plan) PlanProcessor {
	proc, ok := p.procs[plan.Status]
	if !ok {
		return nil
	}

	return proc
}

type Pipeline struct {
	in      chan *model.Plan
	procs   *Processors
	logger  *slog.Logger
	storage storage.PlanRepository
}

func NewPipeline(in chan *model.Plan, processors *Processors, planRepo storage.PlanRepository, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		in:      in,
		procs:   processors,
		storage: planRepo,
		logger:  logger,
	}
}

// Run processes queued plans until the queue is closed or ctx is done.
func (p *Pipeline) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case plan, ok := <-p.in:
			if !ok {
				return
			}
			if err := p.Process(ctx, plan); err != nil {
				p.logger.Error("failed to process plan", slog.String("plan", plan.ID.String()), slog.String("error", err.Error()))
			}
		}
	}
}

func (p *Pipeline) Process(ctx context.Context, plan *model.Plan) error {
	p.logger.Info("processing plan", slog.String("plan", plan.ID.String()), slog.String("topic", plan.Profile.Topic))
	if err := p.storage.Save(plan); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}

	for {
		next := p.procs.Next(plan)
		if next == nil {
			p.logger.Info("no more processors for plan", slog.String("plan", plan.ID.String()), slog.String("status", string(plan.Status)))
			return nil
		}

		p.logger.Info("processing plan", slog.String("plan", plan.ID.String()), slog.String("processor", next.Name()))
		if err := next.Do(ctx, plan); err != nil {
			return fmt.Errorf("%s: %w", next.Name(), err)
		}
		if err := p.storage.Save(plan); err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
	}
}
