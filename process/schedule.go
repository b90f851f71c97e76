package process

import (
	"context"

	"ewintr.nl/learnpath/model"
	"ewintr.nl/learnpath/playlist"
)

type Scheduler struct{}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Name() string {
	return "scheduler"
}

func (s *Scheduler) Do(_ context.Context, plan *model.Plan) error {
	days, err := playlist.BuildSchedule(plan.Catalog, plan.Profile.Budget)
	if err != nil {
		return err
	}

	plan.Schedule = days
	plan.Status = model.PlanStatusHasSchedule

	return nil
}
