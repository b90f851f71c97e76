package process

import (
	"context"
	"time"

	"ewintr.nl/learnpath/model"
	"ewintr.nl/learnpath/render"
)

type DocumentRenderer interface {
	Render(doc render.Document) (render.Artifact, error)
}

type Publisher struct {
	renderer DocumentRenderer
	now      func() time.Time
}

func NewPublisher(renderer DocumentRenderer) *Publisher {
	return &Publisher{
		renderer: renderer,
		now:      time.Now,
	}
}

func (p *Publisher) Name() string {
	return "publisher"
}

func (p *Publisher) Do(_ context.Context, plan *model.Plan) error {
	art, err := p.renderer.Render(render.DocumentFromPlan(plan, p.now()))
	if err != nil {
		return err
	}

	plan.DocumentPath = art.PDFPath
	plan.SidecarPath = art.SidecarPath
	plan.Status = model.PlanStatusRendered

	return nil
}
