package process

import (
	"context"

	"ewintr.nl/learnpath/model"
	"ewintr.nl/learnpath/playlist"
	"golang.org/x/exp/slog"
)

type CatalogBuilder interface {
	Build(ctx context.Context, topic string, level model.Level, targetCount int) (playlist.Catalog, error)
}

type Cataloger struct {
	builder CatalogBuilder
	size    int
	logger  *slog.Logger
}

func NewCataloger(builder CatalogBuilder, size int, logger *slog.Logger) *Cataloger {
	return &Cataloger{
		builder: builder,
		size:    size,
		logger:  logger,
	}
}

func (c *Cataloger) Name() string {
	return "cataloger"
}

func (c *Cataloger) Do(ctx context.Context, plan *model.Plan) error {
	catalog, err := c.builder.Build(ctx, plan.Profile.Topic, plan.Profile.Level, c.size)
	if err != nil {
		return err
	}
	for _, sf := range catalog.Shortfalls {
		plan.Warn(sf.String())
	}
	if len(catalog.Videos) == 0 {
		plan.Warn("No videos found. Continuing without video resources.")
	}

	plan.Catalog = catalog.Videos
	plan.Status = model.PlanStatusHasCatalog
	c.logger.Info("catalog built", slog.String("plan", plan.ID.String()), slog.Int("videos", len(catalog.Videos)), slog.Int("wanted", c.size))

	return nil
}
