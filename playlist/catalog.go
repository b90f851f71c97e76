package playlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"ewintr.nl/learnpath/fetcher"
	"ewintr.nl/learnpath/model"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultVideoDuration = 30 * time.Minute
	untitledVideo        = "Untitled video"
	unknownChannel       = "Unknown channel"
	maxCandidates        = 50
)

// Shortfall records a phase that could not be filled up to its quota.
type Shortfall struct {
	Phase  model.Phase
	Wanted int
	Got    int
	Err    error
}

func (s Shortfall) String() string {
	msg := fmt.Sprintf("%s phase: found %d of %d videos", s.Phase.Name(), s.Got, s.Wanted)
	if s.Err != nil {
		msg += fmt.Sprintf(" (%v)", s.Err)
	}
	return msg
}

type Catalog struct {
	Videos     []model.Video
	Shortfalls []Shortfall
}

type CatalogBuilder struct {
	searcher        fetcher.VideoSearcher
	weights         Weights
	defaultDuration time.Duration
	logger          *slog.Logger
}

func NewCatalogBuilder(searcher fetcher.VideoSearcher, weights Weights, defaultDuration time.Duration, logger *slog.Logger) *CatalogBuilder {
	if weights == nil {
		weights = DefaultWeights()
	}
	if defaultDuration <= 0 {
		defaultDuration = DefaultVideoDuration
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CatalogBuilder{
		searcher:        searcher,
		weights:         weights,
		defaultDuration: defaultDuration,
		logger:          logger,
	}
}

// Query combines the topic with the keyword bias of the phase and the level.
func Query(topic string, phase model.Phase, level model.Level) string {
	return strings.Join(strings.Fields(fmt.Sprintf("%s %s %s", topic, phase.Bias(), level)), " ")
}

func candidateCount(quota int) int {
	n := 2 * quota
	if n < quota+5 {
		n = quota + 5
	}
	if n > maxCandidates {
		n = maxCandidates
	}
	return n
}

// Build searches once per phase and assembles a deduplicated catalog in phase
// order. Failing searches never fail the build, they end up as shortfalls.
func (b *CatalogBuilder) Build(ctx context.Context, topic string, level model.Level, targetCount int) (Catalog, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Catalog{}, errors.New("topic cannot be empty")
	}
	if targetCount <= 0 {
		return Catalog{}, fmt.Errorf("target count must be positive, got %d", targetCount)
	}
	if !level.Valid() {
		level = model.LevelBeginner
	}

	phases := model.Phases()
	quotas := Quotas(b.weights, targetCount)
	found := make([][]fetcher.SearchResult, len(phases))
	errs := make([]error, len(phases))

	g := new(errgroup.Group)
	g.SetLimit(len(phases))
	for i, phase := range phases {
		i, phase := i, phase
		if quotas[phase] == 0 {
			continue
		}
		g.Go(func() error {
			query := Query(topic, phase, level)
			results, err := b.searcher.Search(ctx, query, candidateCount(quotas[phase]))
			if err != nil {
				errs[i] = err
				return nil
			}
			found[i] = results
			return nil
		})
	}
	_ = g.Wait()

	seen := map[model.YoutubeVideoID]bool{}
	catalog := Catalog{Videos: make([]model.Video, 0, targetCount)}
	for i, phase := range phases {
		quota := quotas[phase]
		if quota == 0 {
			continue
		}
		got := 0
		for _, res := range found[i] {
			if got == quota {
				break
			}
			if res.ID == "" || seen[res.ID] {
				continue
			}
			seen[res.ID] = true
			catalog.Videos = append(catalog.Videos, b.video(res, phase))
			got++
		}

		if got < quota {
			sf := Shortfall{Phase: phase, Wanted: quota, Got: got, Err: errs[i]}
			catalog.Shortfalls = append(catalog.Shortfalls, sf)
			b.logger.Warn("phase is short of videos",
				slog.String("phase", string(phase)),
				slog.Int("wanted", quota),
				slog.Int("got", got),
			)
		}
		b.logger.Info("phase assembled", slog.String("phase", string(phase)), slog.Int("count", got))
	}

	return catalog, nil
}

func (b *CatalogBuilder) video(res fetcher.SearchResult, phase model.Phase) model.Video {
	v := model.Video{
		ID:       res.ID,
		Title:    strings.TrimSpace(res.Title),
		URL:      strings.TrimSpace(res.URL),
		Channel:  strings.TrimSpace(res.Channel),
		Duration: b.defaultDuration,
		Phase:    phase,
	}
	if res.Duration != nil && *res.Duration > 0 {
		v.Duration = *res.Duration
	}
	if v.Title == "" {
		v.Title = untitledVideo
	}
	if v.URL == "" {
		v.URL = res.ID.URL()
	}
	if v.Channel == "" {
		v.Channel = unknownChannel
	}

	return v
}
