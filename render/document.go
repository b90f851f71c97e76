package render

import (
	"fmt"
	"time"

	"ewintr.nl/learnpath/model"
)

type Field struct {
	Label string
	Value string
}

type PhaseRow struct {
	Phase       model.Phase
	Name        string
	Description string
	Videos      int
}

// Document is everything that ends up in the PDF. It is built from a plan
// once the schedule is complete.
type Document struct {
	Title       string
	Topic       string
	Profile     []Field
	Phases      []PhaseRow
	Schedule    []model.DaySchedule
	TotalVideos int
	TotalTime   time.Duration
	Notes       string
	Warnings    []string
	GeneratedAt time.Time
}

func DocumentFromPlan(plan *model.Plan, now time.Time) Document {
	profile := plan.Profile
	doc := Document{
		Title: fmt.Sprintf("Personalized Learning Path: %s", profile.Topic),
		Topic: profile.Topic,
		Profile: []Field{
			{Label: "Background", Value: profile.Background},
			{Label: "Level", Value: string(profile.Level)},
			{Label: "Commitment", Value: profile.Commitment},
			{Label: "Hours per week", Value: fmt.Sprintf("%.1f", profile.Budget.HoursPerWeek)},
			{Label: "Preferred style", Value: profile.Budget.PreferredStyle},
		},
		Schedule:    plan.Schedule,
		TotalVideos: len(plan.Catalog),
		TotalTime:   plan.TotalDuration(),
		Notes:       plan.Notes,
		Warnings:    plan.Warnings,
		GeneratedAt: now,
	}

	byPhase := plan.CatalogByPhase()
	for _, p := range model.Phases() {
		doc.Phases = append(doc.Phases, PhaseRow{
			Phase:       p,
			Name:        p.Name(),
			Description: p.Description(),
			Videos:      len(byPhase[p]),
		})
	}

	return doc
}

func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
