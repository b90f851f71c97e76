package model

import (
	"time"

	"github.com/google/uuid"
)

type PlanStatus string

const (
	PlanStatusNew         PlanStatus = "new"
	PlanStatusHasCatalog  PlanStatus = "has_catalog"
	PlanStatusHasSchedule PlanStatus = "has_schedule"
	PlanStatusHasNotes    PlanStatus = "has_notes"
	PlanStatusRendered    PlanStatus = "rendered"
	PlanStatusDelivered   PlanStatus = "delivered"
	PlanStatusDone        PlanStatus = "done"
)

// Profile is what the intake step collects from the user.
type Profile struct {
	Topic      string       `json:"topic"`
	Email      string       `json:"email,omitempty"`
	Background string       `json:"background"`
	Commitment string       `json:"commitment"`
	Level      Level        `json:"level"`
	Budget     WeeklyBudget `json:"budget"`
}

type Plan struct {
	ID           uuid.UUID     `json:"id"`
	Status       PlanStatus    `json:"status"`
	Profile      Profile       `json:"profile"`
	Catalog      []Video       `json:"catalog"`
	Schedule     []DaySchedule `json:"schedule"`
	Notes        string        `json:"notes"`
	DocumentPath string        `json:"document_path,omitempty"`
	SidecarPath  string        `json:"sidecar_path,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func NewPlan(profile Profile) *Plan {
	now := time.Now()
	return &Plan{
		ID:        uuid.New(),
		Status:    PlanStatusNew,
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *Plan) Warn(msg string) {
	p.Warnings = append(p.Warnings, msg)
}

// CatalogByPhase groups the catalog per phase, keeping the fixed phase order.
func (p *Plan) CatalogByPhase() map[Phase][]Video {
	res := make(map[Phase][]Video, len(Phases()))
	for _, v := range p.Catalog {
		res[v.Phase] = append(res[v.Phase], v)
	}
	return res
}

func (p *Plan) TotalDuration() time.Duration {
	var total time.Duration
	for _, v := range p.Catalog {
		total += v.Duration
	}
	return total
}
