package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type WeeklyBudget struct {
	HoursPerWeek   float64 `json:"hours_per_week" yaml:"hours_per_week"`
	PreferredStyle string  `json:"preferred_style" yaml:"preferred_style"`
}

func (b WeeklyBudget) Validate() error {
	if math.IsNaN(b.HoursPerWeek) || math.IsInf(b.HoursPerWeek, 0) || b.HoursPerWeek <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidBudget, b.HoursPerWeek)
	}
	return nil
}

type DaySchedule struct {
	DayIndex     int     `json:"day_index" yaml:"day"`
	Videos       []Video `json:"videos" yaml:"videos"`
	TotalSeconds int     `json:"total_seconds" yaml:"total_seconds"`
}

func (d DaySchedule) Total() time.Duration {
	return time.Duration(d.TotalSeconds) * time.Second
}

// Phases lists the distinct phases covered on this day, in catalog order.
func (d DaySchedule) Phases() []Phase {
	var phases []Phase
	for _, v := range d.Videos {
		if len(phases) == 0 || phases[len(phases)-1] != v.Phase {
			phases = append(phases, v.Phase)
		}
	}
	return phases
}

func (d DaySchedule) Focus() string {
	names := make([]string, 0, 2)
	for _, p := range d.Phases() {
		names = append(names, p.Name())
	}
	return fmt.Sprintf("Complete %d video(s) from %s", len(d.Videos), strings.Join(names, " and "))
}
