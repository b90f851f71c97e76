package playlist

import (
	"math"

	"ewintr.nl/learnpath/model"
)

// VideosPerDay works out how many videos fit in an average day of the budget.
// A day is never shorter than one average video, so the result is at least 1.
func VideosPerDay(catalog []model.Video, budget model.WeeklyBudget) (int, error) {
	if err := budget.Validate(); err != nil {
		return 0, err
	}
	if len(catalog) == 0 {
		return 1, nil
	}

	total := 0
	for _, v := range catalog {
		total += v.Seconds()
	}
	if total <= 0 {
		return len(catalog), nil
	}

	weekly := budget.HoursPerWeek * 3600
	days := len(catalog)
	if avg := float64(total) / float64(len(catalog)); weekly/7 >= avg {
		days = int(math.Ceil(float64(total) * 7 / weekly))
	}
	if days < 1 {
		days = 1
	}
	perDay := (len(catalog) + days - 1) / days
	if perDay < 1 {
		perDay = 1
	}

	return perDay, nil
}

// Partition cuts the catalog into consecutive days of perDay videos. The last
// day may hold fewer.
func Partition(catalog []model.Video, perDay int) []model.DaySchedule {
	if perDay < 1 {
		perDay = 1
	}
	days := make([]model.DaySchedule, 0, (len(catalog)+perDay-1)/perDay)
	for start := 0; start < len(catalog); start += perDay {
		end := start + perDay
		if end > len(catalog) {
			end = len(catalog)
		}
		videos := make([]model.Video, end-start)
		copy(videos, catalog[start:end])

		day := model.DaySchedule{
			DayIndex: len(days) + 1,
			Videos:   videos,
		}
		for _, v := range videos {
			day.TotalSeconds += v.Seconds()
		}
		days = append(days, day)
	}

	return days
}

// BuildSchedule validates the budget, then spreads the catalog over days in
// catalog order.
func BuildSchedule(catalog []model.Video, budget model.WeeklyBudget) ([]model.DaySchedule, error) {
	perDay, err := VideosPerDay(catalog, budget)
	if err != nil {
		return nil, err
	}

	return Partition(catalog, perDay), nil
}
