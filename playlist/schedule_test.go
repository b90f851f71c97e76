package playlist

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"ewintr.nl/learnpath/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogOf(counts map[model.Phase]int, d time.Duration) []model.Video {
	var videos []model.Video
	for _, p := range model.Phases() {
		for i := 0; i < counts[p]; i++ {
			videos = append(videos, model.Video{
				ID:       model.YoutubeVideoID(fmt.Sprintf("%s-%d", p, i)),
				Phase:    p,
				Duration: d,
			})
		}
	}
	return videos
}

func flatten(days []model.DaySchedule) []model.Video {
	var videos []model.Video
	for _, d := range days {
		videos = append(videos, d.Videos...)
	}
	return videos
}

func TestBuildScheduleTwoHoursAWeek(t *testing.T) {
	catalog := catalogOf(map[model.Phase]int{
		model.PhaseFoundation: 5,
		model.PhaseCore:       4,
		model.PhaseAdvanced:   3,
	}, 600*time.Second)

	perDay, err := VideosPerDay(catalog, model.WeeklyBudget{HoursPerWeek: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, perDay)

	days, err := BuildSchedule(catalog, model.WeeklyBudget{HoursPerWeek: 2})
	require.NoError(t, err)
	require.Len(t, days, 6)
	assert.Equal(t, catalog[0:2], days[0].Videos)
	assert.Equal(t, []model.Phase{model.PhaseFoundation}, days[0].Phases())
	assert.Equal(t, catalog[10:12], days[5].Videos)
	assert.Equal(t, []model.Phase{model.PhaseAdvanced}, days[5].Phases())
	for i, d := range days {
		assert.Equal(t, i+1, d.DayIndex)
		assert.Equal(t, 1200, d.TotalSeconds)
	}
}

func TestPartition(t *testing.T) {
	for l := 0; l <= 25; l++ {
		for d := 1; d <= 8; d++ {
			catalog := catalogOf(map[model.Phase]int{model.PhaseCore: l}, time.Minute)
			days := Partition(catalog, d)

			assert.Len(t, days, (l+d-1)/d, "l=%d d=%d", l, d)
			for i, day := range days {
				assert.Equal(t, i+1, day.DayIndex)
				assert.LessOrEqual(t, len(day.Videos), d)
				assert.NotEmpty(t, day.Videos)
				assert.Equal(t, 60*len(day.Videos), day.TotalSeconds)
			}
			if l > 0 {
				assert.Equal(t, catalog, flatten(days), "l=%d d=%d", l, d)
			}
		}
	}
}

func TestPartitionSingleDay(t *testing.T) {
	catalog := catalogOf(map[model.Phase]int{model.PhaseFoundation: 3}, 5*time.Minute)

	days := Partition(catalog, 5)
	require.Len(t, days, 1)
	assert.Equal(t, catalog, days[0].Videos)
	assert.Equal(t, 900, days[0].TotalSeconds)
}

func TestPartitionClampsPerDay(t *testing.T) {
	catalog := catalogOf(map[model.Phase]int{model.PhaseFoundation: 3}, time.Minute)
	assert.Len(t, Partition(catalog, 0), 3)
	assert.Len(t, Partition(catalog, -2), 3)
}

func TestBuildScheduleEmptyCatalog(t *testing.T) {
	days, err := BuildSchedule(nil, model.WeeklyBudget{HoursPerWeek: 5})
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestBuildScheduleInvalidBudget(t *testing.T) {
	catalog := catalogOf(map[model.Phase]int{model.PhaseFoundation: 3}, time.Minute)
	for _, hours := range []float64{0, -1} {
		days, err := BuildSchedule(catalog, model.WeeklyBudget{HoursPerWeek: hours})
		assert.True(t, errors.Is(err, model.ErrInvalidBudget))
		assert.Nil(t, days)

		_, err = BuildSchedule(nil, model.WeeklyBudget{HoursPerWeek: hours})
		assert.True(t, errors.Is(err, model.ErrInvalidBudget))
	}
}

func TestVideosPerDay(t *testing.T) {
	for _, tc := range []struct {
		name   string
		count  int
		length time.Duration
		hours  float64
		exp    int
	}{
		{name: "budget below one video a day", count: 12, length: 10 * time.Minute, hours: 0.5, exp: 1},
		{name: "everything in one day", count: 12, length: 10 * time.Minute, hours: 100, exp: 12},
		{name: "one hour a day", count: 10, length: 30 * time.Minute, hours: 7, exp: 2},
		{name: "uneven", count: 7, length: 20 * time.Minute, hours: 3.5, exp: 2},
		{name: "zero length videos", count: 4, length: 0, hours: 1, exp: 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			catalog := catalogOf(map[model.Phase]int{model.PhaseCore: tc.count}, tc.length)
			perDay, err := VideosPerDay(catalog, model.WeeklyBudget{HoursPerWeek: tc.hours})
			require.NoError(t, err)
			assert.Equal(t, tc.exp, perDay)
		})
	}
}
