package render

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type sidecarVideo struct {
	Title   string `yaml:"title"`
	URL     string `yaml:"url"`
	Channel string `yaml:"channel"`
	Phase   string `yaml:"phase"`
	Minutes int    `yaml:"minutes"`
}

type sidecarDay struct {
	Day     int            `yaml:"day"`
	Focus   string         `yaml:"focus"`
	Minutes int            `yaml:"minutes"`
	Videos  []sidecarVideo `yaml:"videos"`
}

type sidecar struct {
	Topic       string       `yaml:"topic"`
	GeneratedAt time.Time    `yaml:"generated_at"`
	TotalVideos int          `yaml:"total_videos"`
	Days        []sidecarDay `yaml:"days"`
}

// WriteSidecar stores the schedule as YAML next to the PDF, so it can be
// imported into calendars and trackers.
func WriteSidecar(path string, doc Document) error {
	sc := sidecar{
		Topic:       doc.Topic,
		GeneratedAt: doc.GeneratedAt,
		TotalVideos: doc.TotalVideos,
		Days:        make([]sidecarDay, 0, len(doc.Schedule)),
	}
	for _, day := range doc.Schedule {
		sd := sidecarDay{
			Day:     day.DayIndex,
			Focus:   day.Focus(),
			Minutes: day.TotalSeconds / 60,
		}
		for _, v := range day.Videos {
			sd.Videos = append(sd.Videos, sidecarVideo{
				Title:   v.Title,
				URL:     v.URL,
				Channel: v.Channel,
				Phase:   string(v.Phase),
				Minutes: v.Seconds() / 60,
			})
		}
		sc.Days = append(sc.Days, sd)
	}

	body, err := yaml.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}

	return nil
}
