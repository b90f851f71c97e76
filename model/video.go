package model

import (
	"fmt"
	"time"
)

type YoutubeVideoID string

func (id YoutubeVideoID) URL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
}

type Phase string

const (
	PhaseFoundation Phase = "foundation"
	PhaseCore       Phase = "core"
	PhaseAdvanced   Phase = "advanced"
)

// Phases returns the curriculum stages in the order they are searched and scheduled.
func Phases() []Phase {
	return []Phase{PhaseFoundation, PhaseCore, PhaseAdvanced}
}

func (p Phase) Name() string {
	switch p {
	case PhaseFoundation:
		return "Foundation"
	case PhaseCore:
		return "Core Learning"
	case PhaseAdvanced:
		return "Advanced Application"
	default:
		return string(p)
	}
}

func (p Phase) Description() string {
	switch p {
	case PhaseFoundation:
		return "Build basic understanding and concepts"
	case PhaseCore:
		return "Deep dive into main concepts and practical examples"
	case PhaseAdvanced:
		return "Advanced topics and real-world applications"
	default:
		return ""
	}
}

// Bias is the keyword appended to the topic when searching for videos of this phase.
func (p Phase) Bias() string {
	switch p {
	case PhaseFoundation:
		return "basics introduction"
	case PhaseCore:
		return "practical real world"
	case PhaseAdvanced:
		return "advanced expert"
	default:
		return ""
	}
}

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Video struct {
	ID       YoutubeVideoID `json:"id" yaml:"id"`
	Title    string         `json:"title" yaml:"title"`
	URL      string         `json:"url" yaml:"url"`
	Channel  string         `json:"channel" yaml:"channel"`
	Duration time.Duration  `json:"duration" yaml:"duration"`
	Phase    Phase          `json:"phase" yaml:"phase"`
}

func (v Video) Seconds() int {
	return int(v.Duration / time.Second)
}
