package intake

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	"ewintr.nl/learnpath/model"
)

var (
	ErrNoHours = errors.New("could not find a number of hours in the answer")

	// an amount with an optional unit and the period right after it, as in "30 min/day"
	hoursRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)\s*(hours?|hrs?|h|minutes?|mins?|m)?\b(?:\s*(?:per|a|an|each|every|/)\s*(day|week)s?\b|\s+(daily|weekly)\b)?`)

	beginnerRe     = regexp.MustCompile(`(?i)\b(beginners?|absolute|never|new|no experience|none)\b`)
	advancedRe     = regexp.MustCompile(`(?i)\b(advanced|experts?|professionals?|senior)\b`)
	intermediateRe = regexp.MustCompile(`(?i)\b(intermediate|some|familiar|basics?)\b`)

	numberWords = map[string]float64{
		"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
		"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
	}
)

// Answers holds the raw replies to the intake questions.
type Answers struct {
	Topic      string `json:"topic"`
	Email      string `json:"email"`
	Background string `json:"background"`
	Commitment string `json:"commitment"`
}

func ParseProfile(a Answers) (model.Profile, error) {
	topic := strings.TrimSpace(a.Topic)
	if topic == "" {
		return model.Profile{}, errors.New("topic cannot be empty")
	}
	email, err := ParseEmail(a.Email)
	if err != nil {
		return model.Profile{}, err
	}
	hours, err := ParseHoursPerWeek(a.Commitment)
	if err != nil {
		return model.Profile{}, err
	}
	budget := model.WeeklyBudget{
		HoursPerWeek:   hours,
		PreferredStyle: DetectStyle(a.Commitment),
	}
	if err := budget.Validate(); err != nil {
		return model.Profile{}, err
	}

	return model.Profile{
		Topic:      topic,
		Email:      email,
		Background: strings.TrimSpace(a.Background),
		Commitment: strings.TrimSpace(a.Commitment),
		Level:      DetectLevel(a.Background),
		Budget:     budget,
	}, nil
}

// ParseEmail returns the bare address, or an empty string when no email was
// given.
func ParseEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", fmt.Errorf("invalid email address %q: %w", s, err)
	}
	return addr.Address, nil
}

func DetectLevel(background string) model.Level {
	switch {
	case beginnerRe.MatchString(background):
		return model.LevelBeginner
	case advancedRe.MatchString(background):
		return model.LevelAdvanced
	case intermediateRe.MatchString(background):
		return model.LevelIntermediate
	default:
		return model.LevelBeginner
	}
}

// ParseHoursPerWeek reads the amount of time in the answer. An amount with a
// unit or a period wins over a bare number. Amounts given per day are
// multiplied by seven.
func ParseHoursPerWeek(commitment string) (float64, error) {
	matches := hoursRe.FindAllStringSubmatch(commitment, -1)
	if len(matches) == 0 {
		return 0, ErrNoHours
	}
	m := matches[0]
	for _, cand := range matches {
		if cand[2] != "" || cand[3] != "" || cand[4] != "" {
			m = cand
			break
		}
	}

	n, ok := numberWords[strings.ToLower(m[1])]
	if !ok {
		var err error
		if n, err = strconv.ParseFloat(m[1], 64); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrNoHours, err)
		}
	}
	if unit := strings.ToLower(m[2]); strings.HasPrefix(unit, "m") {
		n /= 60
	}

	if perDay(commitment, strings.ToLower(m[3]+m[4])) {
		n *= 7
	}

	return n, nil
}

// perDay uses the period next to the amount. Without one, the answer counts
// as daily only when it mentions days and never weeks.
func perDay(commitment, period string) bool {
	switch period {
	case "day", "daily":
		return true
	case "week", "weekly":
		return false
	}
	c := strings.ToLower(commitment)
	if strings.Contains(c, "week") {
		return false
	}
	return containsAny(c, "per day", "a day", "daily", "each day", "every day", "/day")
}

func DetectStyle(commitment string) string {
	c := strings.ToLower(commitment)
	var styles []string
	if containsAny(c, "reading", "books", "articles", "docs") {
		styles = append(styles, "reading")
	}
	if containsAny(c, "video", "watch") {
		styles = append(styles, "videos")
	}
	if containsAny(c, "hands-on", "hands on", "practice", "project", "exercise") {
		styles = append(styles, "hands-on")
	}
	if len(styles) == 0 {
		return "mixed"
	}
	return strings.Join(styles, ", ")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
