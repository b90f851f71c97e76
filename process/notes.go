package process

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ewintr.nl/learnpath/fetcher"
	"ewintr.nl/learnpath/model"
	"golang.org/x/exp/slog"
)

const notesPrompt = `Topic: %s
Background: %s
Level: %s
Commitment: %s (about %.1f hours per week, preferred style: %s)

Generate a comprehensive learning path with:
1. Prerequisites
2. Learning objectives
3. Step-by-step curriculum
4. Recommended resources
5. Practice exercises
6. Timeline estimates
`

type NoteWriter struct {
	generator fetcher.TextGenerator
	logger    *slog.Logger
}

// NewNoteWriter accepts a nil generator, in which case every plan gets the
// static outline.
func NewNoteWriter(generator fetcher.TextGenerator, logger *slog.Logger) *NoteWriter {
	return &NoteWriter{
		generator: generator,
		logger:    logger,
	}
}

func (n *NoteWriter) Name() string {
	return "note writer"
}

func (n *NoteWriter) Do(ctx context.Context, plan *model.Plan) error {
	plan.Status = model.PlanStatusHasNotes
	if n.generator == nil {
		plan.Notes = FallbackNotes(plan.Profile)
		plan.Warn("AI study notes are not configured, a generic outline was used instead.")
		return nil
	}

	notes, err := n.generator.Generate(ctx, NotesPrompt(plan.Profile))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !errors.Is(err, model.ErrGenerationUnavailable) {
			err = fmt.Errorf("%w: %v", model.ErrGenerationUnavailable, err)
		}
		n.logger.Warn("falling back to static notes", slog.String("plan", plan.ID.String()), slog.String("error", err.Error()))
		plan.Notes = FallbackNotes(plan.Profile)
		plan.Warn("AI study notes were unavailable, a generic outline was used instead.")
		return nil
	}

	plan.Notes = notes
	return nil
}

func NotesPrompt(profile model.Profile) string {
	style := profile.Budget.PreferredStyle
	if style == "" {
		style = "no preference"
	}
	return fmt.Sprintf(notesPrompt, profile.Topic, profile.Background, profile.Level, profile.Commitment, profile.Budget.HoursPerWeek, style)
}

func FallbackNotes(profile model.Profile) string {
	topic := profile.Topic
	var b strings.Builder
	fmt.Fprintf(&b, "LEARNING PATH: %s\n\n", strings.ToUpper(topic))
	b.WriteString(`PREREQUISITES:
- Basic computer literacy
- Willingness to learn and practice

LEARNING OBJECTIVES:
- Understand fundamental concepts
- Build practical skills
- Complete hands-on projects
- Gain confidence in the subject

`)
	fmt.Fprintf(&b, `CURRICULUM:
Week 1-2: Fundamentals
- Introduction to %s
- Basic concepts and terminology
- Setting up your environment

Week 3-4: Core Concepts
- Key principles and methods
- Simple examples and exercises

Week 5-6: Practical Application
- Building small projects
- Problem-solving exercises
- Best practices and tips

Week 7-8: Advanced Topics
- Complex concepts
- Real-world applications
- Next steps and resources

`, topic)
	b.WriteString(`RECOMMENDED RESOURCES:
- Official documentation
- Online tutorials and courses
- Practice platforms
- Community forums

PRACTICE EXERCISES:
- Daily challenges
- Mini-projects
- Reviews with peers

TIPS FOR SUCCESS:
- Practice regularly
- Take notes while watching
- Review the previous day before starting new videos
- Stay consistent with your daily schedule

`)
	fmt.Fprintf(&b, "Your background: %s\n", profile.Background)
	fmt.Fprintf(&b, "Your commitment: %s\n", profile.Commitment)

	return b.String()
}
