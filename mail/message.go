package mail

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"ewintr.nl/learnpath/model"
)

var bodyTmpl = template.Must(template.New("body").Parse(`Hello!

Attached is your personalized learning path for {{.Topic}}.

Your Learning Profile:
- Background: {{.Background}}
- Commitment: {{.Commitment}}

Daily YouTube Learning Plan:
{{- if .Videos}}
- Total Videos: {{.Videos}}
- Estimated Time: {{printf "%.1f" .Hours}} hours
- Difficulty Level: {{.Level}}
- Daily Schedule: {{.Days}} days

Your daily learning schedule is included in the PDF attachment.
Each day has a short list of videos to watch and practice with.
{{- else}}
- No YouTube videos were found for this topic.
{{- end}}
{{if .Warnings}}
Heads up:
{{- range .Warnings}}
- {{.}}
{{- end}}
{{end}}
Open the PDF and begin with Day 1. Best of luck with {{.Topic}}!
- Learning Path Bot

---
Generated on: {{.Generated}}
`))

// PlanDelivery composes the email for a rendered plan.
func PlanDelivery(plan *model.Plan, now time.Time) (Delivery, error) {
	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, struct {
		Topic      string
		Background string
		Commitment string
		Level      string
		Videos     int
		Hours      float64
		Days       int
		Warnings   []string
		Generated  string
	}{
		Topic:      plan.Profile.Topic,
		Background: plan.Profile.Background,
		Commitment: plan.Profile.Commitment,
		Level:      string(plan.Profile.Level),
		Videos:     len(plan.Catalog),
		Hours:      plan.TotalDuration().Hours(),
		Days:       len(plan.Schedule),
		Warnings:   plan.Warnings,
		Generated:  now.Format("January 2, 2006 at 03:04 PM"),
	}); err != nil {
		return Delivery{}, fmt.Errorf("failed to compose email: %w", err)
	}

	return Delivery{
		To:             plan.Profile.Email,
		Subject:        fmt.Sprintf("Your %s Learning Path - Daily YouTube Playlist Included", plan.Profile.Topic),
		Body:           body.String(),
		AttachmentPath: plan.DocumentPath,
	}, nil
}
