package intake

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	KeyTopic      = "topic"
	KeyEmail      = "email"
	KeyBackground = "background"
	KeyCommitment = "commitment"
)

var (
	ErrAborted = errors.New("intake aborted")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	questionStyle = lipgloss.NewStyle().Bold(true)
	answeredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

type Question struct {
	Key         string
	Prompt      string
	Placeholder string
	Default     string
	// DefaultFrom names an earlier question whose answer is the default
	DefaultFrom string
	Secret      bool
	Validate    func(string) error
}

// Questions are asked in this order.
func Questions() []Question {
	return []Question{
		{
			Key:      KeyTopic,
			Prompt:   "What do you want to learn?",
			Default:  "Python",
			Validate: nonEmpty("topic"),
		},
		{
			Key:         KeyEmail,
			Prompt:      "Where should we email the PDF? (leave blank to skip)",
			Placeholder: "you@example.com",
			Validate: func(s string) error {
				_, err := ParseEmail(s)
				return err
			},
		},
		{
			Key:         KeyBackground,
			Prompt:      "What is your current background with this topic (e.g., absolute beginner, some basics, intermediate)?",
			Placeholder: "absolute beginner",
			Validate:    nonEmpty("background"),
		},
		{
			Key:         KeyCommitment,
			Prompt:      "How many hours per week can you realistically commit and what learning style do you prefer (reading, videos, hands-on)?",
			Placeholder: "3 hours a week, videos",
			Validate: func(s string) error {
				hours, err := ParseHoursPerWeek(s)
				if err != nil {
					return err
				}
				if hours <= 0 {
					return errors.New("please commit more than zero hours")
				}
				return nil
			},
		},
	}
}

func nonEmpty(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
		return nil
	}
}

// Form is a bubbletea model that asks the questions one by one.
type Form struct {
	title     string
	questions []Question
	current   int
	given     []string
	values    map[string]string
	input     textinput.Model
	err       error
	done      bool
	aborted   bool
}

func NewForm(title string, questions []Question) Form {
	f := Form{
		title:     title,
		questions: questions,
		given:     make([]string, 0, len(questions)),
		values:    make(map[string]string, len(questions)),
	}
	f.input = textinput.New()
	f.input.Prompt = "> "
	f.input.CharLimit = 256
	f.input.Width = 60
	f.input.Focus()
	f.prepare()
	return f
}

func (f *Form) prepare() {
	f.input.Reset()
	if f.current >= len(f.questions) {
		return
	}
	q := f.questions[f.current]
	f.input.Placeholder = q.Placeholder
	if def := f.defaultFor(q); def != "" && !q.Secret {
		f.input.Placeholder = def
	}
	f.input.EchoMode = textinput.EchoNormal
	if q.Secret {
		f.input.EchoMode = textinput.EchoPassword
	}
}

func (f Form) defaultFor(q Question) string {
	if q.DefaultFrom != "" && f.values[q.DefaultFrom] != "" {
		return f.values[q.DefaultFrom]
	}
	return q.Default
}

func (f Form) Init() tea.Cmd {
	return textinput.Blink
}

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			f.aborted = true
			return f, tea.Quit
		case tea.KeyEnter:
			return f.submit()
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f Form) submit() (tea.Model, tea.Cmd) {
	q := f.questions[f.current]
	val := strings.TrimSpace(f.input.Value())
	if val == "" {
		val = f.defaultFor(q)
	}
	if q.Validate != nil {
		if err := q.Validate(val); err != nil {
			f.err = err
			return f, nil
		}
	}

	f.err = nil
	f.values[q.Key] = val
	shown := val
	if q.Secret {
		shown = strings.Repeat("*", 8)
	}
	f.given = append(f.given, shown)
	f.current++
	if f.current == len(f.questions) {
		f.done = true
		return f, tea.Quit
	}
	f.prepare()
	return f, nil
}

func (f Form) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i, val := range f.given {
		b.WriteString(answeredStyle.Render(fmt.Sprintf("%s %s", f.questions[i].Prompt, val)))
		b.WriteString("\n")
	}
	if f.done || f.aborted {
		return b.String()
	}

	b.WriteString(questionStyle.Render(f.questions[f.current].Prompt))
	b.WriteString("\n")
	b.WriteString(f.input.View())
	b.WriteString("\n")
	if f.err != nil {
		b.WriteString(errorStyle.Render(f.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter to confirm, esc to quit"))
	b.WriteString("\n")

	return b.String()
}

func (f Form) Values() map[string]string {
	return f.values
}

// Answers reads the learning profile questions from the form.
func (f Form) Answers() Answers {
	return Answers{
		Topic:      f.values[KeyTopic],
		Email:      f.values[KeyEmail],
		Background: f.values[KeyBackground],
		Commitment: f.values[KeyCommitment],
	}
}

func (f Form) Done() bool {
	return f.done
}

func runForm(form Form, in io.Reader, out io.Writer) (Form, error) {
	program := tea.NewProgram(form, tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return Form{}, fmt.Errorf("intake failed: %w", err)
	}
	done, ok := final.(Form)
	if !ok || !done.Done() {
		return Form{}, ErrAborted
	}

	return done, nil
}

// Run asks all questions on the given terminal streams.
func Run(in io.Reader, out io.Writer) (Answers, error) {
	form, err := runForm(NewForm("Learning Path Generator", Questions()), in, out)
	if err != nil {
		return Answers{}, err
	}

	return form.Answers(), nil
}
