package intake

import (
	"path/filepath"
	"testing"
	"time"

	"ewintr.nl/learnpath/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(t *testing.T, f Form, text string) Form {
	t.Helper()
	if text != "" {
		f = typeText(t, f, text)
	}
	f, _ = press(t, f, tea.KeyEnter)
	return f
}

func TestSMTPForm(t *testing.T) {
	current := config.SMTP{Timeout: 30 * time.Second, Debug: true}
	f := NewForm("SMTP settings", SMTPQuestions(current))

	f = answer(t, f, "smtp.example.com")
	f = answer(t, f, "")
	f = answer(t, f, "SSL")
	f = answer(t, f, "bot@example.com")
	f = answer(t, f, "s3cret")
	assert.Contains(t, f.View(), "********")
	assert.NotContains(t, f.View(), "s3cret")
	f = answer(t, f, "")
	f = answer(t, f, "")
	f = answer(t, f, "y")
	require.True(t, f.Done())

	act, save, err := SMTPSettings(f.Values(), current)
	require.NoError(t, err)
	assert.True(t, save)
	assert.Equal(t, config.SMTP{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "bot@example.com",
		Password: "s3cret",
		From:     "bot@example.com",
		FromName: "Learning Path Bot",
		Secure:   "ssl",
		Timeout:  30 * time.Second,
		Debug:    true,
	}, act)
	assert.Empty(t, act.Missing())

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, config.SaveSMTP(path, act))
	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", env["SMTP_HOST"])
	assert.Equal(t, "587", env["SMTP_PORT"])
	assert.Equal(t, "ssl", env["SMTP_SECURE"])
	assert.Equal(t, "s3cret", env["SMTP_PASSWORD"])
	assert.Equal(t, "bot@example.com", env["EMAIL_FROM"])
	assert.Equal(t, "Learning Path Bot", env["EMAIL_FROM_NAME"])
	assert.Equal(t, "30", env["SMTP_TIMEOUT"])
}

func TestSMTPFormValidation(t *testing.T) {
	f := NewForm("SMTP settings", SMTPQuestions(config.SMTP{}))

	f = answer(t, f, "")
	assert.Error(t, f.err, "host is required")
	assert.Equal(t, 0, f.current)

	f = answer(t, f, "smtp.example.com")
	f = answer(t, f, "99999")
	assert.Error(t, f.err)
	assert.Equal(t, 1, f.current)

	f.input.SetValue("465")
	f = answer(t, f, "")
	f = answer(t, f, "tls")
	assert.Error(t, f.err)
	assert.Equal(t, 2, f.current)
}

func TestSMTPFormPrefilled(t *testing.T) {
	current := config.SMTP{
		Host:     "smtp.example.com",
		Port:     465,
		Username: "bot@example.com",
		From:     "noreply@example.com",
		Secure:   "ssl",
	}
	f := NewForm("SMTP settings", SMTPQuestions(current))
	for i := 0; i < 4; i++ {
		f = answer(t, f, "")
	}
	f = answer(t, f, "pw")
	f = answer(t, f, "")
	f = answer(t, f, "")
	f = answer(t, f, "")
	require.True(t, f.Done())

	act, save, err := SMTPSettings(f.Values(), current)
	require.NoError(t, err)
	assert.False(t, save)
	assert.Equal(t, 465, act.Port)
	assert.Equal(t, "ssl", act.Secure)
	assert.Equal(t, "bot@example.com", act.From, "the username is the default sender")
}

func TestParseYesNo(t *testing.T) {
	for in, exp := range map[string]bool{"y": true, "Yes": true, " n ": false, "NO": false} {
		act, err := parseYesNo(in)
		require.NoError(t, err)
		assert.Equal(t, exp, act)
	}
	_, err := parseYesNo("maybe")
	assert.Error(t, err)
}
