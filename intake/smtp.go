package intake

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ewintr.nl/learnpath/config"
)

const (
	keyConfigure = "configure"
	keySave      = "save"
)

var ErrSMTPDeclined = errors.New("smtp setup declined")

func confirmQuestion(key, prompt string, def bool) Question {
	d := "n"
	if def {
		d = "y"
	}
	return Question{
		Key:     key,
		Prompt:  prompt,
		Default: d,
		Validate: func(s string) error {
			_, err := parseYesNo(s)
			return err
		},
	}
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("answer yes or no, got %q", s)
}

// SMTPQuestions asks for the mail settings, prefilled with what is already
// configured. The last question is whether to store them in the env file.
func SMTPQuestions(current config.SMTP) []Question {
	port := "587"
	if current.Port > 0 {
		port = strconv.Itoa(current.Port)
	}
	secure := current.Secure
	if secure == "" {
		secure = "starttls"
	}
	fromName := current.FromName
	if fromName == "" {
		fromName = "Learning Path Bot"
	}

	return []Question{
		{Key: "SMTP_HOST", Prompt: "SMTP host (e.g., smtp.gmail.com)", Default: current.Host, Validate: nonEmpty("host")},
		{Key: "SMTP_PORT", Prompt: "SMTP port (587 for STARTTLS, 465 for SSL)", Default: port, Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("invalid port %q", s)
			}
			return nil
		}},
		{Key: "SMTP_SECURE", Prompt: "SMTP security (starttls/ssl/none)", Default: secure, Validate: func(s string) error {
			switch strings.ToLower(s) {
			case "starttls", "ssl", "none":
				return nil
			}
			return fmt.Errorf("use starttls, ssl or none, got %q", s)
		}},
		{Key: "SMTP_USERNAME", Prompt: "SMTP username (usually your email)", Default: current.Username, Validate: nonEmpty("username")},
		{Key: "SMTP_PASSWORD", Prompt: "SMTP password/app password", Default: current.Password, Secret: true, Validate: nonEmpty("password")},
		{Key: "EMAIL_FROM", Prompt: "From email address", Default: current.From, DefaultFrom: "SMTP_USERNAME", Validate: func(s string) error {
			addr, err := ParseEmail(s)
			if err == nil && addr == "" {
				err = errors.New("from address cannot be empty")
			}
			return err
		}},
		{Key: "EMAIL_FROM_NAME", Prompt: "From name", Default: fromName},
		confirmQuestion(keySave, "Save these settings to .env for next time? (y/N)", false),
	}
}

// SMTPSettings turns the answers into settings. Timeout and debug are taken
// from current.
func SMTPSettings(values map[string]string, current config.SMTP) (config.SMTP, bool, error) {
	port, err := strconv.Atoi(values["SMTP_PORT"])
	if err != nil {
		return config.SMTP{}, false, fmt.Errorf("invalid SMTP port: %w", err)
	}
	save, err := parseYesNo(values[keySave])
	if err != nil {
		return config.SMTP{}, false, err
	}
	from, err := ParseEmail(values["EMAIL_FROM"])
	if err != nil {
		return config.SMTP{}, false, err
	}

	return config.SMTP{
		Host:     values["SMTP_HOST"],
		Port:     port,
		Username: values["SMTP_USERNAME"],
		Password: values["SMTP_PASSWORD"],
		From:     from,
		FromName: values["EMAIL_FROM_NAME"],
		Secure:   strings.ToLower(values["SMTP_SECURE"]),
		Timeout:  current.Timeout,
		Debug:    current.Debug,
	}, save, nil
}

// RunSMTP offers to configure mail settings on the terminal. It returns the
// new settings and whether they should be saved.
func RunSMTP(in io.Reader, out io.Writer, current config.SMTP) (config.SMTP, bool, error) {
	confirm, err := runForm(NewForm("SMTP settings are required to send email", []Question{
		confirmQuestion(keyConfigure, "Configure SMTP now? (Y/n)", true),
	}), in, out)
	if err != nil {
		return config.SMTP{}, false, err
	}
	if ok, _ := parseYesNo(confirm.Values()[keyConfigure]); !ok {
		return config.SMTP{}, false, ErrSMTPDeclined
	}

	form, err := runForm(NewForm("SMTP settings", SMTPQuestions(current)), in, out)
	if err != nil {
		return config.SMTP{}, false, err
	}

	return SMTPSettings(form.Values(), current)
}
