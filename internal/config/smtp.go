package config

import (
	"strconv"
	"strings"

	"epic_notifier/internal/domain"
	"epic_notifier/pkg/errcodes"
)

// SMTP is parsed leniently so that the panel can run without mail settings.
// Validate is checked at the start of every pipeline run.
type SMTP struct {
	Server    string `env:"SMTP_SERVER"`
	Port      string `env:"SMTP_PORT"`
	Login     string `env:"EMAIL"`
	Password  string `env:"PASSWORD" json:"-"`
	FromEmail string `env:"FROM_EMAIL"`
	ToEmail   string `env:"TO_EMAIL"`
}

func (s SMTP) Validate() error {
	var missing []string

	for _, v := range []struct {
		name  string
		value string
	}{
		{"SMTP_SERVER", s.Server},
		{"SMTP_PORT", s.Port},
		{"EMAIL", s.Login},
		{"PASSWORD", s.Password},
		{"FROM_EMAIL", s.FromEmail},
	} {
		if strings.TrimSpace(v.value) == "" {
			missing = append(missing, v.name)
		}
	}

	if len(missing) > 0 {
		return domain.NewError(
			errcodes.ConfigurationMissing,
			"Missing required environment variables: "+strings.Join(missing, ", "),
		)
	}

	if _, err := strconv.Atoi(s.Port); err != nil {
		return domain.WrapError(
			err,
			errcodes.ConfigurationMissing,
			"SMTP_PORT must be a valid number, got: "+s.Port,
		)
	}

	return nil
}

func (s SMTP) Address() string {
	return s.Server + ":" + s.Port
}
