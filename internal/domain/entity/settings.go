package entity

import "strings"

const (
	DefaultPriceThreshold = 100
	DefaultCurrency       = "INR"
	CategoryWildcard      = "All"
)

// Settings is the admin-editable configuration document. PriceThreshold is
// in major currency units.
type Settings struct {
	PriceThreshold int      `json:"price_threshold" validate:"gte=0"`
	Currency       string   `json:"currency" validate:"required,alpha,len=3"`
	Emails         []string `json:"emails" validate:"dive,email"`
	Categories     []string `json:"categories"`
	DeepSearchFree bool     `json:"deep_search_free"`
}

func DefaultSettings() Settings {
	return Settings{
		PriceThreshold: DefaultPriceThreshold,
		Currency:       DefaultCurrency,
		Emails:         []string{},
		Categories:     []string{},
	}
}

// FilterConfig converts settings into the per-run filter configuration.
func (s Settings) FilterConfig() FilterConfig {
	return NewFilterConfig(int64(s.PriceThreshold)*100, s.Currency, s.Categories, s.DeepSearchFree)
}

// Recipients returns the configured emails, or fallback when none are set.
func (s Settings) Recipients(fallback string) []string {
	if len(s.Emails) > 0 {
		return s.Emails
	}

	if fallback != "" {
		return []string{fallback}
	}

	return nil
}

// AddEmail appends email unless already present.
func (s *Settings) AddEmail(email string) bool {
	for _, e := range s.Emails {
		if e == email {
			return false
		}
	}

	s.Emails = append(s.Emails, email)

	return true
}

// RemoveEmail drops the first occurrence of email.
func (s *Settings) RemoveEmail(email string) bool {
	for i, e := range s.Emails {
		if e == email {
			s.Emails = append(s.Emails[:i], s.Emails[i+1:]...)

			return true
		}
	}

	return false
}

// MaskedEmails hides the local part of every email.
func (s Settings) MaskedEmails() []string {
	masked := make([]string, 0, len(s.Emails))

	for _, e := range s.Emails {
		masked = append(masked, MaskEmail(e))
	}

	return masked
}

func MaskEmail(email string) string {
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "***"
	}

	return "***@" + domain
}
