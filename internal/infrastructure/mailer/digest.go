package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"epic_notifier/internal/domain/entity"
)

const (
	Subject        = "Free & Cheap Games on Epic Games Store!"
	SenderName     = "Epic Free Games Notifier"
	offerEndLayout = "January 02, 2006 at 03:04 PM"
)

//go:embed templates/digest.html
var templates embed.FS

//nolint:gochecknoglobals
var digestTemplate = template.Must(
	template.New("digest.html").
		Funcs(template.FuncMap{"offerEnd": formatOfferEnd}).
		ParseFS(templates, "templates/digest.html"),
)

// RenderDigest renders the HTML body listing every offer.
func RenderDigest(offers []entity.GameOffer) (string, error) {
	var buf bytes.Buffer

	if err := digestTemplate.Execute(&buf, offers); err != nil {
		return "", fmt.Errorf("digestTemplate.Execute: %w", err)
	}

	return buf.String(), nil
}

func formatOfferEnd(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.UTC().Format(offerEndLayout)
}
