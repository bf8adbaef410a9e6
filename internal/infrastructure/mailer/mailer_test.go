package mailer_test

import (
	"context"
	"io"
	"mime/quotedprintable"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/infrastructure/mailer"
)

func TestRenderDigest(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	end := time.Date(2025, 1, 9, 16, 0, 0, 0, time.UTC)

	body, err := mailer.RenderDigest([]entity.GameOffer{
		{
			Title:           "Hades",
			Description:     "Defy the god of the dead.",
			OriginalPrice:   "₹1,100.00",
			DiscountedPrice: "Free",
			ImageURL:        "https://cdn.example/hades.jpg",
			URL:             "https://store.epicgames.com/en-US/p/hades",
			EndDate:         &end,
			IsFree:          true,
		},
		{
			Title:           "Tom & Jerry <Deluxe>",
			Description:     entity.NoDescription,
			OriginalPrice:   "₹199.00",
			DiscountedPrice: "₹49.00",
			URL:             "https://store.epicgames.com/en-US/p/tj",
			IsCheap:         true,
		},
	})
	rq.NoError(err)

	rq.Contains(body, "<h3>Hades</h3>")
	rq.Contains(body, "Price: <span>Free</span> (was ₹1,100.00)")
	rq.Contains(body, "Claim Your Free Game!")
	rq.Contains(body, "<i>Offer ends: January 09, 2025 at 04:00 PM</i>")

	rq.Contains(body, "<h3>Tom &amp; Jerry &lt;Deluxe&gt;</h3>")
	rq.Contains(body, "Price: <span>₹49.00</span> (was ₹199.00)")
	rq.Contains(body, "Get This Deal Now!")
	rq.Equal(1, strings.Count(body, "Offer ends:"))
}

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	msg := string(mailer.BuildMessage(
		"bot@example.com",
		"user@example.com",
		"<p>hi</p>",
		time.Date(2025, 1, 9, 16, 0, 0, 0, time.UTC),
	))

	rq.True(strings.HasPrefix(msg, "From: Epic Free Games Notifier <bot@example.com>\r\n"))
	rq.Contains(msg, "To: user@example.com\r\n")
	rq.Contains(msg, "Subject: Free & Cheap Games on Epic Games Store!\r\n")
	rq.Contains(msg, "Content-Type: text/html; charset=\"utf-8\"\r\n")
	rq.Contains(msg, "Content-Transfer-Encoding: quoted-printable\r\n")
	rq.True(strings.HasSuffix(msg, "\r\n\r\n<p>hi</p>"))
}

func TestBuildMessageLongDescription(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	body, err := mailer.RenderDigest([]entity.GameOffer{{
		Title:           "Hades",
		Description:     strings.Repeat("Défiez le dieu des morts. ", 50),
		OriginalPrice:   "₹1,100.00",
		DiscountedPrice: "Free",
		URL:             "https://store.epicgames.com/en-US/p/hades",
		IsFree:          true,
	}})
	rq.NoError(err)

	msg := string(mailer.BuildMessage("bot@example.com", "user@example.com", body, time.Now()))

	for _, line := range strings.Split(msg, "\r\n") {
		rq.LessOrEqual(len(line), 998)
	}

	_, encoded, ok := strings.Cut(msg, "\r\n\r\n")
	rq.True(ok)

	decoded, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(encoded)))
	rq.NoError(err)
	rq.Equal(strings.ReplaceAll(body, "\n", "\r\n"), string(decoded))
}

func TestSendFailsWithoutWork(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	m := mailer.NewSMTP(config.SMTP{Server: "127.0.0.1", Port: "1"})

	rq.False(m.Send(context.Background(), []string{"a@example.com"}, nil))
	rq.False(m.Send(context.Background(), nil, []entity.GameOffer{{Title: "Hades"}}))
}

func TestSendFailsWhenServerUnreachable(t *testing.T) {
	t.Parallel()

	m := mailer.NewSMTP(config.SMTP{
		Server:    "127.0.0.1",
		Port:      "1",
		Login:     "bot@example.com",
		Password:  "secret",
		FromEmail: "bot@example.com",
	}).WithDialTimeout(time.Second)

	require.False(t, m.Send(context.Background(), []string{"a@example.com"}, []entity.GameOffer{{Title: "Hades"}}))
}
