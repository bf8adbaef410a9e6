package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"time"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain"
	"epic_notifier/internal/domain/entity"
	"epic_notifier/pkg/errcodes"
	"epic_notifier/pkg/logx"
)

const defaultDialTimeout = 30 * time.Second

var errNoStartTLS = errors.New("smtp server does not support STARTTLS")

// SMTP delivers the digest over one authenticated STARTTLS session, one
// message per recipient.
type SMTP struct {
	cfg         config.SMTP
	dialTimeout time.Duration
	tlsConfig   *tls.Config
	now         func() time.Time
}

func NewSMTP(cfg config.SMTP) *SMTP {
	return &SMTP{
		cfg:         cfg,
		dialTimeout: defaultDialTimeout,
		tlsConfig:   &tls.Config{ServerName: cfg.Server, MinVersion: tls.VersionTLS12},
		now:         time.Now,
	}
}

func (s *SMTP) WithDialTimeout(timeout time.Duration) *SMTP {
	s.dialTimeout = timeout

	return s
}

func (s *SMTP) WithTLSConfig(cfg *tls.Config) *SMTP {
	s.tlsConfig = cfg

	return s
}

// Send reports success for the whole batch. Partial failures are not
// reported per recipient.
func (s *SMTP) Send(ctx context.Context, recipients []string, offers []entity.GameOffer) bool {
	if len(offers) == 0 {
		logger(ctx).Info("No games to notify.")

		return false
	}

	if len(recipients) == 0 {
		logger(ctx).Error("No recipients found.")

		return false
	}

	body, err := RenderDigest(offers)
	if err != nil {
		logger(ctx).Error("failed to render digest", logx.Error(err))

		return false
	}

	if err = s.deliver(ctx, recipients, body); err != nil {
		logger(ctx).Error("Failed to send email", logx.Error(err))

		return false
	}

	logger(ctx).Info("Emails sent successfully.", slog.Int(logx.FieldCount, len(recipients)))

	return true
}

func (s *SMTP) deliver(ctx context.Context, recipients []string, body string) error {
	dialer := net.Dialer{Timeout: s.dialTimeout}

	logger(ctx).Info("Connecting to SMTP server...", slog.String("address", s.cfg.Address()))

	conn, err := dialer.DialContext(ctx, "tcp", s.cfg.Address())
	if err != nil {
		return domain.WrapError(err, errcodes.DispatchFailed, "dial smtp")
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Server)
	if err != nil {
		_ = conn.Close()

		return domain.WrapError(err, errcodes.DispatchFailed, "smtp handshake")
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); !ok {
		return domain.WrapError(errNoStartTLS, errcodes.DispatchFailed, "starttls")
	}

	if err = client.StartTLS(s.tlsConfig); err != nil {
		return domain.WrapError(err, errcodes.DispatchFailed, "starttls")
	}

	logger(ctx).Info("Logging in to SMTP server...")

	if err = client.Auth(smtp.PlainAuth("", s.cfg.Login, s.cfg.Password, s.cfg.Server)); err != nil {
		return domain.WrapError(err, errcodes.DispatchFailed, "smtp auth")
	}

	for _, rcpt := range recipients {
		logger(ctx).Info("Sending email", slog.String(logx.FieldRecipient, rcpt))

		if err = s.sendOne(client, rcpt, body); err != nil {
			return fmt.Errorf("sendOne: %w", err)
		}
	}

	if err = client.Quit(); err != nil {
		return domain.WrapError(err, errcodes.DispatchFailed, "smtp quit")
	}

	return nil
}

func (s *SMTP) sendOne(client *smtp.Client, rcpt, body string) error {
	if err := client.Mail(s.cfg.FromEmail); err != nil {
		return domain.WrapError(err, errcodes.DispatchFailed, "smtp MAIL")
	}

	if err := client.Rcpt(rcpt); err != nil {
		return domain.WrapError(err, errcodes.DispatchFailed, "smtp RCPT "+rcpt)
	}

	w, err := client.Data()
	if err != nil {
		return domain.WrapError(err, errcodes.DispatchFailed, "smtp DATA")
	}

	if _, err = w.Write(BuildMessage(s.cfg.FromEmail, rcpt, body, s.now())); err != nil {
		_ = w.Close()

		return domain.WrapError(err, errcodes.DispatchFailed, "write message")
	}

	if err = w.Close(); err != nil {
		return domain.WrapError(err, errcodes.DispatchFailed, "close message")
	}

	return nil
}

// BuildMessage assembles an RFC 5322 message with a quoted-printable HTML
// body, so no line exceeds the SMTP limit whatever the offer text.
func BuildMessage(from, to, htmlBody string, date time.Time) []byte {
	var buf bytes.Buffer

	header := func(k, v string) {
		buf.WriteString(k)
		buf.WriteString(": ")
		buf.WriteString(v)
		buf.WriteString("\r\n")
	}

	header("From", fmt.Sprintf("%s <%s>", SenderName, from))
	header("To", to)
	header("Subject", Subject)
	header("Date", date.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/html; charset="utf-8"`)
	header("Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	_, _ = qp.Write([]byte(htmlBody))
	_ = qp.Close()

	return buf.Bytes()
}
