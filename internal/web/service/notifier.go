package service

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"sync"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/forumwatch/threadwatch/internal/web/store"
	"github.com/forumwatch/threadwatch/pkg/cryptox"
	"github.com/forumwatch/threadwatch/pkg/idx"

	"golang.org/x/time/rate"
)

// SMTPConfig is the outbound mail transport configuration. An empty Host
// disables transport: sends are logged and skipped.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
}

func (c SMTPConfig) configured() bool {
	return c.Host != "" && c.User != "" && c.Pass != ""
}

// transportTimeout bounds one SMTP attempt (connect, handshake, send).
const transportTimeout = 10 * time.Second

// Notifier is the fire-and-forget delivery contract consumers depend on.
type Notifier interface {
	Notify(to, subject, body string)
}

// NotifierService delivers out-of-band messages on a best-effort basis. The
// contract: Notify returns to its caller immediately; the transport attempt
// runs on its own goroutine with its own timeout, failures are logged and
// never retried or surfaced. The notifications table is consulted as an
// idempotency key so an identical message is only ever delivered once, and
// a limiter keeps a burst of requests from stampeding the mail server.
type NotifierService struct {
	Store  store.Store
	Logger *slog.Logger
	SMTP   SMTPConfig

	limiter *rate.Limiter
	wg      sync.WaitGroup

	// send is swappable in tests; defaults to the SMTP transport.
	send func(ctx context.Context, to, subject, body string) error
}

func NewNotifierService(st store.Store, logger *slog.Logger, cfg SMTPConfig) *NotifierService {
	s := &NotifierService{
		Store:  st,
		Logger: logger,
		SMTP:   cfg,
		// One send per second with a small burst is plenty for
		// registration traffic and stays under typical relay limits.
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
	s.send = s.sendSMTP
	return s
}

// Notify dispatches a message and returns immediately.
func (s *NotifierService) Notify(to, subject, body string) {
	if to == "" {
		s.Logger.Warn("notification dropped, no recipient", "subject", subject)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.deliver(to, subject, body)
	}()
}

// Close waits for in-flight deliveries during graceful shutdown.
func (s *NotifierService) Close() {
	s.wg.Wait()
}

func (s *NotifierService) deliver(to, subject, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), transportTimeout)
	defer cancel()

	log := s.Logger.With("recipient", to, "subject", subject)

	if err := s.limiter.Wait(ctx); err != nil {
		log.Error("notification dropped waiting for send slot", "error", err)
		return
	}

	messageHash := messageFingerprint(to, subject, body)
	sent, err := s.Store.Notifications().NotificationExists(ctx, messageHash)
	if err != nil {
		log.Error("failed to check notification log", "error", err)
		// Fall through: better a duplicate mail than a silently dropped one.
	}
	if sent {
		log.Debug("notification skipped, identical message already sent")
		return
	}

	if !s.SMTP.configured() {
		log.Warn("smtp not configured, notification not sent")
		return
	}

	if err := s.send(ctx, to, subject, body); err != nil {
		log.Error("notification delivery failed", "error", err)
		return
	}

	record := domain.Notification{
		ID:          idx.New().String(),
		Recipient:   to,
		Subject:     subject,
		MessageHash: messageHash,
	}
	if err := s.Store.Notifications().CreateNotification(ctx, record); err != nil {
		log.Error("failed to record sent notification", "error", err)
		return
	}

	log.Info("notification sent")
}

// messageFingerprint keys the notifications idempotency log. NUL separators
// keep distinct (recipient, subject, body) triples from colliding.
func messageFingerprint(to, subject, body string) string {
	return cryptox.FingerprintToken(to + "\x00" + subject + "\x00" + body)
}

// sendSMTP performs one STARTTLS+PLAIN delivery bounded by ctx.
func (s *NotifierService) sendSMTP(ctx context.Context, to, subject, body string) error {
	addr := net.JoinHostPort(s.SMTP.Host, strconv.Itoa(s.SMTP.Port))

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.SMTP.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: s.SMTP.Host, MinVersion: tls.VersionTLS12}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if err := client.Auth(smtp.PlainAuth("", s.SMTP.User, s.SMTP.Pass, s.SMTP.Host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(s.SMTP.User); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.SMTP.User, to, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
