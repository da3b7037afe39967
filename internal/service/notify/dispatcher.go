// Dual-channel notification dispatch. One send request fans out into
// in-app rows (user and mentor tables, different shapes) and an optional
// best-effort email. Persistence failure fails the request; email failure
// after a successful insert does not.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/directiva-mx/admin-api/internal/domain/notification"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/service/audience"
	"github.com/directiva-mx/admin-api/internal/service/email"

	"go.uber.org/zap"
)

// Store persists notification rows.
type Store interface {
	InsertUserNotifications(ctx context.Context, rows []notification.UserNotification) error
	InsertMentorNotifications(ctx context.Context, rows []notification.MentorNotification) error
}

// EmailSender is the outbound email capability. The dispatcher only needs
// send; configuration inspection stays with the email handler.
type EmailSender interface {
	Configured() bool
	Send(ctx context.Context, msg *email.Message) (*email.SendResult, error)
}

type Dispatcher struct {
	store             Store
	resolver          *audience.Resolver
	emails            EmailSender
	mentorDefaultType string
	logger            *zap.Logger
}

// NewDispatcher wires the pipeline. mentorDefaultType is what a "general"
// notification becomes on the mentor side, whose type taxonomy has no such
// value.
func NewDispatcher(store Store, resolver *audience.Resolver, emails EmailSender, mentorDefaultType string, logger *zap.Logger) *Dispatcher {
	if mentorDefaultType == "" {
		mentorDefaultType = "new_meeting_request"
	}
	return &Dispatcher{
		store:             store,
		resolver:          resolver,
		emails:            emails,
		mentorDefaultType: mentorDefaultType,
		logger:            logger,
	}
}

// Dispatch resolves the audience, persists in-app rows, then attempts email
// when requested. The returned outcome always carries counts; Email is nil
// unless the channel was requested.
func (d *Dispatcher) Dispatch(ctx context.Context, req *notification.SendRequest) (*notification.DispatchOutcome, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "title and message are required")
	}

	aud, err := d.resolver.Resolve(ctx, audience.Selection{
		Filter:         audience.Filter(req.Audience),
		UserIDs:        req.UserIDs,
		MentorIDs:      req.MentorIDs,
		CustomEmails:   req.CustomEmails,
		IncludeMentors: req.IncludeMentors,
	})
	if err != nil {
		return nil, err
	}

	notifType := req.Type
	if notifType == "" {
		notifType = notification.TypeGeneral
	}
	priority := req.Priority
	if priority == "" {
		priority = notification.PriorityNormal
	}

	if err := d.persist(ctx, req, aud, notifType, priority); err != nil {
		return nil, err
	}

	// Counts cover the in-app channel only; custom emails are visible in the
	// email outcome's total.
	outcome := &notification.DispatchOutcome{
		Counts: notification.Counts{
			Users:   len(aud.Users),
			Mentors: len(aud.Mentors),
			Total:   len(aud.Users) + len(aud.Mentors),
		},
	}

	if req.SendEmail {
		outcome.Email = d.sendEmail(ctx, req, aud)
	}

	d.logger.Info("notification dispatched",
		zap.Int("users", outcome.Counts.Users),
		zap.Int("mentors", outcome.Counts.Mentors),
		zap.Int("custom_emails", len(aud.CustomEmails)),
		zap.Bool("email_requested", req.SendEmail),
		zap.String("type", notifType),
	)
	return outcome, nil
}

func (d *Dispatcher) persist(ctx context.Context, req *notification.SendRequest, aud *audience.Audience, notifType, priority string) error {
	var actionURL *string
	if req.ActionURL != "" {
		actionURL = &req.ActionURL
	}

	userRows := make([]notification.UserNotification, 0, len(aud.Users))
	for _, u := range aud.Users {
		userRows = append(userRows, notification.UserNotification{
			UserID:    u.ID,
			Title:     req.Title,
			Message:   req.Message,
			Type:      notifType,
			Priority:  priority,
			ActionURL: actionURL,
			ExpiresAt: req.ExpiresAt,
			Metadata:  req.Metadata,
		})
	}
	if err := d.store.InsertUserNotifications(ctx, userRows); err != nil {
		return err
	}

	mentorType := notifType
	if mentorType == notification.TypeGeneral {
		mentorType = d.mentorDefaultType
	}

	mentorRows := make([]notification.MentorNotification, 0, len(aud.Mentors))
	for _, m := range aud.Mentors {
		mentorRows = append(mentorRows, notification.MentorNotification{
			MentorID: m.ID,
			Title:    req.Title,
			Message:  req.Message,
			Type:     mentorType,
			Data:     req.Metadata,
		})
	}
	return d.store.InsertMentorNotifications(ctx, mentorRows)
}

// sendEmail is the best-effort leg. Nothing returned here is an error to the
// caller; failures surface in the outcome so the response can report them
// alongside the committed in-app counts.
func (d *Dispatcher) sendEmail(ctx context.Context, req *notification.SendRequest, aud *audience.Audience) *notification.EmailOutcome {
	recipients := aud.Emails()
	out := &notification.EmailOutcome{Total: len(recipients)}

	if len(recipients) == 0 {
		return out
	}
	if !d.emails.Configured() {
		out.Error = "el servicio de email no está configurado"
		return out
	}

	msg := &email.Message{
		To:      recipients,
		Subject: req.Title,
		HTML:    buildHTML(req.Title, req.Message, req.ActionURL),
		Text:    buildText(req.Title, req.Message, req.ActionURL),
	}
	if _, err := d.emails.Send(ctx, msg); err != nil {
		d.logger.Warn("notification email failed",
			zap.Int("recipients", len(recipients)),
			zap.Error(err),
		)
		out.Error = err.Error()
		return out
	}

	out.Sent = len(recipients)
	return out
}

func buildHTML(title, message, actionURL string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	fmt.Fprintf(&b, `<h2 style="color: #1a1a2e;">%s</h2>`, html.EscapeString(title))
	fmt.Fprintf(&b, `<p style="color: #444; line-height: 1.6;">%s</p>`, html.EscapeString(message))
	if actionURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s" style="display: inline-block; padding: 10px 20px; background: #e94560; color: #fff; text-decoration: none; border-radius: 6px;">Ver más</a></p>`, html.EscapeString(actionURL))
	}
	b.WriteString(`<hr style="border: none; border-top: 1px solid #eee;">`)
	b.WriteString(`<p style="color: #999; font-size: 12px;">Hablemos Emprendimiento</p>`)
	b.WriteString(`</div>`)
	return b.String()
}

func buildText(title, message, actionURL string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(message)
	if actionURL != "" {
		b.WriteString("\n\nVer más: ")
		b.WriteString(actionURL)
	}
	return b.String()
}
