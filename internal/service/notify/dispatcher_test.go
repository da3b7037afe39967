package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/directiva-mx/admin-api/internal/domain/mentor"
	"github.com/directiva-mx/admin-api/internal/domain/notification"
	"github.com/directiva-mx/admin-api/internal/domain/user"
	xerrors "github.com/directiva-mx/admin-api/internal/pkg/errors"
	"github.com/directiva-mx/admin-api/internal/service/audience"
	"github.com/directiva-mx/admin-api/internal/service/email"

	"go.uber.org/zap"
)

type fakeStore struct {
	userRows   []notification.UserNotification
	mentorRows []notification.MentorNotification
	failUsers  error
}

func (f *fakeStore) InsertUserNotifications(_ context.Context, rows []notification.UserNotification) error {
	if f.failUsers != nil {
		return f.failUsers
	}
	f.userRows = append(f.userRows, rows...)
	return nil
}

func (f *fakeStore) InsertMentorNotifications(_ context.Context, rows []notification.MentorNotification) error {
	f.mentorRows = append(f.mentorRows, rows...)
	return nil
}

type fakeEmailSender struct {
	configured bool
	sent       []*email.Message
	fail       error
}

func (f *fakeEmailSender) Configured() bool { return f.configured }

func (f *fakeEmailSender) Send(_ context.Context, msg *email.Message) (*email.SendResult, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.sent = append(f.sent, msg)
	return &email.SendResult{ID: "msg-1"}, nil
}

type fakeUsers struct{ pool []*user.User }

func (f *fakeUsers) ListActive(_ context.Context, _ *user.AccountType) ([]*user.User, error) {
	return f.pool, nil
}

func (f *fakeUsers) FindActiveByIDs(_ context.Context, ids []string) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		for _, u := range f.pool {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type fakeMentors struct{ pool []*mentor.Mentor }

func (f *fakeMentors) List(_ context.Context) ([]*mentor.Mentor, error) { return f.pool, nil }

func (f *fakeMentors) FindByIDs(_ context.Context, ids []string) ([]*mentor.Mentor, error) {
	var out []*mentor.Mentor
	for _, id := range ids {
		for _, m := range f.pool {
			if m.ID == id {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func testDispatcher(store *fakeStore, sender *fakeEmailSender) *Dispatcher {
	resolver := audience.NewResolver(
		&fakeUsers{pool: []*user.User{
			{ID: "u1", Email: "u1@example.com"},
			{ID: "u2", Email: "u2@example.com"},
		}},
		&fakeMentors{pool: []*mentor.Mentor{
			{ID: "m1", Email: "m1@example.com"},
		}},
	)
	return NewDispatcher(store, resolver, sender, "", zap.NewNop())
}

func TestDispatchInAppOnly(t *testing.T) {
	store := &fakeStore{}
	d := testDispatcher(store, &fakeEmailSender{configured: true})

	out, err := d.Dispatch(context.Background(), &notification.SendRequest{
		UserIDs: []string{"u1", "u2"},
		Title:   "Hi",
		Message: "Test",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out.Counts.Users != 2 || out.Counts.Mentors != 0 || out.Counts.Total != 2 {
		t.Fatalf("counts = %+v", out.Counts)
	}
	if out.Email != nil {
		t.Fatalf("email outcome = %+v, want nil when not requested", out.Email)
	}
	if len(store.userRows) != 2 {
		t.Fatalf("inserted %d user rows, want 2", len(store.userRows))
	}
	if store.userRows[0].Type != notification.TypeGeneral || store.userRows[0].Priority != notification.PriorityNormal {
		t.Fatalf("defaults not applied: %+v", store.userRows[0])
	}
}

func TestDispatchMentorTypeRemap(t *testing.T) {
	store := &fakeStore{}
	d := testDispatcher(store, &fakeEmailSender{})

	_, err := d.Dispatch(context.Background(), &notification.SendRequest{
		MentorIDs: []string{"m1"},
		Title:     "Hi",
		Message:   "Test",
		Type:      "general",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(store.mentorRows) != 1 {
		t.Fatalf("inserted %d mentor rows, want 1", len(store.mentorRows))
	}
	if store.mentorRows[0].Type != "new_meeting_request" {
		t.Fatalf("mentor type = %q, want new_meeting_request", store.mentorRows[0].Type)
	}
}

func TestDispatchMentorSpecificTypeKept(t *testing.T) {
	store := &fakeStore{}
	d := testDispatcher(store, &fakeEmailSender{})

	_, err := d.Dispatch(context.Background(), &notification.SendRequest{
		MentorIDs: []string{"m1"},
		Title:     "Hi",
		Message:   "Test",
		Type:      "meeting_cancelled",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if store.mentorRows[0].Type != "meeting_cancelled" {
		t.Fatalf("mentor type = %q, want meeting_cancelled", store.mentorRows[0].Type)
	}
}

func TestDispatchEmailSuccess(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeEmailSender{configured: true}
	d := testDispatcher(store, sender)

	out, err := d.Dispatch(context.Background(), &notification.SendRequest{
		UserIDs:   []string{"u1"},
		Title:     "Hi",
		Message:   "Test",
		SendEmail: true,
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out.Email == nil || out.Email.Sent != 1 || out.Email.Total != 1 || out.Email.Error != "" {
		t.Fatalf("email outcome = %+v", out.Email)
	}
	if len(sender.sent) != 1 || sender.sent[0].Subject != "Hi" {
		t.Fatalf("sent = %+v", sender.sent)
	}
}

func TestDispatchPartialEmailFailure(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeEmailSender{configured: true, fail: errors.New("provider down")}
	d := testDispatcher(store, sender)

	out, err := d.Dispatch(context.Background(), &notification.SendRequest{
		UserIDs:   []string{"u1", "u2"},
		Title:     "Hi",
		Message:   "Test",
		SendEmail: true,
	})
	if err != nil {
		t.Fatalf("Dispatch: %v, want nil on email failure", err)
	}
	if out.Counts.Users != 2 {
		t.Fatalf("counts.users = %d, want 2", out.Counts.Users)
	}
	if out.Email == nil || out.Email.Error == "" || out.Email.Sent != 0 {
		t.Fatalf("email outcome = %+v, want error with zero sent", out.Email)
	}
	if len(store.userRows) != 2 {
		t.Fatalf("inserts = %d, rows must commit before email", len(store.userRows))
	}
}

func TestDispatchInsertFailureIsFatal(t *testing.T) {
	store := &fakeStore{failUsers: errors.New("db down")}
	d := testDispatcher(store, &fakeEmailSender{configured: true})

	_, err := d.Dispatch(context.Background(), &notification.SendRequest{
		UserIDs: []string{"u1"},
		Title:   "Hi",
		Message: "Test",
	})
	if err == nil {
		t.Fatal("expected error when inserts fail")
	}
}

func TestDispatchMissingTitle(t *testing.T) {
	d := testDispatcher(&fakeStore{}, &fakeEmailSender{})

	_, err := d.Dispatch(context.Background(), &notification.SendRequest{
		UserIDs: []string{"u1"},
		Message: "Test",
	})
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestDispatchNoRecipients(t *testing.T) {
	d := testDispatcher(&fakeStore{}, &fakeEmailSender{})

	_, err := d.Dispatch(context.Background(), &notification.SendRequest{
		Title:   "Hi",
		Message: "Test",
	})
	if !errors.Is(err, xerrors.ErrNoRecipients) {
		t.Fatalf("err = %v, want ErrNoRecipients", err)
	}
}

func TestDispatchCustomEmailsOnly(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeEmailSender{configured: true}
	d := testDispatcher(store, sender)

	out, err := d.Dispatch(context.Background(), &notification.SendRequest{
		CustomEmails: "extra@example.com",
		Title:        "Hi",
		Message:      "Test",
		SendEmail:    true,
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out.Counts.Total != 0 || out.Counts.Users != 0 {
		t.Fatalf("counts = %+v, custom emails must not count as in-app rows", out.Counts)
	}
	if len(store.userRows) != 0 || len(store.mentorRows) != 0 {
		t.Fatal("custom emails must not produce in-app rows")
	}
	if out.Email == nil || out.Email.Sent != 1 || out.Email.Total != 1 {
		t.Fatalf("email outcome = %+v", out.Email)
	}
}

// Counts report in-app inserts only; a custom email rides along in the email
// channel without inflating total.
func TestDispatchCountsExcludeCustomEmails(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeEmailSender{configured: true}
	d := testDispatcher(store, sender)

	out, err := d.Dispatch(context.Background(), &notification.SendRequest{
		UserIDs:      []string{"u1"},
		CustomEmails: "extra@example.com",
		Title:        "Hi",
		Message:      "Test",
		SendEmail:    true,
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out.Counts.Users != 1 || out.Counts.Mentors != 0 || out.Counts.Total != 1 {
		t.Fatalf("counts = %+v, want total = users + mentors", out.Counts)
	}
	if out.Email == nil || out.Email.Total != 2 || out.Email.Sent != 2 {
		t.Fatalf("email outcome = %+v, want both addresses in the email channel", out.Email)
	}
}

func TestDispatchAllAudienceIncludeMentors(t *testing.T) {
	store := &fakeStore{}
	d := testDispatcher(store, &fakeEmailSender{})

	out, err := d.Dispatch(context.Background(), &notification.SendRequest{
		Audience: "all",
		Title:    "Hi",
		Message:  "Test",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out.Counts.Mentors != 0 || len(store.mentorRows) != 0 {
		t.Fatalf("mentors reached by a plain all send: counts=%+v rows=%d", out.Counts, len(store.mentorRows))
	}

	out, err = d.Dispatch(context.Background(), &notification.SendRequest{
		Audience:       "all",
		IncludeMentors: true,
		Title:          "Hi",
		Message:        "Test",
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out.Counts.Mentors != 1 || len(store.mentorRows) != 1 {
		t.Fatalf("includeMentors not honored: counts=%+v rows=%d", out.Counts, len(store.mentorRows))
	}
}

func TestBuildText(t *testing.T) {
	got := buildText("Hi", "Test", "https://directiva.mx/x")
	want := "Hi\n\nTest\n\nVer más: https://directiva.mx/x"
	if got != want {
		t.Fatalf("buildText = %q, want %q", got, want)
	}

	if got := buildText("Hi", "Test", ""); got != "Hi\n\nTest" {
		t.Fatalf("buildText without url = %q", got)
	}
}
