package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/directiva-mx/admin-api/internal/domain/mentor"
	domain "github.com/directiva-mx/admin-api/internal/domain/notification"
	"github.com/directiva-mx/admin-api/internal/domain/user"
	"github.com/directiva-mx/admin-api/internal/service/audience"
	"github.com/directiva-mx/admin-api/internal/service/email"
	"github.com/directiva-mx/admin-api/internal/service/notify"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type memStore struct {
	userRows   []domain.UserNotification
	mentorRows []domain.MentorNotification
}

func (m *memStore) InsertUserNotifications(_ context.Context, rows []domain.UserNotification) error {
	m.userRows = append(m.userRows, rows...)
	return nil
}

func (m *memStore) InsertMentorNotifications(_ context.Context, rows []domain.MentorNotification) error {
	m.mentorRows = append(m.mentorRows, rows...)
	return nil
}

type noEmail struct{}

func (noEmail) Configured() bool { return false }
func (noEmail) Send(context.Context, *email.Message) (*email.SendResult, error) {
	return nil, nil
}

type memUsers struct{ pool []*user.User }

func (m *memUsers) ListActive(context.Context, *user.AccountType) ([]*user.User, error) {
	return m.pool, nil
}

func (m *memUsers) FindActiveByIDs(_ context.Context, ids []string) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		for _, u := range m.pool {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type memMentors struct{}

func (memMentors) List(context.Context) ([]*mentor.Mentor, error) { return nil, nil }
func (memMentors) FindByIDs(context.Context, []string) ([]*mentor.Mentor, error) {
	return nil, nil
}

func newNotificationRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memStore{}
	resolver := audience.NewResolver(
		&memUsers{pool: []*user.User{
			{ID: "u1", Email: "u1@example.com"},
			{ID: "u2", Email: "u2@example.com"},
		}},
		memMentors{},
	)
	dispatcher := notify.NewDispatcher(store, resolver, noEmail{}, "", zap.NewNop())
	h := NewHandler(dispatcher, zap.NewNop())

	r := gin.New()
	r.POST("/notifications/send", h.Send)
	return r, store
}

func send(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/notifications/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendEndToEnd(t *testing.T) {
	r, store := newNotificationRouter(t)

	w := send(r, `{"userIds":["u1","u2"],"title":"Hi","message":"Test","sendEmail":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := body["email"]; ok {
		t.Fatal("email key present, must be omitted when not requested")
	}

	var counts domain.Counts
	if err := json.Unmarshal(body["counts"], &counts); err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Users != 2 || counts.Mentors != 0 || counts.Total != 2 {
		t.Fatalf("counts = %+v", counts)
	}
	if len(store.userRows) != 2 {
		t.Fatalf("inserted %d rows", len(store.userRows))
	}
}

func TestSendNoRecipients(t *testing.T) {
	r, _ := newNotificationRouter(t)

	w := send(r, `{"userIds":["ghost"],"title":"Hi","message":"Test"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No se encontraron destinatarios") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestSendMissingTitle(t *testing.T) {
	r, _ := newNotificationRouter(t)

	w := send(r, `{"userIds":["u1"],"message":"Test"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}
