package http

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/service"
	"github.com/forumwatch/threadwatch/internal/web/store/drivers/sqlite"
	"github.com/forumwatch/threadwatch/pkg/cryptox"
	"github.com/forumwatch/threadwatch/pkg/watchsdk"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "hunter2hunter2"
	testSecret        = "router-test-signing-secret"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "threadwatch-http-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	code := m.Run()
	os.Remove(pepperPath)
	os.Exit(code)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingNotifier captures outbound mail so tests can play administrator
// and read registration codes off the wire.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []recordedMessage
}

type recordedMessage struct {
	To      string
	Subject string
	Body    string
}

func (n *recordingNotifier) Notify(to, subject, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, recordedMessage{To: to, Subject: subject, Body: body})
}

func (n *recordingNotifier) last(t *testing.T) recordedMessage {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.messages, "no mail was dispatched")
	return n.messages[len(n.messages)-1]
}

// lastCode pulls the invitation code out of the most recent message body.
func (n *recordingNotifier) lastCode(t *testing.T) string {
	t.Helper()
	body := n.last(t).Body
	i := strings.Index(body, "Code: ")
	require.GreaterOrEqual(t, i, 0, "message carries no code: %q", body)
	return strings.TrimSpace(body[i+len("Code: "):])
}

// webFixture is a fully wired router behind an httptest server, with the
// admin account seeded and mail delivery captured.
type webFixture struct {
	server   *httptest.Server
	notifier *recordingNotifier
}

func newWebFixture(t *testing.T) *webFixture {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	accounts := &service.AccountService{Store: st}
	sessions := &service.SessionService{
		Accounts: accounts,
		Store:    st,
		TTL:      time.Hour,
	}
	invitations := &service.InvitationService{Store: st}
	notifier := &recordingNotifier{}
	registration := &service.RegistrationService{
		Store:       st,
		Invitations: invitations,
		Notifier:    notifier,
		AdminEmail:  testAdminEmail,
	}
	threads := &service.ThreadService{Store: st}

	bootstrap := &service.BootstrapService{
		Accounts:   accounts,
		AdminEmail: testAdminEmail,
		AdminPass:  testAdminPassword,
	}
	require.NoError(t, bootstrap.Run(context.Background()))

	router := NewRouter([]byte(testSecret), time.Hour, "test", st, discardLogger())
	router.AccountService = accounts
	router.SessionService = sessions
	router.InvitationService = invitations
	router.RegistrationService = registration
	router.ThreadService = threads
	router.Notifier = notifier
	router.AdminEmail = testAdminEmail
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &webFixture{server: server, notifier: notifier}
}

// client returns a fresh browser: its own cookie jar, no session.
func (f *webFixture) client() *watchsdk.Client {
	return watchsdk.NewClient(f.server.URL)
}

// adminClient returns a browser logged in as the seeded administrator.
func (f *webFixture) adminClient(t *testing.T) *watchsdk.Client {
	t.Helper()
	c := f.client()
	require.NoError(t, c.Login(context.Background(), testAdminEmail, testAdminPassword))
	return c
}

// registerUser walks the full self-registration workflow for email, lifting
// the code from the captured administrator mail, and returns a logged-in
// browser for the new account.
func (f *webFixture) registerUser(t *testing.T, email, password string) *watchsdk.Client {
	t.Helper()
	ctx := context.Background()

	c := f.client()
	require.NoError(t, c.RequestCode(ctx, email))
	require.NoError(t, c.VerifyCode(ctx, f.notifier.lastCode(t)))
	require.NoError(t, c.SetPassword(ctx, password))
	require.NoError(t, c.Login(ctx, email, password))
	return c
}
