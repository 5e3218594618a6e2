package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/forumwatch/threadwatch/internal/web/service"
	"github.com/forumwatch/threadwatch/internal/web/store"
	"github.com/forumwatch/threadwatch/pkg/httpx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
)

// Cookie names for the two browser-held tokens.
const (
	SessionCookie      = "session"
	RegistrationCookie = "registration"
)

// adminOnlyNotice is flashed when a non-admin hits an admin route.
const adminOnlyNotice = "That page is for administrators."

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	secret       []byte
	sessionTTL   time.Duration
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AccountService      *service.AccountService
	SessionService      *service.SessionService
	InvitationService   *service.InvitationService
	RegistrationService *service.RegistrationService
	ThreadService       *service.ThreadService
	Notifier            service.Notifier
	AdminEmail          string
}

func NewRouter(
	secret []byte,
	sessionTTL time.Duration,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		secret:       secret,
		sessionTTL:   sessionTTL,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerPublic()
	r.registerRegistration()
	r.registerDashboard()
	r.registerAdmin()
	r.registerSystem()
}

// sessionGuard authenticates via the session cookie; failure redirects to
// the login page.
func (r *Router) sessionGuard() httpx.Middleware {
	return httpx.RequireSession(r.SessionService, r.secret, SessionCookie, "/login")
}

// adminGuard runs after sessionGuard and bounces non-admins to the
// dashboard with a flash notice.
func (r *Router) adminGuard() httpx.Middleware {
	return httpx.RequireRole("admin", r.SessionService, adminOnlyNotice, "/dashboard")
}

func (r *Router) registerPublic() {
	homeHandler := &HomeHandler{
		Sessions: r.SessionService,
		Secret:   r.secret,
	}
	loginHandler := &LoginHandler{
		Sessions:   r.SessionService,
		Secret:     r.secret,
		SessionTTL: r.sessionTTL,
	}
	logoutHandler := &LogoutHandler{
		Sessions: r.SessionService,
		Secret:   r.secret,
	}

	r.Mux.Handle("GET /{$}", homeHandler)
	r.Mux.HandleFunc("GET /login", loginHandler.HandleGet)
	r.Mux.HandleFunc("POST /login", loginHandler.HandlePost)
	r.Mux.Handle("GET /logout", logoutHandler)
}

func (r *Router) registerRegistration() {
	registerHandler := &RegisterHandler{
		Registration: r.RegistrationService,
		Secret:       r.secret,
	}
	setPasswordHandler := &SetPasswordHandler{
		Registration: r.RegistrationService,
		Secret:       r.secret,
	}

	r.Mux.HandleFunc("GET /register", registerHandler.HandleGet)
	r.Mux.HandleFunc("POST /register", registerHandler.HandlePost)
	r.Mux.HandleFunc("GET /set-password", setPasswordHandler.HandleGet)
	r.Mux.HandleFunc("POST /set-password", setPasswordHandler.HandlePost)
}

func (r *Router) registerDashboard() {
	dashboardHandler := &DashboardHandler{
		Sessions: r.SessionService,
		Threads:  r.ThreadService,
	}
	threadsHandler := &ThreadsHandler{
		Sessions: r.SessionService,
		Threads:  r.ThreadService,
	}

	guard := r.sessionGuard()

	r.Mux.Handle("GET /dashboard", httpx.Chain(dashboardHandler, guard))
	r.Mux.Handle("POST /add", httpx.Chain(http.HandlerFunc(threadsHandler.HandleAdd), guard))
	r.Mux.Handle("POST /toggle", httpx.Chain(http.HandlerFunc(threadsHandler.HandleToggle), guard))
	r.Mux.Handle("POST /edit-title", httpx.Chain(http.HandlerFunc(threadsHandler.HandleEditTitle), guard))
	r.Mux.Handle("POST /save-title", httpx.Chain(http.HandlerFunc(threadsHandler.HandleSaveTitle), guard))
}

func (r *Router) registerAdmin() {
	inviteHandler := &InviteHandler{
		Invitations: r.InvitationService,
		Notifier:    r.Notifier,
		Sessions:    r.SessionService,
		AdminEmail:  r.AdminEmail,
	}
	adminHandler := &AdminHandler{
		Accounts: r.AccountService,
		Sessions: r.SessionService,
		Threads:  r.ThreadService,
	}

	guard := r.sessionGuard()
	admin := r.adminGuard()

	r.Mux.Handle("GET /invite", httpx.Chain(http.HandlerFunc(inviteHandler.HandleGet), guard, admin))
	r.Mux.Handle("POST /invite", httpx.Chain(http.HandlerFunc(inviteHandler.HandlePost), guard, admin))

	r.Mux.Handle("GET /admin", httpx.Chain(http.HandlerFunc(adminHandler.HandleListUsers), guard, admin))
	r.Mux.Handle("GET /admin/{userId}", httpx.Chain(http.HandlerFunc(adminHandler.HandleUserThreads), guard, admin))
	r.Mux.Handle("POST /admin/toggle/{userId}", httpx.Chain(http.HandlerFunc(adminHandler.HandleToggle), guard, admin))
	r.Mux.Handle("POST /admin/remove/{userId}", httpx.Chain(http.HandlerFunc(adminHandler.HandleRemove), guard, admin))
	r.Mux.Handle("POST /admin/disable/{userId}", httpx.Chain(http.HandlerFunc(adminHandler.HandleDisable), guard, admin))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
