package watchsdk

// ============================================================================
// Page Payloads
// ============================================================================

// Page is the generic view payload for routes that render a plain page.
type Page struct {
	// Page names the view being rendered (e.g. "landing", "login").
	Page string `json:"page"`

	// Flash is the pending one-shot notice for the caller's session, if any.
	Flash string `json:"flash,omitempty"`
}

// RegisterPage is the registration view. Stage tells the client which form
// to present: "request" before a code has been requested, "verify" once an
// attempt is in flight.
type RegisterPage struct {
	Page  string `json:"page"`
	Stage string `json:"stage"`
	Flash string `json:"flash,omitempty"`
}

// SetPasswordPage is the final registration step, only reachable with a live
// registration attempt.
type SetPasswordPage struct {
	Page  string `json:"page"`
	Email string `json:"email"`
}

// Thread is one monitored forum thread as rendered on the dashboard and the
// admin detail page.
type Thread struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ColorMessage string `json:"color_message"`
	ColorQuote   string `json:"color_quote"`
	ColorSpoiler string `json:"color_spoiler"`
	Paused       bool   `json:"paused"`

	// Editing marks the thread whose title the user is currently renaming.
	Editing bool `json:"editing,omitempty"`
}

// DashboardPage is the authenticated landing view.
type DashboardPage struct {
	Page    string   `json:"page"`
	Email   string   `json:"email"`
	Role    string   `json:"role"`
	Flash   string   `json:"flash,omitempty"`
	Threads []Thread `json:"threads"`
}

// ============================================================================
// Admin Payloads
// ============================================================================

// AdminUser is one managed account row on the admin overview.
type AdminUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// AdminUsersPage lists every non-admin account.
type AdminUsersPage struct {
	Page  string      `json:"page"`
	Flash string      `json:"flash,omitempty"`
	Users []AdminUser `json:"users"`
}

// AdminThreadsPage is one user's threads as seen by an administrator.
type AdminThreadsPage struct {
	Page    string    `json:"page"`
	User    AdminUser `json:"user"`
	Threads []Thread  `json:"threads"`
}

// ============================================================================
// System Payloads
// ============================================================================

// HealthChecks reports the state of critical dependencies on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned from /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
