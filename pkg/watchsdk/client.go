package watchsdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client drives the threadwatch HTTP surface the way a browser would: it
// keeps a cookie jar for the session and registration cookies, posts forms,
// and never follows redirects so callers can observe where they were sent.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a fresh cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// ============================================================================
// Public Pages
// ============================================================================

// Landing fetches the unauthenticated home page. A logged-in client is
// redirected to the dashboard (surfaced as *RedirectError).
func (c *Client) Landing(ctx context.Context) (*Page, error) {
	var page Page
	if err := c.get(ctx, "/", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// LoginPage fetches the login view.
func (c *Client) LoginPage(ctx context.Context) (*Page, error) {
	var page Page
	if err := c.get(ctx, "/login", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, email, password string) error {
	_, err := c.postForm(ctx, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	return err
}

// Logout destroys the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	err := c.get(ctx, "/logout", nil)
	// Logout always redirects back to the login page.
	var redirect *RedirectError
	if errors.As(err, &redirect) {
		return nil
	}
	return err
}

// ============================================================================
// Registration
// ============================================================================

// RegisterPage fetches the registration view; Stage reflects whether this
// client already has an attempt in flight.
func (c *Client) RegisterPage(ctx context.Context) (*RegisterPage, error) {
	var page RegisterPage
	if err := c.get(ctx, "/register", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// RequestCode begins a registration for the email. The code is delivered to
// the administrator out-of-band; the attempt cookie lands in the jar.
func (c *Client) RequestCode(ctx context.Context, email string) error {
	_, err := c.postForm(ctx, "/register", url.Values{
		"send_code": {"1"},
		"email":     {email},
	})
	return err
}

// VerifyCode submits the code obtained from the administrator.
func (c *Client) VerifyCode(ctx context.Context, code string) error {
	_, err := c.postForm(ctx, "/register", url.Values{
		"code": {code},
	})
	return err
}

// SetPasswordPage fetches the final registration step.
func (c *Client) SetPasswordPage(ctx context.Context) (*SetPasswordPage, error) {
	var page SetPasswordPage
	if err := c.get(ctx, "/set-password", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SetPassword completes the registration.
func (c *Client) SetPassword(ctx context.Context, password string) error {
	_, err := c.postForm(ctx, "/set-password", url.Values{
		"password": {password},
	})
	return err
}

// ============================================================================
// Dashboard & Threads
// ============================================================================

// Dashboard fetches the caller's threads.
func (c *Client) Dashboard(ctx context.Context) (*DashboardPage, error) {
	var page DashboardPage
	if err := c.get(ctx, "/dashboard", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AddThread registers a new monitored thread.
func (c *Client) AddThread(ctx context.Context, thread Thread) error {
	_, err := c.postForm(ctx, "/add", url.Values{
		"title":         {thread.Title},
		"url":           {thread.URL},
		"color_message": {thread.ColorMessage},
		"color_quote":   {thread.ColorQuote},
		"color_spoiler": {thread.ColorSpoiler},
	})
	return err
}

// ToggleThread pauses or resumes one of the caller's threads.
func (c *Client) ToggleThread(ctx context.Context, threadID string) error {
	_, err := c.postForm(ctx, "/toggle", url.Values{"id": {threadID}})
	return err
}

// EditTitle marks the thread at url as being renamed.
func (c *Client) EditTitle(ctx context.Context, threadURL string) error {
	_, err := c.postForm(ctx, "/edit-title", url.Values{"url": {threadURL}})
	return err
}

// SaveTitle applies the pending rename.
func (c *Client) SaveTitle(ctx context.Context, threadURL, newTitle string) error {
	_, err := c.postForm(ctx, "/save-title", url.Values{
		"url":       {threadURL},
		"new_title": {newTitle},
	})
	return err
}

// ============================================================================
// Admin
// ============================================================================

// InvitePage fetches the invitation view (admin only).
func (c *Client) InvitePage(ctx context.Context) (*Page, error) {
	var page Page
	if err := c.get(ctx, "/invite", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Invite issues an invitation for the email (admin only).
func (c *Client) Invite(ctx context.Context, email string) error {
	_, err := c.postForm(ctx, "/invite", url.Values{"email": {email}})
	return err
}

// AdminUsers lists the managed accounts (admin only).
func (c *Client) AdminUsers(ctx context.Context) (*AdminUsersPage, error) {
	var page AdminUsersPage
	if err := c.get(ctx, "/admin", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AdminUserThreads fetches one user's threads (admin only).
func (c *Client) AdminUserThreads(ctx context.Context, userID string) (*AdminThreadsPage, error) {
	var page AdminThreadsPage
	if err := c.get(ctx, "/admin/"+userID, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AdminToggleThread toggles a target user's thread (admin only).
func (c *Client) AdminToggleThread(ctx context.Context, userID, threadID string) error {
	_, err := c.postForm(ctx, "/admin/toggle/"+userID, url.Values{"id": {threadID}})
	return err
}

// AdminRemoveThread deletes a target user's thread (admin only).
func (c *Client) AdminRemoveThread(ctx context.Context, userID, threadID string) error {
	_, err := c.postForm(ctx, "/admin/remove/"+userID, url.Values{"id": {threadID}})
	return err
}

// AdminDisableUser disables an account (admin only, one-way).
func (c *Client) AdminDisableUser(ctx context.Context, userID string) error {
	_, err := c.postForm(ctx, "/admin/disable/"+userID, url.Values{})
	return err
}

// ============================================================================
// System
// ============================================================================

// Livez checks the liveness endpoint.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.get(ctx, "/livez", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Readyz checks the readiness endpoint.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.get(ctx, "/readyz", &health); err != nil {
		return nil, err
	}
	return &health, nil
}
