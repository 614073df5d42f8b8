// Package rod implements the browser client with Chrome automation.
package rod

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/nausikt/wikiharvest"
)

// Ensure Client implements wikiharvest.BrowserClient at compile time.
var _ wikiharvest.BrowserClient = (*Client)(nil)

// Client drives a headless Chrome instance through go-rod. It keeps one page
// open for the lifetime of a crawl; every navigation reuses it so session
// state carries from the login flow into the page fetches.
type Client struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page

	loginURL string
	username string
	password string
}

// Option configures a Client.
type Option func(*Client)

// WithLoginURL sets the page the authentication flow starts from. Without
// it, authentication navigates straight to the target URL and relies on the
// site's own redirect to its identity provider.
func WithLoginURL(url string) Option {
	return func(c *Client) {
		c.loginURL = url
	}
}

// WithCredentials sets the credentials typed into the login form.
func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// NewClient launches a headless Chrome browser. Close must be called when
// the Client is no longer needed.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	c.browser = browser
	c.launcher = lnchr
	return c, nil
}

// Factory adapts NewClient to the orchestrator's authenticator factory
// shape. Recognized args: login_url, username, password.
func Factory(args map[string]any) (wikiharvest.BrowserClient, error) {
	var opts []Option
	if loginURL, ok := args["login_url"].(string); ok && loginURL != "" {
		opts = append(opts, WithLoginURL(loginURL))
	}
	username, _ := args["username"].(string)
	password, _ := args["password"].(string)
	if username != "" || password != "" {
		opts = append(opts, WithCredentials(username, password))
	}
	return NewClient(opts...)
}

// AuthenticateAndNavigate runs the login flow, then navigates to url on the
// same page so the authenticated session is in place for the crawl.
func (c *Client) AuthenticateAndNavigate(ctx context.Context, rawURL string) error {
	if err := c.login(ctx, rawURL); err != nil {
		return err
	}
	return c.NavigateTo(ctx, rawURL, 0)
}

// Authenticate runs the login flow and returns the session cookies so an
// HTTP client can continue the crawl without the browser.
func (c *Client) Authenticate(ctx context.Context, rawURL string) ([]wikiharvest.Cookie, error) {
	if err := c.login(ctx, rawURL); err != nil {
		return nil, err
	}

	raw, err := c.browser.GetCookies()
	if err != nil {
		return nil, fmt.Errorf("reading browser cookies: %w", err)
	}

	cookies := make([]wikiharvest.Cookie, 0, len(raw))
	for _, rc := range raw {
		cookie := wikiharvest.Cookie{
			Name:   rc.Name,
			Value:  rc.Value,
			Domain: rc.Domain,
			Path:   rc.Path,
			Secure: rc.Secure,
		}
		if rc.Expires > 0 {
			cookie.Expires = time.Unix(int64(rc.Expires), 0)
		}
		cookies = append(cookies, cookie)
	}
	return cookies, nil
}

// login navigates to the login page (or the target when none is configured)
// and submits credentials into the first username/password form it finds.
// Sites that authenticate via redirect alone need no form interaction; the
// navigation itself completes the flow.
func (c *Client) login(ctx context.Context, targetURL string) error {
	startURL := c.loginURL
	if startURL == "" {
		startURL = targetURL
	}
	if err := c.NavigateTo(ctx, startURL, time.Second); err != nil {
		return err
	}
	if c.username == "" && c.password == "" {
		return nil
	}

	page := c.page.Context(ctx)

	// Best effort: a missing form means the session is already established
	// or the site authenticates some other way.
	userField, err := page.Timeout(5 * time.Second).Element(`input[type="text"], input[type="email"], input[name*="user"]`)
	if err != nil {
		return nil
	}
	if err := userField.Input(c.username); err != nil {
		return fmt.Errorf("entering username: %w", err)
	}

	passField, err := page.Element(`input[type="password"]`)
	if err != nil {
		return fmt.Errorf("locating password field: %w", err)
	}
	if err := passField.Input(c.password); err != nil {
		return fmt.Errorf("entering password: %w", err)
	}
	if err := passField.Type(input.Enter); err != nil {
		return fmt.Errorf("submitting login form: %w", err)
	}
	return page.WaitLoad()
}

// NavigateTo loads url on the client's page and waits for rendering.
func (c *Client) NavigateTo(ctx context.Context, rawURL string, wait time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if c.page == nil {
		page, err := c.browser.Page(proto.TargetCreateTarget{})
		if err != nil {
			return fmt.Errorf("opening page: %w", err)
		}
		c.page = page
	}

	page := c.page.Context(ctx)
	if err := page.Navigate(rawURL); err != nil {
		return fmt.Errorf("navigating to %s: %w", rawURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for %s to load: %w", rawURL, err)
	}

	if wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil
}

// ExtractPageData returns the rendered content of the current page.
func (c *Client) ExtractPageData(ctx context.Context, rawURL string) (*wikiharvest.PageData, error) {
	if c.page == nil {
		return nil, wikiharvest.Errorf(wikiharvest.EINVALID, "no page loaded; navigate first")
	}

	page := c.page.Context(ctx)
	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading rendered HTML for %s: %w", rawURL, err)
	}

	var title string
	if info, err := page.Info(); err == nil {
		title = info.Title
	}

	return &wikiharvest.PageData{
		Content: html,
		Title:   title,
		Suffix:  wikiharvest.SuffixHTML,
	}, nil
}

// LinksWithSameHostname returns the current page's links whose hostname
// equals that of rawURL.
func (c *Client) LinksWithSameHostname(ctx context.Context, rawURL string) ([]string, error) {
	if c.page == nil {
		return nil, wikiharvest.Errorf(wikiharvest.EINVALID, "no page loaded; navigate first")
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, wikiharvest.Errorf(wikiharvest.EINVALID, "invalid URL: %v", err)
	}

	page := c.page.Context(ctx)
	res, err := page.Eval(`() => Array.from(document.querySelectorAll("a[href]")).map(a => a.href)`)
	if err != nil {
		return nil, fmt.Errorf("collecting links: %w", err)
	}

	var links []string
	for _, v := range res.Value.Arr() {
		href := v.Str()
		u, err := url.Parse(href)
		if err != nil || u.Host != base.Host {
			continue
		}
		links = append(links, href)
	}
	return links, nil
}

// Close releases browser resources.
func (c *Client) Close() error {
	var err error
	if c.browser != nil {
		err = c.browser.Close()
	}
	if c.launcher != nil {
		c.launcher.Kill()
	}
	return err
}
