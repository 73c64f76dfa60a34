package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"user-backend/internal/biz"
	"user-backend/internal/conf"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const defaultTimeout = 15 * time.Second

// Client brokers identity operations against a Keycloak realm. It owns the
// shared service-account credential used to authorize admin calls and
// normalizes upstream failures into classified errors.
type Client struct {
	httpClient    *http.Client
	tokenURL      string
	adminRealmURL string
	clientID      string
	clientSecret  string
	creds         *credentialCache
	log           *slog.Logger
}

var _ biz.IdentityProvider = (*Client)(nil)

// NewClient creates a Keycloak client from config.
func NewClient(cfg *conf.Keycloak, log *slog.Logger) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: defaultTimeout},
		tokenURL:      cfg.TokenURL(),
		adminRealmURL: cfg.AdminRealmURL(),
		clientID:      cfg.ClientID,
		clientSecret:  cfg.ClientSecret,
		log:           log,
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL(),
	}
	c.creds = newCredentialCache(func(ctx context.Context) (*serviceCredential, error) {
		tok, err := cc.Token(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient))
		if err != nil {
			return nil, translateTokenFetch(err)
		}
		return &serviceCredential{
			accessToken: tok.AccessToken,
			tokenType:   tok.Type(),
			expiresAt:   tok.Expiry,
		}, nil
	})
	return c
}

func translateTokenFetch(err error) *Error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return translateGeneric(rerr.Response.StatusCode, rerr.Body)
	}
	return unavailable(err)
}

// selfAuthenticated reports whether the request path carries its own grant
// or end-user token. Token issuance, refresh and end-user logout live under
// the realm's openid-connect protocol path and must not receive the service
// credential; everything on the admin surface must.
func selfAuthenticated(u *url.URL) bool {
	return strings.Contains(u.Path, "/protocol/openid-connect/")
}

// do dispatches one upstream call, attaching the service-account credential
// unless the path authenticates itself. Transport-level failures are
// classified as upstream-unavailable, never as a business rejection.
func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if !selfAuthenticated(req.URL) {
		cred, err := c.creds.acquire(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", cred.header())
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, unavailable(err)
	}
	return resp, nil
}

// postTokenForm issues a form-encoded POST to the token endpoint and returns
// the response status and body.
func (c *Client) postTokenForm(ctx context.Context, form url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(ctx, req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, unavailable(err)
	}
	return resp.StatusCode, body, nil
}

func decodeToken(body []byte) (*biz.TokenResult, error) {
	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, &Error{Kind: KindUnknown, StatusCode: http.StatusBadGateway, Message: "malformed token response"}
	}
	return &biz.TokenResult{
		AccessToken:      tok.AccessToken,
		ExpiresIn:        tok.ExpiresIn,
		RefreshExpiresIn: tok.RefreshExpiresIn,
		TokenType:        tok.TokenType,
		SessionState:     tok.SessionState,
		Scope:            tok.Scope,
	}, nil
}

// Login exchanges end-user credentials for a token pair via the password
// grant. A 401 maps to an invalid-credentials error carrying the upstream
// description when present.
func (c *Client) Login(ctx context.Context, username, password string) (*biz.TokenResult, error) {
	form := url.Values{
		"grant_type":    {"password"},
		"username":      {username},
		"password":      {password},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	status, body, err := c.postTokenForm(ctx, form)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, translateLogin(status, body)
	}
	return decodeToken(body)
}

// Refresh exchanges a refresh token for a new token pair. A 400 maps to an
// invalid-refresh-token error.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*biz.TokenResult, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	status, body, err := c.postTokenForm(ctx, form)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, translateRefresh(status, body)
	}
	return decodeToken(body)
}

// CreateUser creates the identity upstream with a verified email, enabled
// account and one permanent password credential, and returns the user id the
// server issued in the Location header.
func (c *Client) CreateUser(ctx context.Context, reg biz.Registration) (string, error) {
	payload := createUserRequest{
		Username:      reg.Username,
		Email:         reg.Email,
		EmailVerified: true,
		Enabled:       true,
		Credentials: []userCredential{{
			Type:      "password",
			Value:     reg.Password,
			Temporary: false,
		}},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.adminRealmURL+"/users", bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", translateRegister(resp.StatusCode, body)
	}

	location := resp.Header.Get("Location")
	userID := location[strings.LastIndex(location, "/")+1:]
	if userID == "" {
		return "", &Error{Kind: KindUnknown, StatusCode: http.StatusBadGateway, Message: "no user id in create response"}
	}
	return userID, nil
}

// DeleteUser removes the identity upstream.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.adminRealmURL+"/users/"+userID, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return translateGeneric(resp.StatusCode, body)
	}
	return nil
}

// Logout force-terminates all sessions of the user. Success is a 204 from
// the admin logout endpoint.
func (c *Client) Logout(ctx context.Context, userID string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.adminRealmURL+"/users/"+userID+"/logout", nil)
	if err != nil {
		return false, err
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return false, translateGeneric(resp.StatusCode, body)
	}
	return resp.StatusCode == http.StatusNoContent, nil
}
