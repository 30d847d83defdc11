package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/CamKhongFine/iot/internal/session"
)

// PasswordLogin exchanges an email/password pair for a bearer token.
//
// The boundary implements the OAuth2 password grant: a form-encoded
// POST with username (the email) and password, answered with
// access_token/token_type JSON. The returned token is not installed on
// the client; that is the session store's job.
func (c *Client) PasswordLogin(ctx context.Context, email, password string) (string, error) {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + "/auth/login",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	// Route the token exchange through our HTTP client so the request
	// timeout applies.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	tok, err := conf.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", &APIError{
				StatusCode: retrieveErr.Response.StatusCode,
				Detail:     detailFromBody(retrieveErr.Body),
			}
		}
		return "", fmt.Errorf("exchanging credentials: %w", err)
	}

	if tok.AccessToken == "" {
		return "", &APIError{StatusCode: http.StatusBadGateway, Detail: "empty access token"}
	}
	return tok.AccessToken, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return session.User{}, err
	}
	return user, nil
}

// Register creates a new account. It does not authenticate; the caller
// logs in afterwards.
func (c *Client) Register(ctx context.Context, reg session.Registration) (session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", reg, &user); err != nil {
		return session.User{}, err
	}
	return user, nil
}
