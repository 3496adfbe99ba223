package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/eagl/console/pkg/apiclient"
)

// ErrMalformedResponse is returned when the API answers 2xx without the
// fields a session needs.
var ErrMalformedResponse = errors.New("session: malformed auth response")

// Authenticator is the slice of the API the Manager depends on.
type Authenticator interface {
	// Login exchanges credentials for a token and the user it belongs to.
	Login(ctx context.Context, email, password string) (token string, user User, err error)

	// Me returns the user a token belongs to.
	Me(ctx context.Context, token string) (User, error)
}

// APIAuthenticator implements Authenticator over the EAGL REST API.
type APIAuthenticator struct {
	client *apiclient.Client
}

func NewAPIAuthenticator(client *apiclient.Client) *APIAuthenticator {
	return &APIAuthenticator{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type meResponse struct {
	User *User `json:"user"`
}

// Login calls POST /api/auth/login.
func (a *APIAuthenticator) Login(ctx context.Context, email, password string) (string, User, error) {
	var resp loginResponse
	err := a.client.Do(ctx, "/auth/login", apiclient.RequestOptions{
		Method: http.MethodPost,
		Body:   loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return "", User{}, err
	}

	if resp.Token == "" || resp.User == nil {
		return "", User{}, ErrMalformedResponse
	}
	return resp.Token, *resp.User, nil
}

// Me calls GET /api/auth/me with token as the bearer credential.
func (a *APIAuthenticator) Me(ctx context.Context, token string) (User, error) {
	var resp meResponse
	if err := a.client.Get(ctx, "/auth/me", token, &resp); err != nil {
		return User{}, err
	}
	if resp.User == nil {
		return User{}, ErrMalformedResponse
	}
	return *resp.User, nil
}
