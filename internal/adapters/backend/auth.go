package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"vendepass-client/internal/domain"
)

type loginRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

type loginData struct {
	Token string `json:"token"`
}

type userData struct {
	User domain.User `json:"user"`
}

// Login exchanges credentials for a session. Rejections such as
// "client not found" or "invalid credentials" come back as *DomainError.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Session, error) {
	var data loginData
	err := c.exec(ctx, call{
		op:     "backend.Login",
		method: http.MethodPost,
		path:   "/login",
		body:   loginRequest{Username: username, Password: password},
	}, &data)
	if err != nil {
		return domain.Session{}, err
	}

	token := strings.TrimSpace(data.Token)
	if token == "" {
		return domain.Session{}, errors.New("backend.Login: response carried no token")
	}

	return domain.Session{Token: token}, nil
}

func (c *Client) Logout(ctx context.Context, session domain.Session) error {
	return c.exec(ctx, call{
		op:      "backend.Logout",
		method:  http.MethodGet,
		path:    "/logout",
		session: &session,
	}, nil)
}

func (c *Client) CurrentUser(ctx context.Context, session domain.Session) (domain.User, error) {
	var data userData
	err := c.exec(ctx, call{
		op:      "backend.CurrentUser",
		method:  http.MethodGet,
		path:    "/user",
		session: &session,
	}, &data)
	if err != nil {
		return domain.User{}, err
	}
	return data.User, nil
}
