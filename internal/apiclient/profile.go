package apiclient

import (
	"context"
	"net/http"

	"roamcms/internal/models"
)

func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodGet, "/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodPut, "/profile", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges operator credentials for a bearer token and installs
// it on the client. Session design beyond that is the auth service's
// business, not ours.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return err
	}
	c.SetToken(out.Token)
	return nil
}
