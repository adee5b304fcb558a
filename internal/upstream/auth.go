package upstream

import (
	"context"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
)

// LoginResult is the upstream response for a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login authenticates the given credentials against the API.
func (c *Client) Login(ctx context.Context, cpf, password string) (*LoginResult, error) {
	body := map[string]string{"cpf": cpf, "password": password}
	var result LoginResult
	if err := c.post(ctx, "usuarios/login/", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout revokes the upstream token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.post(ctx, "usuarios/logout/", token, nil, nil)
}
