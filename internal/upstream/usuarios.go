package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
)

// userPage is the paginated shape returned by the usuarios listing.
type userPage struct {
	Results []models.User `json:"results"`
	Next    string        `json:"next"`
}

// ListUsuarios returns all users matching the filter, following pagination
// cursors until exhausted.
func (c *Client) ListUsuarios(ctx context.Context, token string, filter models.UserFilter) ([]models.User, error) {
	params := []string{}
	if filter.Tipo != "" {
		params = append(params, "tipo="+url.QueryEscape(string(filter.Tipo)))
	}
	if filter.CT > 0 {
		params = append(params, queryInt("ct", filter.CT))
	}
	if filter.Search != "" {
		params = append(params, "search="+url.QueryEscape(filter.Search))
	}

	path := withQuery("usuarios/", params...)
	var users []models.User
	for path != "" {
		var page userPage
		if err := c.get(ctx, path, token, &page); err != nil {
			return nil, err
		}
		users = append(users, page.Results...)
		path = page.Next
	}
	return users, nil
}

// GetUsuario fetches a single user.
func (c *Client) GetUsuario(ctx context.Context, token string, id int) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, fmt.Sprintf("usuarios/%d/", id), token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUsuario creates a user. The payload carries role-conditional fields,
// so it is built dynamically by the caller.
func (c *Client) CreateUsuario(ctx context.Context, token string, payload map[string]interface{}) (*models.User, error) {
	var user models.User
	if err := c.post(ctx, "usuarios/", token, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUsuario patches a user.
func (c *Client) UpdateUsuario(ctx context.Context, token string, id int, payload map[string]interface{}) (*models.User, error) {
	var user models.User
	if err := c.patch(ctx, fmt.Sprintf("usuarios/%d/", id), token, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUsuario removes a user.
func (c *Client) DeleteUsuario(ctx context.Context, token string, id int) error {
	return c.delete(ctx, fmt.Sprintf("usuarios/%d/", id), token)
}

// precadastroPage is the paginated shape of the pre-registration listing.
type precadastroPage struct {
	Results []models.PreCadastro `json:"results"`
	Next    string               `json:"next"`
}

// ListPreCadastros returns every pre-registration, following the next cursor
// until exhausted. The local list is never treated as source of truth; callers
// refetch after mutations.
func (c *Client) ListPreCadastros(ctx context.Context, token string) ([]models.PreCadastro, error) {
	path := "usuarios/precadastros/"
	var out []models.PreCadastro
	for path != "" {
		var page precadastroPage
		if err := c.get(ctx, path, token, &page); err != nil {
			return nil, err
		}
		out = append(out, page.Results...)
		path = page.Next
	}
	return out, nil
}

// CreatePreCadastro registers a new lead (public scheduling form).
func (c *Client) CreatePreCadastro(ctx context.Context, token string, payload map[string]interface{}) (*models.PreCadastro, error) {
	var pc models.PreCadastro
	if err := c.post(ctx, "usuarios/precadastros/", token, payload, &pc); err != nil {
		return nil, err
	}
	return &pc, nil
}

// UpdatePreCadastro patches a pre-registration.
func (c *Client) UpdatePreCadastro(ctx context.Context, token string, id int, payload map[string]interface{}) (*models.PreCadastro, error) {
	var pc models.PreCadastro
	if err := c.patch(ctx, fmt.Sprintf("usuarios/precadastros/%d/", id), token, payload, &pc); err != nil {
		return nil, err
	}
	return &pc, nil
}

// DeletePreCadastro removes a pre-registration.
func (c *Client) DeletePreCadastro(ctx context.Context, token string, id int) error {
	return c.delete(ctx, fmt.Sprintf("usuarios/precadastros/%d/", id), token)
}

// finalizeResponse acknowledges a completed matrícula.
type finalizeResponse struct {
	Message string `json:"message"`
}

// FinalizeEnrollment converts a pre-registration into an enrolled student.
// On success the upstream acknowledges with a message; on failure the error
// string is relayed verbatim.
func (c *Client) FinalizeEnrollment(ctx context.Context, token string, precadastroID int, payload models.EnrollmentPayload) (string, error) {
	var resp finalizeResponse
	path := fmt.Sprintf("usuarios/finalizar-agendamento/%d/", precadastroID)
	if err := c.post(ctx, path, token, payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResetParq releases a student's PAR-Q questionnaire for re-submission.
func (c *Client) ResetParq(ctx context.Context, token string, userID int) error {
	return c.post(ctx, fmt.Sprintf("usuarios/%d/reset-parq/", userID), token, nil, nil)
}
