package upstream

import (
	"context"
	"fmt"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
)

// ListCTs returns the training centers.
func (c *Client) ListCTs(ctx context.Context, token string) ([]models.CentroTreinamento, error) {
	var cts []models.CentroTreinamento
	if err := c.get(ctx, "cts/", token, &cts); err != nil {
		return nil, err
	}
	return cts, nil
}

// GetCT fetches a single training center.
func (c *Client) GetCT(ctx context.Context, token string, id int) (*models.CentroTreinamento, error) {
	var ct models.CentroTreinamento
	if err := c.get(ctx, fmt.Sprintf("cts/%d/", id), token, &ct); err != nil {
		return nil, err
	}
	return &ct, nil
}

// CreateCT creates a training center.
func (c *Client) CreateCT(ctx context.Context, token string, payload map[string]interface{}) (*models.CentroTreinamento, error) {
	var ct models.CentroTreinamento
	if err := c.post(ctx, "cts/criar/", token, payload, &ct); err != nil {
		return nil, err
	}
	return &ct, nil
}

// UpdateCT updates a training center.
func (c *Client) UpdateCT(ctx context.Context, token string, id int, payload map[string]interface{}) (*models.CentroTreinamento, error) {
	var ct models.CentroTreinamento
	if err := c.put(ctx, fmt.Sprintf("cts/%d/", id), token, payload, &ct); err != nil {
		return nil, err
	}
	return &ct, nil
}

// DeleteCT removes a training center.
func (c *Client) DeleteCT(ctx context.Context, token string, id int) error {
	return c.delete(ctx, fmt.Sprintf("cts/excluir/%d/", id), token)
}
