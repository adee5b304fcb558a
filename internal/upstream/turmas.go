package upstream

import (
	"context"
	"fmt"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
)

// ListTurmas returns the turmas visible to the token holder, optionally
// scoped to a training center.
func (c *Client) ListTurmas(ctx context.Context, token string, ctID int) ([]models.Turma, error) {
	path := withQuery("turmas/", queryInt("ct", ctID))
	var turmas []models.Turma
	if err := c.get(ctx, path, token, &turmas); err != nil {
		return nil, err
	}
	return turmas, nil
}

// GetTurma fetches a single turma.
func (c *Client) GetTurma(ctx context.Context, token string, id int) (*models.Turma, error) {
	var turma models.Turma
	if err := c.get(ctx, fmt.Sprintf("turmas/%d/", id), token, &turma); err != nil {
		return nil, err
	}
	return &turma, nil
}

// CreateTurma creates a turma.
func (c *Client) CreateTurma(ctx context.Context, token string, payload map[string]interface{}) (*models.Turma, error) {
	var turma models.Turma
	if err := c.post(ctx, "turmas/", token, payload, &turma); err != nil {
		return nil, err
	}
	return &turma, nil
}

// UpdateTurma updates a turma.
func (c *Client) UpdateTurma(ctx context.Context, token string, id int, payload map[string]interface{}) (*models.Turma, error) {
	var turma models.Turma
	if err := c.put(ctx, fmt.Sprintf("turmas/%d/", id), token, payload, &turma); err != nil {
		return nil, err
	}
	return &turma, nil
}

// DeleteTurma removes a turma.
func (c *Client) DeleteTurma(ctx context.Context, token string, id int) error {
	return c.delete(ctx, fmt.Sprintf("turmas/%d/", id), token)
}

// TurmaAlunos returns the roster of a turma.
func (c *Client) TurmaAlunos(ctx context.Context, token string, turmaID int) ([]models.User, error) {
	var alunos []models.User
	if err := c.get(ctx, fmt.Sprintf("turmas/%d/alunos/", turmaID), token, &alunos); err != nil {
		return nil, err
	}
	return alunos, nil
}

// AddAlunos adds the given students to a turma roster.
func (c *Client) AddAlunos(ctx context.Context, token string, turmaID int, alunoIDs []int) error {
	body := map[string][]int{"alunos": alunoIDs}
	return c.post(ctx, fmt.Sprintf("turmas/%d/adicionar-alunos/", turmaID), token, body, nil)
}

// RemoveAlunos removes the given students from a turma roster.
func (c *Client) RemoveAlunos(ctx context.Context, token string, turmaID int, alunoIDs []int) error {
	body := map[string][]int{"alunos": alunoIDs}
	return c.post(ctx, fmt.Sprintf("turmas/%d/remover-alunos/", turmaID), token, body, nil)
}

// DiasSemana returns the weekday options configured for training.
func (c *Client) DiasSemana(ctx context.Context, token string) ([]models.WeekDay, error) {
	var dias []models.WeekDay
	if err := c.get(ctx, "turmas/diassemana/", token, &dias); err != nil {
		return nil, err
	}
	return dias, nil
}
