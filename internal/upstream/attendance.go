package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
)

// VerificarCheckin reports whether a check-in was already registered today
// for the turma.
func (c *Client) VerificarCheckin(ctx context.Context, token string, turmaID int) (*models.CheckinStatus, error) {
	var status models.CheckinStatus
	if err := c.get(ctx, fmt.Sprintf("funcionarios/verificar-checkin/%d/", turmaID), token, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// RegistrarPresenca registers attendance for the selected students.
func (c *Client) RegistrarPresenca(ctx context.Context, token string, turmaID int, alunoIDs []int) error {
	body := map[string][]int{"alunos_presentes": alunoIDs}
	return c.post(ctx, fmt.Sprintf("funcionarios/registrar-presenca/%d/", turmaID), token, body, nil)
}

// RelatorioPresenca fetches the attendance report matching the filter.
func (c *Client) RelatorioPresenca(ctx context.Context, token string, filter models.AttendanceReportFilter) ([]models.Presenca, error) {
	params := []string{
		queryInt("turma", filter.Turma),
		queryInt("aluno", filter.Aluno),
	}
	if filter.DataInicio != "" {
		params = append(params, "data_inicio="+url.QueryEscape(filter.DataInicio))
	}
	if filter.DataFim != "" {
		params = append(params, "data_fim="+url.QueryEscape(filter.DataFim))
	}

	var presencas []models.Presenca
	if err := c.get(ctx, withQuery("funcionarios/relatorio-presenca/", params...), token, &presencas); err != nil {
		return nil, err
	}
	return presencas, nil
}

// CorrigirPresenca patches a single attendance record.
func (c *Client) CorrigirPresenca(ctx context.Context, token string, presencaID int, presente bool) (*models.Presenca, error) {
	body := map[string]bool{"presente": presente}
	var p models.Presenca
	if err := c.patch(ctx, fmt.Sprintf("funcionarios/corrigir-presenca/%d/", presencaID), token, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
