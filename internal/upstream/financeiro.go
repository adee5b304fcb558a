package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
)

// MensalidadeFilter narrows the monthly dues listing.
type MensalidadeFilter struct {
	Aluno  int
	Status models.MensalidadeStatus
	Mes    string
	CT     int
}

// mensalidadePage is the paginated dues listing shape.
type mensalidadePage struct {
	Results []models.Mensalidade `json:"results"`
	Next    string               `json:"next"`
}

// ListMensalidades returns monthly dues matching the filter, following the
// pagination cursor until exhausted.
func (c *Client) ListMensalidades(ctx context.Context, token string, filter MensalidadeFilter) ([]models.Mensalidade, error) {
	params := []string{
		queryInt("aluno", filter.Aluno),
		queryInt("ct", filter.CT),
	}
	if filter.Status != "" {
		params = append(params, "status="+url.QueryEscape(string(filter.Status)))
	}
	if filter.Mes != "" {
		params = append(params, "mes_referencia="+url.QueryEscape(filter.Mes))
	}

	path := withQuery("financeiro/mensalidades/", params...)
	var out []models.Mensalidade
	for path != "" {
		var page mensalidadePage
		if err := c.get(ctx, path, token, &page); err != nil {
			return nil, err
		}
		out = append(out, page.Results...)
		path = page.Next
	}
	return out, nil
}

// GetMensalidade fetches a single due.
func (c *Client) GetMensalidade(ctx context.Context, token string, id int) (*models.Mensalidade, error) {
	var m models.Mensalidade
	if err := c.get(ctx, fmt.Sprintf("financeiro/mensalidades/%d/", id), token, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMensalidade creates a due entry.
func (c *Client) CreateMensalidade(ctx context.Context, token string, payload map[string]interface{}) (*models.Mensalidade, error) {
	var m models.Mensalidade
	if err := c.post(ctx, "financeiro/mensalidades/", token, payload, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMensalidade removes a due entry.
func (c *Client) DeleteMensalidade(ctx context.Context, token string, id int) error {
	return c.delete(ctx, fmt.Sprintf("financeiro/mensalidades/%d/", id), token)
}

// DarBaixa settles a due manually (payment received outside PIX).
func (c *Client) DarBaixa(ctx context.Context, token string, id int) (*models.Mensalidade, error) {
	var m models.Mensalidade
	if err := c.post(ctx, fmt.Sprintf("financeiro/mensalidades/%d/dar-baixa/", id), token, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// FinanceDashboard fetches the aggregated financial panel.
func (c *Client) FinanceDashboard(ctx context.Context, token string, ctID int) (*models.FinanceDashboard, error) {
	var d models.FinanceDashboard
	if err := c.get(ctx, withQuery("financeiro/dashboard/", queryInt("ct", ctID)), token, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDespesas returns expense entries.
func (c *Client) ListDespesas(ctx context.Context, token string, ctID int) ([]models.Despesa, error) {
	var despesas []models.Despesa
	if err := c.get(ctx, withQuery("financeiro/despesas/", queryInt("ct", ctID)), token, &despesas); err != nil {
		return nil, err
	}
	return despesas, nil
}

// CreateDespesa creates an expense entry.
func (c *Client) CreateDespesa(ctx context.Context, token string, payload map[string]interface{}) (*models.Despesa, error) {
	var d models.Despesa
	if err := c.post(ctx, "financeiro/despesas/", token, payload, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDespesa removes an expense entry.
func (c *Client) DeleteDespesa(ctx context.Context, token string, id int) error {
	return c.delete(ctx, fmt.Sprintf("financeiro/despesas/%d/", id), token)
}

// ListSalarios returns salary entries.
func (c *Client) ListSalarios(ctx context.Context, token string, ctID int) ([]models.Salario, error) {
	var salarios []models.Salario
	if err := c.get(ctx, withQuery("financeiro/salarios/", queryInt("ct", ctID)), token, &salarios); err != nil {
		return nil, err
	}
	return salarios, nil
}

// MarkSalarioPago marks a salary entry as paid.
func (c *Client) MarkSalarioPago(ctx context.Context, token string, id int) (*models.Salario, error) {
	body := map[string]string{"status": "pago"}
	var s models.Salario
	if err := c.patch(ctx, fmt.Sprintf("financeiro/salarios/%d/", id), token, body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// pixResponse wraps PIX generation/status payloads.
type pixResponse struct {
	Message   string                `json:"message"`
	Transacao models.PixTransaction `json:"transacao"`
}

// GerarPix creates a PIX charge for a due.
func (c *Client) GerarPix(ctx context.Context, token string, mensalidadeID int) (*models.PixTransaction, string, error) {
	var resp pixResponse
	if err := c.post(ctx, fmt.Sprintf("financeiro/pix/gerar/%d/", mensalidadeID), token, nil, &resp); err != nil {
		return nil, "", err
	}
	return &resp.Transacao, resp.Message, nil
}

// PixStatus fetches the current state of a PIX charge.
func (c *Client) PixStatus(ctx context.Context, token string, transacaoID int) (*models.PixTransaction, error) {
	var resp pixResponse
	if err := c.get(ctx, fmt.Sprintf("financeiro/pix/status/%d/", transacaoID), token, &resp); err != nil {
		return nil, err
	}
	return &resp.Transacao, nil
}

// bankPaymentResponse wraps the bank payment link payload.
type bankPaymentResponse struct {
	PaymentURL string `json:"payment_url"`
}

// GerarPagamentoBancario creates a bank payment link for a due.
func (c *Client) GerarPagamentoBancario(ctx context.Context, token string, mensalidadeID int) (string, error) {
	var resp bankPaymentResponse
	if err := c.post(ctx, fmt.Sprintf("financeiro/pagamento-bancario/gerar/%d/", mensalidadeID), token, nil, &resp); err != nil {
		return "", err
	}
	return resp.PaymentURL, nil
}
