package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	"github.com/delguerso1/CT-Supera-sub000/internal/service"
	"github.com/delguerso1/CT-Supera-sub000/internal/upstream"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
	"github.com/delguerso1/CT-Supera-sub000/pkg/export"
	"github.com/delguerso1/CT-Supera-sub000/pkg/response"
)

// BillingHandler exposes the financial ledger and PIX payment endpoints.
type BillingHandler struct {
	billing *service.BillingService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewBillingHandler constructs BillingHandler.
func NewBillingHandler(billing *service.BillingService) *BillingHandler {
	return &BillingHandler{
		billing: billing,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

func mensalidadeFilter(c *gin.Context) upstream.MensalidadeFilter {
	var filter upstream.MensalidadeFilter
	filter.Aluno, _ = strconv.Atoi(c.Query("aluno"))
	filter.CT, _ = strconv.Atoi(c.Query("ct"))
	filter.Status = models.MensalidadeStatus(c.Query("status"))
	filter.Mes = c.Query("mes_referencia")
	return filter
}

// ListMensalidades godoc
// @Summary List monthly dues
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param aluno query int false "Filter by student"
// @Param ct query int false "Filter by training center"
// @Param status query string false "Filter by status"
// @Param mes_referencia query string false "Filter by reference month"
// @Success 200 {object} response.Envelope
// @Router /financeiro/mensalidades [get]
func (h *BillingHandler) ListMensalidades(c *gin.Context) {
	mensalidades, err := h.billing.ListMensalidades(c.Request.Context(), upstreamToken(c), mensalidadeFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mensalidades, nil)
}

// ExportMensalidades godoc
// @Summary Export monthly dues as CSV or PDF
// @Tags Financeiro
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /financeiro/mensalidades/export [get]
func (h *BillingHandler) ExportMensalidades(c *gin.Context) {
	mensalidades, err := h.billing.ListMensalidades(c.Request.Context(), upstreamToken(c), mensalidadeFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Aluno", "Valor", "Vencimento", "Status", "Mês"},
	}
	for _, m := range mensalidades {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":         strconv.Itoa(m.ID),
			"Aluno":      m.AlunoNome,
			"Valor":      fmt.Sprintf("%.2f", m.Valor),
			"Vencimento": m.Vencimento,
			"Status":     string(m.Status),
			"Mês":        m.MesReferencia,
		})
	}

	switch c.DefaultQuery("format", "csv") {
	case "pdf":
		data, err := h.pdf.Render(dataset, "Mensalidades")
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="mensalidades.pdf"`)
		c.Data(http.StatusOK, "application/pdf", data)
	case "csv":
		data, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="mensalidades.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "formato inválido: use csv ou pdf"))
	}
}

// CreateMensalidade godoc
// @Summary Add a manual ledger entry
// @Tags Financeiro
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateMensalidadeRequest true "Mensalidade payload"
// @Success 201 {object} response.Envelope
// @Router /financeiro/mensalidades [post]
func (h *BillingHandler) CreateMensalidade(c *gin.Context) {
	var req service.CreateMensalidadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	mensalidade, err := h.billing.CreateMensalidade(c.Request.Context(), upstreamToken(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mensalidade)
}

// DeleteMensalidade godoc
// @Summary Remove a ledger entry
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mensalidade ID"
// @Success 204
// @Router /financeiro/mensalidades/{id} [delete]
func (h *BillingHandler) DeleteMensalidade(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.billing.DeleteMensalidade(c.Request.Context(), upstreamToken(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DarBaixa godoc
// @Summary Settle a due manually
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mensalidade ID"
// @Success 200 {object} response.Envelope
// @Router /financeiro/mensalidades/{id}/baixa [post]
func (h *BillingHandler) DarBaixa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	mensalidade, err := h.billing.DarBaixa(c.Request.Context(), upstreamToken(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mensalidade, nil)
}

// Dashboard godoc
// @Summary Financial panel for a training center
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param ct query int false "Training center"
// @Success 200 {object} response.Envelope
// @Router /financeiro/dashboard [get]
func (h *BillingHandler) Dashboard(c *gin.Context) {
	ctID, _ := strconv.Atoi(c.Query("ct"))
	dashboard, err := h.billing.Dashboard(c.Request.Context(), upstreamToken(c), ctID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard, nil)
}

// ListDespesas godoc
// @Summary List expenses
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param ct query int false "Training center"
// @Success 200 {object} response.Envelope
// @Router /financeiro/despesas [get]
func (h *BillingHandler) ListDespesas(c *gin.Context) {
	ctID, _ := strconv.Atoi(c.Query("ct"))
	despesas, err := h.billing.ListDespesas(c.Request.Context(), upstreamToken(c), ctID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, despesas, nil)
}

// CreateDespesa godoc
// @Summary Record an expense
// @Tags Financeiro
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateDespesaRequest true "Despesa payload"
// @Success 201 {object} response.Envelope
// @Router /financeiro/despesas [post]
func (h *BillingHandler) CreateDespesa(c *gin.Context) {
	var req service.CreateDespesaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	despesa, err := h.billing.CreateDespesa(c.Request.Context(), upstreamToken(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, despesa)
}

// DeleteDespesa godoc
// @Summary Remove an expense
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param id path int true "Despesa ID"
// @Success 204
// @Router /financeiro/despesas/{id} [delete]
func (h *BillingHandler) DeleteDespesa(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.billing.DeleteDespesa(c.Request.Context(), upstreamToken(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSalarios godoc
// @Summary Salary sheet for a training center
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param ct query int false "Training center"
// @Success 200 {object} response.Envelope
// @Router /financeiro/salarios [get]
func (h *BillingHandler) ListSalarios(c *gin.Context) {
	ctID, _ := strconv.Atoi(c.Query("ct"))
	salarios, err := h.billing.ListSalarios(c.Request.Context(), upstreamToken(c), ctID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, salarios, nil)
}

// MarkSalarioPago godoc
// @Summary Mark a salary entry as paid
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param id path int true "Salário ID"
// @Success 200 {object} response.Envelope
// @Router /financeiro/salarios/{id}/pagar [post]
func (h *BillingHandler) MarkSalarioPago(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	salario, err := h.billing.MarkSalarioPago(c.Request.Context(), upstreamToken(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, salario, nil)
}

// GerarPix godoc
// @Summary Create a PIX charge for a due
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mensalidade ID"
// @Success 201 {object} response.Envelope
// @Router /financeiro/mensalidades/{id}/pix [post]
func (h *BillingHandler) GerarPix(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	charge, err := h.billing.GerarPix(c.Request.Context(), upstreamToken(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, charge, nil)
}

// PixStatus godoc
// @Summary Current state of a PIX charge
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transação ID"
// @Success 200 {object} response.Envelope
// @Router /financeiro/pix/{id} [get]
func (h *BillingHandler) PixStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	tx, err := h.billing.PixStatus(c.Request.Context(), upstreamToken(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tx, nil)
}

// AguardarPix godoc
// @Summary Wait for a PIX charge to settle
// @Description Long-polls the charge until it is approved, expires or the
// @Description watch window closes. Closing the connection stops the watch.
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transação ID"
// @Success 200 {object} response.Envelope
// @Router /financeiro/pix/{id}/aguardar [get]
func (h *BillingHandler) AguardarPix(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	watcher := h.billing.WatchPix(c.Request.Context(), upstreamToken(c), id)
	defer watcher.Stop()

	result := <-watcher.Result()
	if result.Outcome == models.PixWatchStopped {
		// client went away; nothing to answer
		c.Abort()
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GerarPagamentoBancario godoc
// @Summary Create a bank payment link for a due
// @Tags Financeiro
// @Produce json
// @Security BearerAuth
// @Param id path int true "Mensalidade ID"
// @Success 201 {object} response.Envelope
// @Router /financeiro/mensalidades/{id}/pagamento-bancario [post]
func (h *BillingHandler) GerarPagamentoBancario(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	url, err := h.billing.GerarPagamentoBancario(c.Request.Context(), upstreamToken(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"payment_url": url}, nil)
}
