package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	"github.com/delguerso1/CT-Supera-sub000/internal/upstream"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type billingUpstream interface {
	ListMensalidades(ctx context.Context, token string, filter upstream.MensalidadeFilter) ([]models.Mensalidade, error)
	GetMensalidade(ctx context.Context, token string, id int) (*models.Mensalidade, error)
	CreateMensalidade(ctx context.Context, token string, payload map[string]interface{}) (*models.Mensalidade, error)
	DeleteMensalidade(ctx context.Context, token string, id int) error
	DarBaixa(ctx context.Context, token string, id int) (*models.Mensalidade, error)
	FinanceDashboard(ctx context.Context, token string, ctID int) (*models.FinanceDashboard, error)
	ListDespesas(ctx context.Context, token string, ctID int) ([]models.Despesa, error)
	CreateDespesa(ctx context.Context, token string, payload map[string]interface{}) (*models.Despesa, error)
	DeleteDespesa(ctx context.Context, token string, id int) error
	ListSalarios(ctx context.Context, token string, ctID int) ([]models.Salario, error)
	MarkSalarioPago(ctx context.Context, token string, id int) (*models.Salario, error)
	GerarPix(ctx context.Context, token string, mensalidadeID int) (*models.PixTransaction, string, error)
	PixStatus(ctx context.Context, token string, transacaoID int) (*models.PixTransaction, error)
	GerarPagamentoBancario(ctx context.Context, token string, mensalidadeID int) (string, error)
}

// CreateMensalidadeRequest creates a manual ledger entry.
type CreateMensalidadeRequest struct {
	Aluno         int     `json:"aluno" validate:"required"`
	Valor         float64 `json:"valor" validate:"required,gt=0"`
	Vencimento    string  `json:"data_vencimento" validate:"required"`
	MesReferencia string  `json:"mes_referencia" validate:"required"`
}

// CreateDespesaRequest records an operating expense.
type CreateDespesaRequest struct {
	Descricao string  `json:"descricao" validate:"required"`
	Valor     float64 `json:"valor" validate:"required,gt=0"`
	Data      string  `json:"data" validate:"required"`
	Categoria string  `json:"categoria"`
	CT        int     `json:"ct" validate:"required"`
}

// PixCharge is the response for a newly created PIX charge.
type PixCharge struct {
	Transaction *models.PixTransaction `json:"transacao"`
	Message     string                 `json:"message,omitempty"`
}

// BillingService covers the financial ledger: monthly dues, expenses,
// salaries, the dashboard and PIX charges with their status watches.
type BillingService struct {
	upstream     billingUpstream
	metrics      *MetricsService
	pollInterval time.Duration
	watchTimeout time.Duration
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewBillingService constructs the billing service.
func NewBillingService(up billingUpstream, metrics *MetricsService, pollInterval, watchTimeout time.Duration, validate *validator.Validate, logger *zap.Logger) *BillingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	if watchTimeout <= 0 {
		watchTimeout = 30 * time.Minute
	}
	return &BillingService{
		upstream:     up,
		metrics:      metrics,
		pollInterval: pollInterval,
		watchTimeout: watchTimeout,
		validator:    validate,
		logger:       logger,
	}
}

// ListMensalidades returns ledger entries matching the filter.
func (s *BillingService) ListMensalidades(ctx context.Context, token string, filter upstream.MensalidadeFilter) ([]models.Mensalidade, error) {
	return s.upstream.ListMensalidades(ctx, token, filter)
}

// GetMensalidade returns a single ledger entry.
func (s *BillingService) GetMensalidade(ctx context.Context, token string, id int) (*models.Mensalidade, error) {
	return s.upstream.GetMensalidade(ctx, token, id)
}

// CreateMensalidade adds a manual ledger entry.
func (s *BillingService) CreateMensalidade(ctx context.Context, token string, req CreateMensalidadeRequest) (*models.Mensalidade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados da mensalidade inválidos")
	}
	return s.upstream.CreateMensalidade(ctx, token, map[string]interface{}{
		"aluno":           req.Aluno,
		"valor":           req.Valor,
		"data_vencimento": req.Vencimento,
		"mes_referencia":  req.MesReferencia,
	})
}

// DeleteMensalidade removes a ledger entry.
func (s *BillingService) DeleteMensalidade(ctx context.Context, token string, id int) error {
	return s.upstream.DeleteMensalidade(ctx, token, id)
}

// DarBaixa settles a due manually (cash or external transfer).
func (s *BillingService) DarBaixa(ctx context.Context, token string, id int) (*models.Mensalidade, error) {
	m, err := s.upstream.DarBaixa(ctx, token, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("mensalidade settled manually", zap.Int("id", id))
	return m, nil
}

// Dashboard returns the financial panel for a training center.
func (s *BillingService) Dashboard(ctx context.Context, token string, ctID int) (*models.FinanceDashboard, error) {
	return s.upstream.FinanceDashboard(ctx, token, ctID)
}

// ListDespesas returns expenses for a training center.
func (s *BillingService) ListDespesas(ctx context.Context, token string, ctID int) ([]models.Despesa, error) {
	return s.upstream.ListDespesas(ctx, token, ctID)
}

// CreateDespesa records an expense.
func (s *BillingService) CreateDespesa(ctx context.Context, token string, req CreateDespesaRequest) (*models.Despesa, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados da despesa inválidos")
	}
	payload := map[string]interface{}{
		"descricao": req.Descricao,
		"valor":     req.Valor,
		"data":      req.Data,
		"ct":        req.CT,
	}
	if req.Categoria != "" {
		payload["categoria"] = req.Categoria
	}
	return s.upstream.CreateDespesa(ctx, token, payload)
}

// DeleteDespesa removes an expense.
func (s *BillingService) DeleteDespesa(ctx context.Context, token string, id int) error {
	return s.upstream.DeleteDespesa(ctx, token, id)
}

// ListSalarios returns the salary sheet for a training center.
func (s *BillingService) ListSalarios(ctx context.Context, token string, ctID int) ([]models.Salario, error) {
	return s.upstream.ListSalarios(ctx, token, ctID)
}

// MarkSalarioPago marks a salary entry as paid.
func (s *BillingService) MarkSalarioPago(ctx context.Context, token string, id int) (*models.Salario, error) {
	return s.upstream.MarkSalarioPago(ctx, token, id)
}

// GerarPix creates a PIX charge for a due.
func (s *BillingService) GerarPix(ctx context.Context, token string, mensalidadeID int) (*PixCharge, error) {
	tx, message, err := s.upstream.GerarPix(ctx, token, mensalidadeID)
	if err != nil {
		return nil, err
	}
	return &PixCharge{Transaction: tx, Message: message}, nil
}

// PixStatus returns the current state of a charge.
func (s *BillingService) PixStatus(ctx context.Context, token string, transacaoID int) (*models.PixTransaction, error) {
	return s.upstream.PixStatus(ctx, token, transacaoID)
}

// GerarPagamentoBancario creates a bank payment link for a due.
func (s *BillingService) GerarPagamentoBancario(ctx context.Context, token string, mensalidadeID int) (string, error) {
	return s.upstream.GerarPagamentoBancario(ctx, token, mensalidadeID)
}

// PixWatcher polls a PIX charge until it reaches a terminal state, the watch
// window closes or the watch is stopped. Exactly one result is delivered on
// Result and the polling goroutine always exits; abandoning a watch without
// Stop is still cleaned up by the timeout.
type PixWatcher struct {
	result chan models.PixWatchResult
	stop   chan struct{}
}

// Result delivers the terminal watch result.
func (w *PixWatcher) Result() <-chan models.PixWatchResult {
	return w.result
}

// Stop cancels the watch. Safe to call more than once.
func (w *PixWatcher) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
}

// WatchPix starts a status watch for the given transaction.
func (s *BillingService) WatchPix(ctx context.Context, token string, transacaoID int) *PixWatcher {
	w := &PixWatcher{
		result: make(chan models.PixWatchResult, 1),
		stop:   make(chan struct{}),
	}
	go s.watch(ctx, token, transacaoID, w)
	return w
}

func (s *BillingService) watch(ctx context.Context, token string, transacaoID int, w *PixWatcher) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(s.watchTimeout)
	defer deadline.Stop()

	finish := func(outcome models.PixWatchOutcome, tx *models.PixTransaction) {
		s.metrics.RecordPixOutcome(string(outcome))
		s.logger.Info("pix watch finished",
			zap.Int("transacao_id", transacaoID),
			zap.String("outcome", string(outcome)))
		w.result <- models.PixWatchResult{Outcome: outcome, Transaction: tx}
	}

	var last *models.PixTransaction
	for {
		select {
		case <-ctx.Done():
			finish(models.PixWatchStopped, last)
			return
		case <-w.stop:
			finish(models.PixWatchStopped, last)
			return
		case <-deadline.C:
			finish(models.PixWatchTimedOut, last)
			return
		case <-ticker.C:
			tx, err := s.upstream.PixStatus(ctx, token, transacaoID)
			if err != nil {
				s.logger.Warn("pix status poll failed",
					zap.Int("transacao_id", transacaoID),
					zap.Error(err))
				continue
			}
			last = tx
			if !tx.Status.Terminal() {
				continue
			}
			switch tx.Status {
			case models.PixAprovado:
				finish(models.PixWatchApproved, tx)
			case models.PixExpirado:
				finish(models.PixWatchExpired, tx)
			}
			return
		}
	}
}
