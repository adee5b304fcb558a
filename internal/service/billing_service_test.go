package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	"github.com/delguerso1/CT-Supera-sub000/internal/upstream"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type mockBillingUpstream struct {
	mu       sync.Mutex
	statuses []models.PixStatus
	polls    int

	mensalidades []models.Mensalidade
	lastPayload  map[string]interface{}
}

func (m *mockBillingUpstream) ListMensalidades(ctx context.Context, token string, filter upstream.MensalidadeFilter) ([]models.Mensalidade, error) {
	return m.mensalidades, nil
}

func (m *mockBillingUpstream) GetMensalidade(ctx context.Context, token string, id int) (*models.Mensalidade, error) {
	return &models.Mensalidade{ID: id}, nil
}

func (m *mockBillingUpstream) CreateMensalidade(ctx context.Context, token string, payload map[string]interface{}) (*models.Mensalidade, error) {
	m.lastPayload = payload
	return &models.Mensalidade{ID: 1}, nil
}

func (m *mockBillingUpstream) DeleteMensalidade(ctx context.Context, token string, id int) error {
	return nil
}

func (m *mockBillingUpstream) DarBaixa(ctx context.Context, token string, id int) (*models.Mensalidade, error) {
	return &models.Mensalidade{ID: id, Status: models.MensalidadePaga}, nil
}

func (m *mockBillingUpstream) FinanceDashboard(ctx context.Context, token string, ctID int) (*models.FinanceDashboard, error) {
	return &models.FinanceDashboard{}, nil
}

func (m *mockBillingUpstream) ListDespesas(ctx context.Context, token string, ctID int) ([]models.Despesa, error) {
	return nil, nil
}

func (m *mockBillingUpstream) CreateDespesa(ctx context.Context, token string, payload map[string]interface{}) (*models.Despesa, error) {
	m.lastPayload = payload
	return &models.Despesa{ID: 1}, nil
}

func (m *mockBillingUpstream) DeleteDespesa(ctx context.Context, token string, id int) error {
	return nil
}

func (m *mockBillingUpstream) ListSalarios(ctx context.Context, token string, ctID int) ([]models.Salario, error) {
	return nil, nil
}

func (m *mockBillingUpstream) MarkSalarioPago(ctx context.Context, token string, id int) (*models.Salario, error) {
	return &models.Salario{ID: id, Status: "pago"}, nil
}

func (m *mockBillingUpstream) GerarPix(ctx context.Context, token string, mensalidadeID int) (*models.PixTransaction, string, error) {
	return &models.PixTransaction{ID: 77, Mensalidade: mensalidadeID, Status: models.PixPendente}, "", nil
}

func (m *mockBillingUpstream) PixStatus(ctx context.Context, token string, transacaoID int) (*models.PixTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := m.statuses[len(m.statuses)-1]
	if m.polls < len(m.statuses) {
		status = m.statuses[m.polls]
	}
	m.polls++
	return &models.PixTransaction{ID: transacaoID, Status: status}, nil
}

func (m *mockBillingUpstream) GerarPagamentoBancario(ctx context.Context, token string, mensalidadeID int) (string, error) {
	return "https://pagamento.example/123", nil
}

func (m *mockBillingUpstream) pollCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.polls
}

func newBillingFixture(up *mockBillingUpstream) *BillingService {
	return NewBillingService(up, nil, time.Millisecond, 50*time.Millisecond, nil, nil)
}

func waitResult(t *testing.T, w *PixWatcher) models.PixWatchResult {
	t.Helper()
	select {
	case result := <-w.Result():
		return result
	case <-time.After(2 * time.Second):
		t.Fatal("pix watch did not deliver a result")
		return models.PixWatchResult{}
	}
}

func TestWatchPixApproved(t *testing.T) {
	up := &mockBillingUpstream{statuses: []models.PixStatus{models.PixPendente, models.PixPendente, models.PixAprovado}}
	svc := newBillingFixture(up)

	w := svc.WatchPix(context.Background(), "tok", 77)
	result := waitResult(t, w)

	assert.Equal(t, models.PixWatchApproved, result.Outcome)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, models.PixAprovado, result.Transaction.Status)
	assert.GreaterOrEqual(t, up.pollCount(), 3)
}

func TestWatchPixExpired(t *testing.T) {
	up := &mockBillingUpstream{statuses: []models.PixStatus{models.PixExpirado}}
	svc := newBillingFixture(up)

	result := waitResult(t, svc.WatchPix(context.Background(), "tok", 77))
	assert.Equal(t, models.PixWatchExpired, result.Outcome)
}

func TestWatchPixTimesOut(t *testing.T) {
	up := &mockBillingUpstream{statuses: []models.PixStatus{models.PixPendente}}
	svc := newBillingFixture(up)

	result := waitResult(t, svc.WatchPix(context.Background(), "tok", 77))
	assert.Equal(t, models.PixWatchTimedOut, result.Outcome)
}

func TestWatchPixStopEndsPolling(t *testing.T) {
	up := &mockBillingUpstream{statuses: []models.PixStatus{models.PixPendente}}
	svc := NewBillingService(up, nil, time.Millisecond, time.Hour, nil, nil)

	w := svc.WatchPix(context.Background(), "tok", 77)
	time.Sleep(5 * time.Millisecond)
	w.Stop()
	w.Stop() // idempotent

	result := waitResult(t, w)
	assert.Equal(t, models.PixWatchStopped, result.Outcome)

	polls := up.pollCount()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, polls, up.pollCount(), "polling must stop after the watch ends")
}

func TestWatchPixContextCancel(t *testing.T) {
	up := &mockBillingUpstream{statuses: []models.PixStatus{models.PixPendente}}
	svc := NewBillingService(up, nil, time.Millisecond, time.Hour, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	w := svc.WatchPix(ctx, "tok", 77)
	cancel()

	result := waitResult(t, w)
	assert.Equal(t, models.PixWatchStopped, result.Outcome)
}

func TestCreateMensalidadeValidation(t *testing.T) {
	svc := newBillingFixture(&mockBillingUpstream{})

	_, err := svc.CreateMensalidade(context.Background(), "tok", CreateMensalidadeRequest{Aluno: 1})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCreateDespesaOmitsEmptyCategory(t *testing.T) {
	up := &mockBillingUpstream{}
	svc := newBillingFixture(up)

	_, err := svc.CreateDespesa(context.Background(), "tok", CreateDespesaRequest{
		Descricao: "Bolas novas",
		Valor:     320.50,
		Data:      "2025-03-10",
		CT:        1,
	})
	require.NoError(t, err)
	_, hasCategoria := up.lastPayload["categoria"]
	assert.False(t, hasCategoria)
}
