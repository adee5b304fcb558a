package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type mockAttendanceUpstream struct {
	registrado    bool
	registered    [][]int
	lastCorrected int
}

func (m *mockAttendanceUpstream) VerificarCheckin(ctx context.Context, token string, turmaID int) (*models.CheckinStatus, error) {
	return &models.CheckinStatus{Turma: turmaID, Registrado: m.registrado}, nil
}

func (m *mockAttendanceUpstream) RegistrarPresenca(ctx context.Context, token string, turmaID int, alunoIDs []int) error {
	m.registered = append(m.registered, alunoIDs)
	return nil
}

func (m *mockAttendanceUpstream) RelatorioPresenca(ctx context.Context, token string, filter models.AttendanceReportFilter) ([]models.Presenca, error) {
	return []models.Presenca{{ID: 1, Turma: filter.Turma, Presente: true}}, nil
}

func (m *mockAttendanceUpstream) CorrigirPresenca(ctx context.Context, token string, presencaID int, presente bool) (*models.Presenca, error) {
	m.lastCorrected = presencaID
	return &models.Presenca{ID: presencaID, Presente: presente}, nil
}

func TestRegistrarRecordsRollCall(t *testing.T) {
	up := &mockAttendanceUpstream{}
	svc := NewAttendanceService(up, nil, nil)

	err := svc.Registrar(context.Background(), "tok", 3, []int{1, 2, 5})
	require.NoError(t, err)
	require.Len(t, up.registered, 1)
	assert.Equal(t, []int{1, 2, 5}, up.registered[0])
}

func TestRegistrarRejectsDuplicateCheckin(t *testing.T) {
	up := &mockAttendanceUpstream{registrado: true}
	svc := NewAttendanceService(up, nil, nil)

	err := svc.Registrar(context.Background(), "tok", 3, []int{1})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
	assert.Empty(t, up.registered)
}

func TestCorrigirFlipsRecord(t *testing.T) {
	up := &mockAttendanceUpstream{}
	svc := NewAttendanceService(up, nil, nil)

	p, err := svc.Corrigir(context.Background(), "tok", 42, false)
	require.NoError(t, err)
	assert.Equal(t, 42, up.lastCorrected)
	assert.False(t, p.Presente)
}
