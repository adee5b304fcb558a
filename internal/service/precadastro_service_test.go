package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type mockPreCadastroUpstream struct {
	pres        []models.PreCadastro
	listCalls   int
	lastPayload map[string]interface{}
	deleted     []int
}

func (m *mockPreCadastroUpstream) ListPreCadastros(ctx context.Context, token string) ([]models.PreCadastro, error) {
	m.listCalls++
	return m.pres, nil
}

func (m *mockPreCadastroUpstream) CreatePreCadastro(ctx context.Context, token string, payload map[string]interface{}) (*models.PreCadastro, error) {
	m.lastPayload = payload
	return &models.PreCadastro{ID: 10, Status: models.PreCadastroPendente}, nil
}

func (m *mockPreCadastroUpstream) UpdatePreCadastro(ctx context.Context, token string, id int, payload map[string]interface{}) (*models.PreCadastro, error) {
	m.lastPayload = payload
	return &models.PreCadastro{ID: id}, nil
}

func (m *mockPreCadastroUpstream) DeletePreCadastro(ctx context.Context, token string, id int) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestListFiltersByStatus(t *testing.T) {
	up := &mockPreCadastroUpstream{pres: []models.PreCadastro{
		{ID: 1, Status: models.PreCadastroPendente},
		{ID: 2, Status: models.PreCadastroMatriculado},
		{ID: 3, Status: models.PreCadastroPendente},
	}}
	svc := NewPreCadastroService(up, nil, nil, nil)

	pres, err := svc.List(context.Background(), "tok", models.PreCadastroPendente)
	require.NoError(t, err)
	require.Len(t, pres, 2)
	assert.Equal(t, 1, pres[0].ID)
	assert.Equal(t, 3, pres[1].ID)

	all, err := svc.List(context.Background(), "tok", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateLeadValidation(t *testing.T) {
	svc := NewPreCadastroService(&mockPreCadastroUpstream{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), "", CreatePreCadastroRequest{FirstName: "Ana"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Create(context.Background(), "", CreatePreCadastroRequest{
		FirstName: "Ana",
		Telefone:  "11999990000",
		CT:        1,
		Email:     "not-an-email",
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCreateLeadOmitsEmptyOptionalFields(t *testing.T) {
	up := &mockPreCadastroUpstream{}
	svc := NewPreCadastroService(up, nil, nil, nil)

	_, err := svc.Create(context.Background(), "", CreatePreCadastroRequest{
		FirstName: "  Ana ",
		Telefone:  "11999990000",
		CT:        2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", up.lastPayload["first_name"])
	assert.Equal(t, 2, up.lastPayload["ct"])
	_, hasEmail := up.lastPayload["email"]
	assert.False(t, hasEmail)
	_, hasCPF := up.lastPayload["cpf"]
	assert.False(t, hasCPF)
}

func TestUpdateLeadRejectsEmptyPatch(t *testing.T) {
	svc := NewPreCadastroService(&mockPreCadastroUpstream{}, nil, nil, nil)

	_, err := svc.Update(context.Background(), "tok", 4, UpdatePreCadastroRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestDeleteLead(t *testing.T) {
	up := &mockPreCadastroUpstream{}
	svc := NewPreCadastroService(up, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "tok", 9))
	assert.Equal(t, []int{9}, up.deleted)
}
