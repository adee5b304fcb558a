package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type mockUserUpstream struct {
	users         map[int]models.User
	lastPayload   map[string]interface{}
	lastUpdatedID int
	parqResets    []int
}

func (m *mockUserUpstream) ListUsuarios(ctx context.Context, token string, filter models.UserFilter) ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserUpstream) GetUsuario(ctx context.Context, token string, id int) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "")
}

func (m *mockUserUpstream) CreateUsuario(ctx context.Context, token string, payload map[string]interface{}) (*models.User, error) {
	m.lastPayload = payload
	return &models.User{ID: 99}, nil
}

func (m *mockUserUpstream) UpdateUsuario(ctx context.Context, token string, id int, payload map[string]interface{}) (*models.User, error) {
	m.lastUpdatedID = id
	m.lastPayload = payload
	u := m.users[id]
	return &u, nil
}

func (m *mockUserUpstream) DeleteUsuario(ctx context.Context, token string, id int) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserUpstream) ResetParq(ctx context.Context, token string, userID int) error {
	m.parqResets = append(m.parqResets, userID)
	return nil
}

func TestCreateUserSendsRoleBlock(t *testing.T) {
	up := &mockUserUpstream{}
	svc := NewUserService(up, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "tok", CreateUserRequest{
		FirstName:        "Marcos",
		CPF:              "12345678900",
		Password:         "secret1",
		Tipo:             models.TipoProfessor,
		CT:               2,
		SalarioProfessor: 2500,
		PixProfessor:     "marcos@pix.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, up.lastPayload["salario_professor"])
	assert.Equal(t, "marcos@pix.com", up.lastPayload["pix_professor"])
	_, hasResponsavel := up.lastPayload["nome_responsavel"]
	assert.False(t, hasResponsavel, "aluno block must not leak into professor payload")

	_, err = svc.Create(ctx, "tok", CreateUserRequest{
		FirstName:       "Ana",
		CPF:             "98765432100",
		Password:        "secret1",
		Tipo:            models.TipoAluno,
		CT:              2,
		NomeResponsavel: "Clara",
	})
	require.NoError(t, err)
	assert.Equal(t, "Clara", up.lastPayload["nome_responsavel"])
	_, hasSalario := up.lastPayload["salario_professor"]
	assert.False(t, hasSalario)
}

func TestCreateUserValidatesTipo(t *testing.T) {
	svc := NewUserService(&mockUserUpstream{}, nil, nil)

	_, err := svc.Create(context.Background(), "tok", CreateUserRequest{
		FirstName: "X",
		CPF:       "1",
		Password:  "secret1",
		Tipo:      models.UserTipo("admin"),
		CT:        1,
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestUpdateUserRejectsEmptyPatch(t *testing.T) {
	svc := NewUserService(&mockUserUpstream{users: map[int]models.User{1: {ID: 1}}}, nil, nil)

	_, err := svc.Update(context.Background(), "tok", 1, UpdateUserRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestSetFamilyPlanAdjustsAmount(t *testing.T) {
	up := &mockUserUpstream{users: map[int]models.User{
		4: {ID: 4, Tipo: models.TipoAluno, ValorMensalidade: 150, PlanoFamilia: false},
	}}
	svc := NewUserService(up, nil, nil)
	ctx := context.Background()

	_, err := svc.SetFamilyPlan(ctx, "tok", 4, true)
	require.NoError(t, err)
	assert.Equal(t, 4, up.lastUpdatedID)
	assert.Equal(t, true, up.lastPayload["plano_familia"])
	assert.Equal(t, 140.0, up.lastPayload["valor_mensalidade"])
}

func TestSetFamilyPlanClampsAtZero(t *testing.T) {
	up := &mockUserUpstream{users: map[int]models.User{
		5: {ID: 5, Tipo: models.TipoAluno, ValorMensalidade: 4, PlanoFamilia: false},
	}}
	svc := NewUserService(up, nil, nil)

	_, err := svc.SetFamilyPlan(context.Background(), "tok", 5, true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, up.lastPayload["valor_mensalidade"])
}

func TestSetFamilyPlanNoopWhenUnchanged(t *testing.T) {
	up := &mockUserUpstream{users: map[int]models.User{
		6: {ID: 6, Tipo: models.TipoAluno, ValorMensalidade: 140, PlanoFamilia: true},
	}}
	svc := NewUserService(up, nil, nil)

	user, err := svc.SetFamilyPlan(context.Background(), "tok", 6, true)
	require.NoError(t, err)
	assert.True(t, user.PlanoFamilia)
	assert.Nil(t, up.lastPayload, "no update call expected")
}

func TestSetFamilyPlanRejectsNonStudents(t *testing.T) {
	up := &mockUserUpstream{users: map[int]models.User{
		7: {ID: 7, Tipo: models.TipoProfessor},
	}}
	svc := NewUserService(up, nil, nil)

	_, err := svc.SetFamilyPlan(context.Background(), "tok", 7, true)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestResetParq(t *testing.T) {
	up := &mockUserUpstream{}
	svc := NewUserService(up, nil, nil)

	require.NoError(t, svc.ResetParq(context.Background(), "tok", 11))
	assert.Equal(t, []int{11}, up.parqResets)
}
