package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	"github.com/delguerso1/CT-Supera-sub000/internal/upstream"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type mockAuthUpstream struct {
	result       *upstream.LoginResult
	loginErr     error
	logoutErr    error
	logoutTokens []string
}

func (m *mockAuthUpstream) Login(ctx context.Context, cpf, password string) (*upstream.LoginResult, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.result, nil
}

func (m *mockAuthUpstream) Logout(ctx context.Context, token string) error {
	m.logoutTokens = append(m.logoutTokens, token)
	return m.logoutErr
}

type mockSessionStore struct {
	sessions map[string]models.Session
	saveErr  error
}

func (m *mockSessionStore) Save(ctx context.Context, session models.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.sessions == nil {
		m.sessions = make(map[string]models.Session)
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionStore) Find(ctx context.Context, id string) (*models.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return &s, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
}

func (m *mockSessionStore) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func newAuthFixture() (*AuthService, *mockAuthUpstream, *mockSessionStore) {
	up := &mockAuthUpstream{result: &upstream.LoginResult{
		Token: "upstream-token",
		User:  models.User{ID: 12, FirstName: "João", LastName: "Silva", Tipo: models.TipoGerente, CT: 3},
	}}
	store := &mockSessionStore{}
	svc := NewAuthService(up, store, "test-secret", time.Hour, nil, nil)
	return svc, up, store
}

func TestLoginOpensSessionAndSignsToken(t *testing.T) {
	svc, _, store := newAuthFixture()

	resp, err := svc.Login(context.Background(), LoginRequest{CPF: "12345678900", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, 12, resp.User.ID)

	require.Len(t, store.sessions, 1)
	for _, session := range store.sessions {
		assert.Equal(t, "upstream-token", session.UpstreamToken)
		assert.Equal(t, "João Silva", session.Nome)
		assert.Equal(t, models.TipoGerente, session.Tipo)
	}

	session, err := svc.Validate(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 12, session.UserID)
	assert.Equal(t, "upstream-token", session.UpstreamToken)
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), LoginRequest{CPF: "12345678900"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestLoginMapsUpstreamRejection(t *testing.T) {
	svc, up, _ := newAuthFixture()
	up.loginErr = appErrors.New(appErrors.ErrUpstream.Code, 400, "CPF ou senha incorretos.")

	_, err := svc.Login(context.Background(), LoginRequest{CPF: "123", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
	assert.Equal(t, "CPF ou senha incorretos.", appErrors.FromError(err).Message)
}

func TestValidateRejectsGarbageToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Validate(context.Background(), "not-a-jwt")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestValidateRejectsTokenWithoutSession(t *testing.T) {
	svc, _, store := newAuthFixture()

	resp, err := svc.Login(context.Background(), LoginRequest{CPF: "123", Password: "x"})
	require.NoError(t, err)

	store.sessions = nil
	_, err = svc.Validate(context.Background(), resp.Token)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestLogoutTearsDownSessionEvenOnUpstreamFailure(t *testing.T) {
	svc, up, store := newAuthFixture()
	up.logoutErr = appErrors.Clone(appErrors.ErrUpstream, "")

	resp, err := svc.Login(context.Background(), LoginRequest{CPF: "123", Password: "x"})
	require.NoError(t, err)
	session, err := svc.Validate(context.Background(), resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session))
	assert.Equal(t, []string{"upstream-token"}, up.logoutTokens)
	assert.Empty(t, store.sessions)

	_, err = svc.Validate(context.Background(), resp.Token)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}
