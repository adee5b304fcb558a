package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	"github.com/delguerso1/CT-Supera-sub000/internal/service"
	"github.com/delguerso1/CT-Supera-sub000/internal/upstream"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type authUpstreamStub struct{}

func (authUpstreamStub) Login(ctx context.Context, cpf, password string) (*upstream.LoginResult, error) {
	return &upstream.LoginResult{Token: "tok", User: models.User{ID: 1}}, nil
}

func (authUpstreamStub) Logout(ctx context.Context, token string) error {
	return nil
}

type sessionStoreStub struct {
	sessions map[string]models.Session
}

func (s *sessionStoreStub) Save(ctx context.Context, session models.Session) error {
	if s.sessions == nil {
		s.sessions = make(map[string]models.Session)
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *sessionStoreStub) Find(ctx context.Context, id string) (*models.Session, error) {
	if session, ok := s.sessions[id]; ok {
		return &session, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
}

func (s *sessionStoreStub) Delete(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func TestLoginRejectsInvalidBody(t *testing.T) {
	auth := service.NewAuthService(&authUpstreamStub{}, &sessionStoreStub{}, "secret", time.Hour, nil, nil)
	h := NewAuthHandler(auth)

	c, w := testContext(t, http.MethodPost, "/auth/login", nil)
	c.Request.Body = http.NoBody

	h.Login(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutWithoutSession(t *testing.T) {
	auth := service.NewAuthService(&authUpstreamStub{}, &sessionStoreStub{}, "secret", time.Hour, nil, nil)
	h := NewAuthHandler(auth)

	gin.SetMode(gin.TestMode)
	c, w := testContext(t, http.MethodPost, "/auth/logout", nil)
	c.Keys = nil // no authenticated session attached

	h.Logout(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
