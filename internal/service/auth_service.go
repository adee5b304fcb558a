package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	"github.com/delguerso1/CT-Supera-sub000/internal/upstream"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type authUpstream interface {
	Login(ctx context.Context, cpf, password string) (*upstream.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

type sessionStore interface {
	Save(ctx context.Context, session models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// LoginRequest carries credentials for the login endpoint.
type LoginRequest struct {
	CPF      string `json:"cpf" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the gateway token and profile returned on login.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	User      models.User `json:"user"`
}

// AuthService authenticates staff and students against the CT Supera API
// and manages gateway sessions. The browser never sees the upstream token;
// it holds a signed gateway JWT whose session record carries the upstream
// token server-side and is removed on logout.
type AuthService struct {
	upstream  authUpstream
	sessions  sessionStore
	secret    []byte
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(up authUpstream, sessions sessionStore, secret string, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{
		upstream:  up,
		sessions:  sessions,
		secret:    []byte(secret),
		ttl:       ttl,
		validator: validate,
		logger:    logger,
	}
}

// Login proxies the credentials upstream, opens a gateway session bound to
// the upstream token and returns a signed session JWT.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "informe CPF e senha")
	}

	result, err := s.upstream.Login(ctx, req.CPF, req.Password)
	if err != nil {
		if e := appErrors.FromError(err); e.Status == 400 || e.Status == 401 {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, e.Message)
		}
		return nil, err
	}

	now := time.Now().UTC()
	session := models.Session{
		ID:            uuid.NewString(),
		UpstreamToken: result.Token,
		UserID:        result.User.ID,
		Nome:          result.User.Nome(),
		Tipo:          result.User.Tipo,
		CT:            result.User.CT,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open session")
	}

	token, err := s.signToken(session)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	s.logger.Info("session opened",
		zap.Int("user_id", session.UserID),
		zap.String("tipo", string(session.Tipo)))

	return &LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.ttl.Seconds()),
		User:      result.User,
	}, nil
}

// Validate parses a gateway JWT and resolves the backing session.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (*models.Session, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "sessão inválida ou expirada")
	}
	session, err := s.sessions.Find(ctx, claims.SessionID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "sessão inválida ou expirada")
	}
	return session, nil
}

// Logout revokes the upstream token and tears the gateway session down.
// Session removal happens even when the upstream revocation fails; a dead
// upstream must not keep a local session alive.
func (s *AuthService) Logout(ctx context.Context, session *models.Session) error {
	if err := s.upstream.Logout(ctx, session.UpstreamToken); err != nil {
		s.logger.Warn("upstream logout failed", zap.Int("user_id", session.UserID), zap.Error(err))
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to close session")
	}
	s.logger.Info("session closed", zap.Int("user_id", session.UserID))
	return nil
}

func (s *AuthService) signToken(session models.Session) (string, error) {
	claims := models.SessionClaims{
		SessionID: session.ID,
		UserID:    session.UserID,
		Tipo:      session.Tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", session.UserID),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
