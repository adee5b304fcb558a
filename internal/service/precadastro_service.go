package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type precadastroUpstream interface {
	ListPreCadastros(ctx context.Context, token string) ([]models.PreCadastro, error)
	CreatePreCadastro(ctx context.Context, token string, payload map[string]interface{}) (*models.PreCadastro, error)
	UpdatePreCadastro(ctx context.Context, token string, id int, payload map[string]interface{}) (*models.PreCadastro, error)
	DeletePreCadastro(ctx context.Context, token string, id int) error
}

// CreatePreCadastroRequest is the lead-capture payload. It is accepted
// unauthenticated from the marketing pages, hence the stricter validation.
type CreatePreCadastroRequest struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name"`
	Email          string `json:"email" validate:"omitempty,email"`
	Telefone       string `json:"telefone" validate:"required"`
	CPF            string `json:"cpf"`
	DataNascimento string `json:"data_nascimento"`
	CT             int    `json:"ct" validate:"required"`
}

// UpdatePreCadastroRequest carries staff edits to a lead.
type UpdatePreCadastroRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Telefone       *string `json:"telefone"`
	CPF            *string `json:"cpf"`
	DataNascimento *string `json:"data_nascimento"`
}

const precadastroCacheKey = "precadastros:all"

// PreCadastroService manages pre-registration leads ahead of enrollment.
type PreCadastroService struct {
	upstream  precadastroUpstream
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPreCadastroService constructs the pre-registration service.
func NewPreCadastroService(up precadastroUpstream, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *PreCadastroService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreCadastroService{upstream: up, cache: cache, validator: validate, logger: logger}
}

// List returns every pre-registration, preferring the cache. Filtering by
// status happens gateway-side because the upstream list has no status query.
func (s *PreCadastroService) List(ctx context.Context, token string, status models.PreCadastroStatus) ([]models.PreCadastro, error) {
	var pres []models.PreCadastro
	hit, _ := s.cache.Get(ctx, precadastroCacheKey, &pres)
	if !hit {
		var err error
		pres, err = s.upstream.ListPreCadastros(ctx, token)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, precadastroCacheKey, pres, 2*time.Minute)
	}
	if status == "" {
		return pres, nil
	}
	filtered := make([]models.PreCadastro, 0, len(pres))
	for _, p := range pres {
		if p.Status == status {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Create registers a new lead.
func (s *PreCadastroService) Create(ctx context.Context, token string, req CreatePreCadastroRequest) (*models.PreCadastro, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados do pré-cadastro inválidos")
	}
	payload := map[string]interface{}{
		"first_name": strings.TrimSpace(req.FirstName),
		"last_name":  strings.TrimSpace(req.LastName),
		"telefone":   strings.TrimSpace(req.Telefone),
		"ct":         req.CT,
	}
	if req.Email != "" {
		payload["email"] = req.Email
	}
	if req.CPF != "" {
		payload["cpf"] = req.CPF
	}
	if req.DataNascimento != "" {
		payload["data_nascimento"] = req.DataNascimento
	}
	pre, err := s.upstream.CreatePreCadastro(ctx, token, payload)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("pre-registration created", zap.Int("id", pre.ID), zap.Int("ct", req.CT))
	return pre, nil
}

// Update applies partial edits to a lead.
func (s *PreCadastroService) Update(ctx context.Context, token string, id int, req UpdatePreCadastroRequest) (*models.PreCadastro, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados do pré-cadastro inválidos")
	}
	payload := map[string]interface{}{}
	setString := func(key string, v *string) {
		if v != nil {
			payload[key] = strings.TrimSpace(*v)
		}
	}
	setString("first_name", req.FirstName)
	setString("last_name", req.LastName)
	setString("email", req.Email)
	setString("telefone", req.Telefone)
	setString("cpf", req.CPF)
	setString("data_nascimento", req.DataNascimento)
	if len(payload) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("nenhum campo para atualizar no pré-cadastro %d", id))
	}
	pre, err := s.upstream.UpdatePreCadastro(ctx, token, id, payload)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return pre, nil
}

// Delete removes a lead.
func (s *PreCadastroService) Delete(ctx context.Context, token string, id int) error {
	if err := s.upstream.DeletePreCadastro(ctx, token, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *PreCadastroService) invalidate(ctx context.Context) {
	_ = s.cache.DeleteByPattern(ctx, "precadastros:*")
}
