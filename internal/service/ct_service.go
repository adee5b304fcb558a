package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type ctUpstream interface {
	ListCTs(ctx context.Context, token string) ([]models.CentroTreinamento, error)
	GetCT(ctx context.Context, token string, id int) (*models.CentroTreinamento, error)
	CreateCT(ctx context.Context, token string, payload map[string]interface{}) (*models.CentroTreinamento, error)
	UpdateCT(ctx context.Context, token string, id int, payload map[string]interface{}) (*models.CentroTreinamento, error)
	DeleteCT(ctx context.Context, token string, id int) error
}

// CTRequest is the payload for creating or updating a training center.
type CTRequest struct {
	Nome           string `json:"nome" validate:"required"`
	Endereco       string `json:"endereco" validate:"required"`
	Telefone       string `json:"telefone"`
	DiasVencimento []int  `json:"dias_vencimento" validate:"omitempty,dive,min=1,max=28"`
}

// CTService manages training-center locations.
type CTService struct {
	upstream  ctUpstream
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCTService constructs the training-center service.
func NewCTService(up ctUpstream, validate *validator.Validate, logger *zap.Logger) *CTService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CTService{upstream: up, validator: validate, logger: logger}
}

// List returns every training center.
func (s *CTService) List(ctx context.Context, token string) ([]models.CentroTreinamento, error) {
	return s.upstream.ListCTs(ctx, token)
}

// Get returns a single training center.
func (s *CTService) Get(ctx context.Context, token string, id int) (*models.CentroTreinamento, error) {
	return s.upstream.GetCT(ctx, token, id)
}

// Create registers a training center.
func (s *CTService) Create(ctx context.Context, token string, req CTRequest) (*models.CentroTreinamento, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados do CT inválidos")
	}
	ct, err := s.upstream.CreateCT(ctx, token, s.payload(req))
	if err != nil {
		return nil, err
	}
	s.logger.Info("training center created", zap.Int("id", ct.ID), zap.String("nome", req.Nome))
	return ct, nil
}

// Update replaces a training center definition.
func (s *CTService) Update(ctx context.Context, token string, id int, req CTRequest) (*models.CentroTreinamento, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados do CT inválidos")
	}
	return s.upstream.UpdateCT(ctx, token, id, s.payload(req))
}

// Delete removes a training center.
func (s *CTService) Delete(ctx context.Context, token string, id int) error {
	return s.upstream.DeleteCT(ctx, token, id)
}

func (s *CTService) payload(req CTRequest) map[string]interface{} {
	payload := map[string]interface{}{
		"nome":     req.Nome,
		"endereco": req.Endereco,
	}
	if req.Telefone != "" {
		payload["telefone"] = req.Telefone
	}
	if len(req.DiasVencimento) > 0 {
		payload["dias_vencimento"] = req.DiasVencimento
	}
	return payload
}
