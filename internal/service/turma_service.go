package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type turmaUpstream interface {
	ListTurmas(ctx context.Context, token string, ctID int) ([]models.Turma, error)
	GetTurma(ctx context.Context, token string, id int) (*models.Turma, error)
	CreateTurma(ctx context.Context, token string, payload map[string]interface{}) (*models.Turma, error)
	UpdateTurma(ctx context.Context, token string, id int, payload map[string]interface{}) (*models.Turma, error)
	DeleteTurma(ctx context.Context, token string, id int) error
	TurmaAlunos(ctx context.Context, token string, turmaID int) ([]models.User, error)
	AddAlunos(ctx context.Context, token string, turmaID int, alunoIDs []int) error
	RemoveAlunos(ctx context.Context, token string, turmaID int, alunoIDs []int) error
}

// TurmaRequest is the payload for creating or replacing a turma.
type TurmaRequest struct {
	Nome        string `json:"nome" validate:"required"`
	CT          int    `json:"ct" validate:"required"`
	DiasSemana  []int  `json:"dias_semana" validate:"required,min=1"`
	Horario     string `json:"horario" validate:"required"`
	Capacidade  int    `json:"capacidade" validate:"required,min=1"`
	Professores []int  `json:"professores"`
}

// TurmaService manages class cohorts and their rosters.
type TurmaService struct {
	upstream  turmaUpstream
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTurmaService constructs the turma service.
func NewTurmaService(up turmaUpstream, validate *validator.Validate, logger *zap.Logger) *TurmaService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TurmaService{upstream: up, validator: validate, logger: logger}
}

// List returns the turmas of a training center. ctID zero lists all.
func (s *TurmaService) List(ctx context.Context, token string, ctID int) ([]models.Turma, error) {
	return s.upstream.ListTurmas(ctx, token, ctID)
}

// Get returns a turma with its roster.
func (s *TurmaService) Get(ctx context.Context, token string, id int) (*models.Turma, error) {
	return s.upstream.GetTurma(ctx, token, id)
}

// Create registers a new turma.
func (s *TurmaService) Create(ctx context.Context, token string, req TurmaRequest) (*models.Turma, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados da turma inválidos")
	}
	turma, err := s.upstream.CreateTurma(ctx, token, s.payload(req))
	if err != nil {
		return nil, err
	}
	s.logger.Info("turma created", zap.Int("id", turma.ID), zap.Int("ct", req.CT))
	return turma, nil
}

// Update replaces a turma definition.
func (s *TurmaService) Update(ctx context.Context, token string, id int, req TurmaRequest) (*models.Turma, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados da turma inválidos")
	}
	return s.upstream.UpdateTurma(ctx, token, id, s.payload(req))
}

// Delete removes a turma.
func (s *TurmaService) Delete(ctx context.Context, token string, id int) error {
	return s.upstream.DeleteTurma(ctx, token, id)
}

// Alunos returns the turma roster.
func (s *TurmaService) Alunos(ctx context.Context, token string, turmaID int) ([]models.User, error) {
	return s.upstream.TurmaAlunos(ctx, token, turmaID)
}

// AddAlunos enrolls students into the turma.
func (s *TurmaService) AddAlunos(ctx context.Context, token string, turmaID int, alunoIDs []int) error {
	if len(alunoIDs) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "informe ao menos um aluno")
	}
	return s.upstream.AddAlunos(ctx, token, turmaID, alunoIDs)
}

// RemoveAlunos drops students from the turma.
func (s *TurmaService) RemoveAlunos(ctx context.Context, token string, turmaID int, alunoIDs []int) error {
	if len(alunoIDs) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "informe ao menos um aluno")
	}
	return s.upstream.RemoveAlunos(ctx, token, turmaID, alunoIDs)
}

func (s *TurmaService) payload(req TurmaRequest) map[string]interface{} {
	payload := map[string]interface{}{
		"nome":        req.Nome,
		"ct":          req.CT,
		"dias_semana": req.DiasSemana,
		"horario":     req.Horario,
		"capacidade":  req.Capacidade,
	}
	if len(req.Professores) > 0 {
		payload["professores"] = req.Professores
	}
	return payload
}
