package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type userUpstream interface {
	ListUsuarios(ctx context.Context, token string, filter models.UserFilter) ([]models.User, error)
	GetUsuario(ctx context.Context, token string, id int) (*models.User, error)
	CreateUsuario(ctx context.Context, token string, payload map[string]interface{}) (*models.User, error)
	UpdateUsuario(ctx context.Context, token string, id int, payload map[string]interface{}) (*models.User, error)
	DeleteUsuario(ctx context.Context, token string, id int) error
	ResetParq(ctx context.Context, token string, userID int) error
}

// CreateUserRequest is the staff payload for creating an account. Fields
// past the common block only apply to the matching tipo.
type CreateUserRequest struct {
	FirstName      string          `json:"first_name" validate:"required"`
	LastName       string          `json:"last_name"`
	CPF            string          `json:"cpf" validate:"required"`
	Password       string          `json:"password" validate:"required,min=6"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Telefone       string          `json:"telefone"`
	Endereco       string          `json:"endereco"`
	DataNascimento string          `json:"data_nascimento"`
	Tipo           models.UserTipo `json:"tipo" validate:"required,oneof=aluno professor gerente"`
	CT             int             `json:"ct" validate:"required"`

	NomeResponsavel     string `json:"nome_responsavel"`
	TelefoneResponsavel string `json:"telefone_responsavel"`
	TelefoneEmergencia  string `json:"telefone_emergencia"`
	FichaMedica         string `json:"ficha_medica"`

	SalarioProfessor float64 `json:"salario_professor"`
	PixProfessor     string  `json:"pix_professor"`
}

// UpdateUserRequest carries partial account edits.
type UpdateUserRequest struct {
	FirstName           *string  `json:"first_name"`
	LastName            *string  `json:"last_name"`
	Email               *string  `json:"email" validate:"omitempty,email"`
	Telefone            *string  `json:"telefone"`
	Endereco            *string  `json:"endereco"`
	DataNascimento      *string  `json:"data_nascimento"`
	Ativo               *bool    `json:"is_active"`
	NomeResponsavel     *string  `json:"nome_responsavel"`
	TelefoneResponsavel *string  `json:"telefone_responsavel"`
	TelefoneEmergencia  *string  `json:"telefone_emergencia"`
	FichaMedica         *string  `json:"ficha_medica"`
	DiaVencimento       *int     `json:"dia_vencimento"`
	ValorMensalidade    *float64 `json:"valor_mensalidade"`
	SalarioProfessor    *float64 `json:"salario_professor"`
	PixProfessor        *string  `json:"pix_professor"`
}

// UserService manages platform accounts through the upstream API.
type UserService struct {
	upstream  userUpstream
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs the user service.
func NewUserService(up userUpstream, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{upstream: up, validator: validate, logger: logger}
}

// List returns accounts matching the filter.
func (s *UserService) List(ctx context.Context, token string, filter models.UserFilter) ([]models.User, error) {
	return s.upstream.ListUsuarios(ctx, token, filter)
}

// Get returns a single account.
func (s *UserService) Get(ctx context.Context, token string, id int) (*models.User, error) {
	return s.upstream.GetUsuario(ctx, token, id)
}

// Create registers an account with the tipo-specific field block.
func (s *UserService) Create(ctx context.Context, token string, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados do usuário inválidos")
	}
	payload := map[string]interface{}{
		"first_name": strings.TrimSpace(req.FirstName),
		"last_name":  strings.TrimSpace(req.LastName),
		"cpf":        req.CPF,
		"password":   req.Password,
		"tipo":       req.Tipo,
		"ct":         req.CT,
	}
	if req.Email != "" {
		payload["email"] = req.Email
	}
	if req.Telefone != "" {
		payload["telefone"] = req.Telefone
	}
	if req.Endereco != "" {
		payload["endereco"] = req.Endereco
	}
	if req.DataNascimento != "" {
		payload["data_nascimento"] = req.DataNascimento
	}
	switch req.Tipo {
	case models.TipoAluno:
		payload["nome_responsavel"] = req.NomeResponsavel
		payload["telefone_responsavel"] = req.TelefoneResponsavel
		payload["telefone_emergencia"] = req.TelefoneEmergencia
		payload["ficha_medica"] = req.FichaMedica
	case models.TipoProfessor:
		payload["salario_professor"] = req.SalarioProfessor
		payload["pix_professor"] = req.PixProfessor
	}
	user, err := s.upstream.CreateUsuario(ctx, token, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.Int("id", user.ID), zap.String("tipo", string(req.Tipo)))
	return user, nil
}

// Update applies partial edits to an account.
func (s *UserService) Update(ctx context.Context, token string, id int, req UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "dados do usuário inválidos")
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
	setString("endereco", req.Endereco)
	setString("data_nascimento", req.DataNascimento)
	setString("nome_responsavel", req.NomeResponsavel)
	setString("telefone_responsavel", req.TelefoneResponsavel)
	setString("telefone_emergencia", req.TelefoneEmergencia)
	setString("ficha_medica", req.FichaMedica)
	setString("pix_professor", req.PixProfessor)
	if req.Ativo != nil {
		payload["is_active"] = *req.Ativo
	}
	if req.DiaVencimento != nil {
		payload["dia_vencimento"] = *req.DiaVencimento
	}
	if req.ValorMensalidade != nil {
		payload["valor_mensalidade"] = *req.ValorMensalidade
	}
	if req.SalarioProfessor != nil {
		payload["salario_professor"] = *req.SalarioProfessor
	}
	if len(payload) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nenhum campo para atualizar")
	}
	return s.upstream.UpdateUsuario(ctx, token, id, payload)
}

// SetFamilyPlan toggles the family plan on a student account, adjusting the
// monthly amount by the flat discount. The amount never goes below zero.
func (s *UserService) SetFamilyPlan(ctx context.Context, token string, id int, enabled bool) (*models.User, error) {
	user, err := s.upstream.GetUsuario(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if user.Tipo != models.TipoAluno {
		return nil, appErrors.Clone(appErrors.ErrValidation, "plano família aplica-se apenas a alunos")
	}
	if user.PlanoFamilia == enabled {
		return user, nil
	}
	valor := user.ValorMensalidade
	if enabled {
		valor -= models.FamilyPlanDiscount
	} else {
		valor += models.FamilyPlanDiscount
	}
	if valor < 0 {
		valor = 0
	}
	return s.upstream.UpdateUsuario(ctx, token, id, map[string]interface{}{
		"plano_familia":     enabled,
		"valor_mensalidade": valor,
	})
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, token string, id int) error {
	return s.upstream.DeleteUsuario(ctx, token, id)
}

// ResetParq clears a student's medical questionnaire so it must be filled
// again on the next login.
func (s *UserService) ResetParq(ctx context.Context, token string, id int) error {
	return s.upstream.ResetParq(ctx, token, id)
}
