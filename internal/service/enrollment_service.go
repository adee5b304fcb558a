package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type enrollmentUpstream interface {
	ListPreCadastros(ctx context.Context, token string) ([]models.PreCadastro, error)
	FinalizeEnrollment(ctx context.Context, token string, precadastroID int, payload models.EnrollmentPayload) (string, error)
}

type enrollmentCatalog interface {
	WeekDays(ctx context.Context, token string) ([]models.WeekDay, error)
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// UpdateFormRequest carries partial edits to an open enrollment form. Pointer
// fields distinguish "not sent" from zero values so the selector can clear
// the due day or first payment explicitly.
type UpdateFormRequest struct {
	CPF                      *string `json:"cpf"`
	DiaVencimento            *int    `json:"dia_vencimento"`
	JaAluno                  *bool   `json:"ja_aluno"`
	ValorPrimeiraMensalidade *string `json:"valor_primeira_mensalidade"`
	PlanoFamilia             *bool   `json:"plano_familia"`
}

// FormView is the snapshot returned to the client after each operation. The
// displayed total is recomputed server-side so the UI never does money math.
type FormView struct {
	Form           models.EnrollmentForm `json:"form"`
	DisplayedTotal string                `json:"total_primeiro_ato"`
	DayQuota       int                   `json:"limite_dias"`
}

// EnrollmentService owns the in-memory enrollment form sessions and drives
// the finalize flow against the upstream API. Forms never touch persistent
// storage; losing the process loses open forms, which matches their
// throwaway nature.
type EnrollmentService struct {
	upstream  enrollmentUpstream
	catalog   enrollmentCatalog
	cache     cacheInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	mu    sync.Mutex
	forms map[string]*models.EnrollmentForm
}

// NewEnrollmentService constructs the enrollment service. cache and metrics
// may be nil.
func NewEnrollmentService(upstream enrollmentUpstream, catalog enrollmentCatalog, cache cacheInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		upstream:  upstream,
		catalog:   catalog,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		forms:     make(map[string]*models.EnrollmentForm),
	}
}

// Open starts an enrollment form for a pending pre-registration. The form is
// seeded with the 3x plan defaults, mirroring the selector the staff sees.
func (s *EnrollmentService) Open(ctx context.Context, token string, precadastroID int) (*FormView, []models.WeekDay, error) {
	pres, err := s.upstream.ListPreCadastros(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	var pre *models.PreCadastro
	for i := range pres {
		if pres[i].ID == precadastroID {
			pre = &pres[i]
			break
		}
	}
	if pre == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pré-cadastro %d não encontrado", precadastroID))
	}
	if pre.Status == models.PreCadastroMatriculado {
		return nil, nil, appErrors.Clone(appErrors.ErrConflict, "pré-cadastro já matriculado")
	}

	days, err := s.catalog.WeekDays(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	defaultPlan := planCatalog[models.Plan3x]
	form := &models.EnrollmentForm{
		ID:                       uuid.NewString(),
		PreCadastro:              *pre,
		State:                    models.FormStateEditing,
		CPF:                      pre.CPF,
		DiaVencimento:            1,
		Plano:                    defaultPlan.ID,
		ValorPrimeiraMensalidade: fmt.Sprintf("%.2f", defaultPlan.BasePrice),
		CreatedAt:                time.Now(),
	}

	s.mu.Lock()
	s.forms[form.ID] = form
	s.mu.Unlock()

	view := s.view(form)
	return &view, days, nil
}

// Get returns the current form snapshot.
func (s *EnrollmentService) Get(formID string) (*FormView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	form, err := s.locked(formID)
	if err != nil {
		return nil, err
	}
	view := s.view(form)
	return &view, nil
}

// SelectPlan switches the form to another catalog plan. The selected days are
// truncated to the new quota in selection order and the first payment field
// is re-seeded with the plan base price.
func (s *EnrollmentService) SelectPlan(formID string, planID models.PlanID) (*FormView, error) {
	plan, err := LookupPlan(planID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	form, err := s.locked(formID)
	if err != nil {
		return nil, err
	}
	if err := s.editable(form); err != nil {
		return nil, err
	}
	form.SelectPlan(plan)
	view := s.view(form)
	return &view, nil
}

// ToggleDay adds or removes a weekday from the form selection. Adding beyond
// the plan quota is rejected with the quota message shown to staff.
func (s *EnrollmentService) ToggleDay(formID string, dayID int) (*FormView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	form, err := s.locked(formID)
	if err != nil {
		return nil, err
	}
	if err := s.editable(form); err != nil {
		return nil, err
	}
	plan, err := LookupPlan(form.Plano)
	if err != nil {
		return nil, err
	}
	if !form.ToggleDay(dayID, plan.WeeklySessions) {
		return nil, appErrors.Clone(appErrors.ErrQuotaExceeded,
			fmt.Sprintf("O plano %s permite %d dia(s).", plan.ID, plan.WeeklySessions))
	}
	view := s.view(form)
	return &view, nil
}

// Update applies partial field edits to the form. Plan changes must go
// through SelectPlan so the truncation and reseed rules apply.
func (s *EnrollmentService) Update(formID string, req UpdateFormRequest) (*FormView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	form, err := s.locked(formID)
	if err != nil {
		return nil, err
	}
	if err := s.editable(form); err != nil {
		return nil, err
	}
	if req.CPF != nil {
		form.CPF = strings.TrimSpace(*req.CPF)
	}
	if req.DiaVencimento != nil {
		form.DiaVencimento = *req.DiaVencimento
	}
	if req.JaAluno != nil {
		form.JaAluno = *req.JaAluno
	}
	if req.ValorPrimeiraMensalidade != nil {
		form.ValorPrimeiraMensalidade = strings.TrimSpace(*req.ValorPrimeiraMensalidade)
	}
	if req.PlanoFamilia != nil {
		form.PlanoFamilia = *req.PlanoFamilia
	}
	view := s.view(form)
	return &view, nil
}

// Cancel discards an open form.
func (s *EnrollmentService) Cancel(formID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	form, err := s.locked(formID)
	if err != nil {
		return err
	}
	if form.State == models.FormStateSubmitting {
		return appErrors.Clone(appErrors.ErrSubmitInFlight, "")
	}
	delete(s.forms, formID)
	return nil
}

// Submit validates the form, builds the finalize payload and posts it
// upstream. At most one submission per form may be in flight; a concurrent
// call fails immediately. On success the form is destroyed and cached
// listings are invalidated; on failure the form returns to editing with the
// upstream message attached for correction.
func (s *EnrollmentService) Submit(ctx context.Context, token, formID string) (string, error) {
	s.mu.Lock()
	form, err := s.locked(formID)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	if form.State == models.FormStateSubmitting {
		s.mu.Unlock()
		return "", appErrors.Clone(appErrors.ErrSubmitInFlight, "")
	}
	form.LastError = ""
	if err := s.validate(form); err != nil {
		form.LastError = appErrors.FromError(err).Message
		s.mu.Unlock()
		return "", err
	}
	form.State = models.FormStateSubmitting
	payload := s.buildPayload(form)
	precadastroID := form.PreCadastro.ID
	s.mu.Unlock()

	message, submitErr := s.upstream.FinalizeEnrollment(ctx, token, precadastroID, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if submitErr != nil {
		form.State = models.FormStateEditing
		form.LastError = appErrors.FromError(submitErr).Message
		return "", submitErr
	}
	form.State = models.FormStateEnrolled
	delete(s.forms, formID)

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, "precadastros:*"); err != nil {
			s.logger.Warn("failed to invalidate pre-registration cache", zap.Error(err))
		}
	}
	s.metrics.RecordEnrollment(string(payload.Plano))
	s.logger.Info("enrollment finalized",
		zap.Int("precadastro_id", precadastroID),
		zap.String("plano", string(payload.Plano)))
	if message == "" {
		message = "Matrícula finalizada com sucesso!"
	}
	return message, nil
}

// validate enforces the submit preconditions in the order staff sees them.
// The CPF is only required when the pre-registration has none on file, and
// the exact-count day rule applies to the 1x and 2x plans only: 3x shows no
// day picker, so any selection, including none, goes through.
func (s *EnrollmentService) validate(form *models.EnrollmentForm) error {
	if form.PreCadastro.CPF == "" && strings.TrimSpace(form.CPF) == "" {
		return appErrors.Clone(appErrors.ErrMissingCpf, "")
	}
	if form.DiaVencimento <= 0 {
		return appErrors.Clone(appErrors.ErrMissingDueDay, "")
	}
	plan, err := LookupPlan(form.Plano)
	if err != nil {
		return appErrors.Clone(appErrors.ErrMissingPlan, "")
	}
	if !form.JaAluno && strings.TrimSpace(form.ValorPrimeiraMensalidade) == "" {
		return appErrors.Clone(appErrors.ErrMissingFirstPayment, "")
	}
	if plan.ID != models.Plan3x && len(form.DiasHabilitados) != plan.WeeklySessions {
		return appErrors.Clone(appErrors.ErrDayQuotaMismatch,
			fmt.Sprintf("Selecione exatamente %d dia(s) para o plano %s.", plan.WeeklySessions, plan.ID))
	}
	return nil
}

// buildPayload maps the form onto the upstream finalize body. The CPF is
// sent only when the pre-registration has none on file, the first payment is
// omitted for students already enrolled, and an empty day set is omitted.
func (s *EnrollmentService) buildPayload(form *models.EnrollmentForm) models.EnrollmentPayload {
	payload := models.EnrollmentPayload{
		DiaVencimento: form.DiaVencimento,
		JaAluno:       form.JaAluno,
		Plano:         form.Plano,
		PlanoFamilia:  form.PlanoFamilia,
	}
	if form.PreCadastro.CPF == "" {
		payload.CPF = strings.TrimSpace(form.CPF)
	}
	if !form.JaAluno {
		v := form.FirstPaymentValue()
		payload.ValorPrimeiraMensalidade = &v
	}
	if len(form.DiasHabilitados) > 0 {
		payload.DiasHabilitados = append([]int(nil), form.DiasHabilitados...)
	}
	return payload
}

func (s *EnrollmentService) locked(formID string) (*models.EnrollmentForm, error) {
	form, ok := s.forms[formID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "formulário de matrícula não encontrado")
	}
	return form, nil
}

func (s *EnrollmentService) editable(form *models.EnrollmentForm) error {
	if form.State == models.FormStateSubmitting {
		return appErrors.Clone(appErrors.ErrSubmitInFlight, "")
	}
	return nil
}

func (s *EnrollmentService) view(form *models.EnrollmentForm) FormView {
	quota := 0
	if plan, err := LookupPlan(form.Plano); err == nil {
		quota = plan.WeeklySessions
	}
	snapshot := *form
	snapshot.DiasHabilitados = append([]int(nil), form.DiasHabilitados...)
	return FormView{
		Form:           snapshot,
		DisplayedTotal: form.DisplayedTotalFormatted(),
		DayQuota:       quota,
	}
}
