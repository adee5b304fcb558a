package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type mockEnrollmentUpstream struct {
	precadastros []models.PreCadastro
	listErr      error

	finalizeErr     error
	finalizeMessage string
	lastID          int
	lastPayload     models.EnrollmentPayload
	calls           int
	entered         chan struct{}
	release         chan struct{}
}

func (m *mockEnrollmentUpstream) ListPreCadastros(ctx context.Context, token string) ([]models.PreCadastro, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.precadastros, nil
}

func (m *mockEnrollmentUpstream) FinalizeEnrollment(ctx context.Context, token string, precadastroID int, payload models.EnrollmentPayload) (string, error) {
	m.calls++
	m.lastID = precadastroID
	m.lastPayload = payload
	if m.entered != nil {
		m.entered <- struct{}{}
		<-m.release
	}
	if m.finalizeErr != nil {
		return "", m.finalizeErr
	}
	return m.finalizeMessage, nil
}

type mockWeekdayCatalog struct {
	days []models.WeekDay
	err  error
}

func (m *mockWeekdayCatalog) WeekDays(ctx context.Context, token string) ([]models.WeekDay, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.days, nil
}

type mockInvalidator struct {
	patterns []string
}

func (m *mockInvalidator) DeleteByPattern(ctx context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	return nil
}

func defaultWeekdays() []models.WeekDay {
	return []models.WeekDay{
		{ID: 1, Nome: "Segunda"},
		{ID: 2, Nome: "Terça"},
		{ID: 3, Nome: "Quarta"},
		{ID: 4, Nome: "Quinta"},
		{ID: 5, Nome: "Sexta"},
	}
}

func newEnrollmentFixture(pre models.PreCadastro) (*EnrollmentService, *mockEnrollmentUpstream, *mockInvalidator) {
	up := &mockEnrollmentUpstream{precadastros: []models.PreCadastro{pre}}
	cache := &mockInvalidator{}
	svc := NewEnrollmentService(up, &mockWeekdayCatalog{days: defaultWeekdays()}, cache, nil, nil, nil)
	return svc, up, cache
}

func openForm(t *testing.T, svc *EnrollmentService, token string, precadastroID int) string {
	t.Helper()
	view, _, err := svc.Open(context.Background(), token, precadastroID)
	require.NoError(t, err)
	return view.Form.ID
}

func TestOpenSeedsDefaults(t *testing.T) {
	pre := models.PreCadastro{ID: 7, FirstName: "Ana", CPF: "11122233344", Status: models.PreCadastroPendente}
	svc, _, _ := newEnrollmentFixture(pre)

	view, days, err := svc.Open(context.Background(), "tok", 7)
	require.NoError(t, err)
	assert.Len(t, days, 5)
	assert.Equal(t, models.FormStateEditing, view.Form.State)
	assert.Equal(t, models.Plan3x, view.Form.Plano)
	assert.Equal(t, "150.00", view.Form.ValorPrimeiraMensalidade)
	assert.Equal(t, "11122233344", view.Form.CPF)
	assert.Equal(t, 1, view.Form.DiaVencimento)
	assert.Empty(t, view.Form.DiasHabilitados)
	assert.Equal(t, 3, view.DayQuota)
	assert.Equal(t, "240.00", view.DisplayedTotal)
}

func TestOpenUnknownPreCadastro(t *testing.T) {
	svc, _, _ := newEnrollmentFixture(models.PreCadastro{ID: 1, Status: models.PreCadastroPendente})

	_, _, err := svc.Open(context.Background(), "tok", 99)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestOpenRejectsAlreadyEnrolled(t *testing.T) {
	svc, _, _ := newEnrollmentFixture(models.PreCadastro{ID: 1, Status: models.PreCadastroMatriculado})

	_, _, err := svc.Open(context.Background(), "tok", 1)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestToggleDayEnforcesQuota(t *testing.T) {
	svc, _, _ := newEnrollmentFixture(models.PreCadastro{ID: 1, Status: models.PreCadastroPendente})
	formID := openForm(t, svc, "tok", 1)

	view, err := svc.SelectPlan(formID, models.Plan2x)
	require.NoError(t, err)
	assert.Equal(t, "130.00", view.Form.ValorPrimeiraMensalidade)

	_, err = svc.ToggleDay(formID, 1)
	require.NoError(t, err)
	_, err = svc.ToggleDay(formID, 3)
	require.NoError(t, err)

	_, err = svc.ToggleDay(formID, 5)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrQuotaExceeded))
	assert.Equal(t, "O plano 2x permite 2 dia(s).", appErrors.FromError(err).Message)

	// removing a day always works, and frees a slot for another
	view, err = svc.ToggleDay(formID, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, view.Form.DiasHabilitados)
	view, err = svc.ToggleDay(formID, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, view.Form.DiasHabilitados)
}

func TestSelectPlanTruncatesSelectionInOrder(t *testing.T) {
	svc, _, _ := newEnrollmentFixture(models.PreCadastro{ID: 1, Status: models.PreCadastroPendente})
	formID := openForm(t, svc, "tok", 1)

	for _, day := range []int{2, 4, 5} {
		_, err := svc.ToggleDay(formID, day)
		require.NoError(t, err)
	}

	view, err := svc.SelectPlan(formID, models.Plan2x)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, view.Form.DiasHabilitados)
	assert.Equal(t, 2, view.DayQuota)

	view, err = svc.SelectPlan(formID, models.Plan1x)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, view.Form.DiasHabilitados)
	assert.Equal(t, "110.00", view.Form.ValorPrimeiraMensalidade)
}

func TestSelectPlanUnknown(t *testing.T) {
	svc, _, _ := newEnrollmentFixture(models.PreCadastro{ID: 1, Status: models.PreCadastroPendente})
	formID := openForm(t, svc, "tok", 1)

	_, err := svc.SelectPlan(formID, models.PlanID("5x"))
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownPlan))
}

func TestDisplayedTotal(t *testing.T) {
	svc, _, _ := newEnrollmentFixture(models.PreCadastro{ID: 1, Status: models.PreCadastroPendente})
	formID := openForm(t, svc, "tok", 1)

	familia := true
	view, err := svc.Update(formID, UpdateFormRequest{PlanoFamilia: &familia})
	require.NoError(t, err)
	assert.Equal(t, "230.00", view.DisplayedTotal)

	bad := "abc"
	familia = false
	view, err = svc.Update(formID, UpdateFormRequest{ValorPrimeiraMensalidade: &bad, PlanoFamilia: &familia})
	require.NoError(t, err)
	assert.Equal(t, "90.00", view.DisplayedTotal)
}

func TestSubmitValidationOrder(t *testing.T) {
	svc, up, _ := newEnrollmentFixture(models.PreCadastro{ID: 1, Status: models.PreCadastroPendente})
	formID := openForm(t, svc, "tok", 1)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "tok", formID)
	assert.True(t, appErrors.Is(err, appErrors.ErrMissingCpf))

	cpf := "12345678900"
	zero := 0
	_, updErr := svc.Update(formID, UpdateFormRequest{CPF: &cpf, DiaVencimento: &zero})
	require.NoError(t, updErr)
	_, err = svc.Submit(ctx, "tok", formID)
	assert.True(t, appErrors.Is(err, appErrors.ErrMissingDueDay))

	ten := 10
	empty := ""
	_, updErr = svc.Update(formID, UpdateFormRequest{DiaVencimento: &ten, ValorPrimeiraMensalidade: &empty})
	require.NoError(t, updErr)
	_, err = svc.Submit(ctx, "tok", formID)
	assert.True(t, appErrors.Is(err, appErrors.ErrMissingFirstPayment))

	valor := "150.00"
	_, updErr = svc.Update(formID, UpdateFormRequest{ValorPrimeiraMensalidade: &valor})
	require.NoError(t, updErr)
	_, planErr := svc.SelectPlan(formID, models.Plan2x)
	require.NoError(t, planErr)
	_, err = svc.Submit(ctx, "tok", formID)
	assert.True(t, appErrors.Is(err, appErrors.ErrDayQuotaMismatch))

	assert.Zero(t, up.calls, "validation failures must not reach upstream")

	view, getErr := svc.Get(formID)
	require.NoError(t, getErr)
	assert.Equal(t, models.FormStateEditing, view.Form.State)
	assert.NotEmpty(t, view.Form.LastError)
}

func TestSubmitBuildsPayload(t *testing.T) {
	pre := models.PreCadastro{ID: 42, Status: models.PreCadastroPendente}
	svc, up, cache := newEnrollmentFixture(pre)
	formID := openForm(t, svc, "tok", 42)
	ctx := context.Background()

	cpf := "12345678900"
	due := 10
	_, err := svc.Update(formID, UpdateFormRequest{CPF: &cpf, DiaVencimento: &due})
	require.NoError(t, err)
	for _, day := range []int{1, 3, 5} {
		_, err = svc.ToggleDay(formID, day)
		require.NoError(t, err)
	}

	message, err := svc.Submit(ctx, "tok", formID)
	require.NoError(t, err)
	assert.Equal(t, "Matrícula finalizada com sucesso!", message)

	assert.Equal(t, 42, up.lastID)
	assert.Equal(t, "12345678900", up.lastPayload.CPF)
	assert.Equal(t, 10, up.lastPayload.DiaVencimento)
	assert.Equal(t, models.Plan3x, up.lastPayload.Plano)
	assert.False(t, up.lastPayload.JaAluno)
	require.NotNil(t, up.lastPayload.ValorPrimeiraMensalidade)
	assert.InDelta(t, 150.00, *up.lastPayload.ValorPrimeiraMensalidade, 0.001)
	assert.Equal(t, []int{1, 3, 5}, up.lastPayload.DiasHabilitados)

	assert.Contains(t, cache.patterns, "precadastros:*")

	_, err = svc.Get(formID)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound), "form must be destroyed after success")
}

func TestSubmitAcceptsEmptyDaySelection(t *testing.T) {
	svc, up, _ := newEnrollmentFixture(models.PreCadastro{ID: 7, Status: models.PreCadastroPendente})
	formID := openForm(t, svc, "tok", 7)

	cpf := "12345678900"
	due := 5
	_, err := svc.Update(formID, UpdateFormRequest{CPF: &cpf, DiaVencimento: &due})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "tok", formID)
	require.NoError(t, err)

	assert.Equal(t, 5, up.lastPayload.DiaVencimento)
	assert.Equal(t, models.Plan3x, up.lastPayload.Plano)
	assert.Empty(t, up.lastPayload.DiasHabilitados, "empty day selection must be omitted")
}

func TestSubmitRequiresFullDaySelectionOnLimitedPlans(t *testing.T) {
	svc, up, _ := newEnrollmentFixture(models.PreCadastro{ID: 11, CPF: "11122233344", Status: models.PreCadastroPendente})
	formID := openForm(t, svc, "tok", 11)

	due := 5
	_, err := svc.Update(formID, UpdateFormRequest{DiaVencimento: &due})
	require.NoError(t, err)
	_, err = svc.SelectPlan(formID, models.Plan2x)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "tok", formID)
	assert.True(t, appErrors.Is(err, appErrors.ErrDayQuotaMismatch))
	assert.Zero(t, up.calls, "incomplete day selection must not reach upstream")

	_, err = svc.ToggleDay(formID, 2)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), "tok", formID)
	assert.True(t, appErrors.Is(err, appErrors.ErrDayQuotaMismatch))
	assert.Zero(t, up.calls)

	_, err = svc.ToggleDay(formID, 4)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), "tok", formID)
	require.NoError(t, err)
	assert.Equal(t, 1, up.calls)
	assert.Equal(t, []int{2, 4}, up.lastPayload.DiasHabilitados)
}

func TestSubmitAcceptsPartialDaysOn3x(t *testing.T) {
	svc, up, _ := newEnrollmentFixture(models.PreCadastro{ID: 12, CPF: "11122233344", Status: models.PreCadastroPendente})
	formID := openForm(t, svc, "tok", 12)

	due := 5
	_, err := svc.Update(formID, UpdateFormRequest{DiaVencimento: &due})
	require.NoError(t, err)
	_, err = svc.ToggleDay(formID, 3)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "tok", formID)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, up.lastPayload.DiasHabilitados)
}

func TestSubmitAllowsClearedCpfWhenOnFile(t *testing.T) {
	pre := models.PreCadastro{ID: 13, CPF: "99988877766", Status: models.PreCadastroPendente}
	svc, up, _ := newEnrollmentFixture(pre)
	formID := openForm(t, svc, "tok", 13)

	cleared := ""
	due := 5
	_, err := svc.Update(formID, UpdateFormRequest{CPF: &cleared, DiaVencimento: &due})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "tok", formID)
	require.NoError(t, err)
	assert.Empty(t, up.lastPayload.CPF, "cpf already on file is never resent")
}

func TestSubmitOmitsFieldsForExistingStudent(t *testing.T) {
	pre := models.PreCadastro{ID: 5, CPF: "99988877766", Status: models.PreCadastroPendente}
	svc, up, _ := newEnrollmentFixture(pre)
	formID := openForm(t, svc, "tok", 5)

	ja := true
	due := 5
	_, err := svc.Update(formID, UpdateFormRequest{JaAluno: &ja, DiaVencimento: &due})
	require.NoError(t, err)
	for _, day := range []int{1, 2, 3} {
		_, err = svc.ToggleDay(formID, day)
		require.NoError(t, err)
	}

	_, err = svc.Submit(context.Background(), "tok", formID)
	require.NoError(t, err)

	assert.Empty(t, up.lastPayload.CPF, "cpf already on file must not be resent")
	assert.Nil(t, up.lastPayload.ValorPrimeiraMensalidade, "first payment omitted for existing students")
	assert.True(t, up.lastPayload.JaAluno)
}

func TestSubmitUpstreamFailureKeepsForm(t *testing.T) {
	pre := models.PreCadastro{ID: 3, CPF: "11122233344", Status: models.PreCadastroPendente}
	svc, up, _ := newEnrollmentFixture(pre)
	up.finalizeErr = appErrors.Clone(appErrors.ErrUpstream, "CPF inválido.")
	formID := openForm(t, svc, "tok", 3)

	due := 15
	_, err := svc.Update(formID, UpdateFormRequest{DiaVencimento: &due})
	require.NoError(t, err)
	for _, day := range []int{1, 2, 3} {
		_, err = svc.ToggleDay(formID, day)
		require.NoError(t, err)
	}

	_, err = svc.Submit(context.Background(), "tok", formID)
	require.Error(t, err)
	assert.Equal(t, "CPF inválido.", appErrors.FromError(err).Message)

	view, getErr := svc.Get(formID)
	require.NoError(t, getErr)
	assert.Equal(t, models.FormStateEditing, view.Form.State)
	assert.Equal(t, "CPF inválido.", view.Form.LastError)
}

func TestSubmitAtMostOneInFlight(t *testing.T) {
	pre := models.PreCadastro{ID: 8, CPF: "11122233344", Status: models.PreCadastroPendente}
	svc, up, _ := newEnrollmentFixture(pre)
	up.entered = make(chan struct{})
	up.release = make(chan struct{})
	formID := openForm(t, svc, "tok", 8)

	due := 20
	_, err := svc.Update(formID, UpdateFormRequest{DiaVencimento: &due})
	require.NoError(t, err)
	for _, day := range []int{1, 2, 3} {
		_, err = svc.ToggleDay(formID, day)
		require.NoError(t, err)
	}

	done := make(chan error, 1)
	go func() {
		_, submitErr := svc.Submit(context.Background(), "tok", formID)
		done <- submitErr
	}()
	<-up.entered

	_, err = svc.Submit(context.Background(), "tok", formID)
	assert.True(t, appErrors.Is(err, appErrors.ErrSubmitInFlight))
	err = svc.Cancel(formID)
	assert.True(t, appErrors.Is(err, appErrors.ErrSubmitInFlight))

	close(up.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, up.calls)
}
