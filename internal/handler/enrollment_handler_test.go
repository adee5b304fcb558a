package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delguerso1/CT-Supera-sub000/internal/middleware"
	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	"github.com/delguerso1/CT-Supera-sub000/internal/service"
	"github.com/delguerso1/CT-Supera-sub000/pkg/response"
)

type enrollmentUpstreamStub struct {
	pres    []models.PreCadastro
	message string
	payload models.EnrollmentPayload
}

func (s *enrollmentUpstreamStub) ListPreCadastros(ctx context.Context, token string) ([]models.PreCadastro, error) {
	return s.pres, nil
}

func (s *enrollmentUpstreamStub) FinalizeEnrollment(ctx context.Context, token string, precadastroID int, payload models.EnrollmentPayload) (string, error) {
	s.payload = payload
	return s.message, nil
}

type weekdayStub struct{}

func (weekdayStub) DiasSemana(ctx context.Context, token string) ([]models.WeekDay, error) {
	return []models.WeekDay{{ID: 1, Nome: "Segunda"}, {ID: 3, Nome: "Quarta"}, {ID: 5, Nome: "Sexta"}}, nil
}

func newEnrollmentHandlerFixture(pres []models.PreCadastro) (*EnrollmentHandler, *service.EnrollmentService) {
	up := &enrollmentUpstreamStub{pres: pres, message: "Matrícula finalizada com sucesso!"}
	catalog := service.NewCatalogService(weekdayStub{}, nil, 0, nil)
	enrollments := service.NewEnrollmentService(up, catalog, nil, nil, nil, nil)
	return NewEnrollmentHandler(enrollments, catalog), enrollments
}

func testContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextSessionKey, &models.Session{ID: "s1", UpstreamToken: "tok", Tipo: models.TipoGerente})
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestPlansEndpoint(t *testing.T) {
	h, _ := newEnrollmentHandlerFixture(nil)
	c, w := testContext(t, http.MethodGet, "/planos", nil)

	h.Plans(c)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	plans, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, plans, 3)
}

func TestOpenEnrollmentForm(t *testing.T) {
	h, _ := newEnrollmentHandlerFixture([]models.PreCadastro{
		{ID: 7, FirstName: "Ana", Status: models.PreCadastroPendente},
	})
	c, w := testContext(t, http.MethodPost, "/precadastros/7/matricula", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	h.Open(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"dias_semana"`)
	assert.Contains(t, w.Body.String(), `"total_primeiro_ato":"240.00"`)
}

func TestOpenEnrollmentFormBadID(t *testing.T) {
	h, _ := newEnrollmentHandlerFixture(nil)
	c, w := testContext(t, http.MethodPost, "/precadastros/abc/matricula", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Open(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleDayQuotaRejection(t *testing.T) {
	h, enrollments := newEnrollmentHandlerFixture([]models.PreCadastro{
		{ID: 7, Status: models.PreCadastroPendente},
	})
	view, _, err := enrollments.Open(context.Background(), "tok", 7)
	require.NoError(t, err)
	formID := view.Form.ID

	_, err = enrollments.SelectPlan(formID, models.Plan1x)
	require.NoError(t, err)
	_, err = enrollments.ToggleDay(formID, 1)
	require.NoError(t, err)

	c, w := testContext(t, http.MethodPut, "/matriculas/"+formID+"/dias", gin.H{"dia": 3})
	c.Params = gin.Params{{Key: "formId", Value: formID}}

	h.ToggleDay(c)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "O plano 1x permite 1 dia(s).", envelope.Error.Message)
}

func TestSubmitEnrollment(t *testing.T) {
	h, enrollments := newEnrollmentHandlerFixture([]models.PreCadastro{
		{ID: 9, CPF: "11122233344", Status: models.PreCadastroPendente},
	})
	view, _, err := enrollments.Open(context.Background(), "tok", 9)
	require.NoError(t, err)
	formID := view.Form.ID

	due := 10
	_, err = enrollments.Update(formID, service.UpdateFormRequest{DiaVencimento: &due})
	require.NoError(t, err)
	for _, day := range []int{1, 3, 5} {
		_, err = enrollments.ToggleDay(formID, day)
		require.NoError(t, err)
	}

	c, w := testContext(t, http.MethodPost, "/matriculas/"+formID+"/confirmar", nil)
	c.Params = gin.Params{{Key: "formId", Value: formID}}

	h.Submit(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Matrícula finalizada com sucesso!")
}
