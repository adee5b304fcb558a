package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	"github.com/delguerso1/CT-Supera-sub000/pkg/config"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(config.UpstreamConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, zap.NewNop())
	return client, server
}

func TestClientForwardsToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.WeekDay{{ID: 1, Nome: "Segunda"}})
	}))

	dias, err := client.DiasSemana(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Token tok-123", gotAuth)
	require.Len(t, dias, 1)
	assert.Equal(t, "Segunda", dias[0].Nome)
}

func TestClientRelaysUpstreamErrorVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "CPF já cadastrado."})
	}))

	_, err := client.DiasSemana(context.Background(), "tok")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "CPF já cadastrado.", appErr.Message)
}

func TestClientFallsBackToGenericMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.DiasSemana(context.Background(), "tok")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Message, appErr.Message)
}

func TestListPreCadastrosFollowsCursor(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/usuarios/precadastros/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cursor") == "2" {
			_ = json.NewEncoder(w).Encode(precadastroPage{
				Results: []models.PreCadastro{{ID: 3, FirstName: "Carla"}},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(precadastroPage{
			Results: []models.PreCadastro{{ID: 1, FirstName: "Ana"}, {ID: 2, FirstName: "Bruno"}},
			Next:    server.URL + "/usuarios/precadastros/?cursor=2",
		})
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(config.UpstreamConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, zap.NewNop())
	list, err := client.ListPreCadastros(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Carla", list[2].FirstName)
}

func TestFinalizeEnrollmentOmitsOptionalFields(t *testing.T) {
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/usuarios/finalizar-agendamento/7/", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Pré-cadastro matriculado com sucesso!"})
	}))

	payload := models.EnrollmentPayload{
		DiaVencimento: 5,
		JaAluno:       true,
		Plano:         models.Plan3x,
		PlanoFamilia:  false,
	}
	msg, err := client.FinalizeEnrollment(context.Background(), "tok", 7, payload)
	require.NoError(t, err)
	assert.Equal(t, "Pré-cadastro matriculado com sucesso!", msg)

	_, hasFirstPayment := gotBody["valor_primeira_mensalidade"]
	assert.False(t, hasFirstPayment)
	_, hasDias := gotBody["dias_habilitados"]
	assert.False(t, hasDias)
	_, hasCPF := gotBody["cpf"]
	assert.False(t, hasCPF)
	assert.Equal(t, float64(5), gotBody["dia_vencimento"])
	assert.Equal(t, "3x", gotBody["plano"])
}

func TestListMensalidadesBuildsQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(mensalidadePage{Results: []models.Mensalidade{{ID: 1, Valor: 150}}})
	}))

	list, err := client.ListMensalidades(context.Background(), "tok", MensalidadeFilter{Aluno: 9, Status: models.MensalidadePendente})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, fmt.Sprintf("aluno=%d&status=%s", 9, "pendente"), gotQuery)
}
