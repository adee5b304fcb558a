package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
	"github.com/delguerso1/CT-Supera-sub000/pkg/storage"
)

func newContractFixture(t *testing.T) *ContractService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Minute)
	svc := NewContractService(nil, store, signer, ContractQueueConfig{Workers: 1}, nil)
	svc.Start(context.Background())
	t.Cleanup(svc.Stop)
	return svc
}

func waitReady(t *testing.T, svc *ContractService, docID string) *ContractDocument {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		doc, err := svc.Get(docID)
		require.NoError(t, err)
		switch doc.Status {
		case ContractReady:
			return doc
		case ContractFailed:
			t.Fatal("contract render failed")
		}
		select {
		case <-deadline:
			t.Fatal("contract never became ready")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestGenerateRendersContract(t *testing.T) {
	svc := newContractFixture(t)

	doc, err := svc.Generate(ContractRequest{
		AlunoNome:        "Pedro Santos",
		CPF:              "12345678900",
		Plano:            "3x",
		DiasSemana:       []string{"Segunda", "Quarta", "Sexta"},
		DiaVencimento:    10,
		PrimeiraParcela:  "150.00",
		TotalPrimeiroAto: "240.00",
	})
	require.NoError(t, err)
	assert.Equal(t, ContractQueued, doc.Status)

	ready := waitReady(t, svc, doc.ID)
	assert.NotEmpty(t, ready.URL)
	assert.False(t, ready.ExpiresAt.IsZero())

	path, err := svc.Resolve(ready.URL)
	require.NoError(t, err)
	assert.Contains(t, path, doc.ID)
}

func TestGenerateRequiresName(t *testing.T) {
	svc := newContractFixture(t)

	_, err := svc.Generate(ContractRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestResolveRejectsTamperedToken(t *testing.T) {
	svc := newContractFixture(t)

	_, err := svc.Resolve("bogus-token")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestGetUnknownContract(t *testing.T) {
	svc := newContractFixture(t)

	_, err := svc.Get("missing")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
