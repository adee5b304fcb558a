package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

func TestSessionRepositoryLocalRoundTrip(t *testing.T) {
	repo := NewSessionRepository(nil)
	session := models.Session{
		ID:            "sess-1",
		UpstreamToken: "tok",
		UserID:        42,
		Tipo:          models.TipoGerente,
		CreatedAt:     time.Now(),
		ExpiresAt:     time.Now().Add(time.Hour),
	}

	require.NoError(t, repo.Save(context.Background(), session))

	found, err := repo.Find(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "tok", found.UpstreamToken)
	assert.Equal(t, models.TipoGerente, found.Tipo)

	require.NoError(t, repo.Delete(context.Background(), "sess-1"))
	_, err = repo.Find(context.Background(), "sess-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestSessionRepositoryRejectsExpired(t *testing.T) {
	repo := NewSessionRepository(nil)

	err := repo.Save(context.Background(), models.Session{
		ID:        "sess-2",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.Error(t, err)
}
