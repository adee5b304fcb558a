package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

type mockWeekdayProvider struct {
	days  []models.WeekDay
	calls int
}

func (m *mockWeekdayProvider) DiasSemana(ctx context.Context, token string) ([]models.WeekDay, error) {
	m.calls++
	return m.days, nil
}

type mapCache struct {
	entries map[string]interface{}
}

func (m *mapCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if v, ok := m.entries[key]; ok {
		*(dest.(*[]models.WeekDay)) = v.([]models.WeekDay)
		return true, nil
	}
	return false, nil
}

func (m *mapCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = make(map[string]interface{})
	}
	m.entries[key] = value
	return nil
}

func TestLookupPlan(t *testing.T) {
	plan, err := LookupPlan(models.Plan2x)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.WeeklySessions)
	assert.Equal(t, 130.00, plan.BasePrice)

	_, err = LookupPlan(models.PlanID("4x"))
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownPlan))
}

func TestPlansOrdering(t *testing.T) {
	plans := Plans()
	require.Len(t, plans, 3)
	assert.Equal(t, models.Plan1x, plans[0].ID)
	assert.Equal(t, models.Plan3x, plans[2].ID)
	assert.Equal(t, 110.00, plans[0].BasePrice)
	assert.Equal(t, 150.00, plans[2].BasePrice)
}

func TestWeekDaysUsesCacheOnSecondCall(t *testing.T) {
	up := &mockWeekdayProvider{days: defaultWeekdays()}
	svc := NewCatalogService(up, &mapCache{}, time.Minute, nil)
	ctx := context.Background()

	days, err := svc.WeekDays(ctx, "tok")
	require.NoError(t, err)
	assert.Len(t, days, 5)

	_, err = svc.WeekDays(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, up.calls)
}

func TestWeekDaysWithoutCache(t *testing.T) {
	up := &mockWeekdayProvider{days: defaultWeekdays()}
	svc := NewCatalogService(up, nil, 0, nil)

	_, err := svc.WeekDays(context.Background(), "tok")
	require.NoError(t, err)
	_, err = svc.WeekDays(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, up.calls)
}
