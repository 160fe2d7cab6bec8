package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/pkg/logging"
)

type countingCatalog struct {
	entries []domain.ServiceCatalogEntry
	err     error
	calls   int
}

func (c *countingCatalog) ListByProfessional(context.Context, uint, uint) ([]domain.ServiceCatalogEntry, error) {
	c.calls++
	return c.entries, c.err
}

func newCatalog(t *testing.T, inner domain.ServiceCatalog) (*ServiceCatalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewServiceCatalog(inner, client, time.Minute, logging.Discard()), mr
}

func TestServiceCatalog_ReadThrough(t *testing.T) {
	inner := &countingCatalog{entries: []domain.ServiceCatalogEntry{
		{ID: 11, Name: "Corte", Price: decimal.RequireFromString("50.00"), Duration: 30},
	}}
	c, mr := newCatalog(t, inner)
	ctx := context.Background()

	first, err := c.ListByProfessional(ctx, 1, 7)
	require.NoError(t, err)
	second, err := c.ListByProfessional(ctx, 1, 7)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.True(t, first[0].Price.Equal(second[0].Price))
	assert.True(t, mr.Exists(serviceKey(1, 7)))
	assert.Equal(t, time.Minute, mr.TTL(serviceKey(1, 7)))
}

func TestServiceCatalog_ExpiresAfterTTL(t *testing.T) {
	inner := &countingCatalog{}
	c, mr := newCatalog(t, inner)
	ctx := context.Background()

	_, err := c.ListByProfessional(ctx, 1, 7)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = c.ListByProfessional(ctx, 1, 7)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestServiceCatalog_FallsBackWhenRedisIsDown(t *testing.T) {
	inner := &countingCatalog{entries: []domain.ServiceCatalogEntry{{ID: 11}}}
	c, mr := newCatalog(t, inner)
	mr.Close()

	entries, err := c.ListByProfessional(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestServiceCatalog_DoesNotCacheErrors(t *testing.T) {
	inner := &countingCatalog{err: errors.New("db down")}
	c, mr := newCatalog(t, inner)

	_, err := c.ListByProfessional(context.Background(), 1, 7)
	assert.Error(t, err)
	assert.False(t, mr.Exists(serviceKey(1, 7)))
}

func TestServiceCatalog_CorruptEntryIsReplaced(t *testing.T) {
	inner := &countingCatalog{entries: []domain.ServiceCatalogEntry{{ID: 11}}}
	c, mr := newCatalog(t, inner)
	require.NoError(t, mr.Set(serviceKey(1, 7), "not json"))

	entries, err := c.ListByProfessional(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, inner.calls)
}
