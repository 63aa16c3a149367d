package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	searchFunc func(ctx context.Context, req Request) ([]Hit, error)
	calls      int
}

func (m *mockBackend) Search(ctx context.Context, req Request) ([]Hit, error) {
	m.calls++
	return m.searchFunc(ctx, req)
}

func TestCachedBackend_ServesRepeatsFromCache(t *testing.T) {
	inner := &mockBackend{searchFunc: func(_ context.Context, req Request) ([]Hit, error) {
		return []Hit{{"id": "a", ScoreField: 1.5}}, nil
	}}
	b := NewCachedBackend(inner, NewMemoryCache(time.Minute), time.Minute)
	req := Request{Collection: Products, Text: "çanta", Top: 10}

	first, err := b.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := b.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first[0].String("id"), second[0].String("id"))
	score, _ := second[0].Score()
	assert.InDelta(t, 1.5, score, 1e-9)

	_, err = b.Search(context.Background(), Request{Collection: Products, Text: "çanta", Top: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "different request shape is a different key")
}

func TestCachedBackend_DoesNotCacheErrors(t *testing.T) {
	fail := true
	inner := &mockBackend{searchFunc: func(_ context.Context, _ Request) ([]Hit, error) {
		if fail {
			return nil, errors.New("unreachable")
		}
		return []Hit{{"id": "a"}}, nil
	}}
	b := NewCachedBackend(inner, NewMemoryCache(time.Minute), time.Minute)
	req := Request{Collection: Products, Text: "x"}

	_, err := b.Search(context.Background(), req)
	require.Error(t, err)

	fail = false
	hits, err := b.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Equal(t, 2, inner.calls)
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	_, err := c.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
