package util

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCache_ComputesOncePerKey(t *testing.T) {
	cache := NewRequestCache()
	calls := 0

	for i := 0; i < 3; i++ {
		v, err := cache.GetOrCompute("key", func() (interface{}, error) {
			calls++
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)

	// 不同键各自计算
	_, err := cache.GetOrCompute("other", func() (interface{}, error) {
		calls++
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRequestCache_ErrorsAreNotCached(t *testing.T) {
	cache := NewRequestCache()
	calls := 0

	_, err := cache.GetOrCompute("key", func() (interface{}, error) {
		calls++
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	v, err := cache.GetOrCompute("key", func() (interface{}, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestRequestCache_NilReceiverPassesThrough(t *testing.T) {
	var cache *RequestCache
	calls := 0

	for i := 0; i < 2; i++ {
		v, err := cache.GetOrCompute("key", func() (interface{}, error) {
			calls++
			return i, nil
		})
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 2, calls)
}

func TestRequestCacheFrom(t *testing.T) {
	assert.Nil(t, RequestCacheFrom(context.Background()))

	ctx := WithRequestCache(context.Background())
	require.NotNil(t, RequestCacheFrom(ctx))
	assert.Same(t, RequestCacheFrom(ctx), RequestCacheFrom(ctx))
}
