package cache

import (
	"context"
	"testing"

	"blogapi/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	InitRedis(mr.Addr())
	c := GetClient()
	require.NotNil(t, c)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}

func TestInitRedis_URL(t *testing.T) {
	mr := miniredis.RunT(t)

	InitRedis("redis://" + mr.Addr() + "/0")
	c := GetClient()
	require.NotNil(t, c)
	t.Cleanup(func() { _ = c.Close() })
}

func TestInitRedis_DisabledOrUnreachable(t *testing.T) {
	InitRedis("")
	assert.Nil(t, GetClient())

	InitRedis("redis://%zz")
	assert.Nil(t, GetClient())

	InitRedis("127.0.0.1:1")
	assert.Nil(t, GetClient())
}

func TestMetricsHook_CountsErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	before := testutil.ToFloat64(observability.RedisErrors.WithLabelValues("incr"))

	require.NoError(t, c.Set(context.Background(), "k", "not-a-number", 0).Err())
	assert.Error(t, c.Incr(context.Background(), "k").Err())

	assert.Equal(t, before+1, testutil.ToFloat64(observability.RedisErrors.WithLabelValues("incr")))
}
