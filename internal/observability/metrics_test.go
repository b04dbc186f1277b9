package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRecordEntityEvent(t *testing.T) {
	before := testutil.ToFloat64(EntityEvents.WithLabelValues("authors", "author.created"))
	RecordEntityEvent("authors", "author.created")
	after := testutil.ToFloat64(EntityEvents.WithLabelValues("authors", "author.created"))
	assert.Equal(t, before+1, after)
}

func TestTrackQuery_ObservesLatency(t *testing.T) {
	done := TrackQuery("select_test", "authors")
	done()
	assert.GreaterOrEqual(t, testutil.CollectAndCount(DatabaseQueryLatency, "blogapi_database_query_latency_seconds"), 1)
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "blogapi-test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestEndSpan_RecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := Tracer
	Tracer = tp.Tracer("test")
	t.Cleanup(func() { Tracer = prev })

	_, span := StartSpan(context.Background(), "AuthorService.Create")
	EndSpan(span, errors.New("boom"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "AuthorService.Create", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}
