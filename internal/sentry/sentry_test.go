package sentry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/flexprice/salestax/internal/config"
	"github.com/flexprice/salestax/internal/logger"
	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_DisabledIsNoop(t *testing.T) {
	svc := NewSentryService(config.GetDefaultConfig(), logger.NewNopLogger())

	assert.NotPanics(t, func() {
		svc.CaptureException(context.Background(), errors.New("tax service unavailable"))
		svc.AddBreadcrumb(context.Background(), "salestax", "calculation", map[string]interface{}{"store_id": "store_1"})
	})
}

// recordingHub returns a hub whose client records events and breadcrumbs
// instead of sending them
func recordingHub(t *testing.T) (*sentry.Hub, *[]*sentry.Event, *[]*sentry.Breadcrumb) {
	var (
		mu          sync.Mutex
		events      []*sentry.Event
		breadcrumbs []*sentry.Breadcrumb
	)
	client, err := sentry.NewClient(sentry.ClientOptions{
		SampleRate: 1.0,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
			return nil
		},
		BeforeBreadcrumb: func(b *sentry.Breadcrumb, _ *sentry.BreadcrumbHint) *sentry.Breadcrumb {
			mu.Lock()
			defer mu.Unlock()
			breadcrumbs = append(breadcrumbs, b)
			return b
		},
	})
	require.NoError(t, err)
	return sentry.NewHub(client, sentry.NewScope()), &events, &breadcrumbs
}

func TestService_UsesRequestHub(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Sentry.Enabled = true
	svc := NewSentryService(cfg, logger.NewNopLogger())

	hubA, eventsA, crumbsA := recordingHub(t)
	hubB, eventsB, crumbsB := recordingHub(t)
	ctxA := sentry.SetHubOnContext(context.Background(), hubA)
	ctxB := sentry.SetHubOnContext(context.Background(), hubB)

	svc.AddBreadcrumb(ctxA, "salestax", "order_a", map[string]interface{}{"order_id": "ord_a"})
	svc.CaptureException(ctxA, errors.New("tax service unavailable"))
	svc.AddBreadcrumb(ctxB, "salestax", "order_b", nil)

	require.Len(t, *crumbsA, 1)
	assert.Equal(t, "order_a", (*crumbsA)[0].Message)
	assert.Len(t, *eventsA, 1)

	require.Len(t, *crumbsB, 1)
	assert.Equal(t, "order_b", (*crumbsB)[0].Message)
	assert.Empty(t, *eventsB)
}

func TestHubFromContext_FallsBackToCurrentHub(t *testing.T) {
	assert.Same(t, sentry.CurrentHub(), hubFromContext(context.Background()))

	hub, _, _ := recordingHub(t)
	assert.Same(t, hub, hubFromContext(sentry.SetHubOnContext(context.Background(), hub)))
}
