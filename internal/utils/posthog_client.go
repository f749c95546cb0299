// posthog_client.go provides a wrapper around the posthog.Client to make it
// easier to use and handle when its not initialized.
package utils

import (
	"context"
	"log/slog"

	"github.com/posthog/posthog-go"

	"github.com/lingueefy/coach-payout-service/pkg/resilience"
)

type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClientWrapper{}
	}
	wrapper := PosthogClientWrapper{}
	wrapper.posthogClient, _ = posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://us.i.posthog.com"})
	wrapper.logger = logger
	return &wrapper
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w.posthogClient != nil
}

// Enqueue captures an analytics event. Delivery is best-effort: a conservative
// retry profile covers transient enqueue failures, and terminal failures are
// logged and discarded.
func (w *PosthogClientWrapper) Enqueue(distinctId string, event string, properties map[string]any) {
	if w.posthogClient == nil {
		return
	}

	_, err := resilience.Do(context.Background(), resilience.AnalyticsPolicy(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, w.posthogClient.Enqueue(posthog.Capture{
			DistinctId: distinctId,
			Event:      event,
			Properties: properties,
		})
	})
	if err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (w *PosthogClientWrapper) Close() {
	if w.posthogClient == nil {
		return
	}
	w.posthogClient.Close()
}
