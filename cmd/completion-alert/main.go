package main

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/agriscan/scanalerts/internal/fsevent"
	"github.com/agriscan/scanalerts/internal/services"
)

var (
	completionAlertInstance *services.CompletionAlertFunction
	once                    sync.Once
	initErr                 error
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.CloudEvent("NotifyUserOnReviewCompleted", notifyUserOnReviewCompleted)
}

// main is required by the Go Functions Framework.
func main() {}

func notifyUserOnReviewCompleted(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		completionAlertInstance, initErr = services.NewCompletionAlert(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	change, err := fsevent.Decode(e)
	if err != nil {
		slog.Error("Failed to decode document event", "error", err, "event_id", e.ID())
		return err
	}
	return completionAlertInstance.Process(ctx, change)
}
