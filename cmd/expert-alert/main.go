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
	expertAlertInstance *services.ExpertAlertFunction
	once                sync.Once
	initErr             error
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Both triggers on scan_requests/{requestId} share one service: the
	// create and update documents deploy separately but run the same image.
	functions.CloudEvent("NotifyExpertsOnCreate", notifyExpertsOnCreate)
	functions.CloudEvent("NotifyExpertsOnPendingUpdate", notifyExpertsOnPendingUpdate)
}

// main is required by the Go Functions Framework.
func main() {}

func instance() (*services.ExpertAlertFunction, error) {
	once.Do(func() {
		expertAlertInstance, initErr = services.NewExpertAlert(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
	}
	return expertAlertInstance, initErr
}

func notifyExpertsOnCreate(ctx context.Context, e cloudevents.Event) error {
	fn, err := instance()
	if err != nil {
		return err
	}
	change, err := fsevent.Decode(e)
	if err != nil {
		slog.Error("Failed to decode document event", "error", err, "event_id", e.ID())
		return err
	}
	return fn.ProcessCreate(ctx, change)
}

func notifyExpertsOnPendingUpdate(ctx context.Context, e cloudevents.Event) error {
	fn, err := instance()
	if err != nil {
		return err
	}
	change, err := fsevent.Decode(e)
	if err != nil {
		slog.Error("Failed to decode document event", "error", err, "event_id", e.ID())
		return err
	}
	return fn.ProcessUpdate(ctx, change)
}
