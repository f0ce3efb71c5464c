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
	approvalAlertInstance *services.ApprovalAlertFunction
	once                  sync.Once
	initErr               error
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.CloudEvent("NotifyUserOnApproval", notifyUserOnApproval)
}

// main is required by the Go Functions Framework.
func main() {}

func notifyUserOnApproval(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		approvalAlertInstance, initErr = services.NewApprovalAlert(context.Background())
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
	return approvalAlertInstance.Process(ctx, change)
}
