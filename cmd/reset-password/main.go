package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/agriscan/scanalerts/internal/httpsfn"
	"github.com/agriscan/scanalerts/internal/models"
	"github.com/agriscan/scanalerts/internal/services"
)

var (
	passwordResetInstance *services.PasswordResetFunction
	once                  sync.Once
	initErr               error
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.HTTP("ResetPasswordByPhone", resetPasswordByPhone)
}

// main is required by the Go Functions Framework.
func main() {}

func resetPasswordByPhone(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		passwordResetInstance, initErr = services.NewPasswordReset(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		httpsfn.WriteError(w, initErr)
		return
	}

	var req models.ResetPasswordRequest
	if err := httpsfn.DecodeRequest(r, &req); err != nil {
		httpsfn.WriteError(w, err)
		return
	}

	resp, err := passwordResetInstance.Process(r.Context(), &req)
	if err != nil {
		httpsfn.WriteError(w, err)
		return
	}
	httpsfn.WriteResult(w, resp)
}
