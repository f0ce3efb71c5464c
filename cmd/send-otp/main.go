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
	otpSenderInstance *services.OTPSenderFunction
	once              sync.Once
	initErr           error
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	functions.HTTP("SendPasswordResetOTP", sendPasswordResetOTP)
}

// main is required by the Go Functions Framework.
func main() {}

func sendPasswordResetOTP(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		otpSenderInstance, initErr = services.NewOTPSender(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		httpsfn.WriteError(w, initErr)
		return
	}

	var req models.SendOTPRequest
	if err := httpsfn.DecodeRequest(r, &req); err != nil {
		httpsfn.WriteError(w, err)
		return
	}

	resp, err := otpSenderInstance.Process(r.Context(), &req)
	if err != nil {
		httpsfn.WriteError(w, err)
		return
	}
	httpsfn.WriteResult(w, resp)
}
