package services

import (
	"context"
	"fmt"
	"log"

	"github.com/agriscan/scanalerts/internal/config"
	"github.com/agriscan/scanalerts/internal/httpsfn"
	"github.com/agriscan/scanalerts/internal/models"
	"github.com/agriscan/scanalerts/internal/product"
	"github.com/agriscan/scanalerts/internal/sms"
)

// OTPSenderFunction delivers a caller-generated one-time passcode by SMS.
// OTP generation, storage and verification live in the client's reset flow;
// this function only formats the number and hands the code to the provider.
type OTPSenderFunction struct {
	profile product.Profile
	sender  sms.Sender
}

// NewOTPSenderFunction assembles the service from its dependencies.
func NewOTPSenderFunction(profile product.Profile, sender sms.Sender) *OTPSenderFunction {
	return &OTPSenderFunction{profile: profile, sender: sender}
}

// NewOTPSender builds the production service from the environment.
func NewOTPSender(ctx context.Context) (*OTPSenderFunction, error) {
	cfg, err := config.LoadBase()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	profile, err := product.ByName(cfg.Product)
	if err != nil {
		return nil, err
	}
	twilioCfg, err := config.LoadTwilio()
	if err != nil {
		return nil, fmt.Errorf("failed to load Twilio configuration: %w", err)
	}
	return NewOTPSenderFunction(profile, sms.NewTwilioSender(twilioCfg)), nil
}

// Process validates and sends one OTP message.
func (f *OTPSenderFunction) Process(ctx context.Context, req *models.SendOTPRequest) (*models.SendOTPResponse, error) {
	if req.PhoneNumber == "" || req.OTP == "" {
		return nil, httpsfn.Errorf(httpsfn.InvalidArgument, "phoneNumber and otp are required")
	}

	to := sms.NormalizePhone(req.PhoneNumber, f.profile.CountryCode)
	body := fmt.Sprintf("Your %s password reset code is: %s. This code expires in 10 minutes.",
		f.profile.DisplayName, req.OTP)

	sid, err := f.sender.Send(to, body)
	if err != nil {
		// The provider error stays in the logs; the caller gets a generic
		// failure.
		log.Printf("ERROR sending OTP to %s: %v", to, err)
		return nil, httpsfn.Errorf(httpsfn.Internal, "Failed to send OTP. Please try again later.")
	}

	log.Printf("OTP sent to %s: %s", to, sid)
	return &models.SendOTPResponse{Success: true, MessageSID: sid}, nil
}
