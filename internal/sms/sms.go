// Package sms delivers one-time passcodes through Twilio.
package sms

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/agriscan/scanalerts/internal/config"
)

// Sender delivers one SMS and returns the provider message SID. Tests
// substitute fakes.
type Sender interface {
	Send(to, body string) (string, error)
}

// TwilioSender sends through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender builds a sender from provider credentials.
func NewTwilioSender(cfg config.Twilio) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSender{client: client, from: cfg.FromNumber}
}

func (s *TwilioSender) Send(to, body string) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio create message: %w", err)
	}
	if msg.Sid == nil {
		return "", nil
	}
	return *msg.Sid, nil
}

// NormalizePhone formats a number for SMS delivery. Numbers already in
// international format pass through; national numbers get the country code,
// dropping the leading trunk zero.
func NormalizePhone(number, countryCode string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "+") {
		return number
	}
	return "+" + countryCode + strings.TrimPrefix(number, "0")
}

// Digits strips everything but digits, for deriving placeholder account
// identifiers.
func Digits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
