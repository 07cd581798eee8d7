// Package notification delivers one time passwords to customer phones.
package notification

import (
	"context"
	"fmt"

	"food-marketplace/logger"
	"food-marketplace/services"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var (
	_ services.OtpSender = (*TwilioSender)(nil)
	_ services.OtpSender = (*LogSender)(nil)
)

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, from: from}
}

func (s *TwilioSender) SendOtp(_ context.Context, phone string, otp int) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(otpMessage(otp))
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("send otp sms: %w", err)
	}
	return nil
}

// LogSender writes the OTP to the log instead of texting it. It is used when
// Twilio credentials are absent.
type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.WithComponent("otp")}
}

func (s *LogSender) SendOtp(_ context.Context, phone string, otp int) error {
	s.log.Info("otp issued", "phone", phone, "otp", otp)
	return nil
}

func otpMessage(otp int) string {
	return fmt.Sprintf("Your OTP is %d", otp)
}
