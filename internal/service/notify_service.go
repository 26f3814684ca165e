package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"beworking/internal/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

var (
	ErrEmailNotConfigured = errors.New("sendgrid is not configured")
	ErrSMSNotConfigured   = errors.New("twilio is not configured")
)

// Email is a single outgoing message with a plain text and an HTML body.
type Email struct {
	ToAddress string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}

// Notifier delivers email and SMS to tenants.
type Notifier interface {
	SendEmail(ctx context.Context, email Email) error
	SendSMS(ctx context.Context, toNumber, body string) error
}

type providerNotifier struct {
	log *zap.Logger

	sendgridKey string
	fromEmail   string
	fromName    string

	twilioSID   string
	twilioToken string
	fromNumber  string
}

// NewNotifier sends email through SendGrid and SMS through Twilio. A channel whose
// credentials are missing fails every send with ErrEmailNotConfigured or ErrSMSNotConfigured.
func NewNotifier(cfg *config.Config, log *zap.Logger) Notifier {
	return &providerNotifier{
		log:         log,
		sendgridKey: cfg.SendGridAPIKey,
		fromEmail:   cfg.SendGridFromEmail,
		fromName:    cfg.SendGridFromName,
		twilioSID:   cfg.TwilioAccountSID,
		twilioToken: cfg.TwilioAuthToken,
		fromNumber:  cfg.TwilioFromNumber,
	}
}

func (n *providerNotifier) SendEmail(ctx context.Context, email Email) error {
	if n.sendgridKey == "" || n.fromEmail == "" {
		return ErrEmailNotConfigured
	}

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(email.ToName, email.ToAddress)
	message := mail.NewSingleEmail(from, email.Subject, to, email.PlainText, email.HTML)

	client := sendgrid.NewSendClient(n.sendgridKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", email.ToAddress, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	n.log.Info("email sent",
		zap.String("to", email.ToAddress),
		zap.String("subject", email.Subject),
		zap.Int("status", response.StatusCode),
	)
	return nil
}

func (n *providerNotifier) SendSMS(_ context.Context, toNumber, body string) error {
	if n.twilioSID == "" || n.twilioToken == "" || n.fromNumber == "" {
		return ErrSMSNotConfigured
	}
	if !strings.HasPrefix(toNumber, "+") {
		n.log.Warn("sms destination is not in E.164 format", zap.String("to", toNumber))
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   n.twilioSID,
		Password:   n.twilioToken,
		AccountSid: n.twilioSID,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(n.fromNumber)
	params.SetBody(body)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send to %s: %w", toNumber, err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	n.log.Info("sms sent", zap.String("to", toNumber), zap.String("sid", sid))
	return nil
}
