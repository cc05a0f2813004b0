package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tilanet/auth-service/internal/pkg/logger"
	"github.com/tilanet/auth-service/internal/pkg/models"
	"github.com/tilanet/auth-service/internal/utils"
)

// SMSGateway delivers OTP messages through an external SMS/voice provider.
// When the mock flag is set it logs the message instead of calling out,
// which is how dev and test environments surface the code.
type SMSGateway struct {
	cfg        models.SMSConfig
	httpClient *http.Client
}

// NewSMSGateway creates a new SMS gateway
func NewSMSGateway(cfg models.SMSConfig) *SMSGateway {
	return &SMSGateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendRequest struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	SenderID string `json:"sender_id"`
}

// SendSMS delivers a text message to the phone number
func (g *SMSGateway) SendSMS(ctx context.Context, phoneNumber, message string) error {
	return g.send(ctx, "/messages", phoneNumber, message)
}

// SendVoice delivers the message as a voice call
func (g *SMSGateway) SendVoice(ctx context.Context, phoneNumber, message string) error {
	return g.send(ctx, "/calls", phoneNumber, message)
}

func (g *SMSGateway) send(ctx context.Context, path, phoneNumber, message string) error {
	if g.cfg.UseMock {
		logger.InfoCtx(ctx, "Mock delivery, message not sent",
			logger.String("phone", utils.MaskPhoneNumber(phoneNumber)),
			logger.String("channel", path),
			logger.String("message", message))
		return nil
	}

	if g.cfg.ProviderURL == "" {
		return fmt.Errorf("SMS provider not configured")
	}

	body, err := json.Marshal(sendRequest{
		To:       phoneNumber,
		Message:  message,
		SenderID: g.cfg.SenderID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal provider request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.ProviderURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call SMS provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SMS provider returned status %d", resp.StatusCode)
	}

	return nil
}
