package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender delivers one-time codes to phones via an external SMS gateway.
type Sender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// MSG91Sender sends OTP SMS through the MSG91 flow API.
type MSG91Sender struct {
	BaseURL  string
	AuthKey  string
	SenderID string
	client   *http.Client
}

func NewMSG91Sender(baseURL, authKey, senderID string) *MSG91Sender {
	if baseURL == "" {
		baseURL = "https://control.msg91.com"
	}
	return &MSG91Sender{
		BaseURL:  baseURL,
		AuthKey:  authKey,
		SenderID: senderID,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type msg91Req struct {
	Sender string `json:"sender"`
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

func (s *MSG91Sender) SendOTP(ctx context.Context, phone, code string) error {
	body, _ := json.Marshal(msg91Req{Sender: s.SenderID, Mobile: phone, OTP: code})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/api/v5/otp", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("authkey", s.AuthKey)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}
	return nil
}
