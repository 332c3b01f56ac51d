package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SMSPayload is posted to the external SMS gateway by the notification worker.
type SMSPayload struct {
	To       string `json:"to"`
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
}

// SMSResponse is returned by the gateway after the message is accepted.
type SMSResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"` // "accepted" | "rejected"
	Reason    string `json:"reason,omitempty"`
}

// SMSClient is an HTTP client for the SMS gateway. Delivery failures are
// recorded on the notification row; the gateway is never retried inline.
type SMSClient struct {
	gatewayURL string
	senderID   string
	httpClient *http.Client
}

func NewSMSClient(gatewayURL, senderID string) *SMSClient {
	return &SMSClient{
		gatewayURL: gatewayURL,
		senderID:   senderID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send posts one message to the gateway and returns its acknowledgment.
func (c *SMSClient) Send(ctx context.Context, to, message string) (*SMSResponse, error) {
	body, err := json.Marshal(SMSPayload{To: to, SenderID: c.senderID, Message: message})
	if err != nil {
		return nil, fmt.Errorf("sms: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sms: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sms: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sms: gateway returned %d", resp.StatusCode)
	}

	var result SMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("sms: decode response: %w", err)
	}
	if result.Status != "accepted" {
		return &result, fmt.Errorf("sms: message rejected: %s", result.Reason)
	}
	return &result, nil
}
