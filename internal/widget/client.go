package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/podderSoykot/Saloon-chatbot/internal/utils"
)

// Client implements Sender over HTTP against the relay endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: utils.NewHTTPClient(timeout),
		baseURL:    baseURL,
	}
}

type sendRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
}

type sendResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error"`
}

// Send posts one message to /api/chat and returns the reply.
func (c *Client) Send(ctx context.Context, userID, message string) (string, error) {
	payload, err := json.Marshal(sendRequest{Message: message, UserID: userID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode relay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if body.Error != "" {
			return "", fmt.Errorf("relay: %s", body.Error)
		}
		return "", fmt.Errorf("relay: status %d", resp.StatusCode)
	}

	return body.Reply, nil
}
