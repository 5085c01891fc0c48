package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/podderSoykot/Saloon-chatbot/internal/config"
	"github.com/podderSoykot/Saloon-chatbot/internal/model"
	"github.com/podderSoykot/Saloon-chatbot/internal/utils"
	"github.com/podderSoykot/Saloon-chatbot/pkg/logger"
)

// Relay failure classes, mapped to HTTP statuses by the chat handler.
var (
	// ErrUpstream covers network failures and non-2xx upstream statuses.
	ErrUpstream = errors.New("chatbot service unavailable")
	// ErrEmptyReply means the upstream answered but omitted the bot field.
	ErrEmptyReply = errors.New("chatbot returned an empty reply")
)

// RelayService forwards one user message to the hosted chatbot service
// and hands back its reply. One attempt per message, no retries.
type RelayService struct {
	client        *http.Client
	apiURL        string
	defaultUserID string
}

func NewRelayService(cfg *config.Config) *RelayService {
	return &RelayService{
		client:        utils.NewHTTPClient(cfg.Chatbot.Timeout),
		apiURL:        cfg.Chatbot.APIURL,
		defaultUserID: cfg.Chatbot.DefaultUserID,
	}
}

// Send relays message on behalf of userID. An empty userID falls back to
// the configured default identity.
func (s *RelayService) Send(ctx context.Context, userID, message string) (string, error) {
	if userID == "" {
		userID = s.defaultUserID
	}

	payload, err := json.Marshal(model.UpstreamRequest{
		UserID:  userID,
		Message: message,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Errorf("chatbot request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warnf("chatbot returned status %d", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var upstream model.UpstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		logger.Errorf("chatbot response unreadable: %v", err)
		return "", fmt.Errorf("%w: %v", ErrEmptyReply, err)
	}
	if upstream.Bot == "" {
		return "", ErrEmptyReply
	}

	return upstream.Bot, nil
}
