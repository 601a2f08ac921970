package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ParsifalKing/Menu-project/internal/logger"
	"github.com/ParsifalKing/Menu-project/internal/notification"

	"go.uber.org/zap"
)

const apiBaseURL = "https://api.telegram.org"

type client struct {
	botToken    string
	adminChatID string
	httpClient  *http.Client
}

// NewClient returns an AdminChat backed by the Telegram Bot API.
func NewClient(botToken, adminChatID string) notification.AdminChat {
	if botToken == "" {
		logger.L().Warn("Telegram bot token is empty")
	}

	return &client{
		botToken:    botToken,
		adminChatID: adminChatID,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *client) SendMessageToAdmin(ctx context.Context, text string) error {
	log := logger.FromCtx(ctx).With(zap.String("chat_id", c.adminChatID))

	body := map[string]any{
		"chat_id": c.adminChatID,
		"text":    text,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", apiBaseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("telegram request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		log.Error("telegram rejected message",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", payload),
		)
		return fmt.Errorf("telegram sendMessage returned status %d", resp.StatusCode)
	}

	return nil
}
