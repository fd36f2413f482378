package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TelegramClient talks to the Telegram Bot API over HTTP.
type TelegramClient struct {
	token  string
	apiURL string
	client *http.Client
}

// NewTelegramClient returns a client for the given bot token.
func NewTelegramClient(token string) *TelegramClient {
	return &TelegramClient{
		token:  token,
		apiURL: "https://api.telegram.org",
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *TelegramClient) SendMessage(ctx context.Context, chatID, text string, keyboard *InlineKeyboardMarkup) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	if keyboard != nil {
		payload["reply_markup"] = keyboard
	}

	return c.call(ctx, "sendMessage", payload)
}

func (c *TelegramClient) EditMessage(ctx context.Context, chatID string, messageID int, text string, keyboard *InlineKeyboardMarkup) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
		"parse_mode": "HTML",
	}
	if keyboard != nil {
		payload["reply_markup"] = keyboard
	}

	return c.call(ctx, "editMessageText", payload)
}

// AnswerCallbackQuery acknowledges a button press so the client stops showing
// a loading state.
func (c *TelegramClient) AnswerCallbackQuery(ctx context.Context, callbackQueryID string) error {
	return c.call(ctx, "answerCallbackQuery", map[string]any{
		"callback_query_id": callbackQueryID,
	})
}

func (c *TelegramClient) call(ctx context.Context, method string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var apiResponse struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	err = json.Unmarshal(raw, &apiResponse)
	if err != nil {
		return fmt.Errorf("telegram: unexpected response for %s: %w", method, err)
	}

	if !apiResponse.OK {
		return fmt.Errorf("telegram: %s failed: %s", method, apiResponse.Description)
	}

	return nil
}
