package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTelegramAPI = "https://api.telegram.org"

// Telegram is a minimal Bot API client covering the two methods the job
// needs. Message text is HTML markup and must already be escaped by the
// caller.
type Telegram struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewTelegram(token string) *Telegram {
	return &Telegram{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultTelegramAPI,
		token:      token,
	}
}

// SendMessage posts an HTML message and returns the message id.
func (t *Telegram) SendMessage(ctx context.Context, chatID, text string) (int64, error) {
	form := url.Values{}
	form.Set("chat_id", chatID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")
	form.Set("disable_web_page_preview", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.methodURL("sendMessage"), strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return t.do(req)
}

// SendPhoto uploads a photo with an HTML caption and returns the message id.
func (t *Telegram) SendPhoto(ctx context.Context, chatID string, photo []byte, caption string) (int64, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("chat_id", chatID); err != nil {
		return 0, fmt.Errorf("failed to build photo request: %w", err)
	}
	w.WriteField("caption", caption)
	w.WriteField("parse_mode", "HTML")

	part, err := w.CreateFormFile("photo", "chart.png")
	if err != nil {
		return 0, fmt.Errorf("failed to build photo request: %w", err)
	}
	if _, err := part.Write(photo); err != nil {
		return 0, fmt.Errorf("failed to build photo request: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("failed to build photo request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.methodURL("sendPhoto"), &body)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return t.do(req)
}

func (t *Telegram) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
}

func (t *Telegram) do(req *http.Request) (int64, error) {
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return 0, fmt.Errorf("failed to read telegram response: %w", err)
	}

	var parsed struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
		Result      struct {
			MessageID int64 `json:"message_id"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return 0, fmt.Errorf("failed to decode telegram response: %w", err)
	}
	if !parsed.OK {
		return 0, fmt.Errorf("telegram rejected the message: %s", parsed.Description)
	}

	return parsed.Result.MessageID, nil
}
