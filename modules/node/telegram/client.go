package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// parseMode is fixed: captions and texts are sent as HTML.
	parseMode = "HTML"

	maxResponseBytes = 10 << 20 // prevent unbounded reads from API responses
)

// Client is a thin HTTP wrapper around the three Bot API methods this
// module uses: sendMessage, sendMediaGroup, and getUpdates. Calls are
// never retried; a non-success response surfaces as *DeliveryError.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Telegram Bot API client. timeout bounds every
// outbound call, including media uploads.
func NewClient(token, baseURL string, timeout time.Duration) *Client {
	return &Client{
		token:   token,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// decode reads and unwraps an API response. Non-2xx statuses and ok=false
// envelopes both become *DeliveryError carrying the upstream diagnostics.
func decode[T any](method string, resp *http.Response) (*T, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("telegram: read %s response: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DeliveryError{Status: resp.StatusCode, Body: string(body)}
	}

	var apiResp APIResponse[T]
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("telegram: decode %s response: %w", method, err)
	}
	if !apiResp.OK {
		return nil, &DeliveryError{Status: apiResp.ErrorCode, Body: apiResp.Description}
	}

	return &apiResp.Result, nil
}

// GetUpdates polls the update feed starting at the given offset. A negative
// offset asks the provider for only the most recent updates.
func (c *Client) GetUpdates(ctx context.Context, offset int) ([]Update, error) {
	u := c.methodURL("getUpdates") + "?offset=" + strconv.Itoa(offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("telegram: create getUpdates request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Wrap without the raw error text in the message to avoid leaking
		// the token-bearing URL. The original error remains available via Unwrap.
		return nil, fmt.Errorf("telegram: getUpdates request failed: %w", err)
	}

	result, err := decode[[]Update]("getUpdates", resp)
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// SendMessageRequest describes a sendMessage call. A zero ReplyToMessageID
// produces a plain message; a non-zero one produces a reply that degrades
// to a plain message if the target is gone (allow_sending_without_reply).
type SendMessageRequest struct {
	ChatID           string
	Text             string
	ReplyToMessageID int
}

// SendMessage sends an HTML text message via an urlencoded form post.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	form := url.Values{}
	form.Set("chat_id", req.ChatID)
	form.Set("text", req.Text)
	form.Set("parse_mode", parseMode)
	if req.ReplyToMessageID != 0 {
		form.Set("reply_to_message_id", strconv.Itoa(req.ReplyToMessageID))
		form.Set("allow_sending_without_reply", "true")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.methodURL("sendMessage"), bytes.NewBufferString(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("telegram: create sendMessage request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("telegram: sendMessage request failed: %w", err)
	}

	return decode[Message]("sendMessage", resp)
}

// SendMediaGroupRequest describes a sendMediaGroup call. Media references
// attachments by name ("attach://<name>"); Files maps each name to its
// binary payload.
type SendMediaGroupRequest struct {
	ChatID           string
	Media            []InputMedia
	Files            map[string][]byte
	ReplyToMessageID int
}

// SendMediaGroup posts a media group as one multipart request and returns
// the created messages in order.
func (c *Client) SendMediaGroup(ctx context.Context, req SendMediaGroupRequest) ([]Message, error) {
	mediaJSON, err := json.Marshal(req.Media)
	if err != nil {
		return nil, fmt.Errorf("telegram: marshal media list: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("chat_id", req.ChatID); err != nil {
		return nil, fmt.Errorf("telegram: write chat_id field: %w", err)
	}
	if err := w.WriteField("media", string(mediaJSON)); err != nil {
		return nil, fmt.Errorf("telegram: write media field: %w", err)
	}
	if req.ReplyToMessageID != 0 {
		if err := w.WriteField("reply_to_message_id", strconv.Itoa(req.ReplyToMessageID)); err != nil {
			return nil, fmt.Errorf("telegram: write reply_to_message_id field: %w", err)
		}
		if err := w.WriteField("allow_sending_without_reply", "true"); err != nil {
			return nil, fmt.Errorf("telegram: write allow_sending_without_reply field: %w", err)
		}
	}

	// Attach files in media order so the request layout is deterministic.
	for _, item := range req.Media {
		name := item.AttachmentName()
		data, ok := req.Files[name]
		if !ok {
			return nil, fmt.Errorf("telegram: media item references missing attachment %q", name)
		}
		part, err := w.CreateFormFile(name, name)
		if err != nil {
			return nil, fmt.Errorf("telegram: create form file %q: %w", name, err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, fmt.Errorf("telegram: write form file %q: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("telegram: finalize multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.methodURL("sendMediaGroup"), &buf)
	if err != nil {
		return nil, fmt.Errorf("telegram: create sendMediaGroup request: %w", err)
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("telegram: sendMediaGroup request failed: %w", err)
	}

	result, err := decode[[]Message]("sendMediaGroup", resp)
	if err != nil {
		return nil, err
	}
	return *result, nil
}
