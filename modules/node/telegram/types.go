package telegram

import "fmt"

// Update represents an incoming update from the Telegram Bot API.
type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is the subset of a Telegram message this module consumes:
// identity, chat, and the forwarded-from id used for reply resolution.
type Message struct {
	MessageID            int    `json:"message_id"`
	Chat                 Chat   `json:"chat"`
	Date                 int    `json:"date,omitempty"`
	Text                 string `json:"text,omitempty"`
	ForwardFromMessageID int    `json:"forward_from_message_id,omitempty"`
}

// Chat represents a Telegram chat.
type Chat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

// APIResponse is the generic wrapper returned by the Telegram Bot API.
type APIResponse[T any] struct {
	OK          bool   `json:"ok"`
	Result      T      `json:"result"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

// DeliveryError reports a failed provider call. It carries the upstream
// HTTP status (or Bot API error_code) and response body for diagnostics.
// Delivery is not retried at this layer; retrying is the caller's call.
type DeliveryError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("telegram: delivery failed: %d %s", e.Status, e.Body)
}
