package botwire

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/rs/zerolog"
)

// APIError is a failure reported by the Bot API itself, as opposed to a
// transport failure.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram: %s (%d)", e.Description, e.Code)
}

// Client issues assembled requests against the Bot API. Each call is a single
// fire-and-forget POST: no retries, no response caching. The zero number of
// options targets the public API with a 30 second overall timeout and no
// logging.
type Client struct {
	token      string
	host       string
	httpClient *http.Client
	log        zerolog.Logger
}

type ClientOption func(*Client)

// WithHost points the client at a different API host, e.g. a local Bot API
// server.
func WithHost(host string) ClientOption {
	return func(c *Client) { c.host = host }
}

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger enables debug logging of outgoing calls.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:      token,
		host:       DefaultHost,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do assembles and sends one method call, returning the raw result node of
// the response envelope. A response with ok=false becomes an *APIError.
func (c *Client) Do(ctx context.Context, method string, p Params) (jsontext.Value, error) {
	req, err := Assemble(c.host, c.token, method, p)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", req.ContentType)

	c.log.Debug().
		Str("method", method).
		Int("body_size", len(req.Body)).
		Msg("Calling bot API")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if !apiResp.OK {
		c.log.Debug().
			Str("method", method).
			Int("error_code", apiResp.ErrorCode).
			Str("description", apiResp.Description).
			Msg("Bot API call failed")
		return nil, &APIError{Code: apiResp.ErrorCode, Description: apiResp.Description}
	}
	return apiResp.Result, nil
}

// GetMe returns the bot's own user record.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	result, err := c.Do(ctx, "getMe", Params{})
	if err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(result, &u, Options()); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return &u, nil
}

// SendMessage sends a text message. markup may be nil.
func (c *Client) SendMessage(ctx context.Context, to ChatRef, text string, markup ReplyMarkup) (*Message, error) {
	p := Params{
		"chat_id": Record(to),
		"text":    String(text),
	}
	if markup != nil {
		p.Set("reply_markup", Record(markup))
	}
	result, err := c.Do(ctx, "sendMessage", p)
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(result, &msg, Options()); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return &msg, nil
}

// SendDocument sends a document: either an upload or a server-side file
// reference. caption may be empty.
func (c *Client) SendDocument(ctx context.Context, to ChatRef, doc InputFile, caption string) (*Message, error) {
	p := Params{
		"chat_id":  Record(to),
		"document": Record(doc),
	}
	if caption != "" {
		p.Set("caption", String(caption))
	}
	result, err := c.Do(ctx, "sendDocument", p)
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(result, &msg, Options()); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return &msg, nil
}

// EditMessageText edits a previously sent message. The API responds with
// either the edited message or a bare true, so the result is resolved
// against EditResultUnion.
func (c *Client) EditMessageText(ctx context.Context, to ChatRef, messageID int64, text string, markup ReplyMarkup) (EditResult, error) {
	p := Params{
		"chat_id":    Record(to),
		"message_id": Int(messageID),
		"text":       String(text),
	}
	if markup != nil {
		p.Set("reply_markup", Record(markup))
	}
	result, err := c.Do(ctx, "editMessageText", p)
	if err != nil {
		return nil, err
	}
	return DecodeFirst(EditResultUnion, result, Options())
}

// AnswerCallbackQuery acknowledges a callback query.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string, showAlert bool) error {
	p := Params{
		"callback_query_id": String(callbackID),
		"show_alert":        Bool(showAlert),
	}
	if text != "" {
		p.Set("text", String(text))
	}
	_, err := c.Do(ctx, "answerCallbackQuery", p)
	return err
}

// DeleteMessage removes a message the bot is allowed to delete.
func (c *Client) DeleteMessage(ctx context.Context, to ChatRef, messageID int64) error {
	_, err := c.Do(ctx, "deleteMessage", Params{
		"chat_id":    Record(to),
		"message_id": Int(messageID),
	})
	return err
}

// GetUpdates long-polls for updates. Zero offset, limit and timeout are
// omitted so the server applies its defaults.
func (c *Client) GetUpdates(ctx context.Context, offset, limit, timeoutSec int64, allowed []string) ([]Update, error) {
	p := Params{}
	if offset != 0 {
		p.Set("offset", Int(offset))
	}
	if limit != 0 {
		p.Set("limit", Int(limit))
	}
	if timeoutSec != 0 {
		p.Set("timeout", Int(timeoutSec))
	}
	if len(allowed) > 0 {
		vs := make([]Value, len(allowed))
		for i, a := range allowed {
			vs[i] = String(a)
		}
		p.Set("allowed_updates", Seq(vs...))
	}
	result, err := c.Do(ctx, "getUpdates", p)
	if err != nil {
		return nil, err
	}
	var updates []Update
	if err := json.Unmarshal(result, &updates, Options()); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return updates, nil
}

// SetWebhook registers a webhook address. secretToken may be empty.
func (c *Client) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	p := Params{"url": String(webhookURL)}
	if secretToken != "" {
		p.Set("secret_token", String(secretToken))
	}
	_, err := c.Do(ctx, "setWebhook", p)
	return err
}

// DeleteWebhook unregisters the webhook.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	_, err := c.Do(ctx, "deleteWebhook", Params{})
	return err
}
