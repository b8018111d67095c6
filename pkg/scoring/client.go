package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/dto"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"
)

// Client talks to the BIAS-PRO scoring backend. It is a plain wire adapter:
// no retries, no session state, no progress. Orchestration lives in the
// services that own it.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// BootstrapSession allocates a new session, or reattaches to existingID when
// supplied. Reattachment is idempotent on the backend side.
func (c *Client) BootstrapSession(ctx context.Context, existingID string) (*entity.Session, error) {
	payload := dto.BootstrapSessionRequest{SessionID: existingID}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/session",
		bytes.NewBuffer(payloadJson),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var session entity.Session
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// AnalyzeText submits a structured-text artifact for scoring.
func (c *Client) AnalyzeText(ctx context.Context, request *dto.AnalyzeTextRequest) (*dto.AnalyzeResponse, error) {
	payloadJson, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/analyze",
		bytes.NewBuffer(payloadJson),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var res dto.AnalyzeResponse
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// AnalyzeFile submits a binary artifact as a multipart form with the same
// scalar fields as the text payload.
func (c *Client) AnalyzeFile(ctx context.Context, sessionID, mode, inputType, filePath, description string) (*dto.AnalyzeResponse, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, &dto.RemoteRequestError{Err: fmt.Errorf("open artifact file: %w", err)}
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"sessionId": sessionID,
		"mode":      mode,
		"inputType": inputType,
	}
	if description != "" {
		fields["description"] = description
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/analyze",
		&body,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var res dto.AnalyzeResponse
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SendChat sends one user message and returns the assistant reply.
func (c *Client) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	payloadJson, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat",
		bytes.NewBuffer(payloadJson),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var res dto.SendChatResponse
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ChatHistory fetches the ordered message list for a session.
func (c *Client) ChatHistory(ctx context.Context, sessionID string) ([]*entity.ChatMessage, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/chats/"+sessionID,
		nil,
	)
	if err != nil {
		return nil, err
	}

	var history []*entity.ChatMessage
	if err := c.do(req, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ClearChat deletes the session's chat history.
func (c *Client) ClearChat(ctx context.Context, sessionID string) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodDelete,
		c.baseURL+"/chats/"+sessionID,
		nil,
	)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// ClearChatDetached issues the teardown clear on its own context so it can
// outlive the caller. Fire-and-forget: the response is discarded and the
// error, if any, is returned only so the caller may log it at debug level.
// Delivery is advisory by contract.
func (c *Client) ClearChatDetached(sessionID string, budget time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()
	return c.ClearChat(ctx, sessionID)
}

// do executes the request and decodes the 2xx body into out (when non-nil).
// Non-2xx bodies carry {message, messageId}; transport failures wrap the
// underlying error with StatusCode 0.
func (c *Client) do(req *http.Request, out interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return &dto.RemoteRequestError{Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return &dto.RemoteRequestError{Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		remoteErr := &dto.RemoteRequestError{StatusCode: res.StatusCode}
		var errRes dto.ErrorResponse
		if err := json.Unmarshal(resBody, &errRes); err == nil && errRes.Message != "" {
			remoteErr.Message = errRes.Message
			remoteErr.MessageID = errRes.MessageID
		} else {
			remoteErr.Message = fmt.Sprintf("status error, got status %d. with response body %s", res.StatusCode, string(resBody))
		}
		return remoteErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
