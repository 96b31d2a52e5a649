package answering

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNoAnswer is returned by Ask when the service replies with a 2xx status
// but the body carries no answer field. The session layer maps it to its own
// fallback text, distinct from transport failures.
var ErrNoAnswer = errors.New("answering: response contained no answer")

// Service defines the interface for talking to the answering service.
type Service interface {
	// Ask sends one question and returns the service's answer text.
	Ask(ctx context.Context, question string) (string, error)
	// Ping checks whether the service is up. Any 2xx response means ready.
	Ping(ctx context.Context) error
}

type httpService struct {
	client *http.Client
	url    string
}

// NewHTTPService returns a Service that talks to the answering service over
// HTTP at the given base URL. No timeout is set on the underlying client;
// the request waits until the transport settles or the context is done.
func NewHTTPService(url string) Service {
	return &httpService{
		client: &http.Client{},
		url:    url,
	}
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer *string `json:"answer"`
}

func (s *httpService) Ask(ctx context.Context, question string) (string, error) {
	body, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return "", fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/chat", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("service returned non-2xx status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response body: %w", err)
	}

	var askResp askResponse
	if err := json.Unmarshal(bodyBytes, &askResp); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	if askResp.Answer == nil {
		return "", ErrNoAnswer
	}
	return *askResp.Answer, nil
}

func (s *httpService) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url+"/ping", nil)
	if err != nil {
		return fmt.Errorf("could not create http request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	// The body is ignored; only the status class matters.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("service returned non-2xx status %d", resp.StatusCode)
	}
	return nil
}
