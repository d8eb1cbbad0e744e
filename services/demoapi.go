package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopease-server/models"

	"go.uber.org/zap"
)

// APIError is a non-2xx answer from the demo API, carrying the upstream
// message when one was provided.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("demo api returned status %d", e.Status)
}

// DemoAPIClient wraps the public demo shop API: login and product catalog.
// Calls are not retried; a failed call surfaces immediately and the user
// retries by hand.
type DemoAPIClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewDemoAPIClient(baseURL string, logger *zap.Logger) *DemoAPIClient {
	return &DemoAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	models.User
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates against the demo API and returns the profile plus the
// bearer token.
func (c *DemoAPIClient) Login(ctx context.Context, username, password string) (models.User, string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return models.User{}, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return models.User{}, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.User{}, "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.User{}, "", c.apiError("login", resp)
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.User{}, "", fmt.Errorf("failed to decode login response: %w", err)
	}
	return out.User, out.AccessToken, nil
}

// FetchProducts pulls the full catalog page the dashboard renders.
func (c *DemoAPIClient) FetchProducts(ctx context.Context) (models.ProductList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return models.ProductList{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.ProductList{}, fmt.Errorf("products request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.ProductList{}, c.apiError("products", resp)
	}

	var out models.ProductList
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.ProductList{}, fmt.Errorf("failed to decode products response: %w", err)
	}
	return out, nil
}

func (c *DemoAPIClient) apiError(op string, resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(data, &payload)

	c.logger.Warn("demo api request failed",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.String("message", payload.Message),
	)
	return &APIError{Status: resp.StatusCode, Message: payload.Message}
}
