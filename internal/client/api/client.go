package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vmaslov/moneykeeper/pkg/api"
)

// SessionSource supplies bearer credentials for outgoing requests.
// Реализуется session.Manager и внедряется явно, а не через глобальное
// состояние: клиент тестируется с любой подменой источника.
type SessionSource interface {
	// AccessToken returns the current access token, or "" when no session
	// exists. Unauthenticated endpoints still work without a token.
	AccessToken(ctx context.Context) (string, error)

	// RefreshAccessToken exchanges the refresh token for a new pair and
	// returns the new access token. Concurrent calls are collapsed into a
	// single network request.
	RefreshAccessToken(ctx context.Context) (string, error)

	// HandleAuthFailure tears the session down after a terminal 401
	HandleAuthFailure(ctx context.Context) error
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	session    SessionSource
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetSessionSource attaches the session source used for bearer injection and
// the 401 refresh-and-retry path. Вызывается один раз при сборке приложения,
// после создания session.Manager (который сам зависит от Client).
func (c *Client) SetSessionSource(session SessionSource) {
	c.session = session
}

// doRequest выполняет аутентифицированный HTTP запрос.
// При наличии сессии добавляет bearer-заголовок; на 401 один раз обновляет
// токены и повторяет запрос. Второй 401 подряд завершает сессию.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	return c.send(ctx, method, path, payload, result, false)
}

// doPublicRequest выполняет запрос без bearer-заголовка и без retry.
// Используется для login/register/refresh: 401 от этих endpoint'ов означает
// неверные учетные данные, а не протухший access token.
func (c *Client) doPublicRequest(ctx context.Context, method, path string, body, result interface{}) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}

	resp, respBody, err := c.roundTrip(ctx, method, path, payload, "")
	if err != nil {
		return err
	}

	return decodeResponse(resp, respBody, result)
}

// send выполняет один проход пайплайна. Флаг retried передается явно:
// состояние "запрос уже повторялся" не прячется в мутируемом request-объекте,
// а каждый исходный запрос повторяется не более одного раза.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, result interface{}, retried bool) error {
	token := ""
	if c.session != nil {
		t, err := c.session.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to read access token: %w", err)
		}
		token = t
	}

	resp, respBody, err := c.roundTrip(ctx, method, path, payload, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.session != nil {
		if retried {
			// Повторный 401 после успешного refresh: сессия мертва
			_ = c.session.HandleAuthFailure(ctx)
			return fmt.Errorf("%w: request rejected after token refresh", ErrTerminalAuth)
		}

		if _, err := c.session.RefreshAccessToken(ctx); err != nil {
			_ = c.session.HandleAuthFailure(ctx)
			return fmt.Errorf("%w: token refresh: %v", ErrTerminalAuth, err)
		}

		// Повторяем исходный запрос с новым токеном; вызывающий код
		// промежуточный 401 не наблюдает
		return c.send(ctx, method, path, payload, result, true)
	}

	return decodeResponse(resp, respBody, result)
}

// roundTrip собирает и выполняет один HTTP запрос
func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, token string) (*http.Response, []byte, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp, respBody, nil
}

// marshalBody сериализует тело запроса в JSON
func marshalBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return payload, nil
}

// decodeResponse проверяет статус код и декодирует успешный ответ
func decodeResponse(resp *http.Response, respBody []byte, result interface{}) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return &StatusError{Code: resp.StatusCode, Message: errResp.Message}
		}
		return &StatusError{Code: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
