package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

const defaultCleanupInterval = 10 * time.Minute

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService.
// cacheTTL <= 0 отключает кэширование профилей.
func NewClient(baseURL string, timeout, cacheTTL time.Duration, log Logger) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
	if cacheTTL > 0 {
		c.cache = cache.New(cacheTTL, defaultCleanupInterval)
	}
	return c
}

// GetProfile получает профиль клиента салона
func (c *Client) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	url := fmt.Sprintf("%s/internal/users/%d/profile", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, fmt.Errorf("%w: status code %d", ErrServiceUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &profile, nil
}

// GetClient получает клиента салона с кэшированием профиля
func (c *Client) GetClient(ctx context.Context, userID int64) (*domain.Client, error) {
	key := strconv.FormatInt(userID, 10)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			client := *cached.(*domain.Client)
			return &client, nil
		}
	}

	profile, err := c.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.log.Info("Profile not found for user_id=%d", userID)
			return nil, err
		}
		c.log.Error("Failed to fetch profile for user_id=%d: %v", userID, err)
		return nil, err
	}

	client, err := profile.ToDomain()
	if err != nil {
		c.log.Error("Invalid profile for user_id=%d: %v", userID, err)
		return nil, err
	}

	if c.cache != nil {
		stored := *client
		c.cache.SetDefault(key, &stored)
	}

	return client, nil
}

// Invalidate удаляет профиль из кэша
func (c *Client) Invalidate(userID int64) {
	if c.cache != nil {
		c.cache.Delete(strconv.FormatInt(userID, 10))
	}
}
