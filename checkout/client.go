package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIClient creates orders through the marketplace REST API on behalf of a
// signed-in customer.
type APIClient struct {
	client *resty.Client
}

func NewAPIClient(baseURL, token string) *APIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetAuthToken(token).
		SetHeader("Accept", "application/json")
	return &APIClient{client: client}
}

type createdOrder struct {
	ID uint `json:"ID"`
}

type apiError struct {
	Message string `json:"message"`
}

func (c *APIClient) CreateOrder(ctx context.Context, req OrderRequest) (uint, error) {
	var created createdOrder
	var failure apiError

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&created).
		SetError(&failure).
		Post("/orders")
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		if failure.Message != "" {
			return 0, errors.New(failure.Message)
		}
		return 0, fmt.Errorf("order request failed with status %d", resp.StatusCode())
	}
	if created.ID == 0 {
		return 0, errors.New("order response has no id")
	}
	return created.ID, nil
}
