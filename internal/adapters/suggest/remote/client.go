// Package remote implementa suggestions.Suggester delegando en un servicio HTTP externo
// que recibe el Request como JSON y devuelve el Result.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"medistock/internal/domain/suggestions"
	"medistock/internal/platform/httpclient"
)

const suggestPath = "/suggest"

type Client struct {
	http *httpclient.Client
}

// New crea el cliente. token vacío = sin Authorization.
func New(baseURL, token string, timeout time.Duration) (*Client, error) {
	c, err := httpclient.New(baseURL, timeout, httpclient.WithBearer(token))
	if err != nil {
		return nil, fmt.Errorf("remote suggester: %w", err)
	}
	return &Client{http: c}, nil
}

func (c *Client) Suggest(ctx context.Context, req suggestions.Request) (suggestions.Result, error) {
	var out suggestions.Result
	if err := c.http.DoJSON(ctx, http.MethodPost, suggestPath, req, &out); err != nil {
		return suggestions.Result{}, err
	}
	return out, nil
}
