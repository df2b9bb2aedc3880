package qdrant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// ErrCollectionNotFound is returned by GetCollection for unknown collections.
var ErrCollectionNotFound = errors.New("qdrant: collection not found")

// Client is the Qdrant HTTP API client.
type Client struct {
	http *resty.Client
}

// NewClient creates a new Qdrant client.
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(defaultTimeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// WithAPIKey sets the api-key header sent on every request.
func (c *Client) WithAPIKey(key string) *Client {
	if key != "" {
		c.http.SetHeader("api-key", key)
	}
	return c
}

// CreateCollection creates a new collection with the given configuration.
func (c *Client) CreateCollection(ctx context.Context, req CreateCollectionRequest) error {
	_, err := c.do(ctx, http.MethodPut, "/collections/"+req.Name, req, nil, http.StatusOK, http.StatusCreated)
	return err
}

// GetCollection returns the collection's vector config and point count.
func (c *Client) GetCollection(ctx context.Context, name string) (*CollectionInfo, error) {
	var env apiEnvelope
	status, err := c.do(ctx, http.MethodGet, "/collections/"+name, nil, &env, http.StatusOK)
	if status == http.StatusNotFound {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &CollectionInfo{
		Name:        name,
		Status:      env.Result.Status,
		VectorSize:  env.Result.Config.Params.Vectors.Size,
		Distance:    env.Result.Config.Params.Vectors.Distance,
		PointsCount: env.Result.PointsCount,
	}, nil
}

// EnsureCollection creates the collection when it does not exist yet.
// It reports whether a collection was created.
func (c *Client) EnsureCollection(ctx context.Context, req CreateCollectionRequest) (bool, error) {
	_, err := c.GetCollection(ctx, req.Name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrCollectionNotFound) {
		return false, err
	}
	if err := c.CreateCollection(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}

// UpsertPoints inserts or updates points (vectors) in a collection.
func (c *Client) UpsertPoints(ctx context.Context, collectionName string, req UpsertPointsRequest) error {
	path := fmt.Sprintf("/collections/%s/points?wait=true", collectionName)
	_, err := c.do(ctx, http.MethodPut, path, req, nil, http.StatusOK)
	return err
}

// SearchPoints performs similarity search in a collection.
func (c *Client) SearchPoints(ctx context.Context, collectionName string, req SearchRequest) (*SearchResponse, error) {
	var result SearchResponse
	path := fmt.Sprintf("/collections/%s/points/search", collectionName)
	if _, err := c.do(ctx, http.MethodPost, path, req, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePoints deletes points by IDs.
func (c *Client) DeletePoints(ctx context.Context, collectionName string, ids []string) error {
	path := fmt.Sprintf("/collections/%s/points/delete", collectionName)
	_, err := c.do(ctx, http.MethodPost, path, DeletePointsRequest{Points: ids}, nil, http.StatusOK)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, accepted ...int) (int, error) {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return 0, fmt.Errorf("failed to call qdrant API: %w", err)
	}

	for _, code := range accepted {
		if resp.StatusCode() == code {
			return code, nil
		}
	}
	return resp.StatusCode(), fmt.Errorf("qdrant API error: %d", resp.StatusCode())
}
