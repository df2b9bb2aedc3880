package stablediffusion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "http://localhost:7860"
	DefaultModel   = "runwayml/stable-diffusion-v1-5"
	DefaultTimeout = 5 * time.Minute

	// RandomSeed asks the server to pick a seed.
	RandomSeed int64 = -1
)

var (
	ErrNoImage     = errors.New("stablediffusion: no image returned")
	ErrUnavailable = errors.New("stablediffusion: service unavailable")
)

// Client calls an AUTOMATIC1111-compatible Stable Diffusion web API.
type Client struct {
	http  *resty.Client
	model string
}

// New creates a client. Empty values use package defaults.
func New(baseURL, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		model: model,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// IsAvailable reports whether the server answers its options endpoint.
func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).Get("/sdapi/v1/options")
	if err != nil {
		return false
	}
	return resp.StatusCode() == http.StatusOK
}

// CurrentModel returns the checkpoint loaded on the server.
func (c *Client) CurrentModel(ctx context.Context) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/sdapi/v1/options")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("stablediffusion: status %d: %s", resp.StatusCode(), resp.String())
	}
	return gjson.GetBytes(resp.Body(), "sd_model_checkpoint").String(), nil
}

// Txt2Img renders images from a prompt.
func (c *Client) Txt2Img(ctx context.Context, req Txt2ImgRequest) (*Txt2ImgResponse, error) {
	if req.BatchSize <= 0 {
		req.BatchSize = 1
	}

	resp, err := c.http.R().SetContext(ctx).SetBody(req).Post("/sdapi/v1/txt2img")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stablediffusion: status %d: %s", resp.StatusCode(), resp.String())
	}

	body := resp.Body()
	out := &Txt2ImgResponse{Seed: req.Seed}
	for _, img := range gjson.GetBytes(body, "images").Array() {
		if s := img.String(); s != "" {
			out.Images = append(out.Images, s)
		}
	}
	if len(out.Images) == 0 {
		return nil, ErrNoImage
	}

	// info is a JSON document encoded as a string
	if info := gjson.GetBytes(body, "info").String(); info != "" {
		if seed := gjson.Get(info, "seed"); seed.Exists() {
			out.Seed = seed.Int()
		}
	}
	return out, nil
}
