package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/slok/goresilience"

	"aurax-orchestrator/internal/generation"
	pkgLog "aurax-orchestrator/pkg/log"
	"aurax-orchestrator/pkg/stablediffusion"
)

const (
	DefaultNegativePrompt = "blurry, low quality, distorted, deformed, ugly, bad anatomy"
	MaxImageVariations    = 4
	imageFormat           = "PNG"

	logPrefixImage = "internal.generation.backend.Image"
)

var qualityEnhancers = []string{"high quality", "detailed", "sharp focus", "professional"}

var ErrTooManyImages = errors.New("between 1 and 4 images can be generated")

// Image renders pictures through a Stable Diffusion web API.
type Image struct {
	l      pkgLog.Logger
	client *stablediffusion.Client
	runner goresilience.Runner
}

var (
	_ generation.ImageBackend        = (*Image)(nil)
	_ generation.ImageVariator       = (*Image)(nil)
	_ generation.AvailabilityChecker = (*Image)(nil)
	_ generation.CheckpointReporter  = (*Image)(nil)
)

// NewImage creates the image backend.
func NewImage(l pkgLog.Logger, client *stablediffusion.Client, rc ResilienceConfig) *Image {
	if rc.Timeout <= 0 {
		rc.Timeout = stablediffusion.DefaultTimeout
	}
	return &Image{l: l, client: client, runner: newRunner(rc)}
}

// Available reports whether the diffusion server answers.
func (i *Image) Available(ctx context.Context) bool {
	return i.client.IsAvailable(ctx)
}

// CurrentModel returns the checkpoint the diffusion server has loaded.
func (i *Image) CurrentModel(ctx context.Context) (string, error) {
	return i.client.CurrentModel(ctx)
}

// GenerateImage renders one image.
func (i *Image) GenerateImage(ctx context.Context, req generation.ImageRequest) (*stablediffusion.ImagePayload, error) {
	payloads, err := i.render(ctx, req, 1)
	if err != nil {
		return nil, err
	}
	return payloads[0], nil
}

// GenerateImages renders n variations. With a fixed seed, image k uses seed+k.
func (i *Image) GenerateImages(ctx context.Context, req generation.ImageRequest, n int) ([]*stablediffusion.ImagePayload, error) {
	if n < 1 || n > MaxImageVariations {
		return nil, ErrTooManyImages
	}

	out := make([]*stablediffusion.ImagePayload, 0, n)
	for k := 0; k < n; k++ {
		variation := req
		if req.Seed != nil {
			seed := *req.Seed + int64(k)
			variation.Seed = &seed
		}
		payloads, err := i.render(ctx, variation, 1)
		if err != nil {
			i.l.Warnf(ctx, "%s: variation %d failed: %v", logPrefixImage, k, err)
			continue
		}
		payloads[0].ImageIndex = k
		out = append(out, payloads[0])
	}
	if len(out) == 0 {
		return nil, stablediffusion.ErrNoImage
	}
	return out, nil
}

func (i *Image) render(ctx context.Context, req generation.ImageRequest, batch int) ([]*stablediffusion.ImagePayload, error) {
	prompt := EnhancePrompt(req.Prompt)
	negative := req.NegativePrompt
	if negative == "" {
		negative = DefaultNegativePrompt
	}
	seed := stablediffusion.RandomSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	var res *stablediffusion.Txt2ImgResponse
	err := run(ctx, i.runner, func(ctx context.Context) error {
		var err error
		res, err = i.client.Txt2Img(ctx, stablediffusion.Txt2ImgRequest{
			Prompt:         prompt,
			NegativePrompt: negative,
			Steps:          req.Steps,
			CfgScale:       req.GuidanceScale,
			Width:          req.Width,
			Height:         req.Height,
			Seed:           seed,
			BatchSize:      batch,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("image backend: %w", err)
	}

	var usedSeed *int64
	if req.Seed != nil || res.Seed != stablediffusion.RandomSeed {
		s := res.Seed
		usedSeed = &s
	}

	payloads := make([]*stablediffusion.ImagePayload, 0, len(res.Images))
	for _, img := range res.Images {
		payloads = append(payloads, &stablediffusion.ImagePayload{
			ImageBase64:    img,
			Format:         imageFormat,
			Width:          req.Width,
			Height:         req.Height,
			Prompt:         prompt,
			NegativePrompt: negative,
			Steps:          req.Steps,
			GuidanceScale:  req.GuidanceScale,
			Seed:           usedSeed,
			Model:          i.client.Model(),
		})
	}
	return payloads, nil
}

// EnhancePrompt appends each quality enhancer missing from prompt.
func EnhancePrompt(prompt string) string {
	lowered := strings.ToLower(prompt)
	var b strings.Builder
	b.WriteString(prompt)
	for _, e := range qualityEnhancers {
		if !strings.Contains(lowered, e) {
			b.WriteString(", ")
			b.WriteString(e)
		}
	}
	return b.String()
}
