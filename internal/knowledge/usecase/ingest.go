package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	"aurax-orchestrator/internal/knowledge"
	"aurax-orchestrator/internal/knowledge/repository"
)

var titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// IngestText chunks a raw text and stores the accepted chunks.
func (uc *implUseCase) IngestText(ctx context.Context, input knowledge.IngestTextInput) (knowledge.IngestResult, error) {
	if strings.TrimSpace(input.Text) == "" {
		return knowledge.IngestResult{}, knowledge.ErrNoDocuments
	}
	base := map[string]any{
		MetaSource:     input.Source,
		MetaTitle:      input.Title,
		MetaIngestedAt: uc.now().UTC().Format(time.RFC3339),
	}
	return uc.ingest(ctx, input.Source, input.Title, input.Text, base)
}

// IngestURL fetches a page, converts HTML to markdown and ingests it.
func (uc *implUseCase) IngestURL(ctx context.Context, rawURL string) (knowledge.IngestResult, error) {
	if err := validateURL(rawURL); err != nil {
		return knowledge.IngestResult{}, err
	}

	title, content, err := uc.fetch(ctx, rawURL)
	if err != nil {
		uc.l.Warnf(ctx, "%s: fetch %s failed: %v", logPrefixIngest, rawURL, err)
		return knowledge.IngestResult{}, err
	}

	base := map[string]any{
		MetaSource:     rawURL,
		MetaSourceURL:  rawURL,
		MetaTitle:      title,
		MetaIngestedAt: uc.now().UTC().Format(time.RFC3339),
	}
	return uc.ingest(ctx, rawURL, title, content, base)
}

// IngestURLs ingests pages concurrently. Results keep the input order.
func (uc *implUseCase) IngestURLs(ctx context.Context, urls []string) knowledge.IngestURLsOutput {
	results := make([]knowledge.IngestResult, len(urls))
	errs := make([]error, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.Workers)
	for i, u := range urls {
		g.Go(func() error {
			results[i], errs[i] = uc.IngestURL(gctx, u)
			return nil
		})
	}
	_ = g.Wait()

	out := knowledge.IngestURLsOutput{
		Succeeded: []knowledge.IngestResult{},
		Failed:    []knowledge.IngestFailure{},
	}
	for i, u := range urls {
		if errs[i] != nil {
			out.Failed = append(out.Failed, knowledge.IngestFailure{Source: u, Error: errs[i].Error()})
			continue
		}
		out.Succeeded = append(out.Succeeded, results[i])
		out.TotalChunks += results[i].Added
	}

	uc.l.Infof(ctx, "%s: ingested %d/%d urls, %d chunks", logPrefixIngest, len(out.Succeeded), len(urls), out.TotalChunks)
	return out
}

func (uc *implUseCase) ingest(ctx context.Context, source, title, content string, base map[string]any) (knowledge.IngestResult, error) {
	result := knowledge.IngestResult{
		Source:        source,
		Title:         title,
		ContentLength: len([]rune(content)),
	}

	chunks, err := uc.process(content, base)
	if err != nil {
		return result, fmt.Errorf("failed to split content: %w", err)
	}
	if len(chunks) == 0 {
		uc.l.Warnf(ctx, "%s: no usable chunks from %s", logPrefixIngest, source)
		return result, knowledge.ErrNoChunks
	}
	result.Chunks = len(chunks)

	if _, err := uc.repo.EnsureCollection(ctx); err != nil {
		return result, err
	}

	docs := make([]repository.Document, 0, len(chunks))
	for _, c := range chunks {
		docs = append(docs, repository.Document{
			ID:      fmt.Sprintf("%s#%d", source, c.Index),
			Text:    c.Text,
			Payload: c.Metadata,
		})
	}

	added, err := uc.repo.Upsert(ctx, docs)
	if err != nil {
		return result, err
	}
	result.Added = added

	uc.l.Infof(ctx, "%s: stored %d chunks from %s", logPrefixIngest, added, source)
	return result, nil
}

func (uc *implUseCase) fetch(ctx context.Context, rawURL string) (title, content string, err error) {
	resp, err := uc.http.R().SetContext(ctx).Get(rawURL)
	if errors.Is(err, resty.ErrResponseBodyTooLarge) {
		return "", "", fmt.Errorf("%w: body exceeds %d bytes", knowledge.ErrFetchFailed, uc.opts.MaxBodyBytes)
	}
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", knowledge.ErrFetchFailed, err)
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("%w: status %d", knowledge.ErrFetchFailed, resp.StatusCode())
	}

	body := resp.Body()

	contentType := strings.ToLower(resp.Header().Get("Content-Type"))
	switch {
	case strings.Contains(contentType, "text/html"), contentType == "":
		md, err := htmltomarkdown.ConvertString(string(body))
		if err != nil {
			return "", "", fmt.Errorf("failed to convert html: %w", err)
		}
		return pageTitle(string(body), rawURL), md, nil
	case strings.HasPrefix(contentType, "text/"):
		return rawURL, string(body), nil
	default:
		return "", "", fmt.Errorf("%w: unsupported content type %q", knowledge.ErrFetchFailed, contentType)
	}
}

func pageTitle(page, fallback string) string {
	m := titleRe.FindStringSubmatch(page)
	if len(m) < 2 {
		return fallback
	}
	title := strings.TrimSpace(whitespaceRe.ReplaceAllString(html.UnescapeString(m[1]), " "))
	if title == "" {
		return fallback
	}
	return title
}

func validateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", knowledge.ErrInvalidURL, raw)
	}
	return nil
}
