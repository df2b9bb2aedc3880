// Command seed-knowledge fills the knowledge base from a list of sources.
//
// Each non-empty line of the sources file is either an http(s) URL or a path
// to a local text/markdown file. Lines starting with # are ignored.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aurax-orchestrator/config"
	"aurax-orchestrator/internal/bootstrap"
	"aurax-orchestrator/internal/knowledge"
	"aurax-orchestrator/pkg/log"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run scripts/seed-knowledge/main.go <path/to/config.yaml> <sources.txt>")
		fmt.Println("Example: go run scripts/seed-knowledge/main.go config/config.yaml config/sources.txt")
		os.Exit(1)
	}

	cfg, err := config.LoadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	comps, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize components: %v", err)
	}
	if comps.Knowledge == nil {
		logger.Fatal(ctx, "Knowledge base is not configured, set an embedding API key")
	}

	urls, files, err := readSources(os.Args[2])
	if err != nil {
		logger.Fatalf(ctx, "Failed to read sources: %v", err)
	}

	if _, err := comps.Knowledge.EnsureCollection(ctx); err != nil {
		logger.Fatalf(ctx, "Failed to ensure collection: %v", err)
	}

	logger.Infof(ctx, "Seeding %d urls and %d files...", len(urls), len(files))

	total, failed := 0, 0
	if len(urls) > 0 {
		out := comps.Knowledge.IngestURLs(ctx, urls)
		total += out.TotalChunks
		for _, f := range out.Failed {
			failed++
			logger.Warnf(ctx, "Failed %s: %s", f.Source, f.Error)
		}
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			failed++
			logger.Warnf(ctx, "Failed %s: %v", path, err)
			continue
		}
		name := filepath.Base(path)
		res, err := comps.Knowledge.IngestText(ctx, knowledge.IngestTextInput{Text: string(data), Source: name, Title: name})
		if err != nil {
			failed++
			logger.Warnf(ctx, "Failed %s: %v", path, err)
			continue
		}
		total += res.Added
	}

	logger.Infof(ctx, "Seeding complete: %d chunks stored, %d sources failed", total, failed)
}

func readSources(path string) (urls, files []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	base := filepath.Dir(path)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "", strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "http://"), strings.HasPrefix(line, "https://"):
			urls = append(urls, line)
		case filepath.IsAbs(line):
			files = append(files, line)
		default:
			files = append(files, filepath.Join(base, line))
		}
	}
	return urls, files, sc.Err()
}
