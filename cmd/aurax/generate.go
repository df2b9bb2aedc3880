package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/pkg/stablediffusion"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		in       generation.GenerateInput
		imageOut string
	)

	cmd := &cobra.Command{
		Use:   "generate <query>",
		Short: "Route a query and generate a response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := a.components(cmd.Context())
			if err != nil {
				return err
			}

			in.Query = strings.Join(args, " ")
			out := comps.Generation.Generate(cmd.Context(), in)

			if imageOut != "" {
				if err := writeImages(imageOut, out.Response); err != nil {
					return err
				}
			}
			if err := a.print(out); err != nil {
				return err
			}
			if !out.Success {
				return fmt.Errorf("generation failed: %s", out.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.ExplicitModel, "model", "", "force a backend (qwen3:coder, stable-diffusion, web-enhanced, default) or a text model name")
	cmd.Flags().IntVar(&in.TopK, "top-k", 0, "number of context documents")
	cmd.Flags().IntVar(&in.MaxTokens, "max-tokens", 0, "maximum tokens to generate")
	cmd.Flags().IntVar(&in.NumImages, "num-images", 0, "number of image variations (1-4)")
	cmd.Flags().StringVar(&imageOut, "image-out", "", "write generated images to this file; variations get an index suffix")
	return cmd
}

// writeImages saves image responses and replaces their base64 data with the
// file name so the printed outcome stays short.
func writeImages(path string, resp any) error {
	switch v := resp.(type) {
	case *stablediffusion.ImagePayload:
		return writeImage(path, v)
	case []*stablediffusion.ImagePayload:
		ext := filepath.Ext(path)
		base := strings.TrimSuffix(path, ext)
		for k, img := range v {
			if err := writeImage(fmt.Sprintf("%s-%d%s", base, k, ext), img); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeImage(path string, img *stablediffusion.ImagePayload) error {
	data, err := base64.StdEncoding.DecodeString(img.ImageBase64)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	img.ImageBase64 = "(written to " + path + ")"
	return nil
}

func (a *app) analyzeCmd() *cobra.Command {
	var question string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Explain or review a source file with the code model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readInput(args[0])
			if err != nil {
				return err
			}
			comps, err := a.components(cmd.Context())
			if err != nil {
				return err
			}
			out, err := comps.Generation.AnalyzeCode(cmd.Context(), generation.AnalyzeInput{Code: code, Question: question})
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "question about the code")
	return cmd
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report backend and knowledge base health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			comps, err := a.components(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(comps.Generation.SystemStatus(cmd.Context()))
		},
	}
}
