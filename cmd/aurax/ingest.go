package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"aurax-orchestrator/internal/knowledge"
)

var errKnowledgeDisabled = errors.New("knowledge base is not configured (missing embedding API key)")

func (a *app) ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Add content to the knowledge base",
	}
	cmd.AddCommand(a.ingestURLCmd(), a.ingestTextCmd())
	return cmd
}

func (a *app) knowledge(cmd *cobra.Command) (knowledge.UseCase, error) {
	comps, err := a.components(cmd.Context())
	if err != nil {
		return nil, err
	}
	if comps.Knowledge == nil {
		return nil, errKnowledgeDisabled
	}
	return comps.Knowledge, nil
}

func (a *app) ingestURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url <url>...",
		Short: "Fetch web pages and store their chunks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := a.knowledge(cmd)
			if err != nil {
				return err
			}
			out := kb.IngestURLs(cmd.Context(), args)
			if err := a.print(out); err != nil {
				return err
			}
			if len(out.Succeeded) == 0 {
				return errors.New("no url was ingested")
			}
			return nil
		},
	}
}

func (a *app) ingestTextCmd() *cobra.Command {
	var source, title string

	cmd := &cobra.Command{
		Use:   "text <file|->",
		Short: "Chunk and store a text file (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args[0])
			if err != nil {
				return err
			}
			if source == "" {
				source = filepath.Base(args[0])
			}
			if title == "" {
				title = source
			}

			kb, err := a.knowledge(cmd)
			if err != nil {
				return err
			}
			out, err := kb.IngestText(cmd.Context(), knowledge.IngestTextInput{Text: text, Source: source, Title: title})
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "source name stored with each chunk (default: file name)")
	cmd.Flags().StringVar(&title, "title", "", "document title (default: source)")
	return cmd
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
