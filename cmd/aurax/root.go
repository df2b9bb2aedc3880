package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"aurax-orchestrator/config"
	"aurax-orchestrator/internal/bootstrap"
	"aurax-orchestrator/pkg/log"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

var errUnknownOutput = errors.New("output must be json or yaml")

type app struct {
	configPath string
	output     string
	verbose    bool
	out        io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "aurax",
		Short:         "Route, generate and manage the AURAX knowledge base",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.out = cmd.OutOrStdout()
			if a.output != outputJSON && a.output != outputYAML {
				return errUnknownOutput
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default: ./config/config.yaml)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputJSON, "output format: json or yaml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log to stdout")

	root.AddCommand(
		a.routeCmd(),
		a.generateCmd(),
		a.analyzeCmd(),
		a.ingestCmd(),
		a.statusCmd(),
	)
	return root
}

func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (a *app) logger(cfg *config.Config) log.Logger {
	if !a.verbose {
		return log.NewNop()
	}
	return log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
}

func (a *app) components(ctx context.Context) (*bootstrap.Components, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return bootstrap.Build(ctx, cfg, a.logger(cfg))
}

// print writes v in the selected format. YAML keys follow the JSON field names.
func (a *app) print(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if a.output == outputJSON {
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return err
	}
	_, err = a.out.Write(out)
	return err
}
