package main

import (
	"strings"

	"github.com/spf13/cobra"

	"aurax-orchestrator/internal/router"
	"aurax-orchestrator/pkg/log"
)

type routeResult struct {
	router.RouteDecision
	Label  string               `json:"label"`
	Scores []router.FamilyScore `json:"scores,omitempty"`
}

func (a *app) routeCmd() *cobra.Command {
	var (
		meta    map[string]string
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "route <query>",
		Short: "Show which backend a query would be routed to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			r := router.New(log.NewNop(), router.Thresholds{
				MinConfidence: cfg.Router.MinConfidence,
				CodeScale:     cfg.Router.CodeScale,
				ImageScale:    cfg.Router.ImageScale,
				FreshScale:    cfg.Router.FreshScale,
				CodeBoost:     cfg.Router.CodeBoost,
				ImageBoost:    cfg.Router.ImageBoost,
			}, nil)

			query := strings.Join(args, " ")
			metadata := make(map[string]any, len(meta))
			for k, v := range meta {
				metadata[k] = v
			}

			decision := r.Classify(cmd.Context(), query, metadata)
			res := routeResult{RouteDecision: decision, Label: decision.Backend.Label()}
			if explain {
				res.Scores = r.Explain(query)
			}
			return a.print(res)
		},
	}

	cmd.Flags().StringToStringVar(&meta, "meta", nil, "routing metadata, e.g. --meta preferred_model=code")
	cmd.Flags().BoolVar(&explain, "explain", false, "include per-family rule scores")
	return cmd
}
