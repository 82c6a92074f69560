package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhrezaei/newsbrief/config"
	"github.com/mhrezaei/newsbrief/internal/agent"
	"github.com/mhrezaei/newsbrief/internal/server"
	"github.com/mhrezaei/newsbrief/provider"
	"github.com/mhrezaei/newsbrief/tools/web_fetch"
	"github.com/mhrezaei/newsbrief/tools/web_search"
)

func main() {
	var cfgPath string

	root := &cobra.Command{Use: "newsbrief", Short: "News TL;DR agent"}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			return server.Run(cfg)
		},
	}

	var budget, count int
	run := &cobra.Command{
		Use:   "run [query]",
		Short: "Run one digest and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			query := ""
			for i, a := range args {
				if i > 0 {
					query += " "
				}
				query += a
			}

			controller, err := buildController(cfg)
			if err != nil {
				return err
			}
			res := controller.Run(context.Background(), agent.RunInput{
				Query:        query,
				SearchBudget: budget,
				SummaryCount: count,
			})
			if res.TerminalState == agent.StateFailed {
				fmt.Fprintln(os.Stderr, "run failed:", res.Error)
				os.Exit(1)
			}
			fmt.Print(res.Digest)
			return nil
		},
	}
	run.Flags().IntVar(&budget, "budget", 0, "search budget (0 = configured default)")
	run.Flags().IntVar(&count, "count", 0, "number of summaries (0 = configured default)")

	root.AddCommand(serve, run)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildController(cfg *config.Config) (*agent.Controller, error) {
	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return nil, err
	}
	searcher, err := web_search.NewWebSearcher(cfg.Search)
	if err != nil {
		return nil, err
	}
	fetcher, err := web_fetch.NewWebFetcher(cfg.Fetch)
	if err != nil {
		return nil, err
	}
	return agent.NewController(llm, searcher, fetcher, cfg), nil
}
