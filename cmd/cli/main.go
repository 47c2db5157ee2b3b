package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"clientintel/cmd"
	"clientintel/internal/calculator"
	"clientintel/internal/domain"
	"clientintel/internal/util"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clientintel",
		Short: "Client intelligence engine over the advisor dashboard dataset",
	}

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run a query through the intent classifier and result aggregator",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")

			fmt.Printf("intents: %v\n", handler.SearchService.Classifier.Classify(query))
			results, err := handler.SearchService.Search(context.Background(), query)
			if err != nil {
				return err
			}
			util.Pprint(results)
			return nil
		},
	}

	var insightsClientID string
	var insightsTab string
	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate insight cards for a client and tab",
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}

			client := handler.Session.SelectedClient()
			if insightsClientID != "" {
				found, ok := handler.Dataset.ClientByID(insightsClientID)
				if !ok {
					return fmt.Errorf("unknown client %s", insightsClientID)
				}
				client = found
			}

			holdings := calculator.DeriveHoldings(client, handler.Dataset.HoldingsFor(client.ID))
			out, err := handler.InsightService.Generate(holdings, client, domain.Tab(insightsTab), handler.Session.ContextMode())
			if err != nil {
				return err
			}
			util.Pprint(out)
			return nil
		},
	}
	insightsCmd.Flags().StringVar(&insightsClientID, "client", "", "client id (defaults to first client)")
	insightsCmd.Flags().StringVar(&insightsTab, "tab", string(domain.Tab_Portfolio), "active tab")

	digestCmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the daily notification digest",
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			util.Pprint(handler.NotificationService.DailyDigest())
			return nil
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			return handler.StartApi(3009)
		},
	}

	rootCmd.AddCommand(searchCmd, insightsCmd, digestCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
