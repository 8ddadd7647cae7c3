package main

import (
	"context"
	"fmt"
	"hindsight/api"
	"hindsight/internal"
	"hindsight/internal/app"
	"hindsight/internal/logger"
	"hindsight/internal/repository"
	"hindsight/internal/util"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hindsight",
		Short:        "perfect-hindsight single-holding trade optimizer",
		SilenceUsage: true,
	}
	root.AddCommand(runCmd(), ingestCmd(), serveCmd())
	return root
}

func runCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the optimizer over the configured window and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := internal.LoadRunConfig(configPath)
			if err != nil {
				return err
			}

			log := logger.New()
			ctx := context.WithValue(context.Background(), logger.ContextKey, log)

			handler := app.OptimizeHandler{
				PriceRepository: repository.NewPriceRepository(config.PriceFile),
			}
			result, err := handler.RunFromConfig(ctx, *config)
			if err != nil {
				return err
			}

			fmt.Println("Passed verification:", result.Verified)
			fmt.Println()
			fmt.Print(result.Report)

			if !result.Verified {
				return fmt.Errorf("run %s failed verification", result.RunID)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "hindsight.yml", "run config file")
	return cmd
}

func ingestCmd() *cobra.Command {
	var (
		priceFile string
		start     string
		end       string
	)

	cmd := &cobra.Command{
		Use:   "ingest [symbols...]",
		Short: "fetch daily bars for symbols into the price file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := util.ParseDate(start)
			if err != nil {
				return fmt.Errorf("unparseable start date %q", start)
			}
			endDate, err := util.ParseDate(end)
			if err != nil {
				return fmt.Errorf("unparseable end date %q", end)
			}

			priceRepository := repository.NewPriceRepository(priceFile)
			return internal.UpdateStoredPrices(args, startDate, endDate, priceRepository, logger.New())
		},
	}
	cmd.Flags().StringVar(&priceFile, "prices", "daily_prices.json", "price file to update")
	cmd.Flags().StringVar(&start, "start", "", "start date (inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "end date (exclusive)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		priceFile string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the optimizer over http",
		RunE: func(cmd *cobra.Command, args []string) error {
			priceRepository := repository.NewPriceRepository(priceFile)
			handler := api.ApiHandler{
				OptimizeHandler: app.OptimizeHandler{PriceRepository: priceRepository},
				PriceRepository: priceRepository,
			}
			return handler.StartApi(port)
		},
	}
	cmd.Flags().StringVar(&priceFile, "prices", "daily_prices.json", "price file to serve from")
	cmd.Flags().IntVar(&port, "port", 3010, "port to listen on")
	return cmd
}
