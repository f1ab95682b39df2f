package main

import (
	"ShopScraper/internal/app"
	"ShopScraper/internal/models"
	"ShopScraper/internal/pager"
	"ShopScraper/internal/server"
	"ShopScraper/pkg/config"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	listPage int
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:   "shopscraper",
		Short: "Search eBay and browse the stored results page by page",
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yml", "config file path")

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadApp reads .env and the config file, then builds the application.
func loadApp() (*app.App, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN: reading .env: %v", err)
	}
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [term...]",
		Short: "Fetch eBay results for term and replace the stored listings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp()
			if err != nil {
				return err
			}
			defer application.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			n, err := application.Search(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %d listings.\n", n)

			view, err := application.View(ctx, pager.NewState())
			if err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the stored listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp()
			if err != nil {
				return err
			}
			defer application.Close()

			_, view, err := application.Jump(cmd.Context(), pager.NewState(), listPage)
			if err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), view)
			return nil
		},
	}
	cmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number (clamped to the available pages)")
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp()
			if err != nil {
				return err
			}
			defer application.Close()
			return server.Start(application, application.Config.Server)
		},
	}
}

func printView(w io.Writer, view models.PageView) {
	if len(view.Listings) == 0 {
		fmt.Fprintln(w, "No listings stored.")
	}
	for _, l := range view.Listings {
		fmt.Fprintf(w, "%s\n  %s\n  %s\n  %s\n", l.Title, l.Price, l.Link, l.ImageURL)
	}
	fmt.Fprintf(w, "Page %d of %d\n", view.PageNumber, view.TotalPages)
}
