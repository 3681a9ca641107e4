package cmd

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mspro-labs/tapboard/internal/config"
	"mspro-labs/tapboard/internal/metrics"
	"mspro-labs/tapboard/internal/scraper"
	"mspro-labs/tapboard/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API and display client server",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer() {
	// 1. Setup
	appCfg, err := config.GetAppConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	siteCfg, err := config.LoadSiteConfig(appCfg.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load site config: %v", err)
	}

	// 2. Fetcher lives as long as the server
	fetcher, err := scraper.NewFetcher(appCfg.FetchMode, siteCfg)
	if err != nil {
		log.Fatalf("Failed to create fetcher: %v", err)
	}
	defer fetcher.Close()

	m := metrics.New()
	svc := scraper.NewService(fetcher, siteCfg, m)

	srv := server.New(svc, server.Config{
		Addr:      net.JoinHostPort("", appCfg.Port),
		StaticDir: appCfg.StaticDir,
		BeersFile: appCfg.BeersFile,
		Metrics:   m,
	})

	// 3. Start Server
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	// 4. Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("Server error: %v", err)
		}
		return
	case <-sigCh:
	}

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
