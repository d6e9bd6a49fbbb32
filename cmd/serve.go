package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbourmaud/cabinet/internal/hub"
	"github.com/mbourmaud/cabinet/internal/logger"
	"github.com/mbourmaud/cabinet/internal/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the branding hub server",
	Long: `Start the branding hub server.

The hub provides an HTTP API for:
  - The compiled stylesheet per theme mode (/branding.css?mode=dark)
  - The derived palette and contrast (/branding/palette)
  - Changing a color or clearing the cache
  - Reading and saving the branding settings
  - Real-time apply events via Server-Sent Events (/events)

Examples:
  cabinet serve                 # Start on the configured port (default 8080)
  cabinet serve --port 3000     # Start on a custom port`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Hub server port (overrides server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	store, err := newStore(cfg, b.repo)
	if err != nil {
		return err
	}

	h, err := hub.New(hub.Config{
		Port:    cfg.Server.Port,
		StyleID: cfg.Branding.StyleID,
	}, store, b.repo, logger.Default())
	if err != nil {
		return fmt.Errorf("failed to create hub: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}
		fmt.Println()
		fmt.Printf("%s Shutting down...\n", ui.StyleAmber.Render("⚠️"))
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		h.Stop(shutdownCtx)
	}()

	port := cfg.Server.Port
	base := fmt.Sprintf("http://localhost:%d", port)
	fmt.Print(ui.InfoBox(fmt.Sprintf("🎨 Cabinet hub on port %d", port), []ui.Field{
		{Label: "Settings", Value: b.kind},
		{Label: "Stylesheet", Value: base + "/branding.css"},
		{Label: "Palette", Value: base + "/branding/palette"},
		{Label: "Events", Value: base + "/events"},
		{Label: "Metrics", Value: base + "/metrics"},
	}))
	fmt.Println(ui.StyleDim.Render("Press Ctrl+C to stop"))
	fmt.Println()

	if err := h.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("hub error: %w", err)
	}

	fmt.Printf("%s Hub stopped\n", ui.StyleGreen.Render("✓"))
	return nil
}
