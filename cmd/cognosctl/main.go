// Package main implements cognosctl, a command-line client for the Cognos
// content store.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/usestring/cognos-mcp/internal/config"
	"github.com/usestring/cognos-mcp/internal/logging"
	"github.com/usestring/cognos-mcp/pkg/client"
)

var (
	// global flags
	cognosURL    string
	namespace    string
	outputFormat string
	debug        bool
	envFile      string

	// cfg is loaded before every command.
	cfg *config.Config
	// closeLog flushes and closes the log file opened by loadConfig.
	closeLog func() error

	version = "dev"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if closeLog != nil {
		_ = closeLog()
	}
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cognosctl",
	Short: "Browse and manage IBM Cognos Analytics content",
	Long: `cognosctl lists, creates and deletes content store folders and pulls report
data from an IBM Cognos Analytics server.

Every command logs on with COGNOS_USERNAME and COGNOS_PASSWORD, runs, and
logs off. Settings are read from the environment and from a .env file.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cognosURL, "url", "", "Cognos base URL, e.g. https://host/ibmcognos (default: COGNOS_URL)")
	rootCmd.PersistentFlags().StringVar(&namespace, "namespace", "", "CAM namespace (default: COGNOS_NAMESPACE, or discovered)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "Output format: json or yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log every step of the session")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load if present")
}

// loadConfig reads .env and the environment, then applies flag overrides.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg = config.Load()
	if cognosURL != "" {
		cfg.CognosURL = cognosURL
	}
	if namespace != "" {
		cfg.Namespace = namespace
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}

	logCfg := logging.FromConfig(cfg)
	if cfg.Debug {
		logCfg.Level = "debug"
	} else if os.Getenv("LOG_LEVEL") == "" {
		logCfg.Level = "warn"
	}
	if closeLog != nil {
		_ = closeLog()
	}
	cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	closeLog = cleanup

	if _, err := newPrinter(outputFormat); err != nil {
		return err
	}
	if cfg.CognosURL == "" {
		return errors.New("no Cognos URL: pass --url or set COGNOS_URL")
	}
	return nil
}

// withSession logs on to the configured endpoint, runs fn and logs off.
func withSession(ctx context.Context, fn func(c *client.Client) error) error {
	if !cfg.HasCredentials() {
		return errors.New("COGNOS_USERNAME and COGNOS_PASSWORD must be set")
	}

	sessions, err := client.NewSessionManager(
		client.DialHTTP(client.HTTPOptions{
			Namespace:      cfg.Namespace,
			Timeout:        cfg.HTTPClientTimeout,
			IDFromLocation: cfg.IDFromLocation,
		}),
		client.WithInitTimeout(cfg.SessionInitTimeout),
	)
	if err != nil {
		return err
	}
	defer sessions.Close()

	c, err := sessions.GetClient(ctx, cfg.CognosURL, cfg.Debug)
	if err != nil {
		return err
	}

	if _, err := c.Login(ctx, cfg.Username, cfg.Password); err != nil {
		return err
	}
	defer logoff(ctx, c)

	return fn(c)
}

// logoff ends the session even when ctx was cancelled by a signal, bounded
// by the HTTP timeout.
func logoff(ctx context.Context, c *client.Client) {
	timeout := cfg.HTTPClientTimeout
	if timeout <= 0 {
		timeout = client.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if _, ok := c.Logoff(ctx); !ok {
		slog.Warn("logoff failed, the server session will expire on its own")
	}
}
