package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/go-tangra/go-tangra-hwscore/cmd/hwscore/assets"
	"github.com/go-tangra/go-tangra-hwscore/internal/codec"
	"github.com/go-tangra/go-tangra-hwscore/internal/collector"
	"github.com/go-tangra/go-tangra-hwscore/internal/config"
	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/inventory"
	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
	"github.com/go-tangra/go-tangra-hwscore/internal/server"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
	"github.com/go-tangra/go-tangra-hwscore/internal/winsvc"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config
)

const serviceName = "HardwareScore"

var rootCmd = &cobra.Command{
	Use:   "hwscore",
	Short: "hwscore - scored hardware inventory of the local machine",
	Long: `hwscore enumerates the hardware of this machine (CPU, GPU, memory, disks,
motherboard, monitors, network, sound, peripherals), rates the performance
relevant parts and prints the result.

Run 'hwscore serve' to expose the inventory over gRPC and HTTP.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hwscore %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC and HTTP inventory daemon",
	RunE:  runServe,
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage Windows service installation",
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install as a Windows service",
	RunE:  runServiceInstall,
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the Windows service",
	RunE:  runServiceUninstall,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./hwscore.yaml or ./configs/hwscore.yaml)")
	pf.StringP("output", "o", "", "output format: json, yaml or text")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.Duration("timeout", 0, "per-probe deadline (default 30s)")
	pf.String("database", "", "SQLite history path (default hwscore.db)")

	serveCmd.Flags().String("listen", "", "gRPC listen address (default :9650)")
	serveCmd.Flags().String("http-listen", "", "HTTP listen address (default :9651)")
	serveCmd.Flags().String("client-secret", "", "secret for gRPC clients (empty = no auth)")
	serveCmd.Flags().String("api-secret", "", "secret for REST API clients (empty = no auth)")

	serviceCmd.AddCommand(serviceInstallCmd)
	serviceCmd.AddCommand(serviceUninstallCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(serviceCmd)
	addProbeCommands(rootCmd)
	addHistoryCommands(rootCmd)
	addRemoteCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.ErrorWithCode(appErr).Msg("hwscore failed")
		} else {
			logger.Error().Err(err).Msg("hwscore failed")
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides before
// any command runs.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"output":        &c.Output,
		"log-level":     &c.LogLevel,
		"database":      &c.DatabasePath,
		"listen":        &c.Listen,
		"http-listen":   &c.HTTPListen,
		"client-secret": &c.ClientSecret,
		"api-secret":    &c.ApiSecret,
	} {
		if flags.Lookup(name) == nil {
			continue
		}
		if v, _ := flags.GetString(name); v != "" {
			*dst = v
		}
	}
	if d, _ := flags.GetDuration("timeout"); d > 0 {
		c.ProbeTimeout = d
	}

	if err := c.Validate(); err != nil {
		return err
	}
	if err := logger.Init(c.LogLevel, winsvc.IsWindowsService()); err != nil {
		return err
	}

	cfg = c
	return nil
}

func newEngine() *inventory.Engine {
	return inventory.NewEngine(
		collector.New(source.DefaultFactory()),
		inventory.WithTimeout(cfg.ProbeTimeout),
	)
}

// emit writes v to stdout in the configured format.
func emit(v any) error {
	f, err := codec.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	return codec.Encode(os.Stdout, f, v)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runServe(_ *cobra.Command, _ []string) error {
	engine := newEngine()
	usage := source.NewUsageMonitor(source.DefaultFactory().NewFast())

	run := func(ctx context.Context) error {
		return server.Run(ctx, cfg, engine, usage, assets.OpenApiData)
	}

	if winsvc.IsWindowsService() {
		winsvc.SetupEventLog(serviceName)
		return winsvc.RunService(serviceName, run)
	}

	ctx, stop := signalContext()
	defer stop()

	return run(ctx)
}

func runServiceInstall(_ *cobra.Command, _ []string) error {
	exePath, err := winsvc.ExePath()
	if err != nil {
		return err
	}

	svcArgs := []string{"serve"}
	if cfgFile != "" {
		svcArgs = append(svcArgs, "--config", cfgFile)
	}

	if err := winsvc.Install(
		serviceName,
		"Hardware Score",
		"Serves the scored hardware inventory of this machine over gRPC and HTTP.",
		exePath,
		svcArgs,
	); err != nil {
		return err
	}

	logger.Info().Str("service", serviceName).Msg("Service installed")
	return nil
}

func runServiceUninstall(_ *cobra.Command, _ []string) error {
	if err := winsvc.Uninstall(serviceName); err != nil {
		return err
	}
	logger.Info().Str("service", serviceName).Msg("Service uninstalled")
	return nil
}
