package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/quarzen/tradebook/internal/logger"
	"github.com/quarzen/tradebook/internal/telemetry"
	"github.com/quarzen/tradebook/pkg/api"
	"github.com/quarzen/tradebook/pkg/config"
	"github.com/quarzen/tradebook/pkg/journal/store"
	"github.com/quarzen/tradebook/pkg/startup"
	"github.com/spf13/cobra"
)

var (
	foreground bool
	pidFile    string
	logFile    string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Tradebook server",
	Long: `Start the Tradebook server with the specified configuration.

On startup, pending database migrations are applied before the API server
begins serving. The startup policy (startup.policy in the config file, or
TRADEBOOK_STARTUP_POLICY) controls what happens when a migration fails:

  strict       abort startup (default)
  tolerant     log a warning and serve anyway
  strict-trace abort startup, with full debug tracing of each step

By default, the server runs in the background (daemon mode). Use --foreground
to run in the foreground for debugging or when managed by a process supervisor.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/tradebook/config.yaml.

Examples:
  # Start in background (default)
  tradebook start

  # Start in foreground
  tradebook start --foreground

  # Start with custom config file
  tradebook start --config /etc/tradebook/config.yaml

  # Start with environment variable overrides
  TRADEBOOK_STARTUP_POLICY=tolerant tradebook start --foreground`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (default: background/daemon mode)")
	startCmd.Flags().StringVar(&pidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/tradebook/tradebook.pid)")
	startCmd.Flags().StringVar(&logFile, "log-file", "", "Path to log file for daemon mode (default: $XDG_STATE_HOME/tradebook/tradebook.log)")
}

func runStart(cmd *cobra.Command, args []string) error {
	// Handle daemon mode (background)
	if !foreground {
		return startDaemon()
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry (if enabled)
	telemetryShutdown, err := telemetry.Init(ctx, cfg.Telemetry.ToTelemetry(Version))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	// Initialize Pyroscope profiling (if enabled)
	profilingShutdown, err := telemetry.InitProfiling(cfg.Telemetry.Profiling.ToProfiling(Version))
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
	}()

	fmt.Println("Tradebook - A self-hosted trading journal")
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("Telemetry disabled")
	}
	if telemetry.IsProfilingEnabled() {
		logger.Info("Profiling enabled", "endpoint", cfg.Telemetry.Profiling.Endpoint, "profile_types", cfg.Telemetry.Profiling.ProfileTypes)
	} else {
		logger.Info("Profiling disabled")
	}

	// Initialize metrics (if enabled)
	metricsServer := config.InitializeMetrics(cfg)

	// Parse the startup failure policy
	policy, err := startup.ParsePolicy(cfg.Startup.Policy)
	if err != nil {
		return fmt.Errorf("invalid startup policy: %w", err)
	}
	logger.Info("Startup policy", logger.KeyPolicy, policy.String())

	// Open the journal store. Schema migration is a separate startup step
	// governed by the policy, so New does not migrate.
	journalStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open journal store: %w", err)
	}
	defer func() {
		if err := journalStore.Close(); err != nil {
			logger.Error("store close error", "error", err)
		}
	}()

	// Create API server
	apiServer, err := api.NewServer(cfg.API, journalStore)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}
	logger.Info("API server configured", logger.KeyPort, cfg.API.Port)

	// Write PID file if specified
	if pidFile != "" {
		if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0644); err != nil {
			return fmt.Errorf("failed to write PID file: %w", err)
		}
		defer func() { _ = os.Remove(pidFile) }()
	}

	// Start metrics server if enabled
	if metricsServer != nil {
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				logger.Error("Metrics server error", "error", err)
			}
		}()
	}

	// Run the startup sequence in background: migrate, then serve
	sequencer := startup.New(
		policy,
		startup.MigratorFunc(func(ctx context.Context) error {
			return store.Migrate(ctx, &cfg.Database)
		}),
		startup.LauncherFunc(func(ctx context.Context, opts startup.LaunchOptions) error {
			bootstrapStore(ctx, journalStore, cfg)
			return apiServer.Start(ctx)
		}),
		startup.DefaultLaunchOptions(cfg.API.Port),
	)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- sequencer.Run(ctx)
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		// Wait for server to shut down gracefully
		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}

// bootstrapStore seeds the mistake catalog and ensures the admin user exists.
// Runs after migrations, right before the server starts serving. Failures are
// logged but never abort the launch: under the tolerant policy the schema may
// legitimately be missing.
func bootstrapStore(ctx context.Context, journalStore store.Store, cfg *config.Config) {
	seeded, err := journalStore.SeedMistakes(ctx)
	if err != nil {
		logger.Warn("Failed to seed mistake catalog", "error", err)
	} else if seeded > 0 {
		logger.Info("Mistake catalog seeded", "count", seeded)
	}

	adminPassword, err := journalStore.EnsureAdminUser(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.PasswordHash)
	if err != nil {
		logger.Warn("Failed to ensure admin user", "error", err)
		return
	}
	if adminPassword != "" {
		logger.Info("Admin user created", "username", cfg.Admin.Username)
		fmt.Printf("\n*** IMPORTANT: Admin user created with password: %s ***\n", adminPassword)
		fmt.Println("Please save this password. It will not be shown again.")
		fmt.Println()
	}
}

// startDaemon starts the server as a background daemon process.
func startDaemon() error {
	stateDir := GetDefaultStateDir()

	// Create state directory if it doesn't exist
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Set default PID file if not specified
	pidPath := pidFile
	if pidPath == "" {
		pidPath = filepath.Join(stateDir, "tradebook.pid")
	}

	// Check if already running
	if _, err := os.Stat(pidPath); err == nil {
		pidData, err := os.ReadFile(pidPath)
		if err == nil {
			var pid int
			if _, err := fmt.Sscanf(string(pidData), "%d", &pid); err == nil {
				// Check if process is still running
				if process, err := os.FindProcess(pid); err == nil {
					if err := process.Signal(syscall.Signal(0)); err == nil {
						return fmt.Errorf("Tradebook is already running (PID %d)\nUse 'tradebook stop' to stop the running instance", pid)
					}
				}
			}
		}
		// Stale PID file, remove it
		_ = os.Remove(pidPath)
	}

	// Set default log file if not specified
	logPath := logFile
	if logPath == "" {
		logPath = filepath.Join(stateDir, "tradebook.log")
	}

	// Get the executable path
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	// Build arguments for the daemon process
	daemonArgs := []string{"start", "--foreground", "--pid-file", pidPath}
	if GetConfigFile() != "" {
		daemonArgs = append(daemonArgs, "--config", GetConfigFile())
	}

	// Create the daemon process
	cmd := exec.Command(executable, daemonArgs...)

	// Open log file for stdout/stderr
	logFileHandle, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	cmd.Stdout = logFileHandle
	cmd.Stderr = logFileHandle

	// Detach from parent process
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	// Start the daemon
	if err := cmd.Start(); err != nil {
		_ = logFileHandle.Close()
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	_ = logFileHandle.Close()

	fmt.Printf("Tradebook started in background (PID %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", pidPath)
	fmt.Printf("  Log file: %s\n", logPath)
	fmt.Println("\nUse 'tradebook stop' to stop the server")
	fmt.Println("Use 'tradebook status' to check server status")

	return nil
}
