// Package startup orchestrates the tradebook boot sequence: apply pending
// database migrations, then launch the long-running API server. A configurable
// Policy decides whether a migration failure aborts the sequence or merely
// logs a warning.
//
// The sequence is strictly ordered and each step runs exactly once per
// invocation; there are no retries. The unit of failure is the entire
// startup attempt.
package startup

import (
	"context"
	"errors"
	"fmt"

	"github.com/quarzen/tradebook/internal/logger"
	"github.com/quarzen/tradebook/internal/telemetry"
)

// Sentinel errors for the two failure classes the sequencer distinguishes.
var (
	// ErrMigrationFailed wraps step (a) failures.
	ErrMigrationFailed = errors.New("database migration failed")

	// ErrLaunchFailed wraps step (b) failures.
	ErrLaunchFailed = errors.New("server launch failed")
)

// State describes where the sequencer is in its lifecycle.
type State int

const (
	// StateInit is the state before Run is called.
	StateInit State = iota

	// StateMigrationAttempted is entered unconditionally once the
	// migration step has been invoked.
	StateMigrationAttempted

	// StateServerStarted is the terminal state of a successful sequence.
	// Run does not return while the server is serving.
	StateServerStarted

	// StateAborted is the terminal state of a failed sequence.
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateMigrationAttempted:
		return "migration-attempted"
	case StateServerStarted:
		return "server-started"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Migrator applies pending schema migrations. Implementations must be
// idempotent: applying an already-migrated schema is a no-op success.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Launcher starts the request-serving process and blocks until it stops.
// A nil return means the server stopped cleanly (graceful shutdown).
type Launcher interface {
	Launch(ctx context.Context, opts LaunchOptions) error
}

// MigratorFunc adapts a function to the Migrator interface.
type MigratorFunc func(ctx context.Context) error

func (f MigratorFunc) Migrate(ctx context.Context) error { return f(ctx) }

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, opts LaunchOptions) error

func (f LauncherFunc) Launch(ctx context.Context, opts LaunchOptions) error { return f(ctx, opts) }

// LaunchOptions carries the bind contract for the server process.
// Host and Workers are fixed: the server always binds all interfaces and
// runs a single serving process. Port comes verbatim from the PORT
// environment variable; no validation is performed here and a bad value
// surfaces as a launch failure.
type LaunchOptions struct {
	Host    string
	Port    string
	Workers int
}

// DefaultLaunchOptions returns the bind contract for the given port.
func DefaultLaunchOptions(port string) LaunchOptions {
	return LaunchOptions{
		Host:    "0.0.0.0",
		Port:    port,
		Workers: 1,
	}
}

// Sequencer runs the two-step startup sequence under a failure policy.
type Sequencer struct {
	policy   Policy
	migrator Migrator
	launcher Launcher
	opts     LaunchOptions

	state State
}

// New creates a Sequencer. The migrator and launcher are collaborators
// supplied by the caller; the sequencer owns only the ordering and the
// failure policy.
func New(policy Policy, migrator Migrator, launcher Launcher, opts LaunchOptions) *Sequencer {
	return &Sequencer{
		policy:   policy,
		migrator: migrator,
		launcher: launcher,
		opts:     opts,
		state:    StateInit,
	}
}

// State returns the current lifecycle state.
func (s *Sequencer) State() State {
	return s.state
}

// Run executes the startup sequence and blocks while the server serves.
//
// Returns nil when the server stops cleanly, an error wrapping
// ErrMigrationFailed when migrations fail under a strict policy, and an
// error wrapping ErrLaunchFailed when the server fails to start or exits
// abnormally. Callers map any non-nil error to exit status 1.
func (s *Sequencer) Run(ctx context.Context) error {
	ctx, runSpan := telemetry.StartStartupSpan(ctx, "run", s.policy.String())
	defer runSpan.End()

	if s.policy.trace() {
		// Trace mode mirrors `set -x`: force full verbosity and echo steps.
		logger.SetLevel("DEBUG")
		logger.Debug("+ migrate", logger.KeyPolicy, s.policy.String())
	}

	migrateCtx, migrateSpan := telemetry.StartStartupSpan(ctx, "migrate", s.policy.String())
	err := s.migrator.Migrate(migrateCtx)
	s.state = StateMigrationAttempted
	if err != nil {
		telemetry.RecordError(migrateCtx, err)
	}
	migrateSpan.End()

	if err != nil {
		if s.policy.strict() {
			s.state = StateAborted
			if s.policy.trace() {
				logger.Error("Migration failed! Aborting startup.", logger.KeyError, err.Error())
			}
			wrapped := fmt.Errorf("%w: %v", ErrMigrationFailed, err)
			telemetry.RecordError(ctx, wrapped)
			return wrapped
		}
		logger.Warn("Migration failed, starting server anyway",
			logger.KeyPolicy, s.policy.String(),
			logger.KeyError, err.Error())
	}

	if s.policy.trace() {
		logger.Debug("+ serve",
			"host", s.opts.Host,
			logger.KeyPort, s.opts.Port,
			"workers", s.opts.Workers)
	}

	logger.Info("Launching server",
		"host", s.opts.Host,
		logger.KeyPort, s.opts.Port,
		"workers", s.opts.Workers)

	s.state = StateServerStarted
	serveCtx, serveSpan := telemetry.StartStartupSpan(ctx, "serve", s.policy.String())
	defer serveSpan.End()
	if err := s.launcher.Launch(serveCtx, s.opts); err != nil {
		s.state = StateAborted
		if s.policy.trace() {
			logger.Error("Server failed to start! Aborting.", logger.KeyError, err.Error())
		}
		wrapped := fmt.Errorf("%w: %v", ErrLaunchFailed, err)
		telemetry.RecordError(serveCtx, wrapped)
		return wrapped
	}

	return nil
}
