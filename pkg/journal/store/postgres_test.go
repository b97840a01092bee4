package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/quarzen/tradebook/pkg/journal/models"
)

// startPostgres spins up a disposable PostgreSQL container and returns a
// store config pointing at it. Gated behind TRADEBOOK_TEST_POSTGRES because
// it needs a Docker daemon.
func startPostgres(t *testing.T) *Config {
	t.Helper()

	if os.Getenv("TRADEBOOK_TEST_POSTGRES") == "" {
		t.Skip("set TRADEBOOK_TEST_POSTGRES=1 to run PostgreSQL store tests (requires Docker)")
	}

	ctx := context.Background()

	// PostgreSQL logs "ready to accept connections" twice during startup
	// (bootstrap and final), so wait for the second occurrence.
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("tradebook_test"),
		postgres.WithUsername("tradebook_test"),
		postgres.WithPassword("tradebook_test"),
		testcontainers.WithWaitStrategyAndDeadline(5*time.Minute,
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return &Config{
		Type: DatabaseTypePostgres,
		Postgres: PostgresConfig{
			Host:     host,
			Port:     port.Int(),
			Database: "tradebook_test",
			User:     "tradebook_test",
			Password: "tradebook_test",
			SSLMode:  "disable",
		},
	}
}

func TestPostgresStore(t *testing.T) {
	cfg := startPostgres(t)
	ctx := context.Background()

	// Migrations run through golang-migrate over the embedded SQL files
	// and must be idempotent.
	require.NoError(t, Migrate(ctx, cfg))
	require.NoError(t, Migrate(ctx, cfg))

	s, err := New(cfg)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Healthcheck(ctx))

	t.Run("UserRoundtrip", func(t *testing.T) {
		user, err := s.CreateUser(ctx, "alice", "alice@example.com", "hunter22")
		require.NoError(t, err)

		got, err := s.ValidateCredentials(ctx, "alice", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = s.CreateUser(ctx, "alice", "", "other")
		assert.ErrorIs(t, err, models.ErrDuplicateUser)
	})

	t.Run("TradeWithMistakes", func(t *testing.T) {
		user, err := s.GetUser(ctx, "alice")
		require.NoError(t, err)

		_, err = s.SeedMistakes(ctx)
		require.NoError(t, err)
		mistake, err := s.GetMistake(ctx, "FOMO trading")
		require.NoError(t, err)

		trade := seedTrade(t, s, user.ID, "AAPL", models.SideBuy,
			time.Now().Add(-24*time.Hour), "100", "110")

		tagged, err := s.SetTradeMistakes(ctx, user.ID, trade.ID, []uint{mistake.ID})
		require.NoError(t, err)
		require.Len(t, tagged.Mistakes, 1)
		assert.Equal(t, "FOMO trading", tagged.Mistakes[0].Name)

		trades, err := s.ListTrades(ctx, user.ID, nil)
		require.NoError(t, err)
		require.Len(t, trades, 1)
		assert.Equal(t, "AAPL", trades[0].Symbol.Ticker)
	})
}
