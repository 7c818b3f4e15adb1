// cmd/sudoku/cmd_serve.go
//
// HTTP API mode. Opens sqlite, picks the session store backend, warms the
// puzzle pool, and serves until killed.

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/numgrid/sudoku/internal/db"
	"github.com/numgrid/sudoku/internal/httpserver"
	"github.com/numgrid/sudoku/internal/pool"
	"github.com/numgrid/sudoku/internal/store"
)

var (
	servePort     string
	servePoolSize int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sudoku API server",
	Long: `Serves the JSON API for games, accounts, stats, and the daily
challenge. Configuration comes from the environment (PORT, DB_PATH,
STORE_BACKEND, JWT_SECRET, DAILY_SALT); a .env file is read if present.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default $PORT, then 5175)")
	serveCmd.Flags().IntVar(&servePoolSize, "pool", 4, "puzzles buffered per difficulty")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	conn, err := db.Open(getEnv("DB_PATH", "data/sudoku.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer conn.Close()
	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	st, err := openStore()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}
	if c, ok := st.(io.Closer); ok {
		defer c.Close()
	}

	pl := pool.New(servePoolSize)
	pl.Start(context.Background())
	defer pl.Stop()

	srv := httpserver.New(st, conn, pl)
	port := servePort
	if port == "" {
		port = getEnv("PORT", "5175")
	}
	log.Info().Str("port", port).Msg("starting sudoku-server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openStore picks the session backend. Memory is the default; badger keeps
// sessions on disk so games survive a restart.
func openStore() (store.Store, error) {
	switch getEnv("STORE_BACKEND", "memory") {
	case "badger":
		return store.NewBadgerStore(getEnv("BADGER_PATH", "data/sessions"))
	default:
		return store.NewMemoryStore(), nil
	}
}
