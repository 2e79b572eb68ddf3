// Package cli implements the interactive REPL over the diary services. It
// is a thin exercise surface: all real behavior lives in
// internal/services.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/tracediary/internal/blobstore"
	"github.com/dmitrijs2005/tracediary/internal/config"
	"github.com/dmitrijs2005/tracediary/internal/keyringx"
	"github.com/dmitrijs2005/tracediary/internal/logging"
	"github.com/dmitrijs2005/tracediary/internal/services"
	"github.com/dmitrijs2005/tracediary/internal/storage"
)

type App struct {
	config       *config.Config
	db           *sql.DB
	cache        keyringx.Cache
	authService  services.AuthService
	diaryService services.DiaryService
	reader       *bufio.Reader
	out          io.Writer
	cacheWarned  bool
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	dbPath := c.ResolveDatabasePath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	cache := keyringx.NewOSCache(c.KeyringService)
	blobs := blobstore.New(c.DataDir)

	return &App{
		config:       c,
		db:           db,
		cache:        cache,
		authService:  services.NewAuthService(db, cache, logger),
		diaryService: services.NewDiaryService(db, cache, blobs, logger),
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.db.Close() }()
	a.Root(ctx)
}

// isUnlocked reports whether a master key is currently cached. A secret
// store failure counts as locked, but is reported once instead of being
// silently folded into the locked state.
func (a *App) isUnlocked() bool {
	key, err := a.cache.Load()
	if err != nil {
		if !a.cacheWarned {
			fmt.Fprintln(a.out, "Warning: cannot read secret store:", err)
			a.cacheWarned = true
		}
		return false
	}
	return key != nil
}
