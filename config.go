package resquery

import (
	"errors"
	"log/slog"
	"os"

	"github.com/resgraph/resquery-go/auth"
	"github.com/resgraph/resquery-go/catalog"
	"github.com/resgraph/resquery-go/exec"
)

// InterpreterConfig contains configuration for the search interpreter.
type InterpreterConfig struct {
	// Catalog resolves search tokens to physical columns and relationships.
	// REQUIRED: MUST NOT be nil.
	Catalog catalog.Catalog

	// Executor dispatches compiled queries to the resource store.
	// REQUIRED: MUST NOT be nil.
	Executor exec.Executor

	// Auth validates bearer tokens for the Authenticate helper.
	// OPTIONAL: If nil, Authenticate rejects every token.
	Auth auth.Authenticator

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, uses Info level.
	// If Logger is also provided, LogLevel is ignored (use pre-configured logger).
	LogLevel *slog.Level

	// MaxResultCount is the page size for dispatched searches.
	// OPTIONAL: If 0, defaults to 100.
	MaxResultCount int
}

// Standard errors returned by the resquery package.
var (
	// ErrInvalidConfig indicates InterpreterConfig validation failed.
	ErrInvalidConfig = errors.New("invalid interpreter config")

	// ErrUnauthorized indicates authentication failed.
	ErrUnauthorized = errors.New("unauthorized")
)

const defaultMaxResultCount = 100

func validateConfig(cfg *InterpreterConfig) error {
	if cfg.Catalog == nil {
		return errors.Join(ErrInvalidConfig, errors.New("catalog is required"))
	}
	if cfg.Executor == nil {
		return errors.Join(ErrInvalidConfig, errors.New("executor is required"))
	}
	if cfg.MaxResultCount < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("max result count cannot be negative"))
	}
	return nil
}

func configLogger(cfg *InterpreterConfig) *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	if cfg.LogLevel != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *cfg.LogLevel}))
	}
	return slog.Default()
}
