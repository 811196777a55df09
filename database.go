package hyperfind

import (
	"log/slog"

	"github.com/poiesic/hyperfind/fuzzy"
	"github.com/poiesic/hyperfind/ingest"
	"github.com/poiesic/hyperfind/storage"
	"github.com/poiesic/hyperfind/storage/badger"
)

// Database bundles a badger-backed atom store with constructors for the
// loaders and matchers that operate over it.
type Database struct {
	backend  *badger.Backend
	atomRepo *badger.AtomRepository
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
}

// WithInMemory keeps the corpus entirely in memory, ignoring the file path.
// Useful for tests and scratch corpora.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create atom repository
	atomRepo, err := badger.NewAtomRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:  backend,
		atomRepo: atomRepo,
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close repositories before the backend
	if err := db.atomRepo.Close(); err != nil {
		db.logger.Error("error closing atom repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) AtomStore() storage.AtomStore {
	return db.atomRepo
}

func (db *Database) NewMatcher(explorer fuzzy.Explorer, opts ...fuzzy.Option) (*fuzzy.Matcher, error) {
	return fuzzy.NewMatcher(db.atomRepo, explorer, opts...)
}

func (db *Database) NewLoader(opts ...ingest.Option) (*ingest.Loader, error) {
	return ingest.NewLoader(db.atomRepo, opts...)
}
