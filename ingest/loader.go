package ingest

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/hyperfind/core"
	"github.com/poiesic/hyperfind/storage"
)

// DefaultBatchSize is the number of atoms interned per worker submission.
const DefaultBatchSize = 256

// Loader bulk-loads atoms into a store, interning batches on a worker pool.
type Loader struct {
	store     storage.AtomStore
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the worker pool size for concurrent interning.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if l.pool != nil {
			l.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithBatchSize sets how many atoms are interned per worker submission.
// Values below 1 are clamped to 1.
func WithBatchSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		l.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a new bulk loader over the given store.
func NewLoader(store storage.AtomStore, opts ...Option) (*Loader, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		store:     store,
		pool:      pool,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(l); optErr != nil {
			l.Release()
			return nil, optErr
		}
	}

	return l, nil
}

// LoadAtoms submits already-built atoms for interning. Interning happens
// asynchronously; failures are logged, not returned. Call Wait to drain.
func (l *Loader) LoadAtoms(ctx context.Context, atoms ...*core.Atom) error {
	for start := 0; start < len(atoms); start += l.batchSize {
		end := min(start+l.batchSize, len(atoms))
		if err := l.submit(ctx, atoms[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// LoadReader parses a stream of s-expression atoms and submits them for
// interning. It returns the number of atoms parsed. A parse error stops the
// load at the offending expression; atoms parsed before it are still
// submitted.
func (l *Loader) LoadReader(ctx context.Context, src io.Reader) (int, error) {
	reader := NewReader(src)

	var (
		parsed int
		batch  []*core.Atom
	)
	for {
		atom, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.flush(ctx, batch)
			return parsed, err
		}

		parsed++
		batch = append(batch, atom)
		if len(batch) >= l.batchSize {
			if err := l.submit(ctx, batch); err != nil {
				return parsed, err
			}
			batch = nil
		}
	}

	if err := l.flush(ctx, batch); err != nil {
		return parsed, err
	}
	return parsed, nil
}

func (l *Loader) flush(ctx context.Context, batch []*core.Atom) error {
	if len(batch) == 0 {
		return nil
	}
	return l.submit(ctx, batch)
}

func (l *Loader) submit(ctx context.Context, batch []*core.Atom) error {
	atoms := batch
	l.wg.Add(1)
	err := l.pool.Submit(func() {
		defer l.wg.Done()
		if _, err := l.store.AddAtoms(ctx, atoms...); err != nil {
			l.logger.Error("error interning atom batch",
				"batchSize", len(atoms), "err", err)
			return
		}
		l.logger.Debug("interned atom batch", "batchSize", len(atoms))
	})
	if err != nil {
		l.wg.Done()
		return err
	}
	return nil
}

// Wait blocks until every submitted batch has been interned.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Release waits for in-flight batches and releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	l.wg.Wait()
	if l.pool != nil {
		l.pool.Release()
	}
}
