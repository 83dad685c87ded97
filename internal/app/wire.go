package app

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/directory"
	"asyncpfs/internal/domain"
	"asyncpfs/internal/observability"
	"asyncpfs/internal/services/identity"
	"asyncpfs/internal/services/prekey"
	"asyncpfs/internal/services/session"
	"asyncpfs/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config    Config
	Suite     crypto.Suite
	Log       *observability.Logger
	Metrics   *observability.Metrics
	Identity  *identity.Service
	Prekeys   *prekey.Service
	Sessions  *session.Service
	Directory *directory.Client // nil when no directory is configured
	HTTP      *http.Client

	closers []io.Closer
}

// NewWire constructs the dependency graph from cfg. passphrase unlocks the
// identity and seals the session store. log may be nil.
func NewWire(cfg Config, passphrase string, log *observability.Logger, opts ...store.Option) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = observability.Nop()
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}
	suite, err := crypto.SuiteByName(cfg.Suite)
	if err != nil {
		return nil, err
	}
	w := &Wire{
		Config:  cfg,
		Suite:   suite,
		Log:     log,
		Metrics: observability.NewMetrics(),
		HTTP:    &http.Client{Timeout: cfg.HTTPTimeout},
	}

	// File-based stores
	identityStore := store.NewIdentityFileStore(cfg.Home, opts...)
	prekeyStore := store.NewPreKeyFileStore(cfg.Home, passphrase, opts...)

	var sessions domain.SessionStore
	switch cfg.SessionStore {
	case StoreBolt:
		db, err := store.OpenBoltSessionStore(cfg.Home, passphrase, opts...)
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, db)
		sessions = db
	default:
		sessions = store.NewSessionFileStore(cfg.Home, passphrase, opts...)
	}

	// Only set the interface when a directory exists; a typed nil would
	// defeat ErrNoDirectory.
	var dc domain.DirectoryClient
	if cfg.DirectoryURL != "" {
		w.Directory = directory.NewClient(cfg.DirectoryURL, w.HTTP)
		dc = w.Directory
	}

	// High-level services
	w.Identity = identity.New(identityStore)
	w.Prekeys = prekey.New(identityStore, prekeyStore)
	w.Sessions = session.New(suite, identityStore, w.Prekeys, sessions, dc,
		session.WithLogger(log), session.WithMetrics(w.Metrics))
	return w, nil
}

// RequireDirectory returns the directory client or an error naming how to
// configure one.
func (w *Wire) RequireDirectory() (*directory.Client, error) {
	if w.Directory == nil {
		return nil, fmt.Errorf("%w: use --directory or ASYNCPFS_DIRECTORY", session.ErrNoDirectory)
	}
	return w.Directory, nil
}

// Close releases stores that hold OS resources.
func (w *Wire) Close() error {
	var errs []error
	for _, c := range w.closers {
		errs = append(errs, c.Close())
	}
	w.closers = nil
	return errors.Join(errs...)
}
