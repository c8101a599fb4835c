package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"vibeandbuild/internal/assets"
	"vibeandbuild/internal/capture"
	"vibeandbuild/internal/config"
	"vibeandbuild/internal/fileutil"
	"vibeandbuild/internal/logging"
	"vibeandbuild/internal/store"
)

// Daemon ties the content stores, asset ingestor, and capture service to the
// HTTP API server and enforces single-instance execution via a file lock.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	stores   *store.Stores
	ingestor *assets.Ingestor
	captures *capture.Service
	backend  string

	lockPath string
	lock     *flock.Flock

	api     *apiServer
	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running        bool                `json:"running"`
	PID            int                 `json:"pid"`
	LockFilePath   string              `json:"lock_file_path"`
	DataDir        string              `json:"data_dir"`
	PublicDir      string              `json:"public_dir"`
	CaptureBackend string              `json:"capture_backend"`
	Projects       int                 `json:"projects"`
	Experiments    int                 `json:"experiments"`
	Ideas          int                 `json:"ideas"`
	Disk           *fileutil.DiskUsage `json:"disk,omitempty"`
}

// New constructs a daemon with initialized dependencies. captureBackend is a
// short label ("firestore" or "sqlite") surfaced in status output.
func New(cfg *config.Config, stores *store.Stores, captures *capture.Service, captureBackend string, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || stores == nil {
		return nil, errors.New("daemon requires config and stores")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "vibed.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		stores:   stores,
		ingestor: assets.NewIngestor(cfg.Paths.PublicDir),
		captures: captures,
		backend:  captureBackend,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the daemon lock and brings up the API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another vibed instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	if err := d.api.start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		d.cancel = nil
		return fmt.Errorf("start api server: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("vibed started", logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts the API server down and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("vibed stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.captures != nil {
		return d.captures.Close()
	}
	return nil
}

// Addr reports the bound listener address once Start has succeeded.
func (d *Daemon) Addr() string {
	return d.api.addr()
}

// Status summarizes the daemon's view of the content it serves.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:        d.running.Load(),
		PID:            os.Getpid(),
		LockFilePath:   d.lockPath,
		DataDir:        d.cfg.Paths.DataDir,
		PublicDir:      d.cfg.Paths.PublicDir,
		CaptureBackend: d.backend,
	}
	if projects, err := d.stores.Projects.Load(ctx); err == nil {
		status.Projects = len(projects)
	}
	if experiments, err := d.stores.Experiments.Load(ctx); err == nil {
		status.Experiments = len(experiments)
	}
	if ideas, err := d.stores.Ideas.Load(ctx); err == nil {
		status.Ideas = len(ideas)
	}
	if usage, err := fileutil.Usage(d.cfg.Paths.PublicDir); err == nil {
		status.Disk = &usage
	}
	return status
}
