package manager

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"fincheck/docmatrix/pkg/catalog"
	"fincheck/docmatrix/pkg/config"
	"fincheck/docmatrix/pkg/telemetry/metrics"
)

// Manager holds the active catalog and swaps it atomically on reload.
type Manager struct {
	cfg       config.CatalogConfig
	logger    *slog.Logger
	collector *metrics.Collector

	mu       sync.RWMutex
	current  *catalog.Catalog
	version  string
	loadTime time.Time

	watcher *fileWatcher
	cron    *cron.Cron
}

// New creates a catalog manager. The collector may be nil when metrics
// are disabled.
func New(cfg config.CatalogConfig, logger *slog.Logger, collector *metrics.Collector) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{cfg: cfg, logger: logger, collector: collector}
}

// Load reads the backing files, validates them and swaps the new catalog
// in. On failure the previously loaded catalog stays active.
func (m *Manager) Load() error {
	rules, err := os.ReadFile(m.cfg.RulesPath)
	if err != nil {
		m.recordReload(false, 0)
		return fmt.Errorf("failed to read rule matrix %q: %w", m.cfg.RulesPath, err)
	}
	types, err := os.ReadFile(m.cfg.TypesPath)
	if err != nil {
		m.recordReload(false, 0)
		return fmt.Errorf("failed to read document types %q: %w", m.cfg.TypesPath, err)
	}

	var normas []byte
	if m.cfg.NormasPath != "" {
		normas, err = os.ReadFile(m.cfg.NormasPath)
		if os.IsNotExist(err) {
			// The norma table is optional reference data.
			m.logger.Warn("norma file not found, continuing without it", "path", m.cfg.NormasPath)
			normas = nil
		} else if err != nil {
			m.recordReload(false, 0)
			return fmt.Errorf("failed to read normas %q: %w", m.cfg.NormasPath, err)
		}
	}

	cat, err := catalog.Load(rules, types, normas)
	if err != nil {
		m.recordReload(false, 0)
		return err
	}

	sum := sha256.New()
	sum.Write(rules)
	sum.Write(types)
	sum.Write(normas)
	version := hex.EncodeToString(sum.Sum(nil))[:12]

	m.mu.Lock()
	m.current = cat
	m.version = version
	m.loadTime = time.Now()
	m.mu.Unlock()

	m.recordReload(true, cat.Len())
	m.logger.Info("catalog loaded",
		"documents", cat.Len(),
		"version", version,
	)
	return nil
}

// Current returns the active catalog. It is nil until the first
// successful Load.
func (m *Manager) Current() *catalog.Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Version returns a content hash identifying the active catalog.
func (m *Manager) Version() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

// LoadTime returns when the active catalog was loaded.
func (m *Manager) LoadTime() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadTime
}

// Start launches the configured reload triggers: the file watcher and the
// cron refresh schedule. It returns immediately; triggers stop when the
// context is cancelled.
func (m *Manager) Start(ctx context.Context) error {
	if m.cfg.Watch {
		w, err := newFileWatcher(m.paths(), m.logger, m.reload)
		if err != nil {
			return fmt.Errorf("failed to start catalog watcher: %w", err)
		}
		m.watcher = w
		go w.run(ctx)
	}

	if m.cfg.RefreshSchedule != "" {
		c := cron.New()
		_, err := c.AddFunc(m.cfg.RefreshSchedule, m.reload)
		if err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", m.cfg.RefreshSchedule, err)
		}
		m.cron = c
		c.Start()
		go func() {
			<-ctx.Done()
			c.Stop()
		}()
		m.logger.Info("catalog refresh scheduled", "schedule", m.cfg.RefreshSchedule)
	}

	return nil
}

// reload is the shared trigger callback. Reload failures are logged, not
// fatal: the previous catalog stays active.
func (m *Manager) reload() {
	if err := m.Load(); err != nil {
		m.logger.Error("catalog reload failed, keeping previous catalog", "error", err)
	}
}

// paths returns the configured backing files, skipping empty entries.
func (m *Manager) paths() []string {
	paths := []string{m.cfg.RulesPath, m.cfg.TypesPath}
	if m.cfg.NormasPath != "" {
		paths = append(paths, m.cfg.NormasPath)
	}
	return paths
}

func (m *Manager) recordReload(success bool, documents int) {
	if m.collector != nil {
		m.collector.RecordReload(success, documents)
	}
}
