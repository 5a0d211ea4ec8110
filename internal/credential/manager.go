package credential

import (
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/suncar110/paycore/internal/config"
	"github.com/suncar110/paycore/internal/observability"
)

// SnapshotProvider is the read side of the configuration store. Snapshots
// are immutable once published; the manager re-reads on every resolution
// rather than subscribing to updates.
type SnapshotProvider interface {
	Snapshot() *config.Snapshot
}

// Manager composes indexing, selection and validation into the single
// resolution entry point. One instance is constructed by the composition
// root and shared by reference; it holds no state beyond a derived-account
// cache keyed by snapshot version. Safe for concurrent use.
type Manager struct {
	store   SnapshotProvider
	logger  *slog.Logger
	metrics *observability.MetricsCollector

	cache atomic.Pointer[accountIndex]
}

// accountIndex is the derived account map for one snapshot version.
type accountIndex struct {
	version   uint64
	accounts  map[string]*AccountRecord
	defaultID string
}

// ManagerOption configures optional Manager collaborators.
type ManagerOption func(*Manager)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = logger }
}

// WithMetrics enables resolution metrics.
func WithMetrics(metrics *observability.MetricsCollector) ManagerOption {
	return func(m *Manager) { m.metrics = metrics }
}

// NewManager creates a Manager reading from the given store.
func NewManager(store SnapshotProvider, opts ...ManagerOption) *Manager {
	m := &Manager{store: store}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m
}

// Resolve selects and validates one account against the current snapshot.
// An empty identity requests the default account. Returns
// *MissingCredentialError when no account can be selected and
// *InvalidCredentialError when the selected record is malformed; never
// falls back from a failed identity lookup to the default account.
func (m *Manager) Resolve(identity string) (Credential, error) {
	start := time.Now()

	idx := m.index(m.store.Snapshot())

	accountID, err := selectAccount(idx.accounts, identity, idx.defaultID)
	if err != nil {
		m.observe("missing", "", time.Since(start))
		m.logger.Debug("no account selected",
			slog.String("identity", identity),
			slog.Uint64("snapshot_version", idx.version))
		return nil, err
	}

	cred, err := BuildCredential(idx.accounts[accountID])
	if err != nil {
		m.observe("invalid", "", time.Since(start))
		m.logger.Debug("account record rejected",
			slog.String("account", accountID),
			slog.String("error", err.Error()))
		return nil, err
	}

	m.observe("ok", string(cred.Kind()), time.Since(start))
	m.logger.Debug("credential resolved",
		slog.String("account", accountID),
		slog.String("kind", string(cred.Kind())))
	return cred, nil
}

// index returns the derived account map for the snapshot, re-deriving
// when the cached entry belongs to a stale version. A lost CAS race is
// benign: every published entry is consistent with its own version, and
// the local copy is used either way.
func (m *Manager) index(snap *config.Snapshot) *accountIndex {
	cached := m.cache.Load()
	if cached != nil && cached.version == snap.Version {
		return cached
	}
	fresh := &accountIndex{
		version:   snap.Version,
		accounts:  indexAccounts(snap.Values),
		defaultID: snap.Values[DefaultAccountKey],
	}
	m.cache.CompareAndSwap(cached, fresh)
	return fresh
}

func (m *Manager) observe(outcome, kind string, elapsed time.Duration) {
	if m.metrics == nil {
		return
	}
	m.metrics.ResolutionsTotal.WithLabelValues(outcome, kind).Inc()
	m.metrics.ResolutionDuration.Observe(elapsed.Seconds())
}
