// Package config owns the flat configuration namespace the SDK resolves
// account credentials and connection settings from. A Store loads a
// Java-style .properties file, a YAML file (flattened to dotted keys), or
// an explicit map, overlays PAYCORE_-prefixed environment variables, and
// publishes immutable versioned snapshots. Reloading publishes a new
// snapshot; readers always ask for the current one.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

// Well-known connection setting keys. The dotted prefixes are not
// recognized account field names, so these never collide with account
// records.
const (
	KeyEndpoint          = "service.EndPoint"
	KeyTokenEndpoint     = "oauth.EndPoint"
	KeyClientID          = "ClientID"
	KeyClientSecret      = "ClientSecret"
	KeyConnectionTimeout = "http.ConnectionTimeOut"
	KeyRetry             = "http.Retry"
)

// EnvPrefix marks environment variables overlaid onto every snapshot.
// After the prefix is stripped, "__" folds to "." and the rest is taken
// verbatim (field names are case-sensitive, account ids may contain "_").
const EnvPrefix = "PAYCORE_"

// Snapshot is one immutable published configuration state. Version
// increments on every load so derived caches can detect staleness.
type Snapshot struct {
	Version uint64
	Values  map[string]string
}

// Get returns the value for key, or "" when absent.
func (s *Snapshot) Get(key string) string { return s.Values[key] }

// GetDefault returns the value for key, or def when absent or empty.
func (s *Snapshot) GetDefault(key, def string) string {
	if v := s.Values[key]; v != "" {
		return v
	}
	return def
}

// Int returns the value for key parsed as an integer, or def when absent
// or malformed.
func (s *Snapshot) Int(key string, def int) int {
	v := s.Values[key]
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Seconds returns the value for key interpreted as a second count, or def
// when absent or malformed.
func (s *Snapshot) Seconds(key string, def time.Duration) time.Duration {
	v := s.Values[key]
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

// Store owns the current snapshot. Loads are serialized; Snapshot is
// lock-free and safe for concurrent readers.
type Store struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex // serializes Reload/Replace
	version atomic.Uint64
	snap    atomic.Pointer[Snapshot]
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the structured logger used by Reload and Watch.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// NewStore loads the file at path and publishes the first snapshot.
// The format is chosen by extension: .yml/.yaml is parsed as YAML and
// flattened to dotted keys, anything else as a .properties file.
func NewStore(path string, opts ...StoreOption) (*Store, error) {
	s := newStore(path, opts)
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStoreFromMap publishes an explicit key set, without a backing file.
// Reload re-applies only the environment overlay.
func NewStoreFromMap(values map[string]string, opts ...StoreOption) *Store {
	s := newStore("", opts)
	s.Replace(values)
	return s
}

func newStore(path string, opts []StoreOption) *Store {
	s := &Store{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current snapshot. Never nil after construction.
func (s *Store) Snapshot() *Snapshot { return s.snap.Load() }

// Reload re-reads the backing file and atomically publishes a new
// snapshot. The previous snapshot stays valid for readers already holding
// it.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]string{}
	if s.path != "" {
		loaded, err := loadFile(s.path)
		if err != nil {
			return err
		}
		values = loaded
	} else if cur := s.snap.Load(); cur != nil {
		for k, v := range cur.Values {
			values[k] = v
		}
	}
	applyEnvOverlay(values)

	snap := &Snapshot{Version: s.version.Add(1), Values: values}
	s.snap.Store(snap)
	s.logger.Debug("configuration loaded",
		slog.String("path", s.path),
		slog.Uint64("version", snap.Version),
		slog.Int("keys", len(values)))
	return nil
}

// Replace publishes the given key set as a new snapshot, applying the
// environment overlay on top.
func (s *Store) Replace(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	applyEnvOverlay(copied)
	s.snap.Store(&Snapshot{Version: s.version.Add(1), Values: copied})
}

func loadFile(path string) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return loadYAML(path)
	default:
		return loadProperties(path)
	}
}

func loadProperties(path string) (map[string]string, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("loading properties %s: %w", path, err)
	}
	return p.Map(), nil
}

// loadYAML flattens nested YAML mappings into the dotted key space, so
// accounts can be declared either flat ("acct1.UserName: x") or nested
// ("acct1: {UserName: x}").
func loadYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing YAML config %s: %w", path, err)
	}
	values := make(map[string]string)
	flatten("", root, values)
	return values, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, val := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := val.(type) {
		case map[string]any:
			flatten(full, v, out)
		case nil:
			out[full] = ""
		case string:
			out[full] = v
		default:
			out[full] = fmt.Sprintf("%v", v)
		}
	}
}

func applyEnvOverlay(values map[string]string) {
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		key, ok := strings.CutPrefix(name, EnvPrefix)
		if !ok || key == "" {
			continue
		}
		values[strings.ReplaceAll(key, "__", ".")] = value
	}
}
