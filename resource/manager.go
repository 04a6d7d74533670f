// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resource

import (
	"errors"
	"io/fs"
	"strings"
	"sync"
)

// ErrNotFound is returned when a lookup's path has no backing resource.
var ErrNotFound = errors.New("resource: not found")

// ErrUnknownEnvironment is returned when a path names an environment
// no Register call (or AddEnvironment call) ever registered.
var ErrUnknownEnvironment = errors.New("resource: unknown environment")

type registrationIntent struct {
	env string
	fsys fs.FS
}

var (
	pendingMu sync.Mutex
	pending   []registrationIntent
)

// Register records fsys as the backing filesystem for environment
// env, to be picked up by the next NewManager call. Intended for
// package-level var initializers:
//
//	//go:embed assets
//	var assetsFS embed.FS
//	var _ = resource.Register("assets", assetsFS)
//
// Register itself never touches a Manager — registration is deferred
// until a Manager is constructed, matching Go's lack of a pre-main
// hook that could reach into not-yet-existing state. It returns true
// always, so it can be used directly in a package-level var
// initializer's right-hand side.
func Register(env string, fsys fs.FS) bool {
	pendingMu.Lock()
	defer pendingMu.Unlock()
	pending = append(pending, registrationIntent{env: env, fsys: fsys})
	return true
}

// Manager resolves ":/<environment>/<path>" lookups against the
// filesystems registered for each environment.
type Manager struct {
	environments map[string]fs.FS
	drained      int // count of global pending intents applied so far
}

// NewManager constructs a Manager and drains every registration
// intent accumulated so far via Register.
func NewManager() *Manager {
	m := &Manager{environments: make(map[string]fs.FS)}
	m.drainPending()
	return m
}

func (m *Manager) drainPending() {
	pendingMu.Lock()
	intents := pending[m.drained:]
	m.drained = len(pending)
	pendingMu.Unlock()
	for _, in := range intents {
		m.environments[in.env] = in.fsys
	}
}

var (
	defaultOnce sync.Once
	defaultMgr  *Manager
)

// Default returns the process-wide Manager. It is constructed lazily
// on first use and re-drains the global Register list on every call,
// so packages that call Register after another package has already
// triggered Default are still picked up. Callers that want an
// isolated Manager (tests, chiefly) should call NewManager directly
// instead.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultMgr = NewManager()
	})
	defaultMgr.drainPending()
	return defaultMgr
}

// AddEnvironment registers fsys under env directly on an already
// constructed Manager, for tests and for environments discovered only
// at runtime.
func (m *Manager) AddEnvironment(env string, fsys fs.FS) {
	m.environments[env] = fsys
}

// Prefix is the marker identifying a resource-manager path, as
// opposed to a host filesystem path.
const Prefix = ":/"

// IsResourcePath reports whether path addresses the resource manager
// rather than the host filesystem.
func IsResourcePath(path string) bool {
	return strings.HasPrefix(path, Prefix)
}

// Split decomposes a ":/<environment>/<path>" resource path into its
// environment and inner path. ok is false if path is not a resource
// path at all.
func Split(path string) (env, inner string, ok bool) {
	if !IsResourcePath(path) {
		return "", "", false
	}
	rest := path[len(Prefix):]
	idx := strings.IndexByte(rest, '/')
	if idx < 0 {
		return rest, "", true
	}
	return rest[:idx], rest[idx+1:], true
}

// Read returns a read-only byte view of the resource at path (a full
// ":/<environment>/<path>" address).
func (m *Manager) Read(path string) ([]byte, error) {
	env, inner, ok := Split(path)
	if !ok {
		return nil, ErrNotFound
	}
	fsys, ok := m.environments[env]
	if !ok {
		return nil, ErrUnknownEnvironment
	}
	data, err := fs.ReadFile(fsys, inner)
	if err != nil {
		return nil, ErrNotFound
	}
	return data, nil
}

// Exists reports whether path names a readable resource.
func (m *Manager) Exists(path string) bool {
	env, inner, ok := Split(path)
	if !ok {
		return false
	}
	fsys, ok := m.environments[env]
	if !ok {
		return false
	}
	info, err := fs.Stat(fsys, inner)
	return err == nil && !info.IsDir()
}

// FileSize returns the byte size of the resource at path.
func (m *Manager) FileSize(path string) (int64, error) {
	env, inner, ok := Split(path)
	if !ok {
		return 0, ErrNotFound
	}
	fsys, ok := m.environments[env]
	if !ok {
		return 0, ErrUnknownEnvironment
	}
	info, err := fs.Stat(fsys, inner)
	if err != nil {
		return 0, ErrNotFound
	}
	return info.Size(), nil
}
