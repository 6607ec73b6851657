// Package module implements native-module registration, file module
// resolution, circular-import detection, and overlay composition.
package module

import (
	"fmt"
	"sync"

	"github.com/lumenlang/lumen/internal/value"
)

// NativeModule is a builtin module implemented in Go rather than in the
// language itself; DB/HTTP/process handles and the like enter scripts only
// through the surface one of these exposes. Build constructs a fresh
// value.Module for one interpreter instance.
type NativeModule struct {
	Name       string
	Aliases    []string
	Extensions []string
	Build      func() *value.Module
}

// Registry tracks native modules by canonical name, alias, and the file
// extension an overlay file for them would carry.
type Registry struct {
	mu         sync.RWMutex
	modules    map[string]*NativeModule
	aliases    map[string]string
	extensions map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		modules:    make(map[string]*NativeModule),
		aliases:    make(map[string]string),
		extensions: make(map[string]string),
	}
}

func (r *Registry) Register(m *NativeModule) error {
	if m == nil || m.Name == "" {
		return fmt.Errorf("native module must have a non-empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[m.Name]; exists {
		return fmt.Errorf("native module %q already registered", m.Name)
	}
	r.modules[m.Name] = m
	for _, a := range m.Aliases {
		if a == "" {
			continue
		}
		if existing, exists := r.aliases[a]; exists {
			return fmt.Errorf("alias %q conflicts with existing mapping to %q", a, existing)
		}
		r.aliases[a] = m.Name
	}
	for _, ext := range m.Extensions {
		if ext == "" {
			continue
		}
		if existing, exists := r.extensions[ext]; exists {
			return fmt.Errorf("extension %q conflicts with existing mapping to %q", ext, existing)
		}
		r.extensions[ext] = m.Name
	}
	return nil
}

// Get resolves identifier (a canonical name or alias) to its NativeModule.
func (r *Registry) Get(identifier string) (*NativeModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.modules[identifier]; ok {
		return m, true
	}
	if canon, ok := r.aliases[identifier]; ok {
		m, ok := r.modules[canon]
		return m, ok
	}
	return nil, false
}
