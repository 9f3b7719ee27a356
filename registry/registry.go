// Package registry stores registered client applications.
//
// In a real deployment this would be backed by a database and the secrets
// would be hashed. The services only need the Store contract; the in-memory
// implementation is populated once at startup and thereafter only read.
package registry

import "sync"

// Application is a registered client identity.
type Application struct {
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
}

// Store is the applications storage contract.
type Store interface {
	// Get returns the application registered under clientID.
	Get(clientID string) (Application, bool)
	// CreateIfNotExists registers the application unless the client_id is
	// already taken, in which case the existing record is returned unchanged.
	CreateIfNotExists(app Application) Application
}

// InMemStore is a thread-safe in-memory Store.
type InMemStore struct {
	mu   sync.RWMutex
	apps map[string]Application
}

// NewInMemStore creates a store pre-populated with the given applications.
func NewInMemStore(apps ...Application) *InMemStore {
	s := &InMemStore{apps: make(map[string]Application, len(apps))}
	for _, app := range apps {
		s.CreateIfNotExists(app)
	}
	return s
}

// Get implements Store.
func (s *InMemStore) Get(clientID string) (Application, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[clientID]
	return app, ok
}

// CreateIfNotExists implements Store.
func (s *InMemStore) CreateIfNotExists(app Application) Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.apps[app.ClientID]; ok {
		return existing
	}
	s.apps[app.ClientID] = app
	return app
}
