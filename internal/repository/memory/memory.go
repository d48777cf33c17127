// Package memory provides in-process stores satisfying the repository
// contracts.  The relational flavour numbers records 1, 2, 3... and checks
// the inventory -> location foreign key; the document flavour hands out
// random hex ids and checks nothing, mirroring MySQL and MongoDB.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/iliyamo/glassview/internal/model"
	"github.com/iliyamo/glassview/internal/repository"
)

// Kind selects how ids are generated.
type Kind int

const (
	Relational Kind = iota
	Document
)

// ErrUnavailable is returned by every call once a store is marked down.
var ErrUnavailable = errors.New("store unavailable")

type ids struct {
	kind Kind
	next int64
}

func (g *ids) newID() string {
	if g.kind == Relational {
		g.next++
		return strconv.FormatInt(g.next, 10)
	}
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// keyOrder sorts relational ids numerically and document ids lexically.
func keyOrder(kind Kind, keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		if kind == Relational {
			a, _ := strconv.ParseInt(keys[i], 10, 64)
			b, _ := strconv.ParseInt(keys[j], 10, 64)
			return a < b
		}
		return keys[i] < keys[j]
	})
}

// LocationStore keeps locations in a map.
type LocationStore struct {
	mu   sync.RWMutex
	ids  ids
	rows map[string]model.Location
	refs *InventoryStore
	down bool
}

func NewLocationStore(kind Kind) *LocationStore {
	return &LocationStore{ids: ids{kind: kind}, rows: map[string]model.Location{}}
}

// SetDown makes every subsequent call fail with ErrUnavailable.
func (s *LocationStore) SetDown(down bool) {
	s.mu.Lock()
	s.down = down
	s.mu.Unlock()
}

func (s *LocationStore) exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rows[id]
	return ok
}

func (s *LocationStore) Create(_ context.Context, l model.Location) (model.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return model.Location{}, ErrUnavailable
	}
	l.ID = s.ids.newID()
	s.rows[l.ID] = l
	return l, nil
}

func (s *LocationStore) Get(_ context.Context, id string) (model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.down {
		return model.Location{}, ErrUnavailable
	}
	l, ok := s.rows[id]
	if !ok {
		return model.Location{}, repository.ErrNotFound
	}
	return l, nil
}

func (s *LocationStore) List(_ context.Context) ([]model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.down {
		return nil, ErrUnavailable
	}
	keys := make([]string, 0, len(s.rows))
	for k := range s.rows {
		keys = append(keys, k)
	}
	keyOrder(s.ids.kind, keys)
	out := make([]model.Location, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.rows[k])
	}
	return out, nil
}

func (s *LocationStore) Update(_ context.Context, id string, l model.Location) (model.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return model.Location{}, ErrUnavailable
	}
	if _, ok := s.rows[id]; !ok {
		return model.Location{}, repository.ErrNotFound
	}
	l.ID = id
	s.rows[id] = l
	return l, nil
}

// Delete removes a location.  With ProtectReferences set, referenced
// locations are refused with ErrConstraint.
func (s *LocationStore) Delete(_ context.Context, id string) error {
	s.mu.RLock()
	refs := s.refs
	s.mu.RUnlock()
	if refs != nil {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil && refs.Referencing(n) {
			return repository.ErrConstraint
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return ErrUnavailable
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// ProtectReferences makes Delete refuse locations still referenced by inv,
// like the relational foreign key does.
func (s *LocationStore) ProtectReferences(inv *InventoryStore) {
	s.mu.Lock()
	s.refs = inv
	s.mu.Unlock()
}

// Len reports how many locations are stored.
func (s *LocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// InventoryStore keeps inventory in a map.  When locations is set, creates
// and updates referencing an unknown location fail with ErrConstraint.
type InventoryStore struct {
	mu        sync.RWMutex
	ids       ids
	rows      map[string]model.Inventory
	locations *LocationStore
	down      bool
}

// NewInventoryStore builds a store; pass the relational location store to
// enforce the foreign key, or nil for document semantics.
func NewInventoryStore(kind Kind, locations *LocationStore) *InventoryStore {
	return &InventoryStore{ids: ids{kind: kind}, rows: map[string]model.Inventory{}, locations: locations}
}

func (s *InventoryStore) SetDown(down bool) {
	s.mu.Lock()
	s.down = down
	s.mu.Unlock()
}

func (s *InventoryStore) checkLocation(locationID int64) error {
	if s.locations == nil {
		return nil
	}
	if !s.locations.exists(strconv.FormatInt(locationID, 10)) {
		return repository.ErrConstraint
	}
	return nil
}

func (s *InventoryStore) Create(_ context.Context, inv model.Inventory) (model.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return model.Inventory{}, ErrUnavailable
	}
	if err := s.checkLocation(inv.LocationID); err != nil {
		return model.Inventory{}, err
	}
	inv.ID = s.ids.newID()
	s.rows[inv.ID] = inv
	return inv, nil
}

func (s *InventoryStore) Get(_ context.Context, id string) (model.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.down {
		return model.Inventory{}, ErrUnavailable
	}
	inv, ok := s.rows[id]
	if !ok {
		return model.Inventory{}, repository.ErrNotFound
	}
	return inv, nil
}

func (s *InventoryStore) List(_ context.Context, f repository.InventoryFilter) ([]model.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.down {
		return nil, ErrUnavailable
	}
	keys := make([]string, 0, len(s.rows))
	for k, inv := range s.rows {
		if f.UserID != nil && inv.UserID != *f.UserID {
			continue
		}
		if f.LocationID != nil && inv.LocationID != *f.LocationID {
			continue
		}
		keys = append(keys, k)
	}
	keyOrder(s.ids.kind, keys)
	out := make([]model.Inventory, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.rows[k])
	}
	return out, nil
}

func (s *InventoryStore) Update(_ context.Context, id string, inv model.Inventory) (model.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return model.Inventory{}, ErrUnavailable
	}
	cur, ok := s.rows[id]
	if !ok {
		return model.Inventory{}, repository.ErrNotFound
	}
	if err := s.checkLocation(inv.LocationID); err != nil {
		return model.Inventory{}, err
	}
	inv.ID = id
	inv.UserID = cur.UserID
	s.rows[id] = inv
	return inv, nil
}

func (s *InventoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return ErrUnavailable
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// Len reports how many inventory records are stored.
func (s *InventoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Referencing reports whether any stored inventory points at locationID.
func (s *InventoryStore) Referencing(locationID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.rows {
		if inv.LocationID == locationID {
			return true
		}
	}
	return false
}

// UserStore keeps users keyed by username.
type UserStore struct {
	mu     sync.RWMutex
	next   int64
	byName map[string]model.User
}

func NewUserStore() *UserStore {
	return &UserStore{byName: map[string]model.User{}}
}

func (s *UserStore) Create(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byName {
		if existing.Username == u.Username || existing.Email == u.Email {
			return model.User{}, repository.ErrDuplicate
		}
	}
	s.next++
	u.ID = s.next
	s.byName[u.Username] = u
	return u, nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byName[username]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

// Remove deletes a user, simulating an account removed out of band.
func (s *UserStore) Remove(username string) {
	s.mu.Lock()
	delete(s.byName, username)
	s.mu.Unlock()
}

var (
	_ repository.LocationStore  = (*LocationStore)(nil)
	_ repository.InventoryStore = (*InventoryStore)(nil)
	_ repository.UserStore      = (*UserStore)(nil)
)

// Stores bundles a complete in-memory backend: both location stores, both
// inventory stores and the user store, with the relational foreign keys
// wired up.
type Stores struct {
	RelationalLocations *LocationStore
	DocumentLocations   *LocationStore
	RelationalInventory *InventoryStore
	DocumentInventory   *InventoryStore
	Users               *UserStore
}

func NewStores() *Stores {
	relLoc := NewLocationStore(Relational)
	relInv := NewInventoryStore(Relational, relLoc)
	relLoc.ProtectReferences(relInv)
	return &Stores{
		RelationalLocations: relLoc,
		DocumentLocations:   NewLocationStore(Document),
		RelationalInventory: relInv,
		DocumentInventory:   NewInventoryStore(Document, nil),
		Users:               NewUserStore(),
	}
}
