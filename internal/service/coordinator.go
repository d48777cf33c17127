package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/glassview/internal/model"
	"github.com/iliyamo/glassview/internal/queue"
	"github.com/iliyamo/glassview/internal/repository"
)

// Notifier receives an event for every partial write.
type Notifier interface {
	PublishPartialWrite(ctx context.Context, ev queue.PartialWriteEvent) error
}

// Observer counts dual-write outcomes.
type Observer interface {
	ObserveDualWrite(entity, outcome string)
}

// Dual-write outcomes reported to the Observer.
const (
	OutcomeOK           = "ok"
	OutcomePartial      = "partial"
	OutcomeCreateFailed = "create_failed"
)

// Stores are the four adapters the coordinator writes through.
type Stores struct {
	RelationalInventory repository.InventoryStore
	DocumentInventory   repository.InventoryStore
	RelationalLocations repository.LocationStore
	DocumentLocations   repository.LocationStore
}

// CreateResult carries both stored copies of a created record.  Document
// is nil after a partial write.
type CreateResult[T any] struct {
	Relational T  `json:"mysql"`
	Document   *T `json:"mongodb"`
}

// Coordinator spreads creates over both stores and routes reads, updates
// and deletes to the single store the caller names.  There is no
// transaction across the stores and no retry: a create that fails on the
// document store leaves the relational record in place and reports a
// *PartialWriteError.
type Coordinator struct {
	stores  Stores
	log     logrus.FieldLogger
	notify  Notifier
	observe Observer
	now     func() time.Time
}

// NewCoordinator builds a Coordinator.  notify and observe may be nil.
func NewCoordinator(stores Stores, log logrus.FieldLogger, notify Notifier, observe Observer) *Coordinator {
	return &Coordinator{stores: stores, log: log, notify: notify, observe: observe, now: time.Now}
}

func (c *Coordinator) outcome(entity, outcome string) {
	if c.observe != nil {
		c.observe.ObserveDualWrite(entity, outcome)
	}
}

// storeFailure logs an unexpected store error and hides it from callers.
func (c *Coordinator) storeFailure(op string, store model.Store, err error) error {
	c.log.WithError(err).WithFields(logrus.Fields{"op": op, "store": store}).Error("store call failed")
	return ErrStoreFailure
}

// dualCreate writes rel first and doc only when rel succeeded.
func dualCreate[T any](ctx context.Context, c *Coordinator, entity string, userID int64,
	rel, doc func(context.Context) (T, error), idOf func(T) string) (CreateResult[T], error) {

	var res CreateResult[T]
	r, err := rel(ctx)
	if err != nil {
		c.outcome(entity, OutcomeCreateFailed)
		if errors.Is(err, repository.ErrConstraint) {
			return res, fmt.Errorf("%w: referenced location or owner does not exist", ErrCreateFailed)
		}
		c.log.WithError(err).WithField("entity", entity).Error("relational create failed")
		return res, fmt.Errorf("%w: relational store rejected the record", ErrCreateFailed)
	}
	res.Relational = r

	d, err := doc(ctx)
	if err != nil {
		c.outcome(entity, OutcomePartial)
		pe := &PartialWriteError{Entity: entity, RelationalID: idOf(r), Cause: err}
		c.log.WithError(err).WithFields(logrus.Fields{
			"entity":        entity,
			"relational_id": pe.RelationalID,
		}).Warn("partial write: document store create failed")
		c.publish(queue.PartialWriteEvent{
			Entity:       entity,
			Operation:    "create",
			RelationalID: pe.RelationalID,
			UserID:       userID,
			Cause:        err.Error(),
			OccurredAt:   c.now().UTC().Format(time.RFC3339),
		})
		return res, pe
	}
	c.outcome(entity, OutcomeOK)
	res.Document = &d
	return res, nil
}

// publish hands the event to the notifier without holding up the request.
func (c *Coordinator) publish(ev queue.PartialWriteEvent) {
	if c.notify == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.notify.PublishPartialWrite(ctx, ev); err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"entity":        ev.Entity,
				"relational_id": ev.RelationalID,
			}).Warn("publish partial write event")
		}
	}()
}

func (c *Coordinator) inventoryStore(s model.Store) (repository.InventoryStore, error) {
	switch s {
	case model.StoreRelational:
		return c.stores.RelationalInventory, nil
	case model.StoreDocument:
		return c.stores.DocumentInventory, nil
	}
	return nil, ErrNotFound
}

func (c *Coordinator) locationStore(s model.Store) (repository.LocationStore, error) {
	switch s {
	case model.StoreRelational:
		return c.stores.RelationalLocations, nil
	case model.StoreDocument:
		return c.stores.DocumentLocations, nil
	}
	return nil, ErrNotFound
}

// ---- inventory ----

// CreateInventory stamps the caller as owner and writes the item to both
// stores.
func (c *Coordinator) CreateInventory(ctx context.Context, id model.Identity, inv model.Inventory) (CreateResult[model.Inventory], error) {
	inv.ID = ""
	inv.UserID = id.UserID
	if err := inv.Validate(); err != nil {
		return CreateResult[model.Inventory]{}, err
	}
	return dualCreate(ctx, c, "inventory", id.UserID,
		func(ctx context.Context) (model.Inventory, error) { return c.stores.RelationalInventory.Create(ctx, inv) },
		func(ctx context.Context) (model.Inventory, error) { return c.stores.DocumentInventory.Create(ctx, inv) },
		func(i model.Inventory) string { return i.ID },
	)
}

func scopedFilter(id model.Identity, f repository.InventoryFilter) repository.InventoryFilter {
	if !id.Role.IsAdmin() {
		uid := id.UserID
		f.UserID = &uid
	}
	return f
}

// ListInventory lists the items of one store visible to the caller.
func (c *Coordinator) ListInventory(ctx context.Context, id model.Identity, store model.Store) ([]model.Inventory, error) {
	return c.listInventory(ctx, store, scopedFilter(id, repository.InventoryFilter{}))
}

// ListInventoryByLocation lists the visible items of one store kept at
// locationID.
func (c *Coordinator) ListInventoryByLocation(ctx context.Context, id model.Identity, store model.Store, locationID int64) ([]model.Inventory, error) {
	return c.listInventory(ctx, store, scopedFilter(id, repository.InventoryFilter{LocationID: &locationID}))
}

func (c *Coordinator) listInventory(ctx context.Context, store model.Store, f repository.InventoryFilter) ([]model.Inventory, error) {
	s, err := c.inventoryStore(store)
	if err != nil {
		return nil, err
	}
	items, err := s.List(ctx, f)
	if err != nil {
		return nil, c.storeFailure("list inventory", store, err)
	}
	if items == nil {
		items = []model.Inventory{}
	}
	return items, nil
}

// loadInventory fetches a record and maps a missing one to ErrNotFound.
func (c *Coordinator) loadInventory(ctx context.Context, store model.Store, recID string) (repository.InventoryStore, model.Inventory, error) {
	s, err := c.inventoryStore(store)
	if err != nil {
		return nil, model.Inventory{}, err
	}
	cur, err := s.Get(ctx, recID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.Inventory{}, ErrNotFound
	}
	if err != nil {
		return nil, model.Inventory{}, c.storeFailure("get inventory", store, err)
	}
	return s, cur, nil
}

// GetInventory returns one item.  Items owned by someone else are reported
// as missing so their existence does not leak.
func (c *Coordinator) GetInventory(ctx context.Context, id model.Identity, store model.Store, recID string) (model.Inventory, error) {
	_, cur, err := c.loadInventory(ctx, store, recID)
	if err != nil {
		return model.Inventory{}, err
	}
	if !InScope(id, cur.UserID) {
		return model.Inventory{}, ErrNotFound
	}
	return cur, nil
}

// UpdateInventory merges patch into the record held by one store.  The
// other store is left alone.
func (c *Coordinator) UpdateInventory(ctx context.Context, id model.Identity, store model.Store, recID string, patch model.InventoryPatch) (model.Inventory, error) {
	s, cur, err := c.loadInventory(ctx, store, recID)
	if err != nil {
		return model.Inventory{}, err
	}
	if !InScope(id, cur.UserID) {
		return model.Inventory{}, ErrForbidden
	}
	merged := patch.Apply(cur)
	if err := merged.Validate(); err != nil {
		return model.Inventory{}, err
	}
	out, err := s.Update(ctx, recID, merged)
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, repository.ErrNotFound):
		return model.Inventory{}, ErrNotFound
	case errors.Is(err, repository.ErrConstraint):
		return model.Inventory{}, &model.ValidationError{Field: "location_id", Reason: "references no location"}
	}
	return model.Inventory{}, c.storeFailure("update inventory", store, err)
}

// DeleteInventory removes the record from one store.
func (c *Coordinator) DeleteInventory(ctx context.Context, id model.Identity, store model.Store, recID string) error {
	s, cur, err := c.loadInventory(ctx, store, recID)
	if err != nil {
		return err
	}
	if !InScope(id, cur.UserID) {
		return ErrForbidden
	}
	err = s.Delete(ctx, recID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return c.storeFailure("delete inventory", store, err)
	}
	return nil
}

// ---- locations ----

// CreateLocation writes a location to both stores.  Admin only.
func (c *Coordinator) CreateLocation(ctx context.Context, id model.Identity, loc model.Location) (CreateResult[model.Location], error) {
	if err := RequireAdmin(id); err != nil {
		return CreateResult[model.Location]{}, err
	}
	loc.ID = ""
	if err := loc.Validate(); err != nil {
		return CreateResult[model.Location]{}, err
	}
	return dualCreate(ctx, c, "location", id.UserID,
		func(ctx context.Context) (model.Location, error) { return c.stores.RelationalLocations.Create(ctx, loc) },
		func(ctx context.Context) (model.Location, error) { return c.stores.DocumentLocations.Create(ctx, loc) },
		func(l model.Location) string { return l.ID },
	)
}

// ListLocations lists every location in one store.  Locations are not
// owner scoped.
func (c *Coordinator) ListLocations(ctx context.Context, store model.Store) ([]model.Location, error) {
	s, err := c.locationStore(store)
	if err != nil {
		return nil, err
	}
	locs, err := s.List(ctx)
	if err != nil {
		return nil, c.storeFailure("list locations", store, err)
	}
	if locs == nil {
		locs = []model.Location{}
	}
	return locs, nil
}

func (c *Coordinator) loadLocation(ctx context.Context, store model.Store, locID string) (repository.LocationStore, model.Location, error) {
	s, err := c.locationStore(store)
	if err != nil {
		return nil, model.Location{}, err
	}
	cur, err := s.Get(ctx, locID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.Location{}, ErrNotFound
	}
	if err != nil {
		return nil, model.Location{}, c.storeFailure("get location", store, err)
	}
	return s, cur, nil
}

// GetLocation returns one location.
func (c *Coordinator) GetLocation(ctx context.Context, store model.Store, locID string) (model.Location, error) {
	_, cur, err := c.loadLocation(ctx, store, locID)
	return cur, err
}

// UpdateLocation merges patch into a location held by one store.  Admin
// only.
func (c *Coordinator) UpdateLocation(ctx context.Context, id model.Identity, store model.Store, locID string, patch model.LocationPatch) (model.Location, error) {
	s, cur, err := c.loadLocation(ctx, store, locID)
	if err != nil {
		return model.Location{}, err
	}
	if err := RequireAdmin(id); err != nil {
		return model.Location{}, err
	}
	merged := patch.Apply(cur)
	if err := merged.Validate(); err != nil {
		return model.Location{}, err
	}
	out, err := s.Update(ctx, locID, merged)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Location{}, ErrNotFound
	}
	if err != nil {
		return model.Location{}, c.storeFailure("update location", store, err)
	}
	return out, nil
}

// DeleteLocation removes a location from one store.  Admin only.  The
// relational store refuses while inventory still references it.
func (c *Coordinator) DeleteLocation(ctx context.Context, id model.Identity, store model.Store, locID string) error {
	s, _, err := c.loadLocation(ctx, store, locID)
	if err != nil {
		return err
	}
	if err := RequireAdmin(id); err != nil {
		return err
	}
	err = s.Delete(ctx, locID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConstraint):
		return fmt.Errorf("%w: location is still referenced by inventory", ErrConflict)
	}
	return c.storeFailure("delete location", store, err)
}
