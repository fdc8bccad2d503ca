package store

import (
	"sync"

	"github.com/mzhuravlev/shopcourse/internal/platform/apierr"
	"github.com/mzhuravlev/shopcourse/internal/platform/logger"
	"github.com/mzhuravlev/shopcourse/internal/types"
)

// CatalogStore owns the item map and its monotonic id counter. All state
// lives behind one mutex so every check-then-write below is atomic with
// respect to concurrent handlers.
type CatalogStore struct {
	mu     sync.Mutex
	log    *logger.Logger
	nextID int64
	order  []int64
	items  map[int64]*types.Item
}

func NewCatalogStore(baseLog *logger.Logger) *CatalogStore {
	return &CatalogStore{
		log:   baseLog.With("store", "CatalogStore"),
		items: make(map[int64]*types.Item),
	}
}

func (s *CatalogStore) Create(name string, price float64) types.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	item := &types.Item{ID: s.nextID, Name: name, Price: price}
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	s.log.Debug("item created", "item_id", item.ID)
	return *item
}

// Get returns the item regardless of its deleted flag.
func (s *CatalogStore) Get(id int64) (types.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return types.Item{}, false
	}
	return *item, true
}

// Live returns the item only if it exists and is not soft-deleted. Cart
// total derivation joins through this.
func (s *CatalogStore) Live(id int64) (types.Item, bool) {
	item, ok := s.Get(id)
	if !ok || item.Deleted {
		return types.Item{}, false
	}
	return item, true
}

// ItemFilter narrows List. Nil price bounds mean unbounded.
type ItemFilter struct {
	Offset      int
	Limit       int
	MinPrice    *float64
	MaxPrice    *float64
	ShowDeleted bool
}

// List walks items in insertion order, applies the filter, then slices
// offset/limit out of the filtered sequence.
func (s *CatalogStore) List(f ItemFilter) []types.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]types.Item, 0, len(s.order))
	for _, id := range s.order {
		item := s.items[id]
		if item.Deleted && !f.ShowDeleted {
			continue
		}
		if f.MinPrice != nil && item.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && item.Price > *f.MaxPrice {
			continue
		}
		filtered = append(filtered, *item)
	}
	return page(filtered, f.Offset, f.Limit)
}

func (s *CatalogStore) Replace(id int64, name string, price float64) (types.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return types.Item{}, apierr.NotFound("Item not found")
	}
	if item.Deleted {
		return types.Item{}, apierr.NotModified()
	}
	item.Name = name
	item.Price = price
	return *item, nil
}

// Patch applies only the supplied fields. Callers reject attempts to touch
// the deleted flag before getting here.
func (s *CatalogStore) Patch(id int64, name *string, price *float64) (types.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return types.Item{}, apierr.NotFound("Item not found")
	}
	if item.Deleted {
		return types.Item{}, apierr.NotModified()
	}
	if name != nil {
		item.Name = *name
	}
	if price != nil {
		item.Price = *price
	}
	return *item, nil
}

// SoftDelete never fails, even for ids that were never issued. The returned
// message distinguishes the three outcomes and deletedNow reports whether
// this call flipped the flag.
func (s *CatalogStore) SoftDelete(id int64) (msg string, deletedNow bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return "The item is already marked as deleted", false
	}
	if item.Deleted {
		return "The item has already been deleted", false
	}
	item.Deleted = true
	s.log.Debug("item soft-deleted", "item_id", id)
	return "Item has been successfully deleted", true
}

func page[T any](in []T, offset, limit int) []T {
	if offset >= len(in) {
		return []T{}
	}
	end := offset + limit
	if end > len(in) {
		end = len(in)
	}
	return in[offset:end]
}
