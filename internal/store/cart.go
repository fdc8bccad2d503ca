package store

import (
	"sync"

	"github.com/mzhuravlev/shopcourse/internal/platform/apierr"
	"github.com/mzhuravlev/shopcourse/internal/platform/logger"
	"github.com/mzhuravlev/shopcourse/internal/types"
)

// ItemSource is the catalog surface the cart store joins against.
// Get sees soft-deleted items (needed for the add-time availability
// snapshot); Live does not.
type ItemSource interface {
	Get(id int64) (types.Item, bool)
	Live(id int64) (types.Item, bool)
}

// CartStore owns the cart map. Derived totals are never persisted: every
// read recomputes them through the ItemSource, so deleting an item drops it
// from totals of carts that already hold it.
type CartStore struct {
	mu     sync.Mutex
	log    *logger.Logger
	items  ItemSource
	nextID int64
	order  []int64
	carts  map[int64]*types.Cart
}

func NewCartStore(baseLog *logger.Logger, items ItemSource) *CartStore {
	return &CartStore{
		log:   baseLog.With("store", "CartStore"),
		items: items,
		carts: make(map[int64]*types.Cart),
	}
}

func (s *CartStore) Create() types.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	cart := &types.Cart{ID: s.nextID, Items: make([]types.CartItem, 0)}
	s.carts[cart.ID] = cart
	s.order = append(s.order, cart.ID)
	s.log.Debug("cart created", "cart_id", cart.ID)
	return *cart
}

func (s *CartStore) Get(id int64) (types.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[id]
	if !ok {
		return types.Cart{}, false
	}
	return s.derive(cart), true
}

// CartFilter narrows List over the derived totals.
type CartFilter struct {
	Offset      int
	Limit       int
	MinPrice    *float64
	MaxPrice    *float64
	MinQuantity *int64
	MaxQuantity *int64
}

func (s *CartStore) List(f CartFilter) []types.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]types.Cart, 0, len(s.order))
	for _, id := range s.order {
		cart := s.derive(s.carts[id])
		if f.MinPrice != nil && cart.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && cart.Price > *f.MaxPrice {
			continue
		}
		if f.MinQuantity != nil && cart.Quantity < *f.MinQuantity {
			continue
		}
		if f.MaxQuantity != nil && cart.Quantity > *f.MaxQuantity {
			continue
		}
		filtered = append(filtered, cart)
	}
	return page(filtered, f.Offset, f.Limit)
}

// AddItem appends a line with quantity 1, or bumps the quantity when the
// item is already in the cart. Soft-deleted items are still addable; they
// just carry available=false and contribute nothing to totals.
func (s *CartStore) AddItem(cartID, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return apierr.NotFound("Cart not found")
	}
	item, ok := s.items.Get(itemID)
	if !ok {
		return apierr.NotFound("Item not found")
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity++
			return nil
		}
	}
	cart.Items = append(cart.Items, types.CartItem{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  1,
		Available: !item.Deleted,
	})
	return nil
}

// derive copies the cart with totals recomputed against the live catalog.
// Callers hold s.mu; the ItemSource has its own lock and never calls back
// into the cart store.
func (s *CartStore) derive(cart *types.Cart) types.Cart {
	out := types.Cart{ID: cart.ID, Items: make([]types.CartItem, len(cart.Items))}
	copy(out.Items, cart.Items)
	for _, line := range cart.Items {
		item, ok := s.items.Live(line.ID)
		if !ok {
			continue
		}
		out.Price += item.Price * float64(line.Quantity)
		out.Quantity += line.Quantity
	}
	return out
}
