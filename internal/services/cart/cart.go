// Package cart keeps the shopping cart of a checkout session and persists
// an encrypted snapshot after every change.
package cart

import (
	"context"
	"sync"

	"payquick/internal/logging"
	"payquick/internal/models"
	"payquick/internal/repositories/securestore"
)

// Persister stores the cart snapshot. securestore.Store satisfies it.
type Persister interface {
	Save(ctx context.Context, key string, v any) bool
}

type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
	store Persister
	log   logging.Logger
}

func New(store Persister, log logging.Logger) *Cart {
	return &Cart{store: store, log: log}
}

// Load replaces the contents with a previously saved snapshot without
// writing it back.
func (c *Cart) Load(snapshot models.Cart) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]models.CartItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		if item.Quantity > 0 {
			c.items = append(c.items, item)
		}
	}
}

// Add puts one unit of product in the cart, incrementing the quantity when
// it is already there.
func (c *Cart) Add(ctx context.Context, product models.Product) (models.Cart, error) {
	if product.ID == "" || product.Price < 0 {
		return models.Cart{}, ErrInvalidProduct
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(product.ID); i >= 0 {
		c.items[i].Quantity++
	} else {
		c.items = append(c.items, models.CartItem{ID: product.ID, Product: product, Quantity: 1})
	}
	return c.persist(ctx), nil
}

func (c *Cart) Remove(ctx context.Context, id string) (models.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return c.snapshot(), ErrItemNotFound
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return c.persist(ctx), nil
}

// UpdateQuantity sets the quantity of an item. Zero or less removes it.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, quantity int) (models.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return c.snapshot(), ErrItemNotFound
	}
	if quantity <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	} else {
		c.items[i].Quantity = quantity
	}
	return c.persist(ctx), nil
}

func (c *Cart) Clear(ctx context.Context) models.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.persist(ctx)
}

func (c *Cart) Snapshot() models.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// PaymentItems flattens the cart lines for a gateway request.
func (c *Cart) PaymentItems() []models.PaymentItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.PaymentItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, models.PaymentItem{
			ID:       item.ID,
			Name:     item.Product.Name,
			Price:    item.Product.Price,
			Quantity: item.Quantity,
		})
	}
	return out
}

func (c *Cart) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshot must be called with mu held.
func (c *Cart) snapshot() models.Cart {
	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return models.Cart{
		Items: items,
		Total: Subtotal(c.items).InexactFloat64(),
	}
}

// persist must be called with mu held. A failed write is logged and the
// in-memory change is kept.
func (c *Cart) persist(ctx context.Context) models.Cart {
	snap := c.snapshot()
	if c.store != nil && !c.store.Save(ctx, securestore.KeyCart, snap) {
		c.log.Warn(ctx, "cart snapshot not persisted", "items", len(snap.Items))
	}
	return snap
}
