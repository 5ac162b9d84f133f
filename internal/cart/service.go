package cart

import (
	"context"

	"github.com/angelmondragon/ridegear-backend/internal/catalog"
	"github.com/angelmondragon/ridegear-backend/internal/notifications"
	pkgerrors "github.com/angelmondragon/ridegear-backend/pkg/errors"
	"github.com/angelmondragon/ridegear-backend/pkg/types"
)

const msgSelectSize = "Please select a size"

// View is the cart as rendered to a client.
type View struct {
	CartID string      `json:"cart_id"`
	Items  []ItemView  `json:"items"`
	Count  int         `json:"count"`
	Total  types.Money `json:"total"`
}

type ItemView struct {
	Item
	LineTotal types.Money `json:"lineTotal"`
}

// AddInput is a request to put a product in the cart.
type AddInput struct {
	ProductID int
	Quantity  int
	Size      string
}

type Service interface {
	View(ctx context.Context, cartID string) (View, error)
	Add(ctx context.Context, cartID string, input AddInput) (View, error)
	UpdateQuantity(ctx context.Context, cartID string, productID, quantity int) (View, error)
	Remove(ctx context.Context, cartID string, productID int) (View, error)
	RemoveVariant(ctx context.Context, cartID string, productID int, size string) (View, error)
	Clear(ctx context.Context, cartID string) (View, error)
}

type service struct {
	registry *Registry
	catalog  *catalog.Catalog
	notifier notifications.Notifier
	money    types.MoneyFormatter
}

// NewService resolves products from cat and applies the size rule before
// touching a cart.
func NewService(registry *Registry, cat *catalog.Catalog, notifier notifications.Notifier, money types.MoneyFormatter) (Service, error) {
	if registry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart registry required")
	}
	if cat == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog required")
	}
	if notifier == nil {
		notifier = notifications.NewHub(nil)
	}
	return &service{registry: registry, catalog: cat, notifier: notifier, money: money}, nil
}

func (s *service) View(ctx context.Context, cartID string) (View, error) {
	store, err := s.registry.Get(ctx, cartID)
	if err != nil {
		return View{}, err
	}
	return s.render(cartID, store.Snapshot()), nil
}

func (s *service) Add(ctx context.Context, cartID string, input AddInput) (View, error) {
	product, err := s.catalog.Product(input.ProductID)
	if err != nil {
		return View{}, err
	}
	if err := s.checkSize(ctx, product, input.Size); err != nil {
		return View{}, err
	}
	return s.apply(ctx, cartID, func(store *Store) error {
		return store.AddToCart(ctx, product, input.Quantity, input.Size)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, cartID string, productID, quantity int) (View, error) {
	return s.apply(ctx, cartID, func(store *Store) error {
		return store.UpdateQuantity(ctx, productID, quantity)
	})
}

func (s *service) Remove(ctx context.Context, cartID string, productID int) (View, error) {
	return s.apply(ctx, cartID, func(store *Store) error {
		return store.RemoveFromCart(ctx, productID)
	})
}

func (s *service) RemoveVariant(ctx context.Context, cartID string, productID int, size string) (View, error) {
	return s.apply(ctx, cartID, func(store *Store) error {
		return store.RemoveVariant(ctx, productID, size)
	})
}

func (s *service) Clear(ctx context.Context, cartID string) (View, error) {
	return s.apply(ctx, cartID, func(store *Store) error {
		return store.ClearCart(ctx)
	})
}

func (s *service) checkSize(ctx context.Context, product catalog.Product, size string) error {
	if size == "" {
		if product.RequiresSize() {
			s.notifier.Notify(ctx, notifications.Warning(msgSelectSize))
			return pkgerrors.New(pkgerrors.CodeValidation, msgSelectSize).
				WithDetails(map[string]any{"sizes": product.Sizes})
		}
		return nil
	}
	if !product.HasSize(size) {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "size %q is not available for %s", size, product.Name).
			WithDetails(map[string]any{"sizes": product.Sizes})
	}
	return nil
}

func (s *service) apply(ctx context.Context, cartID string, fn func(*Store) error) (View, error) {
	store, err := s.registry.Get(ctx, cartID)
	if err != nil {
		return View{}, err
	}
	if err := fn(store); err != nil {
		return View{}, err
	}
	return s.render(cartID, store.Snapshot()), nil
}

func (s *service) render(cartID string, snap Snapshot) View {
	items := make([]ItemView, len(snap.Items))
	for i, item := range snap.Items {
		items[i] = ItemView{Item: item, LineTotal: s.money.Format(item.LineTotal())}
	}
	return View{
		CartID: cartID,
		Items:  items,
		Count:  snap.Count,
		Total:  s.money.Format(snap.Total),
	}
}
