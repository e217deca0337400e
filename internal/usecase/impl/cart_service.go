package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"boulevard/internal/domain/entity"
	domainerrors "boulevard/internal/domain/errors"
	"boulevard/internal/domain/pricing"
	"boulevard/internal/domain/repository"
	"boulevard/internal/errors"
	"boulevard/internal/usecase"
)

type cartService struct {
	mu      sync.Mutex
	items   []entity.LineItem
	catalog repository.Catalog
	storage repository.CartStorage
	logger  *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Ctx     context.Context
	Catalog repository.Catalog
	Storage repository.CartStorage
	Logger  *slog.Logger
}

// NewCartService creates the cart store, rehydrating any previously
// persisted cart. A missing value starts an empty cart; a corrupt value is
// discarded (best effort) and also starts empty. Store construction never
// fails on bad persisted state.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	s := &cartService{
		catalog: params.Catalog,
		storage: params.Storage,
		logger:  params.Logger,
	}
	s.items = s.rehydrate(params.Ctx)

	return s
}

func (s *cartService) rehydrate(ctx context.Context) []entity.LineItem {
	value, err := s.storage.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil
		}
		s.logger.Warn("Loading persisted cart failed, starting empty",
			slog.Any("error", err),
		)

		return nil
	}

	items, err := decodeCart(value)
	if err != nil {
		s.logger.Warn("Persisted cart is corrupt, discarding",
			slog.Any("error", err),
		)
		if delErr := s.storage.Delete(ctx); delErr != nil {
			s.logger.Warn("Discarding corrupt cart failed",
				slog.Any("error", delErr),
			)
		}

		return nil
	}

	return items
}

// decodeCart deserializes a persisted cart value. Anything that is not a
// well-formed ordered line item list counts as corrupt.
func decodeCart(value []byte) ([]entity.LineItem, error) {
	var items []entity.LineItem
	if err := json.Unmarshal(value, &items); err != nil {
		return nil, errors.Wrap(err, repository.ErrCartCorrupt.Error())
	}

	for i, item := range items {
		if item.Product.ID == "" {
			return nil, errors.Wrapf(repository.ErrCartCorrupt, "item %d has no product id", i)
		}
		if item.Quantity < 1 {
			return nil, errors.Wrapf(repository.ErrCartCorrupt, "item %d has quantity %d", i, item.Quantity)
		}
	}

	return items, nil
}

// persist writes the full cart state after a successful mutation. Storage
// failures are logged and swallowed: the in-memory cart stays authoritative
// for the session even if durability degrades.
func (s *cartService) persist(ctx context.Context) {
	value, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Warn("Serializing cart failed, skipping persistence",
			slog.Any("error", err),
		)

		return
	}

	if err := s.storage.Save(ctx, value); err != nil {
		s.logger.Warn("Persisting cart failed, in-memory cart remains authoritative",
			slog.Any("error", err),
		)
	}
}

func (s *cartService) Add(ctx context.Context, productID string, weight entity.WeightTier, quantity int) error {
	if quantity < 1 {
		return domainerrors.ErrInvalidQuantity
	}

	product, ok := s.catalog.ProductByID(productID)
	if !ok {
		return domainerrors.ErrProductNotFound.WithDetails("product id: " + productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Merge onto an existing (product id, weight) line. The unit price is
	// not recomputed: it reflects the price at original add time even if the
	// catalog changed mid-session.
	incoming := entity.LineItem{Product: product, Weight: weight}
	for i := range s.items {
		if s.items[i].SameKey(incoming) {
			s.items[i].Quantity += quantity
			s.persist(ctx)

			return nil
		}
	}

	multiplier, ok := s.catalog.Multiplier(weight)
	if !ok {
		return domainerrors.ErrUnknownWeightTier.WithDetails("weight: " + string(weight))
	}

	s.items = append(s.items, entity.LineItem{
		Product:   product,
		Weight:    weight,
		Quantity:  quantity,
		UnitPrice: pricing.Price(product.BasePrice, multiplier),
	})
	s.persist(ctx)

	return nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, index, newQuantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return domainerrors.ErrIndexOutOfRange
	}

	if newQuantity <= 0 {
		s.removeAt(index)
	} else {
		s.items[index].Quantity = newQuantity
	}
	s.persist(ctx)

	return nil
}

func (s *cartService) Remove(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return domainerrors.ErrIndexOutOfRange
	}

	s.removeAt(index)
	s.persist(ctx)

	return nil
}

// removeAt deletes the line at index preserving the relative order of the
// rest. Caller holds the lock and has validated index.
func (s *cartService) removeAt(index int) {
	s.items = append(s.items[:index], s.items[index+1:]...)
}

func (s *cartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist(ctx)

	return nil
}

func (s *cartService) Snapshot() []entity.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.LineItem, len(s.items))
	copy(out, s.items)

	return out
}

func (s *cartService) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return pricing.CartTotal(s.items)
}
