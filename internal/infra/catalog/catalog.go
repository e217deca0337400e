// Package catalog loads the static product catalog from configuration.
package catalog

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"boulevard/config"
	"boulevard/internal/domain/entity"
	"boulevard/internal/domain/repository"
)

type staticCatalog struct {
	products    []entity.Product
	byID        map[string]entity.Product
	weights     []entity.WeightOption
	multipliers map[entity.WeightTier]decimal.Decimal
}

// catalogFile mirrors the YAML layout of the catalog file.
type catalogFile struct {
	Products []struct {
		ID         string `koanf:"id"`
		Name       string `koanf:"name"`
		RoastLevel string `koanf:"roastLevel"`
		Category   string `koanf:"category"`
		Image      string `koanf:"image"`
		BasePrice  string `koanf:"basePrice"`
	} `koanf:"products"`
	Weights []struct {
		Tier       string `koanf:"tier"`
		Multiplier string `koanf:"multiplier"`
	} `koanf:"weights"`
}

// New loads the catalog file named by the config. Malformed entries are
// configuration mistakes and fail startup.
func New(cfg *config.Config) (repository.Catalog, error) {
	koanfInstance := koanf.New(".")
	if err := koanfInstance.Load(file.Provider(cfg.Catalog.Path), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read catalog file %s failed", cfg.Catalog.Path)
	}

	var raw catalogFile
	if err := koanfInstance.Unmarshal("", &raw); err != nil {
		return nil, errors.Wrap(err, "unmarshal catalog failed")
	}

	return build(raw)
}

func build(raw catalogFile) (repository.Catalog, error) {
	if len(raw.Products) == 0 {
		return nil, errors.New("catalog has no products")
	}
	if len(raw.Weights) == 0 {
		return nil, errors.New("catalog has no weight tiers")
	}

	cat := &staticCatalog{
		byID:        make(map[string]entity.Product, len(raw.Products)),
		multipliers: make(map[entity.WeightTier]decimal.Decimal, len(raw.Weights)),
	}

	for _, p := range raw.Products {
		if p.ID == "" {
			return nil, errors.New("catalog product with empty id")
		}
		if _, exists := cat.byID[p.ID]; exists {
			return nil, errors.Errorf("duplicate catalog product id %q", p.ID)
		}

		basePrice, err := decimal.NewFromString(p.BasePrice)
		if err != nil {
			return nil, errors.Wrapf(err, "product %q has invalid base price %q", p.ID, p.BasePrice)
		}
		if !basePrice.IsPositive() {
			return nil, errors.Errorf("product %q base price must be positive, got %s", p.ID, basePrice)
		}

		product := entity.Product{
			ID:         p.ID,
			Name:       p.Name,
			RoastLevel: entity.RoastLevel(p.RoastLevel),
			Category:   entity.Category(p.Category),
			Image:      p.Image,
			BasePrice:  basePrice,
		}
		cat.products = append(cat.products, product)
		cat.byID[p.ID] = product
	}

	one := decimal.NewFromInt(1)
	for _, w := range raw.Weights {
		tier := entity.WeightTier(w.Tier)
		if tier == "" {
			return nil, errors.New("catalog weight tier with empty name")
		}
		if _, exists := cat.multipliers[tier]; exists {
			return nil, errors.Errorf("duplicate catalog weight tier %q", tier)
		}

		multiplier, err := decimal.NewFromString(w.Multiplier)
		if err != nil {
			return nil, errors.Wrapf(err, "weight tier %q has invalid multiplier %q", tier, w.Multiplier)
		}
		if multiplier.LessThan(one) {
			return nil, errors.Errorf("weight tier %q multiplier must be >= 1, got %s", tier, multiplier)
		}

		cat.weights = append(cat.weights, entity.WeightOption{Tier: tier, Multiplier: multiplier})
		cat.multipliers[tier] = multiplier
	}

	return cat, nil
}

func (c *staticCatalog) Products() []entity.Product {
	out := make([]entity.Product, len(c.products))
	copy(out, c.products)

	return out
}

func (c *staticCatalog) ProductByID(id string) (entity.Product, bool) {
	product, ok := c.byID[id]

	return product, ok
}

func (c *staticCatalog) WeightTiers() []entity.WeightOption {
	out := make([]entity.WeightOption, len(c.weights))
	copy(out, c.weights)

	return out
}

func (c *staticCatalog) Multiplier(tier entity.WeightTier) (decimal.Decimal, bool) {
	multiplier, ok := c.multipliers[tier]

	return multiplier, ok
}
