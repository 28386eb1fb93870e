package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/kbukum/catalogq/component"
	"github.com/kbukum/catalogq/logger"
)

// ComponentName is the registry name of the catalog component.
const ComponentName = "catalog"

// Config selects the products a run queries. A nil Products list means the
// built-in sample; an empty, non-nil list is an empty catalog.
type Config struct {
	Products []Product `yaml:"products" mapstructure:"products"`
}

// ApplyDefaults fills Products with Sample() when unset.
func (c *Config) ApplyDefaults() {
	if c.Products == nil {
		c.Products = Sample()
	}
}

// Validate checks every configured product.
func (c *Config) Validate() error {
	return Validate(c.Products)
}

// Catalog holds the immutable product list for one run. It validates and
// freezes its input on Start or on the first call to Products.
type Catalog struct {
	*component.Lazy
	source     []Product
	products   []Product
	categories int
	log        *logger.Logger
}

// New creates a catalog over a private copy of products.
func New(products []Product) *Catalog {
	c := &Catalog{
		source: slices.Clone(products),
		log:    logger.Get(ComponentName),
	}
	c.Lazy = component.NewLazy(ComponentName, c.load).
		WithCloser(func() error {
			c.products = nil
			return nil
		})
	return c
}

// NewFromConfig creates a catalog from cfg, applying defaults.
func NewFromConfig(cfg Config) *Catalog {
	cfg.ApplyDefaults()
	return New(cfg.Products)
}

func (c *Catalog) load(_ context.Context) error {
	if err := Validate(c.source); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.source))
	for _, p := range c.source {
		seen[p.Category] = struct{}{}
	}
	c.products = c.source
	c.categories = len(seen)
	c.log.Debug("Catalog loaded", logger.Fields(logger.FieldCount, len(c.products), "categories", c.categories))
	return nil
}

// Start implements component.Component.
func (c *Catalog) Start(ctx context.Context) error {
	return c.Initialize(ctx)
}

// Stop implements component.Component.
func (c *Catalog) Stop(_ context.Context) error {
	return c.Close()
}

// Describe implements component.Describable.
func (c *Catalog) Describe() component.Description {
	return component.Description{
		Name:    "Product Catalog",
		Type:    "catalog",
		Details: fmt.Sprintf("%d products, %d categories", len(c.source), c.categoryCount()),
	}
}

func (c *Catalog) categoryCount() int {
	if c.IsInitialized() {
		return c.categories
	}
	seen := make(map[string]struct{})
	for _, p := range c.source {
		seen[p.Category] = struct{}{}
	}
	return len(seen)
}

// Products returns a copy of the validated product list in catalog order.
func (c *Catalog) Products(ctx context.Context) ([]Product, error) {
	if err := c.Initialize(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(c.products), nil
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.source)
}
