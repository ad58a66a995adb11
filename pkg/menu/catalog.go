// Package menu holds the shop's price list: categories → items →
// variants → prices. The catalog is immutable configuration, loaded once
// at startup.
package menu

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("not found in menu")

// Catalog is the loaded price list. Slices keep definition order for
// presentation; maps resolve the stable IDs minted at load time, so a
// button press is never resolved by live position in the list.
type Catalog struct {
	categories []*Category
	byID       map[string]*Category
}

type Category struct {
	ID    string
	Name  string
	items []*Item
	byID  map[string]*Item
}

type Item struct {
	ID       string
	Name     string
	variants []*Variant
	byID     map[string]*Variant
}

type Variant struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// VariantSpec, ItemSpec and CategorySpec mirror the menu.yaml layout.
// Lists (not maps) are used throughout so the file's order survives
// parsing.
type VariantSpec struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

type ItemSpec struct {
	Name     string        `yaml:"name"`
	Variants []VariantSpec `yaml:"variants"`
}

type CategorySpec struct {
	Name  string     `yaml:"name"`
	Items []ItemSpec `yaml:"items"`
}

type fileSpec struct {
	Categories []CategorySpec `yaml:"categories"`
}

// Load reads the menu file at path and builds the catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read menu file: %w", err)
	}
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("can't parse menu file: %w", err)
	}
	return New(spec.Categories)
}

// New builds a catalog from specs, minting an ID per entry. IDs are
// deterministic for a given menu and short enough for Telegram callback
// data (64-byte limit).
func New(specs []CategorySpec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, errors.New("menu has no categories")
	}
	c := &Catalog{byID: make(map[string]*Category)}
	for ci, cs := range specs {
		if cs.Name == "" {
			return nil, fmt.Errorf("category %d has no name", ci+1)
		}
		cat := &Category{
			ID:   fmt.Sprintf("c%d", ci+1),
			Name: cs.Name,
			byID: make(map[string]*Item),
		}
		if len(cs.Items) == 0 {
			return nil, fmt.Errorf("category %q has no items", cs.Name)
		}
		for ii, is := range cs.Items {
			if is.Name == "" {
				return nil, fmt.Errorf("item %d in category %q has no name", ii+1, cs.Name)
			}
			item := &Item{
				ID:   fmt.Sprintf("%s-i%d", cat.ID, ii+1),
				Name: is.Name,
				byID: make(map[string]*Variant),
			}
			if len(is.Variants) == 0 {
				return nil, fmt.Errorf("item %q has no variants", is.Name)
			}
			for vi, vs := range is.Variants {
				price := decimal.NewFromFloat(vs.Price)
				if !price.IsPositive() {
					return nil, fmt.Errorf("variant %q of %q has non-positive price", vs.Name, is.Name)
				}
				v := &Variant{
					ID:    fmt.Sprintf("%s-v%d", item.ID, vi+1),
					Name:  vs.Name,
					Price: price,
				}
				item.variants = append(item.variants, v)
				item.byID[v.ID] = v
			}
			cat.items = append(cat.items, item)
			cat.byID[item.ID] = item
		}
		c.categories = append(c.categories, cat)
		c.byID[cat.ID] = cat
	}
	return c, nil
}

// Categories returns all categories in definition order.
func (c *Catalog) Categories() []*Category {
	return c.categories
}

// Category resolves a category by its stable ID.
func (c *Catalog) Category(id string) (*Category, error) {
	cat, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	return cat, nil
}

// Items returns a category's items in definition order.
func (c *Catalog) Items(categoryID string) ([]*Item, error) {
	cat, err := c.Category(categoryID)
	if err != nil {
		return nil, err
	}
	return cat.items, nil
}

// Item resolves an item under a category by stable IDs.
func (c *Catalog) Item(categoryID, itemID string) (*Item, error) {
	cat, err := c.Category(categoryID)
	if err != nil {
		return nil, err
	}
	item, ok := cat.byID[itemID]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", itemID, ErrNotFound)
	}
	return item, nil
}

// Variants returns an item's variants in definition order.
func (c *Catalog) Variants(categoryID, itemID string) ([]*Variant, error) {
	item, err := c.Item(categoryID, itemID)
	if err != nil {
		return nil, err
	}
	return item.variants, nil
}

// Variant resolves a variant (and with it the price) by stable IDs.
func (c *Catalog) Variant(categoryID, itemID, variantID string) (*Variant, error) {
	item, err := c.Item(categoryID, itemID)
	if err != nil {
		return nil, err
	}
	v, ok := item.byID[variantID]
	if !ok {
		return nil, fmt.Errorf("variant %q: %w", variantID, ErrNotFound)
	}
	return v, nil
}
