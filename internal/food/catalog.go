package food

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

//go:embed catalog.json
var defaultCatalog []byte

var validate = validator.New()

var (
	// ErrInvalidCatalog wraps every catalog validation failure.
	ErrInvalidCatalog = errors.New("invalid catalog")

	errUnsupportedSource = errors.New("unsupported catalog source")
)

// Catalog is the static, read-only collection of food items. It is built once
// at startup and never modified.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// NewCatalog validates items and builds a Catalog preserving their order.
func NewCatalog(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	copy(c.items, items)

	for i, item := range c.items {
		if err := validate.Struct(item); err != nil {
			return nil, fmt.Errorf("%w: item %d (%q): %v", ErrInvalidCatalog, i, item.ID, err)
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, item.ID)
		}
		c.byID[item.ID] = i
	}
	return c, nil
}

// Items returns the items in catalog order. The slice is a copy; callers may
// reorder it freely.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the item with the given id.
func (c *Catalog) Get(id string) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Load builds the catalog from path. An empty path selects the embedded
// default catalog; ".json" files are decoded as a JSON array and ".db",
// ".sqlite" or ".sqlite3" files are read with LoadSQLite.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		defer f.Close()
		return DecodeJSON(f)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedSource, path)
	}
}

// DefaultCatalog returns the catalog bundled with the binary.
func DefaultCatalog() (*Catalog, error) {
	return DecodeJSON(bytes.NewReader(defaultCatalog))
}

// DecodeJSON reads a JSON array of items.
func DecodeJSON(r io.Reader) (*Catalog, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(items)
}
