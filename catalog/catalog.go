package catalog

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/milk9111/waveconfigurator/wave"
)

// BossSuffix is the naming convention boss enemy types follow. Categories are
// read from the explicit tag; the suffix is only cross-checked.
const BossSuffix = "_Boss"

var (
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")
	ErrUnknownTag     = errors.New("catalog: unknown tag")
)

type Category string

const (
	CategoryNormal Category = "normal"
	CategoryBoss   Category = "boss"
)

type ElementSpec struct {
	Name  wave.ElementType `yaml:"name"`
	Color *YAMLColor       `yaml:"color"`
}

type EnemySpec struct {
	Name     wave.EnemyType `yaml:"name"`
	Category Category       `yaml:"category"`
}

// Catalog is the enumeration of element and enemy types. Use NewCatalog or
// LoadCatalog; the zero value has no types.
type Catalog struct {
	Elements []ElementSpec `yaml:"elements"`
	Enemies  []EnemySpec   `yaml:"enemies"`

	elementIndex map[wave.ElementType]int
	categories   map[wave.EnemyType]Category
	normal       []wave.EnemyType
	boss         []wave.EnemyType
}

// LoadCatalog reads catalog.yaml from dir (or the embedded default) and
// validates it.
func LoadCatalog(dir string) (*Catalog, error) {
	spec, err := LoadSpec[Catalog](dir, CatalogFile)
	if err != nil {
		return nil, err
	}
	return NewCatalog(spec.Elements, spec.Enemies)
}

func NewCatalog(elements []ElementSpec, enemies []EnemySpec) (*Catalog, error) {
	c := &Catalog{
		Elements:     append([]ElementSpec(nil), elements...),
		Enemies:      append([]EnemySpec(nil), enemies...),
		elementIndex: make(map[wave.ElementType]int, len(elements)),
		categories:   make(map[wave.EnemyType]Category, len(enemies)),
	}

	if len(c.Elements) == 0 {
		return nil, fmt.Errorf("%w: no element types", ErrInvalidCatalog)
	}
	for i, e := range c.Elements {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: element %d has no name", ErrInvalidCatalog, i)
		}
		if _, dup := c.elementIndex[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate element %q", ErrInvalidCatalog, e.Name)
		}
		c.elementIndex[e.Name] = i
	}

	for i, e := range c.Enemies {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: enemy %d has no name", ErrInvalidCatalog, i)
		}
		if _, dup := c.categories[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate enemy %q", ErrInvalidCatalog, e.Name)
		}
		suffixed := strings.HasSuffix(string(e.Name), BossSuffix)
		switch e.Category {
		case CategoryNormal:
			if suffixed {
				return nil, fmt.Errorf("%w: enemy %q is named as a boss but tagged %s", ErrInvalidCatalog, e.Name, e.Category)
			}
			c.normal = append(c.normal, e.Name)
		case CategoryBoss:
			if !suffixed {
				return nil, fmt.Errorf("%w: boss enemy %q lacks the %s suffix", ErrInvalidCatalog, e.Name, BossSuffix)
			}
			c.boss = append(c.boss, e.Name)
		default:
			return nil, fmt.Errorf("%w: enemy %q has category %q, want %s or %s", ErrInvalidCatalog, e.Name, e.Category, CategoryNormal, CategoryBoss)
		}
		c.categories[e.Name] = e.Category
	}

	if len(c.normal) == 0 {
		return nil, fmt.Errorf("%w: no normal enemy types", ErrInvalidCatalog)
	}
	if len(c.boss) == 0 {
		return nil, fmt.Errorf("%w: no boss enemy types", ErrInvalidCatalog)
	}
	return c, nil
}

// Categories partitions the enemy enumeration into normal and boss types, both
// in declaration order. The returned slices are copies.
func (c *Catalog) Categories() (normal, boss []wave.EnemyType) {
	return append([]wave.EnemyType(nil), c.normal...), append([]wave.EnemyType(nil), c.boss...)
}

func (c *Catalog) NormalTypes() []wave.EnemyType {
	return append([]wave.EnemyType(nil), c.normal...)
}

func (c *Catalog) BossTypes() []wave.EnemyType {
	return append([]wave.EnemyType(nil), c.boss...)
}

// EnemyTypes returns every enemy type in declaration order.
func (c *Catalog) EnemyTypes() []wave.EnemyType {
	out := make([]wave.EnemyType, len(c.Enemies))
	for i, e := range c.Enemies {
		out[i] = e.Name
	}
	return out
}

func (c *Catalog) ElementTypes() []wave.ElementType {
	out := make([]wave.ElementType, len(c.Elements))
	for i, e := range c.Elements {
		out[i] = e.Name
	}
	return out
}

func (c *Catalog) CategoryOf(t wave.EnemyType) (Category, bool) {
	cat, ok := c.categories[t]
	return cat, ok
}

func (c *Catalog) IsBoss(t wave.EnemyType) bool {
	return c.categories[t] == CategoryBoss
}

func (c *Catalog) IsNormal(t wave.EnemyType) bool {
	return c.categories[t] == CategoryNormal
}

func (c *Catalog) HasEnemy(t wave.EnemyType) bool {
	_, ok := c.categories[t]
	return ok
}

func (c *Catalog) HasElement(e wave.ElementType) bool {
	_, ok := c.elementIndex[e]
	return ok
}

// ElementColor returns the display color for e, gray when e is unknown or has
// no color configured.
func (c *Catalog) ElementColor(e wave.ElementType) color.Color {
	i, ok := c.elementIndex[e]
	if !ok || c.Elements[i].Color == nil || c.Elements[i].Color.Color == nil {
		return color.Gray{Y: 128}
	}
	return c.Elements[i].Color.Color
}

// CheckCell reports tags in cell that the catalog does not know.
func (c *Catalog) CheckCell(cell wave.Cell) error {
	for _, e := range cell.Elements {
		if !c.HasElement(e) {
			return fmt.Errorf("%w: element %q", ErrUnknownTag, e)
		}
	}
	if !c.HasEnemy(cell.EnemyType) {
		return fmt.Errorf("%w: enemy %q", ErrUnknownTag, cell.EnemyType)
	}
	return nil
}
