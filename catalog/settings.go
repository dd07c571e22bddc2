package catalog

import (
	"errors"
	"fmt"

	"github.com/milk9111/waveconfigurator/wave"
)

var ErrInvalidSettings = errors.New("catalog: invalid settings")

// Settings holds the configurator limits and defaults.
type Settings struct {
	Columns         int              `yaml:"columns"`
	MaxCells        int              `yaml:"max_cells"`
	CountMin        int              `yaml:"count_min"`
	CountMax        int              `yaml:"count_max"`
	BossHealthMin   int              `yaml:"boss_health_min"`
	BossHealthMax   int              `yaml:"boss_health_max"`
	DefaultElement  wave.ElementType `yaml:"default_element"`
	DefaultEnemy    wave.EnemyType   `yaml:"default_enemy"`
	FallbackElement wave.ElementType `yaml:"fallback_element"`
}

// DefaultSettings mirrors the embedded settings.yaml.
func DefaultSettings() Settings {
	return Settings{
		Columns:         13,
		MaxCells:        300,
		CountMin:        1,
		CountMax:        20,
		BossHealthMin:   2,
		BossHealthMax:   8,
		DefaultElement:  "Red",
		DefaultEnemy:    "Ghost",
		FallbackElement: "Red",
	}
}

func LoadSettings(dir string, cat *Catalog) (Settings, error) {
	s, err := LoadSpec[Settings](dir, SettingsFile)
	if err != nil {
		return Settings{}, err
	}
	if err := s.Validate(cat); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate(cat *Catalog) error {
	if s.Columns <= 0 {
		return fmt.Errorf("%w: columns must be positive, got %d", ErrInvalidSettings, s.Columns)
	}
	if s.MaxCells < 0 {
		return fmt.Errorf("%w: max_cells must not be negative, got %d", ErrInvalidSettings, s.MaxCells)
	}
	if s.CountMin < 1 || s.CountMax < s.CountMin {
		return fmt.Errorf("%w: count range [%d, %d]", ErrInvalidSettings, s.CountMin, s.CountMax)
	}
	if s.BossHealthMin < 1 || s.BossHealthMax < s.BossHealthMin {
		return fmt.Errorf("%w: boss health range [%d, %d]", ErrInvalidSettings, s.BossHealthMin, s.BossHealthMax)
	}
	if cat == nil {
		return nil
	}
	if !cat.HasElement(s.DefaultElement) {
		return fmt.Errorf("%w: default_element %q not in catalog", ErrInvalidSettings, s.DefaultElement)
	}
	if !cat.HasElement(s.FallbackElement) {
		return fmt.Errorf("%w: fallback_element %q not in catalog", ErrInvalidSettings, s.FallbackElement)
	}
	if !cat.IsNormal(s.DefaultEnemy) {
		return fmt.Errorf("%w: default_enemy %q is not a normal enemy type", ErrInvalidSettings, s.DefaultEnemy)
	}
	return nil
}

// DefaultCell is the cell used to fill new grid positions.
func (s Settings) DefaultCell(enemy wave.EnemyType) wave.Cell {
	return wave.NewStandard(s.DefaultElement, enemy, 1)
}

// DefaultFactory returns a factory producing DefaultCell(enemy).
func (s Settings) DefaultFactory(enemy wave.EnemyType) func() wave.Cell {
	return func() wave.Cell { return s.DefaultCell(enemy) }
}
