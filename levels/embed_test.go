package levels

import (
	"testing"

	"github.com/milk9111/waveconfigurator/catalog"
)

func TestSampleLevelsLoad(t *testing.T) {
	cat, err := catalog.LoadCatalog("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	names := Names()
	if len(names) < 2 || names[0] != "level_1.json" {
		t.Fatalf("unexpected sample list %v", names)
	}
	for _, name := range names {
		lvl, err := LoadLevelFromFS(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(lvl.EnemiesLevelConfigs) == 0 {
			t.Fatalf("%s: no records", name)
		}
		for i, r := range lvl.EnemiesLevelConfigs {
			if err := cat.CheckCell(r.Cell()); err != nil {
				t.Fatalf("%s record %d: %v", name, i, err)
			}
		}
	}
}

func TestLoadMissingLevel(t *testing.T) {
	if _, err := LoadLevelFromFS("nope.json"); err == nil {
		t.Fatalf("expected an error for a missing sample")
	}
}
