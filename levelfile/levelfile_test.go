package levelfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/waveconfigurator/grid"
	"github.com/milk9111/waveconfigurator/wave"
)

var fallback = wave.NewStandard("Red", "Ghost", 1)

func buildStore(t *testing.T, n int) *grid.Store {
	t.Helper()
	s := grid.New(13)
	if err := s.Resize(n, func() wave.Cell { return fallback }); err != nil {
		t.Fatalf("resize: %v", err)
	}
	for slot := 0; slot < n; slot++ {
		var c wave.Cell
		if slot%5 == 4 {
			c = wave.NewBoss([]wave.ElementType{"Cyan", "Red", "Blue"}, "Lich_Boss", 2+slot%6)
		} else {
			c = wave.NewStandard([]wave.ElementType{"Red", "Green", "Blue"}[slot%3], "Skeleton", 1+slot%20)
		}
		row, col := s.Position(slot)
		if err := s.Set(row, col, c); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	return s
}

func TestFlattenRebuildRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 13, 14, 40} {
		orig := buildStore(t, n)
		meta := Meta{LevelNumber: 7, LevelSpeed: 1.25}

		lvl := Flatten(orig, n, meta)
		if len(lvl.EnemiesLevelConfigs) != n {
			t.Fatalf("n=%d: expected %d records, got %d", n, n, len(lvl.EnemiesLevelConfigs))
		}

		data, err := Encode(lvl)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		decoded, err := Decode(data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		rebuilt, count, gotMeta, err := Rebuild(decoded, 13, fallback)
		if err != nil {
			t.Fatalf("rebuild: %v", err)
		}
		if count != n || gotMeta != meta {
			t.Fatalf("n=%d: got count=%d meta=%+v", n, count, gotMeta)
		}
		for slot := 0; slot < n; slot++ {
			want, _ := orig.Get(orig.Position(slot))
			got, err := rebuilt.Get(rebuilt.Position(slot))
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if !got.Equal(want) {
				t.Fatalf("slot %d: got %v, want %v", slot, got, want)
			}
			for i := range want.Elements {
				if got.Elements[i] != want.Elements[i] {
					t.Fatalf("slot %d: element order not preserved: %v vs %v", slot, got.Elements, want.Elements)
				}
			}
		}
	}
}

func TestRebuildFourteenPadsSecondRow(t *testing.T) {
	orig := buildStore(t, 14)
	rebuilt, count, _, err := Rebuild(Flatten(orig, 14, Meta{}), 13, fallback)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if count != 14 || rebuilt.Rows() != 2 || rebuilt.Columns() != 13 {
		t.Fatalf("expected 14 slots in 2x13, got %d in %dx%d", count, rebuilt.Rows(), rebuilt.Columns())
	}
	want, _ := orig.Get(1, 0)
	got, _ := rebuilt.Get(1, 0)
	if !got.Equal(want) {
		t.Fatalf("slot 13: got %v, want %v", got, want)
	}
	for slot := 14; slot < 26; slot++ {
		c, _ := rebuilt.Get(rebuilt.Position(slot))
		if !c.Equal(fallback) {
			t.Fatalf("slot %d: expected default padding, got %v", slot, c)
		}
	}
}

func TestRebuildEmpty(t *testing.T) {
	for name, doc := range map[string]string{
		"missing": `{"levelNumber": 2, "levelSpeed": 1}`,
		"null":    `{"levelNumber": 2, "levelSpeed": 1, "enemiesLevelConfigs": null}`,
		"empty":   `{"levelNumber": 2, "levelSpeed": 1, "enemiesLevelConfigs": []}`,
	} {
		t.Run(name, func(t *testing.T) {
			lvl, err := Decode([]byte(doc))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			store, count, meta, err := Rebuild(lvl, 13, fallback)
			if err != nil {
				t.Fatalf("rebuild: %v", err)
			}
			if count != 0 || store.Rows() != 0 || meta.LevelNumber != 2 {
				t.Fatalf("expected empty store, got count=%d rows=%d meta=%+v", count, store.Rows(), meta)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"not_json":       `{"levelNumber":`,
		"wrong_shape":    `[1, 2, 3]`,
		"wrong_type":     `{"levelNumber": "three"}`,
		"records_object": `{"enemiesLevelConfigs": {"a": 1}}`,
		"no_elements":    `{"enemiesLevelConfigs": [{"elementTypes": [], "enemyType": "Ghost", "count": 1, "health": 1}]}`,
		"zero_count":     `{"enemiesLevelConfigs": [{"elementTypes": ["Red"], "enemyType": "Ghost", "count": 0, "health": 1}]}`,
		"boss_one_elem":  `{"enemiesLevelConfigs": [{"elementTypes": ["Red"], "enemyType": "Wraith_Boss", "count": 1, "health": 2, "isMultiple": true}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(doc)); !errors.Is(err, ErrDeserialization) {
				t.Fatalf("expected ErrDeserialization, got %v", err)
			}
		})
	}
}

func TestRebuildRejectsInvalidRecord(t *testing.T) {
	lvl := Level{EnemiesLevelConfigs: []Record{{ElementTypes: nil, EnemyType: "Ghost", Count: 1, Health: 1}}}
	if _, _, _, err := Rebuild(lvl, 13, fallback); !errors.Is(err, ErrDeserialization) {
		t.Fatalf("expected ErrDeserialization, got %v", err)
	}
}

func TestEncodeFieldNames(t *testing.T) {
	store := buildStore(t, 1)
	data, err := Encode(Flatten(store, 1, Meta{LevelNumber: 1, LevelSpeed: 2}))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, field := range []string{`"levelNumber"`, `"levelSpeed"`, `"enemiesLevelConfigs"`, `"elementTypes"`, `"enemyType"`, `"count"`, `"isMultiple"`, `"health"`} {
		if !strings.Contains(string(data), field) {
			t.Fatalf("encoded level is missing %s:\n%s", field, data)
		}
	}

	empty, err := Encode(Level{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(empty), `"enemiesLevelConfigs": []`) {
		t.Fatalf("expected an empty record list, got %s", empty)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := DefaultPath(filepath.Join(dir, "levels"), 4)
	lvl := Flatten(buildStore(t, 5), 5, Meta{LevelNumber: 4, LevelSpeed: 0.5})

	if err := Save(path, lvl); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.LevelNumber != 4 || len(got.EnemiesLevelConfigs) != 5 {
		t.Fatalf("unexpected level %+v", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the level file, found %d entries", len(entries))
	}

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrDeserialization) {
		t.Fatalf("expected ErrDeserialization, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil || errors.Is(err, ErrDeserialization) {
		t.Fatalf("expected a plain read error for a missing file, got %v", err)
	}
}
