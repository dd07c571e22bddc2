package document

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/waveconfigurator/catalog"
	"github.com/milk9111/waveconfigurator/grid"
	"github.com/milk9111/waveconfigurator/levelfile"
	"github.com/milk9111/waveconfigurator/session"
	"github.com/milk9111/waveconfigurator/wave"
)

func newDoc(t *testing.T) *Document {
	t.Helper()
	cat, err := catalog.LoadCatalog("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	d, err := New(cat, catalog.DefaultSettings())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return d
}

func TestNew(t *testing.T) {
	d := newDoc(t)
	if d.Count() != 1 || d.Rows() != 1 || d.Columns() != 13 {
		t.Fatalf("unexpected shape count=%d rows=%d cols=%d", d.Count(), d.Rows(), d.Columns())
	}
	if d.Meta().LevelSpeed != 1 || d.DefaultEnemy() != "Ghost" {
		t.Fatalf("unexpected defaults %+v %s", d.Meta(), d.DefaultEnemy())
	}
	c, err := d.Cell(0)
	if err != nil {
		t.Fatalf("cell: %v", err)
	}
	if !c.Equal(wave.NewStandard("Red", "Ghost", 1)) {
		t.Fatalf("unexpected default cell %v", c)
	}
}

func TestSetCount(t *testing.T) {
	cases := []struct {
		in, count, rows int
	}{
		{5, 5, 1},
		{14, 14, 2},
		{0, 0, 0},
		{-3, 0, 0},
		{1000, 300, 24},
	}
	for _, c := range cases {
		d := newDoc(t)
		if err := d.SetCount(c.in); err != nil {
			t.Fatalf("set count %d: %v", c.in, err)
		}
		if d.Count() != c.count || d.Rows() != c.rows {
			t.Fatalf("SetCount(%d): count=%d rows=%d, want %d/%d", c.in, d.Count(), d.Rows(), c.count, c.rows)
		}
		if len(d.Cells()) != c.count {
			t.Fatalf("SetCount(%d): %d logical cells", c.in, len(d.Cells()))
		}
	}
}

func TestSetCountCancelsSessionOnRemovedSlot(t *testing.T) {
	d := newDoc(t)
	_ = d.SetCount(20)
	s, err := d.Open(15)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = d.SetCount(10)
	if !s.Closed() || d.ActiveSession() != nil {
		t.Fatalf("session on removed slot should be cancelled")
	}

	s, _ = d.Open(3)
	_ = d.SetCount(5)
	if s.Closed() {
		t.Fatalf("session on a surviving slot should stay open")
	}
}

func TestSetDefaultEnemy(t *testing.T) {
	d := newDoc(t)
	_ = d.SetCount(3)
	s, _ := d.Open(1)
	_ = s.SetMultiple(true)
	_ = s.ToggleElement("Red")
	_ = s.ToggleElement("Blue")
	_ = s.PickEnemy("Lich_Boss")
	if err := d.Apply(s); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if err := d.SetDefaultEnemy("Lich_Boss"); !errors.Is(err, ErrInvalidEnemy) {
		t.Fatalf("expected ErrInvalidEnemy, got %v", err)
	}
	if err := d.SetDefaultEnemy("Nope"); !errors.Is(err, ErrInvalidEnemy) {
		t.Fatalf("expected ErrInvalidEnemy, got %v", err)
	}
	if err := d.SetDefaultEnemy("Skeleton"); err != nil {
		t.Fatalf("set default enemy: %v", err)
	}
	for i, c := range d.Cells() {
		if c.EnemyType != "Skeleton" {
			t.Fatalf("slot %d: enemy %s", i, c.EnemyType)
		}
	}
	boss, _ := d.Cell(1)
	if !boss.IsMultiple || len(boss.Elements) != 2 {
		t.Fatalf("boss cell lost its shape: %v", boss)
	}

	_ = d.SetCount(20)
	added, _ := d.Cell(19)
	if added.EnemyType != "Skeleton" {
		t.Fatalf("new cells should use the default enemy, got %s", added.EnemyType)
	}
}

func TestOpenApply(t *testing.T) {
	d := newDoc(t)
	_ = d.SetCount(14)
	if _, err := d.Open(14); !errors.Is(err, grid.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}

	first, _ := d.Open(0)
	s, err := d.Open(13)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !first.Closed() || d.ActiveSession() != s {
		t.Fatalf("only the latest session should be active")
	}
	if err := d.Apply(first); !errors.Is(err, session.ErrClosed) {
		t.Fatalf("expected ErrClosed for a stale session, got %v", err)
	}

	_ = s.PickElement("Cyan")
	_ = s.SetCount(9)
	if err := d.Apply(s); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, _ := d.Cell(13)
	if !got.Equal(wave.NewStandard("Cyan", "Ghost", 9)) {
		t.Fatalf("unexpected committed cell %v", got)
	}
	if d.ActiveSession() != nil {
		t.Fatalf("committed session should not stay active")
	}
}

func TestApplyScript(t *testing.T) {
	d := newDoc(t)
	_ = d.SetCount(4)
	if err := d.ApplyScript([]byte(`cell.count = cell.count + 2
cell.elements = ["Blue"]`)); err != nil {
		t.Fatalf("apply script: %v", err)
	}
	for i, c := range d.Cells() {
		if !c.Equal(wave.NewStandard("Blue", "Ghost", 3)) {
			t.Fatalf("slot %d: %v", i, c)
		}
	}

	bad := []struct {
		name string
		src  string
		want error
	}{
		{"unknown_element", `cell.elements = ["Purple"]`, catalog.ErrUnknownTag},
		{"count_over_limit", `cell.count = 50`, ErrOutOfLimits},
	}
	for _, c := range bad {
		t.Run(c.name, func(t *testing.T) {
			before := d.Cells()
			if err := d.ApplyScript([]byte(c.src)); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			for i, cell := range d.Cells() {
				if !cell.Equal(before[i]) {
					t.Fatalf("slot %d changed by a failed script", i)
				}
			}
		})
	}

	if err := d.ApplyScript([]byte(`cell.count = `)); err == nil {
		t.Fatalf("expected a compile error")
	}
}

func TestReset(t *testing.T) {
	d := newDoc(t)
	_ = d.SetCount(8)
	_ = d.SetDefaultEnemy("Bat")
	d.SetLevelNumber(4)
	_ = d.SetLevelSpeed(2.5)
	s, _ := d.Open(0)
	_ = s.PickElement("Green")
	_ = d.Apply(s)
	open, _ := d.Open(2)

	if err := d.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if d.Count() != 1 || d.Meta() != (levelfile.Meta{}) || d.DefaultEnemy() != "Ghost" {
		t.Fatalf("unexpected state after reset: count=%d meta=%+v enemy=%s", d.Count(), d.Meta(), d.DefaultEnemy())
	}
	if !open.Closed() {
		t.Fatalf("reset should cancel the open session")
	}
	c, _ := d.Cell(0)
	if !c.Equal(wave.NewStandard("Red", "Ghost", 1)) {
		t.Fatalf("unexpected cell after reset %v", c)
	}
}

func TestSetLevelSpeedRejectsNonFinite(t *testing.T) {
	d := newDoc(t)
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := d.SetLevelSpeed(v); !errors.Is(err, ErrInvalidSpeed) {
			t.Fatalf("SetLevelSpeed(%v) = %v, want ErrInvalidSpeed", v, err)
		}
	}
	if d.Meta().LevelSpeed != 1 {
		t.Fatalf("rejected speeds should not be stored, got %v", d.Meta().LevelSpeed)
	}
	if err := d.Save(filepath.Join(t.TempDir(), "speed.json")); err != nil {
		t.Fatalf("save after rejected speeds: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	d := newDoc(t)
	_ = d.SetCount(14)
	d.SetLevelNumber(3)
	_ = d.SetLevelSpeed(1.5)
	s, _ := d.Open(13)
	_ = s.SetMultiple(true)
	_ = s.ToggleElement("Yellow")
	_ = s.ToggleElement("Black")
	_ = s.PickEnemy("Golem_Boss")
	_ = s.SetHealth(6)
	if err := d.Apply(s); err != nil {
		t.Fatalf("apply: %v", err)
	}

	path := filepath.Join(t.TempDir(), "level_3.json")
	if err := d.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	other := newDoc(t)
	if err := other.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if other.Count() != 14 || other.Rows() != 2 || other.Meta() != d.Meta() {
		t.Fatalf("loaded count=%d rows=%d meta=%+v", other.Count(), other.Rows(), other.Meta())
	}
	want := d.Cells()
	for i, c := range other.Cells() {
		if !c.Equal(want[i]) {
			t.Fatalf("slot %d: got %v, want %v", i, c, want[i])
		}
	}
}

func TestLoadFailureKeepsState(t *testing.T) {
	cases := map[string]string{
		"malformed":     `{"levelNumber": `,
		"unknown_enemy": `{"levelNumber": 9, "enemiesLevelConfigs": [{"elementTypes": ["Red"], "enemyType": "Dragon", "count": 1, "health": 1}]}`,
		"unknown_color": `{"levelNumber": 9, "enemiesLevelConfigs": [{"elementTypes": ["Purple"], "enemyType": "Ghost", "count": 1, "health": 1}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			d := newDoc(t)
			_ = d.SetCount(3)
			d.SetLevelNumber(2)
			before := d.Cells()

			if err := d.LoadBytes([]byte(doc)); !errors.Is(err, levelfile.ErrDeserialization) {
				t.Fatalf("expected ErrDeserialization, got %v", err)
			}
			if d.Count() != 3 || d.Meta().LevelNumber != 2 {
				t.Fatalf("failed load changed the document")
			}
			for i, c := range d.Cells() {
				if !c.Equal(before[i]) {
					t.Fatalf("slot %d changed", i)
				}
			}
		})
	}

	d := newDoc(t)
	path := filepath.Join(t.TempDir(), "missing.json")
	if err := d.Load(path); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("load must not create files")
	}
}

func TestCopyPasteCell(t *testing.T) {
	d := newDoc(t)
	_ = d.SetCount(3)
	s, _ := d.Open(0)
	_ = s.PickElement("Cyan")
	_ = s.PickEnemy("Zombie")
	_ = s.SetCount(12)
	_ = d.Apply(s)

	data, err := d.CopyCell(0)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if err := d.PasteCell(2, data); err != nil {
		t.Fatalf("paste: %v", err)
	}
	got, _ := d.Cell(2)
	if !got.Equal(wave.NewStandard("Cyan", "Zombie", 12)) {
		t.Fatalf("unexpected pasted cell %v", got)
	}

	bad := map[string]string{
		"not_json":      `hello`,
		"invalid_cell":  `{"elementTypes": [], "enemyType": "Ghost", "count": 1, "health": 1}`,
		"unknown_enemy": `{"elementTypes": ["Red"], "enemyType": "Dragon", "count": 1, "health": 1}`,
		"over_limit":    `{"elementTypes": ["Red"], "enemyType": "Ghost", "count": 99, "health": 1}`,
	}
	for name, data := range bad {
		t.Run(name, func(t *testing.T) {
			if err := d.PasteCell(1, []byte(data)); !errors.Is(err, levelfile.ErrDeserialization) {
				t.Fatalf("expected ErrDeserialization, got %v", err)
			}
		})
	}
	if err := d.PasteCell(3, data); !errors.Is(err, grid.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func reloadedCatalog(t *testing.T, enemies ...catalog.EnemySpec) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.NewCatalog([]catalog.ElementSpec{{Name: "Red"}, {Name: "Blue"}}, enemies)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func TestReplaceCatalog(t *testing.T) {
	d := newDoc(t)
	_ = d.SetCount(14)
	_ = d.SetDefaultEnemy("Slime")
	s, _ := d.Open(0)

	cat := reloadedCatalog(t,
		catalog.EnemySpec{Name: "Ghost", Category: catalog.CategoryNormal},
		catalog.EnemySpec{Name: "Wraith_Boss", Category: catalog.CategoryBoss},
	)
	settings := catalog.DefaultSettings()
	settings.Columns = 5

	if err := d.ReplaceCatalog(cat, settings); !errors.Is(err, catalog.ErrUnknownTag) {
		t.Fatalf("stored Slime cells should block the reload, got %v", err)
	}
	if s.Closed() || d.Columns() != 13 || d.DefaultEnemy() != "Slime" {
		t.Fatalf("a rejected reload should leave the document untouched")
	}

	s.Cancel()
	_ = d.SetDefaultEnemy("Ghost")
	before := d.Cells()
	s, _ = d.Open(0)
	if err := d.ReplaceCatalog(cat, settings); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !s.Closed() {
		t.Fatalf("replacing the catalog should cancel open sessions")
	}
	if d.Columns() != 5 || d.Rows() != 3 || d.Count() != 14 {
		t.Fatalf("unexpected layout %dx%d count=%d", d.Rows(), d.Columns(), d.Count())
	}
	for i, c := range d.Cells() {
		if !c.Equal(before[i]) {
			t.Fatalf("slot %d changed across reload", i)
		}
	}

	path := filepath.Join(t.TempDir(), "reloaded.json")
	if err := d.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := d.Load(path); err != nil {
		t.Fatalf("a level saved after a reload should load back: %v", err)
	}
	if d.Count() != 14 {
		t.Fatalf("round trip changed the count to %d", d.Count())
	}

	bad := catalog.DefaultSettings()
	bad.DefaultElement = "Green"
	if err := d.ReplaceCatalog(cat, bad); !errors.Is(err, catalog.ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestReplaceCatalogDefaultEnemy(t *testing.T) {
	cases := []struct {
		name    string
		enemies []catalog.EnemySpec
		want    wave.EnemyType
	}{
		{
			name: "kept",
			enemies: []catalog.EnemySpec{
				{Name: "Ghost", Category: catalog.CategoryNormal},
				{Name: "Slime", Category: catalog.CategoryNormal},
				{Name: "Wraith_Boss", Category: catalog.CategoryBoss},
			},
			want: "Slime",
		},
		{
			name: "fallback",
			enemies: []catalog.EnemySpec{
				{Name: "Ghost", Category: catalog.CategoryNormal},
				{Name: "Wraith_Boss", Category: catalog.CategoryBoss},
			},
			want: "Ghost",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := newDoc(t)
			_ = d.SetCount(14)
			_ = d.SetDefaultEnemy("Slime")
			if c.want != "Slime" {
				// Slime must leave the grid before a catalog without it is accepted.
				_ = d.SetDefaultEnemy("Ghost")
				d.defaultEnemy = "Slime"
			}
			settings := catalog.DefaultSettings()
			settings.Columns = 5
			if err := d.ReplaceCatalog(reloadedCatalog(t, c.enemies...), settings); err != nil {
				t.Fatalf("replace: %v", err)
			}
			if d.DefaultEnemy() != c.want {
				t.Fatalf("default enemy = %s, want %s", d.DefaultEnemy(), c.want)
			}
			// Slot 14 is padding left by the relayout; growing into it exposes it.
			_ = d.SetCount(15)
			pad, err := d.Cell(14)
			if err != nil {
				t.Fatalf("cell: %v", err)
			}
			if pad.EnemyType != c.want {
				t.Fatalf("relayout padding uses %s, want %s", pad.EnemyType, c.want)
			}
		})
	}
}
