// Package levels embeds sample wave levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/milk9111/waveconfigurator/levelfile"
)

//go:embed *.json
var LevelsFS embed.FS

func LoadLevelFromFS(name string) (levelfile.Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return levelfile.Level{}, fmt.Errorf("read level: %w", err)
	}
	lvl, err := levelfile.Decode(data)
	if err != nil {
		return levelfile.Level{}, fmt.Errorf("decode level %s: %w", name, err)
	}
	return lvl, nil
}

// Names lists the embedded sample files in name order.
func Names() []string {
	matches, _ := fs.Glob(LevelsFS, "*.json")
	sort.Strings(matches)
	for i, m := range matches {
		matches[i] = path.Base(m)
	}
	return matches
}
