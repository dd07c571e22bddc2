package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/milk9111/waveconfigurator/catalog"
	"github.com/milk9111/waveconfigurator/document"
	"github.com/milk9111/waveconfigurator/levels"
	"github.com/milk9111/waveconfigurator/script"
	"github.com/milk9111/waveconfigurator/wave"
)

type options struct {
	in           string
	sample       string
	out          string
	catalogDir   string
	count        int
	defaultEnemy string
	scriptPath   string
	level        int
	speed        float64
	print        bool

	set map[string]bool
}

func main() {
	var o options
	flag.StringVar(&o.in, "in", "", "level file to start from (default: a new level)")
	flag.StringVar(&o.sample, "sample", "", "embedded sample level to start from, e.g. level_1.json")
	flag.StringVar(&o.out, "out", "", "write the result to this file")
	flag.StringVar(&o.catalogDir, "catalog", "", "directory with catalog.yaml/settings.yaml overrides")
	flag.IntVar(&o.count, "count", 0, "set the number of wave slots")
	flag.StringVar(&o.defaultEnemy, "default-enemy", "", "change every cell's enemy type to this normal type")
	flag.StringVar(&o.scriptPath, "script", "", "tengo script applied to every cell")
	flag.IntVar(&o.level, "level", 0, "set the level number")
	flag.Float64Var(&o.speed, "speed", 0, "set the level speed")
	flag.BoolVar(&o.print, "print", false, "print the resulting waves")
	flag.Parse()

	o.set = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	doc, err := run(o)
	if err != nil {
		log.Fatal(err)
	}
	if o.print {
		printLevel(os.Stdout, doc)
	}
	if o.out != "" {
		if err := doc.Save(o.out); err != nil {
			log.Fatal(err)
		}
		log.Printf("saved %d waves to %s", doc.Count(), o.out)
	}
}

func run(o options) (*document.Document, error) {
	cat, err := catalog.LoadCatalog(o.catalogDir)
	if err != nil {
		return nil, err
	}
	settings, err := catalog.LoadSettings(o.catalogDir, cat)
	if err != nil {
		return nil, err
	}
	doc, err := document.New(cat, settings)
	if err != nil {
		return nil, err
	}

	switch {
	case o.in != "":
		if err := doc.Load(o.in); err != nil {
			return nil, err
		}
	case o.sample != "":
		lvl, err := levels.LoadLevelFromFS(o.sample)
		if err != nil {
			return nil, err
		}
		if err := doc.LoadLevel(lvl); err != nil {
			return nil, err
		}
	}

	if o.set["count"] {
		if err := doc.SetCount(o.count); err != nil {
			return nil, err
		}
	}
	if o.defaultEnemy != "" {
		if err := doc.SetDefaultEnemy(wave.EnemyType(o.defaultEnemy)); err != nil {
			return nil, err
		}
	}
	if o.scriptPath != "" {
		tr, err := script.CompileFile(o.scriptPath)
		if err != nil {
			return nil, err
		}
		if err := doc.ApplyTransform(tr); err != nil {
			return nil, err
		}
	}
	if o.set["level"] {
		doc.SetLevelNumber(o.level)
	}
	if o.set["speed"] {
		if err := doc.SetLevelSpeed(o.speed); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func printLevel(w io.Writer, doc *document.Document) {
	meta := doc.Meta()
	fmt.Fprintf(w, "level %d  speed %g  waves %d  default enemy %s\n", meta.LevelNumber, meta.LevelSpeed, doc.Count(), doc.DefaultEnemy())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tROW\tCOL\tKIND\tENEMY\tELEMENTS\tCOUNT\tHEALTH")
	for slot, c := range doc.Cells() {
		row, col := slot/doc.Columns(), slot%doc.Columns()
		kind := "standard"
		if c.IsMultiple {
			kind = "boss"
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\t%d\t%d\n", slot, row, col, kind, c.EnemyType, joinElements(c.Elements), c.Count, c.Health)
	}
	tw.Flush()
}

func joinElements(es []wave.ElementType) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = string(e)
	}
	return strings.Join(parts, ",")
}
