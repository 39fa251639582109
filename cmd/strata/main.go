package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/strata/internal/catalog"
	"github.com/funvibe/strata/internal/config"
	"github.com/funvibe/strata/internal/engine"
)

const usage = `usage: strata [--config FILE] <command> [args]

commands:
  types              list published types
  methods <type>     list the methods and operators of a type
  export <file.db>   write the type table to a SQLite catalog
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	configPath := ""
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch {
		case args[0] == "--config" || args[0] == "-config":
			if len(args) < 2 {
				fmt.Fprint(stderr, usage)
				return 2
			}
			configPath = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--config="):
			configPath = strings.TrimPrefix(args[0], "--config=")
			args = args[1:]
		case args[0] == "-h" || args[0] == "--help":
			fmt.Fprint(stdout, usage)
			return 0
		default:
			fmt.Fprintf(stderr, "unknown flag %s\n%s", args[0], usage)
			return 2
		}
	}
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	eng, err := engine.New(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	p := painter{on: useColor(stdout)}
	switch args[0] {
	case "types":
		err = listTypes(stdout, p, eng)
	case "methods":
		if len(args) != 2 {
			fmt.Fprint(stderr, usage)
			return 2
		}
		err = listMethods(stdout, p, eng, args[1])
	case "export":
		if len(args) != 2 {
			fmt.Fprint(stderr, usage)
			return 2
		}
		err = export(context.Background(), stdout, eng, args[1])
	case "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads path, or the nearest strata.yaml above the working
// directory, or falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return config.Default(), nil
		}
		path = found
	}
	return config.LoadConfig(path)
}

func listTypes(w io.Writer, p painter, eng *engine.Engine) error {
	for _, s := range eng.Registry().Strategies() {
		size, err := s.InitSize()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s %s\n",
			p.paint(ansiDim, fmt.Sprintf("%5d", uint16(s.ID()))),
			p.paint(ansiBold, fmt.Sprintf("%-10s", s.Name())),
			fmt.Sprintf("size=%d methods=%d", size, s.Methods().Len()))
	}
	return nil
}

func listMethods(w io.Writer, p painter, eng *engine.Engine, name string) error {
	s, err := eng.Registry().LookupName(name)
	if err != nil {
		return err
	}
	for _, e := range s.Methods().Entries() {
		fmt.Fprintf(w, "%s%s -> %s\n", p.paint(ansiCyan, e.Name), e.Params, e.Return)
	}
	return nil
}

func export(ctx context.Context, w io.Writer, eng *engine.Engine, path string) error {
	records, err := catalog.Snapshot(eng.Registry())
	if err != nil {
		return err
	}
	db, err := catalog.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := catalog.Export(ctx, db, records); err != nil {
		return err
	}
	fmt.Fprintf(w, "exported %d types to %s\n", len(records), path)
	return nil
}
