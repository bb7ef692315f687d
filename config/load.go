package config

import (
	"flag"
	"strings"
)

// Load resolves Settings from defaults, then an optional parameter file
// (paramFile, "" to skip), then CLI flags parsed from args, in that
// precedence order (spec.md §6). paramFile is read as YAML when it has a
// .yaml/.yml extension, otherwise as the flat key=value grammar.
func Load(paramFile string, args []string) (Settings, error) {
	s := DefaultSettings()

	if paramFile != "" {
		if strings.HasSuffix(paramFile, ".yaml") || strings.HasSuffix(paramFile, ".yml") {
			if err := loadYAMLFile(paramFile, &s); err != nil {
				return s, err
			}
		} else {
			kv, err := parseFlatFile(paramFile)
			if err != nil {
				return s, err
			}
			if err := applyFlat(kv, &s); err != nil {
				return s, err
			}
		}
	}

	fs := flag.NewFlagSet("ailscvrp", flag.ContinueOnError)
	bound := registerFlags(fs, &s)
	if err := fs.Parse(args); err != nil {
		return s, err
	}
	if err := applyFlags(fs, bound, &s); err != nil {
		return s, err
	}

	s.resolve()
	return s, nil
}
