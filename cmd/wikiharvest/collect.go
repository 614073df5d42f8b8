package main

import (
	"fmt"
	"os"

	"github.com/nausikt/wikiharvest"
	"github.com/nausikt/wikiharvest/config"
)

// Run executes the collect command.
func (c *CollectCmd) Run(deps *Dependencies) error {
	if len(deps.Config.Inputs.SourceLists) == 0 {
		return fmt.Errorf("no source lists configured; add inputs.source_lists to the configuration")
	}

	var sources []wikiharvest.Source
	for _, path := range deps.Config.Inputs.SourceLists {
		parsed, err := readSourceList(path)
		if err != nil {
			return err
		}
		sources = append(sources, parsed...)
	}
	sources = enabledSources(sources, deps.Config.Collect)

	total, err := deps.Orchestrator.CollectAll(deps.Ctx, sources)
	fmt.Fprintf(deps.Stdout, "collected %d resources from %d sources\n", total, len(sources))
	return err
}

// readSourceList parses one source-list file.
func readSourceList(path string) ([]wikiharvest.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source list %q: %w", path, err)
	}
	defer f.Close()
	return wikiharvest.ParseSourceList(f)
}

// enabledSources drops sources whose collection bucket is disabled.
func enabledSources(sources []wikiharvest.Source, toggles config.Collect) []wikiharvest.Source {
	var kept []wikiharvest.Source
	for _, src := range sources {
		switch src.Kind {
		case wikiharvest.SourceKindGit:
			if !toggles.Git {
				continue
			}
		case wikiharvest.SourceKindSSO:
			if !toggles.SSO {
				continue
			}
		default:
			if !toggles.Links {
				continue
			}
		}
		kept = append(kept, src)
	}
	return kept
}
