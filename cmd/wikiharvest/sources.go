package main

import "fmt"

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	sources, err := readSourceList(c.File)
	if err != nil {
		return err
	}

	for _, src := range sources {
		fmt.Fprintf(deps.Stdout, "%-5s %s\n", src.Kind, src.URL)
	}
	return nil
}
