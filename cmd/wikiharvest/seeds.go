package main

import "fmt"

// Run executes the seeds command.
func (c *SeedsCmd) Run(deps *Dependencies) error {
	seeds, err := deps.Seeds.DiscoverSeeds(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	for _, seed := range seeds {
		fmt.Fprintln(deps.Stdout, seed)
	}
	return nil
}
