package main

import "fmt"

// Run executes the schedule command.
func (c *ScheduleCmd) Run(deps *Dependencies) error {
	var n int
	var err error
	switch c.Bucket {
	case "links":
		n, err = deps.Orchestrator.ScheduleLinks(deps.Ctx)
	case "git":
		n, err = deps.Orchestrator.ScheduleGit(deps.Ctx)
	case "sso":
		n, err = deps.Orchestrator.ScheduleSSO(deps.Ctx)
	default:
		return fmt.Errorf("unknown bucket %q", c.Bucket)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "re-collected %d resources from %s sources\n", n, c.Bucket)
	return nil
}
