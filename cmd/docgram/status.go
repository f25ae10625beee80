package main

import "fmt"

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	count, err := deps.Store.Count(deps.Ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "%d documents posted\n", count)
	return nil
}
