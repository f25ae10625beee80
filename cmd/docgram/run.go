package main

import (
	"fmt"

	"github.com/mkowalik/docgram"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	summary, err := deps.Pipeline.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgram.ErrorMessage(err))
		return err
	}

	for _, result := range summary.Results {
		if result.Committed() {
			fmt.Fprintf(deps.Stdout, "published %s (%s)\n", result.Ref.Title, result.RemoteID)
		}
	}
	fmt.Fprintf(deps.Stdout, "%d discovered, %d published, %d skipped (source: %s)\n",
		summary.Discovered, summary.Published, summary.Skipped, summary.Source)
	return nil
}
