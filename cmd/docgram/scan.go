package main

import (
	"fmt"

	"github.com/mkowalik/docgram"
)

// Run executes the scan command: discover candidates the way a run would,
// mark the ones already posted, and publish nothing.
func (c *ScanCmd) Run(deps *Dependencies) error {
	for _, provider := range deps.Providers {
		refs, err := provider.Source.Discover(deps.Ctx, provider.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "skip %s %s: %s\n",
				provider.Source.Name(), provider.URL, docgram.ErrorMessage(err))
			continue
		}
		if len(refs) == 0 {
			continue
		}

		fmt.Fprintf(deps.Stdout, "%s %s: %d candidates\n", provider.Source.Name(), provider.URL, len(refs))
		for _, ref := range refs {
			marker := ""
			if normalized, err := docgram.NormalizeLocator(ref.Locator); err == nil {
				posted, err := deps.Store.Contains(deps.Ctx, docgram.Identity(normalized))
				if err != nil {
					return err
				}
				if posted {
					marker = " (posted)"
				}
			}
			fmt.Fprintf(deps.Stdout, "  %s  %s%s\n", ref.Locator, ref.Title, marker)
		}
		return nil
	}

	return docgram.Errorf(docgram.ENOTFOUND, "no listing source yielded any candidates")
}
