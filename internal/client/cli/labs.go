package cli

import (
	"context"
	"fmt"

	"github.com/nexabag/deltamobile/internal/client/services"
)

// Labs shows the labs catalogue, or the detail page of a single item when a
// slug is given. Content is refetched on every visit.
func (a *App) Labs(ctx context.Context, slug string) error {
	content, err := a.labs.Fetch(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load labs content")
		return err
	}
	a.view = ViewLabs

	if slug == "" {
		fmt.Fprintln(a.out, "Projects:")
		for _, p := range content.Projects {
			fmt.Fprintf(a.out, "  %s [%s] %s\n", p.Slug, p.Stage, p.Title)
		}
		fmt.Fprintln(a.out, "Experiments:")
		for _, e := range content.Experiments {
			fmt.Fprintf(a.out, "  %s [%s] %s\n", e.Slug, e.Stage, e.Title)
		}
		return nil
	}

	item, ok := services.Lookup(content, slug)
	if !ok {
		fmt.Fprintf(a.out, "No labs item with slug %q\n", slug)
		return nil
	}

	fmt.Fprintf(a.out, "%s (%s)\n", item.Title, item.Stage)
	fmt.Fprintln(a.out, item.Description)
	if item.Detail != nil {
		if item.Detail.LongDescription != "" {
			fmt.Fprintln(a.out, item.Detail.LongDescription)
		}
		for _, s := range item.Detail.Stack {
			fmt.Fprintf(a.out, "  * %s\n", s)
		}
	}
	for _, l := range item.Links {
		fmt.Fprintf(a.out, "  -> %s\n", l.URL)
	}
	return nil
}
