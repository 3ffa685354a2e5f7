package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/loclink"
)

// Run executes the sitemap command.
func (c *SitemapCmd) Run(deps *Dependencies) error {
	var filter *loclink.URLFilter
	if c.Locale != "" {
		f, err := loclink.LocaleFilter(c.BaseURL, c.Locale)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", loclink.ErrorMessage(err))
			return err
		}
		filter = f
	}

	// Compile user patterns early so a typo fails before any fetching
	if len(c.Filter) > 0 || len(c.Exclude) > 0 {
		if filter == nil {
			filter = &loclink.URLFilter{}
		}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
				return err
			}
			filter.Include = append(filter.Include, re)
		}
		for _, pattern := range c.Exclude {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid exclude pattern %q: %v\n", pattern, err)
				return err
			}
			filter.Exclude = append(filter.Exclude, re)
		}
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.BaseURL, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", loclink.ErrorMessage(err))
		return err
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}

	return nil
}
