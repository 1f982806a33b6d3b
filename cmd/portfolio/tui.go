package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/traysir/portfolio/internal/content"
	"github.com/traysir/portfolio/internal/page"
	"github.com/traysir/portfolio/internal/tui"
)

var errNotInteractive = errors.New("tui needs an interactive terminal")

func newTUICmd(interactive func() bool) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the portfolio in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive() {
				return errNotInteractive
			}
			c, err := loadContent(cmd)
			if err != nil {
				return err
			}

			p := page.New(c, page.Options{})
			if err := p.Mount(cmd.Context()); err != nil {
				return err
			}
			defer p.Dispose()
			return tui.Run(cmd.Context(), p)
		},
	}
}

// loadContent honors --content, then PORTFOLIO_CONTENT, then the embedded
// document.
func loadContent(cmd *cobra.Command) (*content.Portfolio, error) {
	path, _ := cmd.Flags().GetString("content")
	if path == "" {
		path = lookupEnv("PORTFOLIO_CONTENT")
	}
	return content.Load(path)
}
