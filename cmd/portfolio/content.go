package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/traysir/portfolio/internal/content"
)

var lookupEnv = os.Getenv

func newContentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "content",
		Short: "Validate the portfolio document and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContent(cmd)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func printSummary(w io.Writer, c *content.Portfolio) {
	fmt.Fprintf(w, "%s %s (%s)\n", c.Profile.FirstName, c.Profile.LastName, c.Profile.Initials)
	fmt.Fprintf(w, "  experience:     %d\n", len(c.Experience))
	fmt.Fprintf(w, "  education:      %d\n", len(c.Education))
	fmt.Fprintf(w, "  projects:       %d\n", len(c.Projects))
	fmt.Fprintf(w, "  skills:         %d\n", len(c.Skills))
	fmt.Fprintf(w, "  certifications: %d\n", len(c.Certifications))
	fmt.Fprintf(w, "  links:          %d\n", len(c.Links))
	for _, p := range c.Projects {
		if p.Featured {
			fmt.Fprintf(w, "  featured:       %s\n", p.Title)
		}
	}
	fmt.Fprintln(w, "ok")
}
