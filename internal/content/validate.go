package content

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid content")

// Validate checks the document. All problems are reported together.
func (p *Portfolio) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(p.Profile.FirstName) == "" {
		add("profile: first_name is required")
	}
	if p.Profile.Email != "" && !strings.Contains(p.Profile.Email, "@") {
		add("profile: email %q is malformed", p.Profile.Email)
	}

	for i, l := range p.Links {
		if l.Label == "" {
			add("links[%d]: label is required", i)
		}
		if !IsExternal(l.Href) && !strings.HasPrefix(l.Href, "mailto:") {
			add("links[%d]: href %q must be http(s) or mailto", i, l.Href)
		}
	}

	for i, e := range p.Experience {
		if strings.TrimSpace(e.Company) == "" {
			add("experience[%d]: company is required", i)
		}
		if len(e.Duties) == 0 {
			add("experience[%d] (%s): at least one duty is required", i, e.Company)
		}
	}

	for i, e := range p.Education {
		if strings.TrimSpace(e.School) == "" {
			add("education[%d]: school is required", i)
		}
		if len(e.Highlights) == 0 {
			add("education[%d] (%s): at least one highlight is required", i, e.School)
		}
	}

	featured := 0
	for i, pr := range p.Projects {
		if strings.TrimSpace(pr.Title) == "" {
			add("projects[%d]: title is required", i)
		}
		if !IsExternal(pr.Link) {
			add("projects[%d] (%s): link %q must be an absolute http(s) URL", i, pr.Title, pr.Link)
		}
		if !slices.Contains(Palette, pr.Color) {
			add("projects[%d] (%s): unknown color %q", i, pr.Title, pr.Color)
		}
		if pr.Featured {
			featured++
		}
	}
	if featured > 1 {
		add("projects: at most one project may be featured, got %d", featured)
	}

	for i, c := range p.Certifications {
		if !slices.Contains(Palette, c.Color) {
			add("certifications[%d] (%s): unknown color %q", i, c.Label, c.Color)
		}
	}

	for _, n := range NavLinks {
		if !slices.Contains(Sections, n.Anchor) {
			add("nav: anchor %q has no matching section", n.Anchor)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
