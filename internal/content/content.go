// Package content holds the hand-authored records the portfolio renders.
// Records are loaded once and never mutated afterwards.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultDoc []byte

// Profile is the copy that is not part of any list.
type Profile struct {
	FirstName      string `yaml:"first_name"`
	LastName       string `yaml:"last_name"`
	Initials       string `yaml:"initials"`
	Availability   string `yaml:"availability"`
	Tagline        string `yaml:"tagline"`
	Summary        string `yaml:"summary"`
	Location       string `yaml:"location"`
	Email          string `yaml:"email"`
	Phone          string `yaml:"phone"`
	Icon           string `yaml:"icon"`
	IconSurprised  string `yaml:"icon_surprised"`
	Footer         string `yaml:"footer"`
	FooterTagline  string `yaml:"footer_tagline"`
	Snippet        string `yaml:"snippet"`
	SkillsBlurb    string `yaml:"skills_blurb"`
	ContactHeading string `yaml:"contact_heading"`
	ContactBlurb   string `yaml:"contact_blurb"`
}

// Link is an outbound contact link.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// External reports whether the link leaves the site and needs to open in a
// new browsing context.
func (l Link) External() bool {
	return IsExternal(l.Href)
}

// Experience is one employer entry.
type Experience struct {
	Company string   `yaml:"company"`
	Role    string   `yaml:"role"`
	Period  string   `yaml:"period"`
	Stat    string   `yaml:"stat"`
	Logo    string   `yaml:"logo"`
	Duties  []string `yaml:"duties"`
}

// Education is one school entry.
type Education struct {
	School     string   `yaml:"school"`
	Degree     string   `yaml:"degree"`
	Field      string   `yaml:"field"`
	Period     string   `yaml:"period"`
	Location   string   `yaml:"location"`
	Stat       string   `yaml:"stat"`
	Logo       string   `yaml:"logo"`
	Highlights []string `yaml:"highlights"`
}

// Credential is the "Degree in Field" line shown under the school.
func (e Education) Credential() string {
	if e.Field == "" {
		return e.Degree
	}
	return e.Degree + " in " + e.Field
}

// Project is one showcase card.
type Project struct {
	Title       string   `yaml:"title"`
	Year        string   `yaml:"year"`
	Category    string   `yaml:"category"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Link        string   `yaml:"link"`
	Color       string   `yaml:"color"`
	Featured    bool     `yaml:"featured"`
}

// CategorySlug renders the category as a path-like label, e.g.
// "Data Analysis" becomes "/data-analysis".
func (p Project) CategorySlug() string {
	return "/" + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p.Category)), " ", "-")
}

// Certification is a labelled bullet in the skills panel.
type Certification struct {
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// Portfolio is the full document.
type Portfolio struct {
	Profile        Profile         `yaml:"profile"`
	Links          []Link          `yaml:"links"`
	Experience     []Experience    `yaml:"experience"`
	Education      []Education     `yaml:"education"`
	Projects       []Project       `yaml:"projects"`
	Skills         []string        `yaml:"skills"`
	Certifications []Certification `yaml:"certifications"`
}

// NavLink is an in-page anchor shown in the navigation bar.
type NavLink struct {
	Anchor string
	Label  string
}

// Href is the fragment link for the anchor.
func (n NavLink) Href() string {
	return "#" + n.Anchor
}

// Sections lists the identifiers of the rendered sections, in page order.
var Sections = []string{"work", "education", "projects", "skills", "contact"}

// NavLinks is the navigation bar's link list.
var NavLinks = []NavLink{
	{Anchor: "work", Label: "/work"},
	{Anchor: "education", Label: "/education"},
	{Anchor: "projects", Label: "/projects"},
	{Anchor: "skills", Label: "/skills"},
	{Anchor: "contact", Label: "/contact"},
}

// Palette is the set of accent color tokens the stylesheet defines.
var Palette = []string{"violet", "emerald", "amber", "rose", "sky"}

// IsExternal reports whether href points outside the page over http(s).
func IsExternal(href string) bool {
	return strings.HasPrefix(href, "https://") || strings.HasPrefix(href, "http://")
}

// Parse decodes and validates a portfolio document.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Default returns the embedded portfolio document.
func Default() (*Portfolio, error) {
	return Parse(defaultDoc)
}

// Load reads the document at path, or the embedded one when path is empty.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}
	return Parse(data)
}
