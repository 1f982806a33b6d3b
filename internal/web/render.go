package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/traysir/portfolio/internal/content"
	"github.com/traysir/portfolio/internal/page"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	kindExperience = "experience"
	kindEducation  = "education"
)

// surprisedGlyph stands in for the surprised icon when no image is on disk.
const surprisedGlyph = "°o°"

type iconView struct {
	Src       string // empty renders Text instead
	Text      string
	Surprised bool
}

type navView struct {
	Scrolled bool
	MenuOpen bool
	Initials string
	Clock    string
	Links    []content.NavLink
	Icon     iconView
}

type followerView struct {
	Style template.CSS
}

type entryView struct {
	Kind     string
	Index    int
	Label    string
	Logo     string // empty renders the text label instead
	Stat     string
	Subtitle string
	Period   string
	Location string
	Heading  string
	Bullets  []string
	Expanded bool
}

type listView struct {
	Kind    string
	Entries []entryView
}

type pageView struct {
	Profile        content.Profile
	Nav            navView
	Follower       followerView
	Experience     listView
	Education      listView
	Projects       []content.Project
	Skills         []string
	Certifications []content.Certification
	Links          []content.Link
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"external": content.IsExternal,
	}
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return tmpl, nil
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// renderFragment executes a named template into a string, for pushing over
// the event stream.
func (s *Server) renderFragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

func (s *Server) logo(path string) string {
	if path == "" || s.assets == nil || !s.assets.Exists(path) {
		return ""
	}
	return path
}

func (s *Server) iconView(surprised bool) iconView {
	v := iconView{Text: s.content.Profile.Initials, Surprised: surprised}
	if surprised {
		v.Src = s.logo(s.content.Profile.IconSurprised)
		v.Text = surprisedGlyph
	}
	if v.Src == "" {
		v.Src = s.logo(s.content.Profile.Icon)
	}
	return v
}

func (s *Server) navView(v page.View) navView {
	return navView{
		Scrolled: v.Scrolled,
		MenuOpen: v.MenuOpen,
		Initials: s.content.Profile.Initials,
		Clock:    v.Clock,
		Links:    content.NavLinks,
		Icon:     s.iconView(v.Surprised),
	}
}

func followerViewOf(v page.View) followerView {
	return followerView{Style: template.CSS(v.Pointer.FollowerStyle())}
}

func (s *Server) experienceView(v page.View) listView {
	entries := make([]entryView, len(s.content.Experience))
	for i, e := range s.content.Experience {
		entries[i] = entryView{
			Kind:     kindExperience,
			Index:    i,
			Label:    e.Company,
			Logo:     s.logo(e.Logo),
			Stat:     e.Stat,
			Subtitle: e.Role,
			Period:   e.Period,
			Heading:  "Responsibilities & Achievements:",
			Bullets:  e.Duties,
			Expanded: v.Experience.IsExpanded(i),
		}
	}
	return listView{Kind: kindExperience, Entries: entries}
}

func (s *Server) educationView(v page.View) listView {
	entries := make([]entryView, len(s.content.Education))
	for i, e := range s.content.Education {
		entries[i] = entryView{
			Kind:     kindEducation,
			Index:    i,
			Label:    e.School,
			Logo:     s.logo(e.Logo),
			Stat:     e.Stat,
			Subtitle: e.Credential(),
			Period:   e.Period,
			Location: e.Location,
			Bullets:  e.Highlights,
			Expanded: v.Education.IsExpanded(i),
		}
	}
	return listView{Kind: kindEducation, Entries: entries}
}

func (s *Server) pageView(v page.View) pageView {
	return pageView{
		Profile:        s.content.Profile,
		Nav:            s.navView(v),
		Follower:       followerViewOf(v),
		Experience:     s.experienceView(v),
		Education:      s.educationView(v),
		Projects:       s.content.Projects,
		Skills:         s.content.Skills,
		Certifications: s.content.Certifications,
		Links:          s.content.Links,
	}
}
