package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/traysir/portfolio/internal/content"
	"github.com/traysir/portfolio/internal/page"
)

var accents = map[string]lipgloss.AdaptiveColor{
	"violet":  {Light: "#7C3AED", Dark: "#A78BFA"},
	"emerald": {Light: "#059669", Dark: "#34D399"},
	"amber":   {Light: "#D97706", Dark: "#FBBF24"},
	"rose":    {Light: "#E11D48", Dark: "#FB7185"},
	"sky":     {Light: "#0284C7", Dark: "#38BDF8"},
}

type styles struct {
	title    lipgloss.Style
	heading  lipgloss.Style
	dim      lipgloss.Style
	stat     lipgloss.Style
	focused  lipgloss.Style
	nav      lipgloss.Style
	scrolled lipgloss.Style
	featured lipgloss.Style
}

func newStyles() styles {
	emerald := accents["emerald"]
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		heading:  lipgloss.NewStyle().Bold(true).Foreground(emerald).MarginTop(1),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}),
		stat:     lipgloss.NewStyle().Foreground(emerald),
		focused:  lipgloss.NewStyle().Bold(true).Reverse(true),
		nav:      lipgloss.NewStyle().Bold(true),
		scrolled: lipgloss.NewStyle().Bold(true).Underline(true),
		featured: lipgloss.NewStyle().Bold(true).Foreground(accents["rose"]),
	}
}

func accent(color string) lipgloss.Style {
	c, ok := accents[color]
	if !ok {
		c = accents["emerald"]
	}
	return lipgloss.NewStyle().Foreground(c)
}

func (m Model) header(v page.View) string {
	c := m.page.Content()
	face := "(•‿•)"
	if v.Surprised {
		face = "(°o°)"
	}
	menu := "≡"
	if v.MenuOpen {
		menu = "×"
	}
	left := fmt.Sprintf("● %s/%s", c.Profile.Initials, v.Clock)
	line := fmt.Sprintf("%s  %s  %s", left, face, menu)
	if v.Scrolled {
		return m.st.scrolled.Render(line)
	}
	return m.st.nav.Render(line)
}

func (m Model) menuLine(v page.View) string {
	if !v.MenuOpen {
		return ""
	}
	parts := make([]string, len(content.NavLinks))
	for i, l := range content.NavLinks {
		parts[i] = fmt.Sprintf("%d %s", i+1, l.Label)
	}
	return m.st.dim.Render(strings.Join(parts, "  "))
}

func (m Model) helpLine(v page.View) string {
	return m.st.dim.Render(fmt.Sprintf(
		"j/k move · enter toggle · tab switch list · m menu · i icon · q quit   pointer %s,%s",
		formatCoord(v.Pointer.X), formatCoord(v.Pointer.Y)))
}

func formatCoord(f float64) string {
	return fmt.Sprintf("%g", f)
}

// render lays out the scrollable body and reports the line each section
// starts on.
func (m Model) render(v page.View) (string, map[string]int) {
	c := m.page.Content()
	width := max(20, m.width-2)
	wrap := lipgloss.NewStyle().Width(width)

	var lines []string
	sections := make(map[string]int, len(content.Sections))
	add := func(block string) {
		lines = append(lines, strings.Split(block, "\n")...)
	}
	section := func(anchor, title string) {
		sections[anchor] = len(lines)
		add(m.st.heading.Render(title))
	}

	add(m.st.dim.Render(">_ " + c.Profile.Availability))
	add(m.st.title.Render(c.Profile.FirstName + " " + c.Profile.LastName))
	add(wrap.Render(c.Profile.Tagline))
	add(m.st.dim.Inherit(wrap).Render(c.Profile.Summary))

	section("work", "Work History")
	for i, e := range c.Experience {
		m.entry(add, wrap, listExperience, i, e.Company, e.Stat, e.Role, e.Period,
			"Responsibilities & Achievements:", e.Duties, v.Experience.IsExpanded(i))
	}

	section("education", "Education")
	for i, e := range c.Education {
		period := e.Period
		if e.Location != "" {
			period += " · " + e.Location
		}
		m.entry(add, wrap, listEducation, i, e.School, e.Stat, e.Credential(), period,
			"", e.Highlights, v.Education.IsExpanded(i))
	}

	section("projects", "Projects")
	for _, p := range c.Projects {
		title := accent(p.Color).Bold(true).Render(p.Title)
		if p.Featured {
			title += " " + m.st.featured.Render("✨ Featured Pick")
		}
		add(title + m.st.dim.Render("  "+p.CategorySlug()+"  "+p.Year))
		add(wrap.Render(p.Description))
		add(m.st.dim.Render(strings.Join(p.Tags, " · ") + "  " + p.Link))
		add("")
	}

	section("skills", "Skills & Tools")
	add(wrap.Render(c.Profile.SkillsBlurb))
	for _, cert := range c.Certifications {
		add(accent(cert.Color).Render("● ") + cert.Label)
	}
	add(wrap.Render(strings.Join(c.Skills, " · ")))

	section("contact", c.Profile.ContactHeading)
	add(wrap.Render(c.Profile.ContactBlurb))
	for _, l := range c.Links {
		add(fmt.Sprintf("%s  %s", l.Label, m.st.dim.Render(l.Href)))
	}
	add(c.Profile.Email)
	add(c.Profile.Phone)
	add("")
	add(m.st.dim.Render(c.Profile.Footer))

	return strings.Join(lines, "\n"), sections
}

func (m Model) entry(add func(string), wrap lipgloss.Style, l list, i int,
	label, stat, subtitle, period, heading string, bullets []string, expanded bool) {
	chevron := "▸"
	if expanded {
		chevron = "▾"
	}
	name := m.st.title.Render(label)
	if l == m.list && i == m.focus {
		name = m.st.focused.Render(label)
	}
	add(fmt.Sprintf("%s %s  %s", chevron, name, m.st.stat.Render(stat)))
	add("  " + subtitle + m.st.dim.Render("  "+period))
	if !expanded {
		return
	}
	if heading != "" {
		add("  " + heading)
	}
	for _, b := range bullets {
		add(wrap.Render("    • " + b))
	}
	add(m.st.dim.Render("    " + label))
}
