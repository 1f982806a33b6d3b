package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	companies := make([]string, len(p.Experience))
	for i, e := range p.Experience {
		companies[i] = e.Company
	}
	assert.Equal(t, []string{"ADP", "UPS", "Amazon", "IATSE"}, companies)
	assert.Len(t, p.Education, 2)
	assert.Len(t, p.Projects, 4)
	assert.Len(t, p.Skills, 10)
	assert.True(t, p.Projects[3].Featured)
	assert.Equal(t, "Bayden", p.Profile.FirstName)
}

func TestProject_CategorySlug(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Data Analysis", "/data-analysis"},
		{"Side Project", "/side-project"},
		{"Web", "/web"},
		{"Cloud Data Analytics", "/cloud-data-analytics"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Project{Category: tt.category}.CategorySlug(), tt.category)
	}
}

func TestEducation_Credential(t *testing.T) {
	assert.Equal(t, "Master of Science in Analytics", Education{Degree: "Master of Science", Field: "Analytics"}.Credential())
	assert.Equal(t, "Certificate", Education{Degree: "Certificate"}.Credential())
}

func TestLink_External(t *testing.T) {
	assert.True(t, Link{Href: "https://github.com/traysir"}.External())
	assert.False(t, Link{Href: "mailto:someone@example.com"}.External())
	assert.False(t, Link{Href: "#work"}.External())
}

func TestNavLinks_ResolveToSections(t *testing.T) {
	for _, n := range NavLinks {
		assert.Contains(t, Sections, n.Anchor)
		assert.Equal(t, "#"+n.Anchor, n.Href())
	}
}

func TestParse_ReportsAllProblems(t *testing.T) {
	doc := []byte(`
profile:
  first_name: ""
experience:
  - company: ""
    duties: []
projects:
  - title: Broken
    link: /relative
    color: chartreuse
`)
	_, err := Parse(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	msg := err.Error()
	assert.Contains(t, msg, "first_name is required")
	assert.Contains(t, msg, "experience[0]: company is required")
	assert.Contains(t, msg, "at least one duty")
	assert.Contains(t, msg, "absolute http(s) URL")
	assert.Contains(t, msg, `unknown color "chartreuse"`)
}

func TestParse_RejectsTwoFeatured(t *testing.T) {
	doc := []byte(`
profile:
  first_name: A
projects:
  - {title: One, link: "https://a.example", color: rose, featured: true}
  - {title: Two, link: "https://b.example", color: rose, featured: true}
`)
	_, err := Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most one project may be featured")
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("profile: [unterminated"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile:\n  first_name: Zach\nskills: [Go]\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Zach", p.Profile.FirstName)
	assert.Equal(t, []string{"Go"}, p.Skills)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading content file")
}
