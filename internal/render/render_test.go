package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"atsmatch/internal/types"
)

func sampleResume() types.ResumeContent {
	return types.ResumeContent{
		Name:                 "Jordan Park",
		Email:                "jordan.park@example.com",
		Phone:                "555-010-2233",
		Location:             "Austin, TX",
		Summary:              "Backend engineer focused on distributed systems.",
		TechnicalSkills:      []string{"Kubernetes", "Terraform"},
		ProgrammingLanguages: []string{"Go", "Python"},
		FrameworksTools:      []string{"Kubernetes", "gRPC"},
		WorkExperience: []types.WorkExperience{
			{Title: "Senior Engineer", Company: "Acme Corp", Duration: "2020 - Present", Description: "Built the payments platform."},
		},
		Education: []types.Education{
			{Degree: "BS", Field: "Computer Science", Institution: "UT Austin", Year: "2016"},
		},
		Certifications: []string{"CKA"},
		Projects: []types.Project{
			{Name: "loadgen", Description: "HTTP load generator."},
		},
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format      string
		expectError bool
	}{
		{"text", false},
		{"markdown", false},
		{"json", true},
		{"", true},
	}

	for _, tt := range tests {
		renderer, err := ForFormat(tt.format)
		if tt.expectError {
			if err == nil {
				t.Errorf("ForFormat(%q) expected error, got renderer %T", tt.format, renderer)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForFormat(%q) unexpected error: %v", tt.format, err)
		}
	}
}

func TestTextRendererSectionOrder(t *testing.T) {
	renderer := &TextRenderer{}
	doc, err := renderer.Render(sampleResume())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	headings := []string{"SUMMARY", "TECHNICAL SKILLS", "PROFESSIONAL EXPERIENCE", "EDUCATION", "CERTIFICATIONS", "PROJECTS"}
	last := -1
	for _, heading := range headings {
		idx := strings.Index(doc, heading)
		if idx < 0 {
			t.Fatalf("rendered text missing %q section:\n%s", heading, doc)
		}
		if idx < last {
			t.Errorf("section %q appears out of order", heading)
		}
		last = idx
	}

	if !strings.Contains(doc, "jordan.park@example.com | 555-010-2233 | Austin, TX") {
		t.Errorf("contact line not rendered as expected:\n%s", doc)
	}
}

func TestTextRendererDeduplicatesSkills(t *testing.T) {
	renderer := &TextRenderer{}
	doc, err := renderer.Render(sampleResume())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Kubernetes appears in both TechnicalSkills and FrameworksTools
	if strings.Count(doc, "Kubernetes") != 1 {
		t.Errorf("expected Kubernetes to appear once, got %d occurrences", strings.Count(doc, "Kubernetes"))
	}
}

func TestMarkdownRendererHeadings(t *testing.T) {
	renderer := &MarkdownRenderer{}
	doc, err := renderer.Render(sampleResume())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, heading := range []string{"# Jordan Park", "## Summary", "## Technical Skills", "## Professional Experience", "## Education"} {
		if !strings.Contains(doc, heading) {
			t.Errorf("rendered markdown missing %q:\n%s", heading, doc)
		}
	}
}

func TestRenderEmptyResume(t *testing.T) {
	for _, renderer := range []Renderer{&TextRenderer{}, &MarkdownRenderer{}} {
		doc, err := renderer.Render(types.ResumeContent{})
		if err != nil {
			t.Errorf("%T.Render(empty) failed: %v", renderer, err)
		}
		if strings.TrimSpace(doc) != "" {
			t.Errorf("%T.Render(empty) = %q, want only whitespace", renderer, doc)
		}
	}
}

func TestWriteDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.md")

	if err := WriteDocument(path, sampleResume(), "markdown"); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading rendered file failed: %v", err)
	}
	if !strings.Contains(string(data), "# Jordan Park") {
		t.Errorf("written document missing name heading:\n%s", data)
	}

	if err := WriteDocument(path, sampleResume(), "docx"); err == nil {
		t.Error("WriteDocument with unsupported format expected error, got nil")
	}
}
