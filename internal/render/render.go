package render

import (
	"fmt"
	"os"
	"strings"

	"atsmatch/internal/errors"
	"atsmatch/internal/types"
)

// Renderer serializes a ResumeContent into an ATS-safe document. Safe here
// means single column, standard section headings and no tables or graphics,
// so every mainstream tracking system can parse the result.
type Renderer interface {
	Render(resume types.ResumeContent) (string, error)
	Extension() string
}

// ForFormat returns the renderer for a format name.
func ForFormat(format string) (Renderer, error) {
	switch format {
	case "text":
		return &TextRenderer{}, nil
	case "markdown":
		return &MarkdownRenderer{}, nil
	default:
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("unsupported render format: %s", format), nil)
	}
}

// WriteDocument renders the resume and writes it to the given path.
func WriteDocument(path string, resume types.ResumeContent, format string) error {
	renderer, err := ForFormat(format)
	if err != nil {
		return err
	}

	document, err := renderer.Render(resume)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(document), 0o600); err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("failed to write rendered resume to %s", path), err)
	}
	return nil
}

// TextRenderer produces a plain text document with uppercase section
// headings, the most conservative layout an ATS can see.
type TextRenderer struct{}

func (tr *TextRenderer) Extension() string { return ".txt" }

func (tr *TextRenderer) Render(resume types.ResumeContent) (string, error) {
	var doc strings.Builder

	writeContactBlock(&doc, resume)

	if resume.Summary != "" {
		writeTextSection(&doc, "SUMMARY")
		doc.WriteString(resume.Summary)
		doc.WriteString("\n\n")
	}

	skills := skillLine(resume)
	if skills != "" {
		writeTextSection(&doc, "TECHNICAL SKILLS")
		doc.WriteString(skills)
		doc.WriteString("\n\n")
	}

	if len(resume.WorkExperience) > 0 {
		writeTextSection(&doc, "PROFESSIONAL EXPERIENCE")
		for _, exp := range resume.WorkExperience {
			doc.WriteString(fmt.Sprintf("%s, %s", exp.Title, exp.Company))
			if exp.Duration != "" {
				doc.WriteString(fmt.Sprintf(" (%s)", exp.Duration))
			}
			doc.WriteString("\n")
			if exp.Description != "" {
				doc.WriteString(exp.Description)
				doc.WriteString("\n")
			}
			doc.WriteString("\n")
		}
	}

	if len(resume.Education) > 0 {
		writeTextSection(&doc, "EDUCATION")
		for _, edu := range resume.Education {
			doc.WriteString(educationLine(edu))
			doc.WriteString("\n")
		}
		doc.WriteString("\n")
	}

	if len(resume.Certifications) > 0 {
		writeTextSection(&doc, "CERTIFICATIONS")
		for _, cert := range resume.Certifications {
			doc.WriteString(cert)
			doc.WriteString("\n")
		}
		doc.WriteString("\n")
	}

	if len(resume.Projects) > 0 {
		writeTextSection(&doc, "PROJECTS")
		for _, project := range resume.Projects {
			doc.WriteString(project.Name)
			if project.Description != "" {
				doc.WriteString(": ")
				doc.WriteString(project.Description)
			}
			doc.WriteString("\n")
		}
	}

	return strings.TrimRight(doc.String(), "\n") + "\n", nil
}

// MarkdownRenderer produces a Markdown document with the same section
// order as the text renderer.
type MarkdownRenderer struct{}

func (mr *MarkdownRenderer) Extension() string { return ".md" }

func (mr *MarkdownRenderer) Render(resume types.ResumeContent) (string, error) {
	var doc strings.Builder

	if resume.Name != "" {
		doc.WriteString("# ")
		doc.WriteString(resume.Name)
		doc.WriteString("\n\n")
	}

	contact := contactLine(resume)
	if contact != "" {
		doc.WriteString(contact)
		doc.WriteString("\n\n")
	}

	if resume.Summary != "" {
		doc.WriteString("## Summary\n\n")
		doc.WriteString(resume.Summary)
		doc.WriteString("\n\n")
	}

	skills := skillLine(resume)
	if skills != "" {
		doc.WriteString("## Technical Skills\n\n")
		doc.WriteString(skills)
		doc.WriteString("\n\n")
	}

	if len(resume.WorkExperience) > 0 {
		doc.WriteString("## Professional Experience\n\n")
		for _, exp := range resume.WorkExperience {
			doc.WriteString(fmt.Sprintf("**%s**, %s", exp.Title, exp.Company))
			if exp.Duration != "" {
				doc.WriteString(fmt.Sprintf(" (%s)", exp.Duration))
			}
			doc.WriteString("\n\n")
			if exp.Description != "" {
				doc.WriteString(exp.Description)
				doc.WriteString("\n\n")
			}
		}
	}

	if len(resume.Education) > 0 {
		doc.WriteString("## Education\n\n")
		for _, edu := range resume.Education {
			doc.WriteString("- ")
			doc.WriteString(educationLine(edu))
			doc.WriteString("\n")
		}
		doc.WriteString("\n")
	}

	if len(resume.Certifications) > 0 {
		doc.WriteString("## Certifications\n\n")
		for _, cert := range resume.Certifications {
			doc.WriteString("- ")
			doc.WriteString(cert)
			doc.WriteString("\n")
		}
		doc.WriteString("\n")
	}

	if len(resume.Projects) > 0 {
		doc.WriteString("## Projects\n\n")
		for _, project := range resume.Projects {
			doc.WriteString("- **")
			doc.WriteString(project.Name)
			doc.WriteString("**")
			if project.Description != "" {
				doc.WriteString(": ")
				doc.WriteString(project.Description)
			}
			doc.WriteString("\n")
		}
	}

	return strings.TrimRight(doc.String(), "\n") + "\n", nil
}

func writeTextSection(doc *strings.Builder, heading string) {
	doc.WriteString(heading)
	doc.WriteString("\n")
	doc.WriteString(strings.Repeat("-", len(heading)))
	doc.WriteString("\n")
}

func writeContactBlock(doc *strings.Builder, resume types.ResumeContent) {
	if resume.Name != "" {
		doc.WriteString(resume.Name)
		doc.WriteString("\n")
	}
	contact := contactLine(resume)
	if contact != "" {
		doc.WriteString(contact)
		doc.WriteString("\n")
	}
	if resume.Name != "" || contact != "" {
		doc.WriteString("\n")
	}
}

// contactLine joins the available contact fields with a separator an ATS
// will not misread as a column boundary.
func contactLine(resume types.ResumeContent) string {
	parts := make([]string, 0, 5)
	for _, field := range []string{resume.Email, resume.Phone, resume.Location, resume.LinkedinURL, resume.GithubURL} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, " | ")
}

func skillLine(resume types.ResumeContent) string {
	seen := make(map[string]bool)
	ordered := make([]string, 0, len(resume.TechnicalSkills)+len(resume.ProgrammingLanguages)+len(resume.FrameworksTools))
	for _, group := range [][]string{resume.TechnicalSkills, resume.ProgrammingLanguages, resume.FrameworksTools} {
		for _, skill := range group {
			key := strings.ToLower(skill)
			if !seen[key] {
				seen[key] = true
				ordered = append(ordered, skill)
			}
		}
	}
	return strings.Join(ordered, ", ")
}

func educationLine(edu types.Education) string {
	var line strings.Builder
	line.WriteString(edu.Degree)
	if edu.Field != "" {
		line.WriteString(" in ")
		line.WriteString(edu.Field)
	}
	if edu.Institution != "" {
		line.WriteString(", ")
		line.WriteString(edu.Institution)
	}
	if edu.Year != "" {
		line.WriteString(" (")
		line.WriteString(edu.Year)
		line.WriteString(")")
	}
	return line.String()
}
