package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"atsmatch/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "JobRequirements", &JobTextFormatter{})
	registry.RegisterFormatter("markdown", "JobRequirements", &JobMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResumeContent", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeContent", &ResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "MatchScore", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchScore", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "OptimizationResult", &OptimizationTextFormatter{})
	registry.RegisterFormatter("markdown", "OptimizationResult", &OptimizationMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.JobRequirements:
		return "JobRequirements"
	case types.ResumeContent:
		return "ResumeContent"
	case types.MatchScore:
		return "MatchScore"
	case types.OptimizationResult:
		return "OptimizationResult"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func writeList(output *strings.Builder, heading string, items []string, markdown bool) {
	if len(items) == 0 {
		return
	}
	if markdown {
		output.WriteString(fmt.Sprintf("### %s\n", heading))
	} else {
		output.WriteString(heading + ":\n")
	}
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
	output.WriteString("\n")
}

// sortedKeywords returns keyword/count pairs ordered by descending count,
// ties broken alphabetically so output is stable
func sortedKeywords(freq map[string]int) []string {
	keywords := make([]string, 0, len(freq))
	for kw := range freq {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if freq[keywords[i]] != freq[keywords[j]] {
			return freq[keywords[i]] > freq[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
	return keywords
}

// JobTextFormatter handles text formatting for extracted job requirements
type JobTextFormatter struct{}

func (jtf *JobTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.JobRequirements)
	if !ok {
		return "", fmt.Errorf("expected JobRequirements, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB REQUIREMENTS ===\n\n")
	if result.Title != "" {
		output.WriteString(fmt.Sprintf("Title: %s\n", result.Title))
	}
	if result.Company != "" {
		output.WriteString(fmt.Sprintf("Company: %s\n", result.Company))
	}
	if result.Location != "" {
		output.WriteString(fmt.Sprintf("Location: %s\n", result.Location))
	}
	if result.JobType != "" {
		output.WriteString(fmt.Sprintf("Job Type: %s\n", result.JobType))
	}
	if result.ExperienceLevel != "" {
		output.WriteString(fmt.Sprintf("Experience Level: %s\n", result.ExperienceLevel))
	}
	if result.YearsExperience != nil {
		output.WriteString(fmt.Sprintf("Years of Experience: %d\n", *result.YearsExperience))
	}
	output.WriteString("\n")

	writeList(&output, "Required Skills", result.RequiredSkills, false)
	writeList(&output, "Preferred Skills", result.PreferredSkills, false)
	writeList(&output, "Programming Languages", result.ProgrammingLanguages, false)
	writeList(&output, "Frameworks & Tools", result.FrameworksTools, false)
	writeList(&output, "Databases", result.Databases, false)
	writeList(&output, "Cloud Platforms", result.CloudPlatforms, false)
	writeList(&output, "Soft Skills", result.SoftSkills, false)
	writeList(&output, "Education Requirements", result.EducationRequirements, false)
	writeList(&output, "Responsibilities", result.Responsibilities, false)

	if len(result.ATSKeywords) > 0 {
		output.WriteString("ATS Keywords:\n")
		for _, kw := range sortedKeywords(result.KeywordFrequency) {
			output.WriteString(fmt.Sprintf("- %s (%d)\n", kw, result.KeywordFrequency[kw]))
		}
	}

	return output.String(), nil
}

func (jtf *JobTextFormatter) SupportedType() string {
	return "JobRequirements"
}

// JobMarkdownFormatter handles markdown formatting for extracted job requirements
type JobMarkdownFormatter struct{}

func (jmf *JobMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.JobRequirements)
	if !ok {
		return "", fmt.Errorf("expected JobRequirements, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Requirements\n\n")
	if result.Title != "" {
		output.WriteString(fmt.Sprintf("**Title:** %s\n\n", result.Title))
	}
	if result.Company != "" {
		output.WriteString(fmt.Sprintf("**Company:** %s\n\n", result.Company))
	}
	if result.Location != "" {
		output.WriteString(fmt.Sprintf("**Location:** %s\n\n", result.Location))
	}
	if result.JobType != "" {
		output.WriteString(fmt.Sprintf("**Job Type:** %s\n\n", result.JobType))
	}
	if result.ExperienceLevel != "" {
		output.WriteString(fmt.Sprintf("**Experience Level:** %s\n\n", result.ExperienceLevel))
	}
	if result.YearsExperience != nil {
		output.WriteString(fmt.Sprintf("**Years of Experience:** %d\n\n", *result.YearsExperience))
	}

	writeList(&output, "Required Skills", result.RequiredSkills, true)
	writeList(&output, "Preferred Skills", result.PreferredSkills, true)
	writeList(&output, "Programming Languages", result.ProgrammingLanguages, true)
	writeList(&output, "Frameworks & Tools", result.FrameworksTools, true)
	writeList(&output, "Databases", result.Databases, true)
	writeList(&output, "Cloud Platforms", result.CloudPlatforms, true)
	writeList(&output, "Soft Skills", result.SoftSkills, true)
	writeList(&output, "Education Requirements", result.EducationRequirements, true)
	writeList(&output, "Responsibilities", result.Responsibilities, true)

	if len(result.ATSKeywords) > 0 {
		output.WriteString("### ATS Keywords\n")
		for _, kw := range sortedKeywords(result.KeywordFrequency) {
			output.WriteString(fmt.Sprintf("- %s (%d)\n", kw, result.KeywordFrequency[kw]))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (jmf *JobMarkdownFormatter) SupportedType() string {
	return "JobRequirements"
}

// ResumeTextFormatter handles text formatting for extracted resume content
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeContent)
	if !ok {
		return "", fmt.Errorf("expected ResumeContent, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME CONTENT ===\n\n")
	if result.Name != "" {
		output.WriteString(fmt.Sprintf("Name: %s\n", result.Name))
	}
	if result.Email != "" {
		output.WriteString(fmt.Sprintf("Email: %s\n", result.Email))
	}
	if result.Phone != "" {
		output.WriteString(fmt.Sprintf("Phone: %s\n", result.Phone))
	}
	if result.Location != "" {
		output.WriteString(fmt.Sprintf("Location: %s\n", result.Location))
	}
	if result.LinkedinURL != "" {
		output.WriteString(fmt.Sprintf("LinkedIn: %s\n", result.LinkedinURL))
	}
	if result.GithubURL != "" {
		output.WriteString(fmt.Sprintf("GitHub: %s\n", result.GithubURL))
	}
	output.WriteString("\n")

	if result.Summary != "" {
		output.WriteString("Summary:\n")
		output.WriteString(result.Summary)
		output.WriteString("\n\n")
	}

	writeList(&output, "Technical Skills", result.TechnicalSkills, false)
	writeList(&output, "Programming Languages", result.ProgrammingLanguages, false)
	writeList(&output, "Frameworks & Tools", result.FrameworksTools, false)
	writeList(&output, "Soft Skills", result.SoftSkills, false)

	if len(result.WorkExperience) > 0 {
		output.WriteString("Work Experience:\n")
		for _, exp := range result.WorkExperience {
			output.WriteString(fmt.Sprintf("- %s at %s (%s)\n", exp.Title, exp.Company, exp.Duration))
		}
		output.WriteString("\n")
	}

	if len(result.Education) > 0 {
		output.WriteString("Education:\n")
		for _, edu := range result.Education {
			output.WriteString(fmt.Sprintf("- %s in %s, %s %s\n", edu.Degree, edu.Field, edu.Institution, edu.Year))
		}
		output.WriteString("\n")
	}

	writeList(&output, "Certifications", result.Certifications, false)

	output.WriteString(fmt.Sprintf("Word Count: %d\n", result.WordCount))
	output.WriteString(fmt.Sprintf("ATS Score: %d/100\n", result.ATSScore))

	if len(result.FormattingIssues) > 0 {
		output.WriteString("\n")
		writeList(&output, "Formatting Issues", result.FormattingIssues, false)
	}
	if len(result.OptimizationSuggestions) > 0 {
		writeList(&output, "Optimization Suggestions", result.OptimizationSuggestions, false)
	}

	return output.String(), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return "ResumeContent"
}

// ResumeMarkdownFormatter handles markdown formatting for extracted resume content
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeContent)
	if !ok {
		return "", fmt.Errorf("expected ResumeContent, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Content\n\n")
	if result.Name != "" {
		output.WriteString(fmt.Sprintf("**Name:** %s\n\n", result.Name))
	}
	if result.Email != "" {
		output.WriteString(fmt.Sprintf("**Email:** %s\n\n", result.Email))
	}
	if result.Phone != "" {
		output.WriteString(fmt.Sprintf("**Phone:** %s\n\n", result.Phone))
	}
	if result.Location != "" {
		output.WriteString(fmt.Sprintf("**Location:** %s\n\n", result.Location))
	}

	if result.Summary != "" {
		output.WriteString("## Summary\n\n")
		output.WriteString(result.Summary)
		output.WriteString("\n\n")
	}

	writeList(&output, "Technical Skills", result.TechnicalSkills, true)
	writeList(&output, "Programming Languages", result.ProgrammingLanguages, true)
	writeList(&output, "Frameworks & Tools", result.FrameworksTools, true)
	writeList(&output, "Soft Skills", result.SoftSkills, true)

	if len(result.WorkExperience) > 0 {
		output.WriteString("## Work Experience\n\n")
		for _, exp := range result.WorkExperience {
			output.WriteString(fmt.Sprintf("### %s at %s\n\n", exp.Title, exp.Company))
			if exp.Duration != "" {
				output.WriteString(fmt.Sprintf("*%s*\n\n", exp.Duration))
			}
			if exp.Description != "" {
				output.WriteString(exp.Description)
				output.WriteString("\n\n")
			}
		}
	}

	if len(result.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, edu := range result.Education {
			output.WriteString(fmt.Sprintf("- %s in %s, %s %s\n", edu.Degree, edu.Field, edu.Institution, edu.Year))
		}
		output.WriteString("\n")
	}

	writeList(&output, "Certifications", result.Certifications, true)

	output.WriteString("## ATS Readiness\n\n")
	output.WriteString(fmt.Sprintf("**Word Count:** %d\n\n", result.WordCount))
	output.WriteString(fmt.Sprintf("**ATS Score:** %d/100\n\n", result.ATSScore))
	writeList(&output, "Formatting Issues", result.FormattingIssues, true)
	writeList(&output, "Optimization Suggestions", result.OptimizationSuggestions, true)

	return output.String(), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return "ResumeContent"
}

// MatchTextFormatter handles text formatting for match scores
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchScore)
	if !ok {
		return "", fmt.Errorf("expected MatchScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== MATCH SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %.1f/100\n\n", result.Overall))
	output.WriteString(fmt.Sprintf("Keyword Score:    %.1f/100\n", result.KeywordScore))
	output.WriteString(fmt.Sprintf("Skill Score:      %.1f/100\n", result.SkillScore))
	output.WriteString(fmt.Sprintf("Experience Score: %.1f/100\n", result.ExperienceScore))
	output.WriteString(fmt.Sprintf("Formatting Score: %.1f/100\n", result.FormattingScore))

	if len(result.MatchedKeywords) > 0 {
		output.WriteString("\nMatched Keywords:\n")
		for _, kw := range sortedKeywords(result.MatchedKeywords) {
			output.WriteString(fmt.Sprintf("- %s (%d)\n", kw, result.MatchedKeywords[kw]))
		}
	}

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchScore"
}

// MatchMarkdownFormatter handles markdown formatting for match scores
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchScore)
	if !ok {
		return "", fmt.Errorf("expected MatchScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Match Score\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %.1f/100\n\n", result.Overall))
	output.WriteString("| Component | Score |\n")
	output.WriteString("|-----------|-------|\n")
	output.WriteString(fmt.Sprintf("| Keywords | %.1f |\n", result.KeywordScore))
	output.WriteString(fmt.Sprintf("| Skills | %.1f |\n", result.SkillScore))
	output.WriteString(fmt.Sprintf("| Experience | %.1f |\n", result.ExperienceScore))
	output.WriteString(fmt.Sprintf("| Formatting | %.1f |\n", result.FormattingScore))
	output.WriteString("\n")

	if len(result.MatchedKeywords) > 0 {
		output.WriteString("## Matched Keywords\n\n")
		for _, kw := range sortedKeywords(result.MatchedKeywords) {
			output.WriteString(fmt.Sprintf("- %s (%d)\n", kw, result.MatchedKeywords[kw]))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchScore"
}

// OptimizationTextFormatter handles text formatting for optimization results
type OptimizationTextFormatter struct{}

func (otf *OptimizationTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizationResult)
	if !ok {
		return "", fmt.Errorf("expected OptimizationResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== OPTIMIZATION RESULT ===\n\n")
	output.WriteString(fmt.Sprintf("Score Before: %.1f/100\n", result.BeforeScore.Overall))
	output.WriteString(fmt.Sprintf("Score After:  %.1f/100\n\n", result.AfterScore.Overall))

	writeList(&output, "Improvements Made", result.ImprovementsMade, false)

	if result.OptimizedResume.Summary != "" {
		output.WriteString("Optimized Summary:\n")
		output.WriteString(result.OptimizedResume.Summary)
		output.WriteString("\n\n")
	}

	writeList(&output, "Suggestions", result.OptimizedResume.OptimizationSuggestions, false)

	return output.String(), nil
}

func (otf *OptimizationTextFormatter) SupportedType() string {
	return "OptimizationResult"
}

// OptimizationMarkdownFormatter handles markdown formatting for optimization results
type OptimizationMarkdownFormatter struct{}

func (omf *OptimizationMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizationResult)
	if !ok {
		return "", fmt.Errorf("expected OptimizationResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Optimization Result\n\n")
	output.WriteString(fmt.Sprintf("**Score Before:** %.1f/100\n\n", result.BeforeScore.Overall))
	output.WriteString(fmt.Sprintf("**Score After:** %.1f/100\n\n", result.AfterScore.Overall))

	writeList(&output, "Improvements Made", result.ImprovementsMade, true)

	if result.OptimizedResume.Summary != "" {
		output.WriteString("## Optimized Summary\n\n")
		output.WriteString(result.OptimizedResume.Summary)
		output.WriteString("\n\n")
	}

	writeList(&output, "Suggestions", result.OptimizedResume.OptimizationSuggestions, true)

	return output.String(), nil
}

func (omf *OptimizationMarkdownFormatter) SupportedType() string {
	return "OptimizationResult"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
