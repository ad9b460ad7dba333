package engine

import (
	"reflect"
	"strings"
	"testing"

	"atsmatch/internal/types"
)

const sampleResume = `John Smith
San Francisco, CA
john.smith@example.com
(555) 123-4567
linkedin.com/in/johnsmith
github.com/johnsmith
https://johnsmith.dev

Summary
Software Developer. Experience with Python and web development.

Technical Skills
Python, PostgreSQL, REST API design, Linux

Experience
Software Engineer 2019 - 2023
Acme Corp
- Built web services in Python
- Maintained PostgreSQL databases

Education
Bachelor of Science in Computer Science, State University, 2019

Certifications
AWS Certified Developer

Projects
Inventory Tracker - Warehouse inventory management tool
`

func TestExtractResumeContentIdentity(t *testing.T) {
	resume := ExtractResumeContent(sampleResume)

	if resume.Name != "John Smith" {
		t.Errorf("Name = %q, want John Smith", resume.Name)
	}
	if resume.Email != "john.smith@example.com" {
		t.Errorf("Email = %q, want john.smith@example.com", resume.Email)
	}
	if resume.Phone != "(555) 123-4567" {
		t.Errorf("Phone = %q, want (555) 123-4567", resume.Phone)
	}
	if resume.Location != "San Francisco, CA" {
		t.Errorf("Location = %q, want San Francisco, CA", resume.Location)
	}
	if resume.LinkedinURL != "https://linkedin.com/in/johnsmith" {
		t.Errorf("LinkedinURL = %q", resume.LinkedinURL)
	}
	if resume.GithubURL != "https://github.com/johnsmith" {
		t.Errorf("GithubURL = %q", resume.GithubURL)
	}
	if resume.PortfolioURL != "https://johnsmith.dev" {
		t.Errorf("PortfolioURL = %q", resume.PortfolioURL)
	}
}

func TestExtractResumeContentSections(t *testing.T) {
	resume := ExtractResumeContent(sampleResume)

	if resume.Summary != "Software Developer. Experience with Python and web development." {
		t.Errorf("Summary = %q", resume.Summary)
	}

	wantSkills := []string{"Python", "PostgreSQL", "REST API design", "Linux"}
	if !reflect.DeepEqual(resume.TechnicalSkills, wantSkills) {
		t.Errorf("TechnicalSkills = %v, want %v", resume.TechnicalSkills, wantSkills)
	}
	if !reflect.DeepEqual(resume.ProgrammingLanguages, []string{"Python"}) {
		t.Errorf("ProgrammingLanguages = %v, want [Python]", resume.ProgrammingLanguages)
	}

	if len(resume.WorkExperience) != 1 {
		t.Fatalf("WorkExperience has %d entries, want 1", len(resume.WorkExperience))
	}
	job := resume.WorkExperience[0]
	if job.Title != "Software Engineer" {
		t.Errorf("Title = %q, want Software Engineer", job.Title)
	}
	if job.Company != "Acme Corp" {
		t.Errorf("Company = %q, want Acme Corp", job.Company)
	}
	if job.Duration != "2019 - 2023" {
		t.Errorf("Duration = %q, want 2019 - 2023", job.Duration)
	}
	if !strings.Contains(job.Description, "Built web services in Python") {
		t.Errorf("Description = %q, missing first bullet", job.Description)
	}

	if len(resume.Education) != 1 {
		t.Fatalf("Education has %d entries, want 1", len(resume.Education))
	}
	edu := resume.Education[0]
	if edu.Degree != "Bachelor" {
		t.Errorf("Degree = %q, want Bachelor", edu.Degree)
	}
	if edu.Field != "Computer Science" {
		t.Errorf("Field = %q, want Computer Science", edu.Field)
	}
	if edu.Institution != "State University" {
		t.Errorf("Institution = %q, want State University", edu.Institution)
	}
	if edu.Year != "2019" {
		t.Errorf("Year = %q, want 2019", edu.Year)
	}

	if !reflect.DeepEqual(resume.Certifications, []string{"AWS Certified Developer"}) {
		t.Errorf("Certifications = %v", resume.Certifications)
	}

	if len(resume.Projects) != 1 {
		t.Fatalf("Projects has %d entries, want 1", len(resume.Projects))
	}
	if resume.Projects[0].Name != "Inventory Tracker" {
		t.Errorf("Project name = %q, want Inventory Tracker", resume.Projects[0].Name)
	}
	if resume.Projects[0].Description != "Warehouse inventory management tool" {
		t.Errorf("Project description = %q", resume.Projects[0].Description)
	}
}

func TestExtractResumeContentATSAnalysis(t *testing.T) {
	resume := ExtractResumeContent(sampleResume)

	// Short resume misses the 20-point word-count band but keeps every
	// section point: 10+10+20+20+10+20.
	if resume.ATSScore != 90 {
		t.Errorf("ATSScore = %d, want 90", resume.ATSScore)
	}

	foundShort := false
	for _, issue := range resume.FormattingIssues {
		if issue == "resume too short" {
			foundShort = true
		}
	}
	if !foundShort {
		t.Errorf("FormattingIssues = %v, missing word-count issue", resume.FormattingIssues)
	}
}

func TestExtractResumeContentEmptyInput(t *testing.T) {
	resume := ExtractResumeContent("")

	if resume.ATSScore != 0 {
		t.Errorf("ATSScore = %d, want 0 for empty resume", resume.ATSScore)
	}
	if resume.Name != "" || resume.Email != "" {
		t.Errorf("identity fields not empty: %q / %q", resume.Name, resume.Email)
	}
	if len(resume.FormattingIssues) == 0 {
		t.Error("expected formatting issues for empty resume")
	}
	if len(resume.WorkExperience) != 0 {
		t.Errorf("WorkExperience = %v, want empty", resume.WorkExperience)
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected string
	}{
		{"simple two word name", []string{"Jane Doe", "Engineer"}, "Jane Doe"},
		{"skips contact line", []string{"jane@example.com", "Jane Doe"}, "Jane Doe"},
		{"rejects single word", []string{"Resume", "Jane Marie Doe"}, "Jane Marie Doe"},
		{"rejects five words", []string{"One Two Three Four Five"}, ""},
		{"rejects digits", []string{"Jane Doe 2024"}, ""},
		{"only first five lines", []string{"1", "2", "3", "4", "5", "Jane Doe"}, ""},
		{"empty input", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := extractName(tt.lines); result != tt.expected {
				t.Errorf("extractName(%v) = %q, want %q", tt.lines, result, tt.expected)
			}
		})
	}
}

func TestAnalyzeATSReadinessClampsAt100(t *testing.T) {
	resume := types.ResumeContent{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		TechnicalSkills: []string{"Go", "Kubernetes"},
		WorkExperience:  []types.WorkExperience{{Title: "Engineer"}},
		Education:       []types.Education{{Degree: "Bachelor"}},
		WordCount:       400,
	}
	analyzeATSReadiness(&resume)

	if resume.ATSScore != 100 {
		t.Errorf("ATSScore = %d, want clamped 100", resume.ATSScore)
	}
	if len(resume.FormattingIssues) != 0 {
		t.Errorf("FormattingIssues = %v, want none", resume.FormattingIssues)
	}
}

func TestExtractResumeContentDeterministic(t *testing.T) {
	first := ExtractResumeContent(sampleResume)
	second := ExtractResumeContent(sampleResume)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
