package engine

import (
	"reflect"
	"strings"
	"testing"

	"atsmatch/internal/types"
)

const seniorPythonPosting = `Senior Python Developer

We are seeking a senior Python developer for a full-time remote position.
Minimum 5 years of experience.

Required: Python, Django, PostgreSQL, AWS, Git

Preferred: React, Docker

Responsibilities:
- Develop and maintain web applications
- Collaborate with teams

Bachelor degree in computer science required.
`

func TestExtractJobRequirementsSeniorPosting(t *testing.T) {
	req := ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{
		Title:   "Senior Python Developer",
		Company: "Tech Company",
	})

	if req.Title != "Senior Python Developer" {
		t.Errorf("Title = %q, want hint passed through", req.Title)
	}
	if req.Company != "Tech Company" {
		t.Errorf("Company = %q, want hint passed through", req.Company)
	}

	wantRequired := []string{"Python", "Django", "PostgreSQL", "AWS", "Git"}
	if !reflect.DeepEqual(req.RequiredSkills, wantRequired) {
		t.Errorf("RequiredSkills = %v, want %v", req.RequiredSkills, wantRequired)
	}
	wantPreferred := []string{"React", "Docker"}
	if !reflect.DeepEqual(req.PreferredSkills, wantPreferred) {
		t.Errorf("PreferredSkills = %v, want %v", req.PreferredSkills, wantPreferred)
	}

	if !reflect.DeepEqual(req.ProgrammingLanguages, []string{"Python"}) {
		t.Errorf("ProgrammingLanguages = %v, want [Python]", req.ProgrammingLanguages)
	}
	if !reflect.DeepEqual(req.Databases, []string{"PostgreSQL"}) {
		t.Errorf("Databases = %v, want [PostgreSQL]", req.Databases)
	}
	if !reflect.DeepEqual(req.CloudPlatforms, []string{"AWS"}) {
		t.Errorf("CloudPlatforms = %v, want [AWS]", req.CloudPlatforms)
	}

	if req.ExperienceLevel != "senior" {
		t.Errorf("ExperienceLevel = %q, want senior", req.ExperienceLevel)
	}
	if req.YearsExperience == nil || *req.YearsExperience != 5 {
		t.Errorf("YearsExperience = %v, want 5", req.YearsExperience)
	}
	if req.JobType != "full-time" {
		t.Errorf("JobType = %q, want full-time", req.JobType)
	}
	if req.Location != "remote" {
		t.Errorf("Location = %q, want remote", req.Location)
	}

	foundResponsibility := false
	for _, resp := range req.Responsibilities {
		if resp == "Develop and maintain web applications" {
			foundResponsibility = true
		}
	}
	if !foundResponsibility {
		t.Errorf("Responsibilities = %v, missing development phrase", req.Responsibilities)
	}
}

func TestExtractJobRequirementsKeywordSuperset(t *testing.T) {
	postings := []string{
		seniorPythonPosting,
		"Required: Kubernetes, Terraform\nPreferred: Go, Rust",
		"Must have: communication skills; leadership\n\nNice to have: public speaking",
		"no recognizable sections at all",
	}

	for _, posting := range postings {
		req := ExtractJobRequirements(posting, types.JobPostingHints{})

		keywords := make(map[string]bool, len(req.ATSKeywords))
		for _, kw := range req.ATSKeywords {
			keywords[strings.ToLower(kw)] = true
		}
		for _, skill := range append(append([]string(nil), req.RequiredSkills...), req.PreferredSkills...) {
			if len(skill) <= 1 {
				continue
			}
			if !keywords[strings.ToLower(skill)] {
				t.Errorf("atsKeywords missing %q for posting %q", skill, posting)
			}
		}
		for _, kw := range req.ATSKeywords {
			if strings.TrimSpace(kw) == "" || len(kw) <= 1 {
				t.Errorf("atsKeywords contains invalid entry %q", kw)
			}
		}
	}
}

func TestExtractJobRequirementsRequiredWins(t *testing.T) {
	posting := "Required: Python\n\nPreferred: Python, Docker"
	req := ExtractJobRequirements(posting, types.JobPostingHints{})

	if !reflect.DeepEqual(req.RequiredSkills, []string{"Python"}) {
		t.Errorf("RequiredSkills = %v, want [Python]", req.RequiredSkills)
	}
	if !reflect.DeepEqual(req.PreferredSkills, []string{"Docker"}) {
		t.Errorf("PreferredSkills = %v, want [Docker] after required-wins", req.PreferredSkills)
	}
}

func TestExtractJobRequirementsEmptyPosting(t *testing.T) {
	req := ExtractJobRequirements("", types.JobPostingHints{})

	if len(req.ATSKeywords) != 0 {
		t.Errorf("ATSKeywords = %v, want empty", req.ATSKeywords)
	}
	if len(req.RequiredSkills) != 0 || len(req.PreferredSkills) != 0 {
		t.Errorf("skill lists not empty: %v / %v", req.RequiredSkills, req.PreferredSkills)
	}
	if req.ExperienceLevel != "" || req.YearsExperience != nil {
		t.Errorf("experience fields not empty: %q / %v", req.ExperienceLevel, req.YearsExperience)
	}
	if len(req.KeywordFrequency) != 0 {
		t.Errorf("KeywordFrequency = %v, want empty", req.KeywordFrequency)
	}
}

func TestExtractJobRequirementsDeterministic(t *testing.T) {
	hints := types.JobPostingHints{Title: "Backend Engineer"}
	first := ExtractJobRequirements(seniorPythonPosting, hints)
	second := ExtractJobRequirements(seniorPythonPosting, hints)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestExtractYearsExperience(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
		unset    bool
	}{
		{"plus years", "3+ years of experience with Go", 3, false},
		{"range takes lower bound", "2-5 years in backend roles", 2, false},
		{"minimum phrasing", "minimum 7 years building services", 7, false},
		{"plain years of experience", "10 years of experience", 10, false},
		{"no years mentioned", "extensive background in devops", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractYearsExperience(tt.text)
			if tt.unset {
				if result != nil {
					t.Errorf("extractYearsExperience(%q) = %d, want unset", tt.text, *result)
				}
				return
			}
			if result == nil || *result != tt.expected {
				t.Errorf("extractYearsExperience(%q) = %v, want %d", tt.text, result, tt.expected)
			}
		})
	}
}

func TestExtractExperienceLevel(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"entry beats senior in table order", "junior role reporting to a senior engineer", "entry"},
		{"senior", "senior backend engineer", "senior"},
		{"executive", "head of engineering", "executive"},
		{"mid", "intermediate developer position", "mid"},
		{"no level", "software role", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := extractExperienceLevel(tt.text); result != tt.expected {
				t.Errorf("extractExperienceLevel(%q) = %q, want %q", tt.text, result, tt.expected)
			}
		})
	}
}

func TestKeywordFrequencyOmitsZeroCounts(t *testing.T) {
	req := ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{})

	for keyword, count := range req.KeywordFrequency {
		if count <= 0 {
			t.Errorf("KeywordFrequency[%q] = %d, zero counts must be omitted", keyword, count)
		}
	}
	if req.KeywordFrequency["Python"] < 1 {
		t.Errorf("KeywordFrequency[Python] = %d, want at least 1", req.KeywordFrequency["Python"])
	}
}
