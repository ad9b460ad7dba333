package types

import "time"

// JobPostingHints carries caller-supplied metadata about a posting. The
// extractor never invents a title or company; it only copies these through.
type JobPostingHints struct {
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
}

// JobRequirements is the structured view of a job posting
type JobRequirements struct {
	Title                 string         `json:"title"`
	Company               string         `json:"company"`
	Location              string         `json:"location"`
	JobType               string         `json:"jobType"`
	ExperienceLevel       string         `json:"experienceLevel"` // "entry", "mid", "senior", "executive" or ""
	YearsExperience       *int           `json:"yearsExperience,omitempty"`
	RequiredSkills        []string       `json:"requiredSkills"`
	PreferredSkills       []string       `json:"preferredSkills"`
	ProgrammingLanguages  []string       `json:"programmingLanguages"`
	FrameworksTools       []string       `json:"frameworksTools"`
	Databases             []string       `json:"databases"`
	CloudPlatforms        []string       `json:"cloudPlatforms"`
	SoftSkills            []string       `json:"softSkills"`
	EducationRequirements []string       `json:"educationRequirements"`
	Responsibilities      []string       `json:"responsibilities"`
	ATSKeywords           []string       `json:"atsKeywords"`
	KeywordFrequency      map[string]int `json:"keywordFrequency"`
}

// WorkExperience is a single position on a resume
type WorkExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is a single degree or program on a resume
type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Project is a named project entry on a resume
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ResumeContent is the structured view of a resume, including the
// job-independent ATS readiness analysis
type ResumeContent struct {
	Name                    string           `json:"name"`
	Email                   string           `json:"email"`
	Phone                   string           `json:"phone"`
	Location                string           `json:"location"`
	LinkedinURL             string           `json:"linkedinUrl"`
	GithubURL               string           `json:"githubUrl"`
	PortfolioURL            string           `json:"portfolioUrl"`
	Summary                 string           `json:"summary"`
	TechnicalSkills         []string         `json:"technicalSkills"`
	ProgrammingLanguages    []string         `json:"programmingLanguages"`
	FrameworksTools         []string         `json:"frameworksTools"`
	SoftSkills              []string         `json:"softSkills"`
	WorkExperience          []WorkExperience `json:"workExperience"`
	Education               []Education      `json:"education"`
	Certifications          []string         `json:"certifications"`
	Projects                []Project        `json:"projects"`
	WordCount               int              `json:"wordCount"`
	ATSScore                int              `json:"atsScore"` // 0-100
	FormattingIssues        []string         `json:"formattingIssues"`
	OptimizationSuggestions []string         `json:"optimizationSuggestions"`
}

// MatchScore is the weighted comparison of a resume against a job posting.
// Overall = 0.4*keyword + 0.3*skill + 0.2*experience + 0.1*formatting,
// every component within [0,100].
type MatchScore struct {
	Overall         float64        `json:"overall"`
	KeywordScore    float64        `json:"keywordScore"`
	SkillScore      float64        `json:"skillScore"`
	ExperienceScore float64        `json:"experienceScore"`
	FormattingScore float64        `json:"formattingScore"`
	MatchedKeywords map[string]int `json:"matchedKeywords"`
}

// OptimizationResult pairs the original and optimized resume with the
// before/after scores. AfterScore.Overall is never below BeforeScore.Overall.
type OptimizationResult struct {
	OriginalResume   ResumeContent `json:"originalResume"`
	OptimizedResume  ResumeContent `json:"optimizedResume"`
	BeforeScore      MatchScore    `json:"beforeScore"`
	AfterScore       MatchScore    `json:"afterScore"`
	ImprovementsMade []string      `json:"improvementsMade"`
	Timestamp        time.Time     `json:"timestamp"`
}
