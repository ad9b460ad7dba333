package engine

import (
	"regexp"
	"strings"
	"unicode"

	"atsmatch/internal/types"
)

const (
	summaryMaxChars = 500
	minWordCount    = 300
	maxWordCount    = 800
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w\-]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[\w\-]+`)
	urlPattern      = regexp.MustCompile(`https?://[^\s]+`)
	yearPattern     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),
	}

	degreePattern      = regexp.MustCompile(`(?i)\b(bachelor(?:'s)?|master(?:'s)?|ph\.?d\.?|doctorate|b\.s\.|m\.s\.|b\.a\.|m\.a\.|mba)\b`)
	degreeFieldPattern = regexp.MustCompile(`(?i)\bin\s+([A-Za-z][A-Za-z ]{2,40})`)
	institutionPattern = regexp.MustCompile(`(?i)\b[\w .&'\-]*(?:university|college|institute|school)[\w .&'\-]*`)

	certDelimiterPattern  = regexp.MustCompile(`[,;\n•\-]`)
	skillDelimiterPattern = regexp.MustCompile(`[,;•\n\-]`)
)

// resumeSection identifies one of the standard resume sections located by
// heading lines.
type resumeSection int

const (
	sectionSummary resumeSection = iota
	sectionExperience
	sectionEducation
	sectionSkills
	sectionCertifications
	sectionProjects
)

var sectionAliases = map[string]resumeSection{
	"summary":                 sectionSummary,
	"professional summary":    sectionSummary,
	"objective":               sectionSummary,
	"profile":                 sectionSummary,
	"about":                   sectionSummary,
	"experience":              sectionExperience,
	"work experience":         sectionExperience,
	"professional experience": sectionExperience,
	"employment history":      sectionExperience,
	"work history":            sectionExperience,
	"education":               sectionEducation,
	"academic background":     sectionEducation,
	"skills":                  sectionSkills,
	"technical skills":        sectionSkills,
	"technologies":            sectionSkills,
	"core competencies":       sectionSkills,
	"certifications":          sectionCertifications,
	"certificates":            sectionCertifications,
	"licenses":                sectionCertifications,
	"projects":                sectionProjects,
	"personal projects":       sectionProjects,
	"selected projects":       sectionProjects,
}

// ExtractResumeContent turns raw resume text into a structured ResumeContent
// record, including the job-independent ATS readiness analysis. Like the job
// extractor it is total: arbitrary text yields a best-effort partial record.
func ExtractResumeContent(raw string) types.ResumeContent {
	norm := Normalize(raw)
	flat := Flatten(norm)
	lines := strings.Split(norm, "\n")
	sections := splitSections(lines)

	resume := types.ResumeContent{
		Name:         extractName(lines),
		Email:        emailPattern.FindString(norm),
		Phone:        extractPhone(norm),
		Location:     extractResumeLocation(lines),
		LinkedinURL:  withScheme(linkedinPattern.FindString(norm)),
		GithubURL:    withScheme(githubPattern.FindString(norm)),
		PortfolioURL: extractPortfolioURL(norm),
	}

	resume.Summary = extractSummary(sections[sectionSummary])
	resume.WorkExperience = extractWorkExperience(sections[sectionExperience])
	resume.Education = extractEducationEntries(sections[sectionEducation])
	resume.Certifications = extractCertifications(sections[sectionCertifications])
	resume.Projects = extractProjects(sections[sectionProjects])

	resume.TechnicalSkills = extractTechnicalSkills(sections[sectionSkills])
	resume.ProgrammingLanguages = matchVocabulary(flat, programmingLanguageVocab)
	resume.FrameworksTools = matchVocabulary(flat, frameworkToolVocab)
	resume.SoftSkills = matchVocabulary(flat, softSkillVocab)

	resume.WordCount = len(strings.Fields(norm))
	analyzeATSReadiness(&resume)

	return resume
}

// splitSections walks the lines once and buckets them under the nearest
// preceding section heading. A heading is a line whose text, minus a
// trailing colon, matches a known alias; "Summary: text" keeps the
// remainder as the section's first line. Lines before any heading belong to
// the contact header and are not bucketed.
func splitSections(lines []string) map[resumeSection][]string {
	sections := make(map[resumeSection][]string)
	current := resumeSection(-1)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		heading := strings.ToLower(strings.TrimSuffix(trimmed, ":"))
		if section, ok := sectionAliases[heading]; ok {
			current = section
			continue
		}
		if head, rest, ok := strings.Cut(trimmed, ":"); ok {
			if section, found := sectionAliases[strings.ToLower(strings.TrimSpace(head))]; found {
				current = section
				if rest = strings.TrimSpace(rest); rest != "" {
					sections[current] = append(sections[current], rest)
				}
				continue
			}
		}

		if current >= 0 {
			sections[current] = append(sections[current], trimmed)
		}
	}
	return sections
}

// extractName looks for a line of 2-4 alphabetic tokens among the first
// five lines.
func extractName(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		allAlpha := true
		for _, word := range words {
			for _, r := range word {
				if !unicode.IsLetter(r) {
					allAlpha = false
					break
				}
			}
		}
		if allAlpha {
			return line
		}
	}
	return ""
}

func extractPhone(text string) string {
	for _, pattern := range phonePatterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

var cityStatePattern = regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)*,\s*[A-Z]{2}\b`)

func extractResumeLocation(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, line := range lines[:limit] {
		if match := cityStatePattern.FindString(line); match != "" {
			return match
		}
	}
	return ""
}

func withScheme(url string) string {
	if url == "" {
		return ""
	}
	return "https://" + url
}

func extractPortfolioURL(text string) string {
	for _, url := range urlPattern.FindAllString(text, -1) {
		lower := strings.ToLower(url)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		return strings.TrimRight(url, ".,;")
	}
	return ""
}

func extractSummary(lines []string) string {
	summary := strings.Join(lines, " ")
	summary = strings.TrimSpace(summary)
	if len(summary) > summaryMaxChars {
		summary = summary[:summaryMaxChars]
	}
	return summary
}

// extractWorkExperience splits the experience section into entries at lines
// carrying a 4-digit year, the usual start of a new position.
func extractWorkExperience(lines []string) []types.WorkExperience {
	var entries [][]string
	var current []string
	for _, line := range lines {
		if yearPattern.MatchString(line) && len(current) > 0 {
			entries = append(entries, current)
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		entries = append(entries, current)
	}

	var experience []types.WorkExperience
	for _, entry := range entries {
		if len(strings.TrimSpace(strings.Join(entry, " "))) <= 20 {
			continue
		}
		if job, ok := parseJobEntry(entry); ok {
			experience = append(experience, job)
		}
	}
	return experience
}

func parseJobEntry(lines []string) (types.WorkExperience, bool) {
	var job types.WorkExperience
	if len(lines) == 0 {
		return job, false
	}

	first := lines[0]
	if loc := yearPattern.FindStringIndex(first); loc != nil {
		job.Title = strings.Trim(strings.TrimSpace(first[:loc[0]]), "-|, ")
		job.Duration = strings.TrimSpace(first[loc[0]:])
	} else {
		job.Title = strings.TrimSpace(first)
	}

	// A following line with no year is the company.
	companyIdx := -1
	for i := 1; i < len(lines) && i < 3; i++ {
		line := strings.TrimSpace(lines[i])
		if len(line) > 3 && !yearPattern.MatchString(line) {
			job.Company = line
			companyIdx = i
			break
		}
	}

	var descLines []string
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if i == companyIdx || line == "" {
			continue
		}
		if job.Duration == "" && yearPattern.MatchString(line) && len(strings.Fields(line)) <= 4 {
			job.Duration = line
			continue
		}
		descLines = append(descLines, strings.TrimLeft(line, "•- "))
	}
	job.Description = strings.Join(descLines, " ")

	return job, job.Title != ""
}

func extractEducationEntries(lines []string) []types.Education {
	var education []types.Education
	for _, line := range lines {
		if degree := degreePattern.FindString(line); degree != "" {
			entry := types.Education{Degree: degree}
			if match := degreeFieldPattern.FindStringSubmatch(line); match != nil {
				entry.Field = strings.TrimSpace(match[1])
			}
			if inst := institutionPattern.FindString(line); inst != "" {
				entry.Institution = strings.TrimSpace(inst)
			}
			entry.Year = yearPattern.FindString(line)
			education = append(education, entry)
			continue
		}

		// Institution or year on its own line attaches to the last entry.
		if len(education) == 0 {
			continue
		}
		last := &education[len(education)-1]
		if last.Institution == "" {
			if inst := institutionPattern.FindString(line); inst != "" {
				last.Institution = strings.TrimSpace(inst)
			}
		}
		if last.Year == "" {
			last.Year = yearPattern.FindString(line)
		}
	}
	return education
}

func extractCertifications(lines []string) []string {
	var certifications []string
	for _, chunk := range certDelimiterPattern.Split(strings.Join(lines, "\n"), -1) {
		cert := strings.TrimSpace(chunk)
		if len(cert) > 3 {
			certifications = append(certifications, cert)
		}
	}
	return certifications
}

// extractProjects treats each line opening with an uppercase rune as a new
// project name; bullet and lower-case lines extend the current description.
func extractProjects(lines []string) []types.Project {
	var projects []types.Project
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		runes := []rune(trimmed)
		startsEntry := unicode.IsUpper(runes[0])
		isContinuation := strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") || unicode.IsLower(runes[0])

		if len(projects) > 0 && isContinuation {
			last := &projects[len(projects)-1]
			body := strings.TrimLeft(trimmed, "•- ")
			if last.Description == "" {
				last.Description = body
			} else {
				last.Description += " " + body
			}
			continue
		}
		if startsEntry {
			name, rest, _ := strings.Cut(trimmed, " - ")
			projects = append(projects, types.Project{
				Name:        strings.TrimSpace(name),
				Description: strings.TrimSpace(rest),
			})
		}
	}

	// Drop stub entries that carry no real content.
	var out []types.Project
	for _, project := range projects {
		if len(project.Name)+len(project.Description) > 10 {
			out = append(out, project)
		}
	}
	return out
}

func extractTechnicalSkills(lines []string) []string {
	var skills []string
	for _, chunk := range skillDelimiterPattern.Split(strings.Join(lines, "\n"), -1) {
		skill := strings.TrimSpace(chunk)
		if len(skill) > 1 && len(skill) < 30 {
			skills = append(skills, skill)
		}
	}
	return dedupeFold(skills)
}

// analyzeATSReadiness computes the job-independent formatting score from the
// record alone, so it can be recomputed after optimization rewrites
// sections.
func analyzeATSReadiness(resume *types.ResumeContent) {
	score := 0
	var issues, suggestions []string

	switch {
	case resume.WordCount < minWordCount:
		issues = append(issues, "resume too short")
		suggestions = append(suggestions, "Add more detail to experience and skills sections")
	case resume.WordCount > maxWordCount:
		issues = append(issues, "resume too long")
		suggestions = append(suggestions, "Condense content to focus on most relevant information")
	default:
		score += 20
	}

	if resume.Name != "" {
		score += 10
	} else {
		issues = append(issues, "missing candidate name")
	}
	if resume.Email != "" {
		score += 10
	} else {
		issues = append(issues, "missing email address")
	}
	if len(resume.WorkExperience) > 0 {
		score += 20
	} else {
		issues = append(issues, "missing work experience section")
	}
	if len(resume.TechnicalSkills) > 0 || len(resume.ProgrammingLanguages) > 0 {
		score += 20
	} else {
		issues = append(issues, "missing technical skills section")
		suggestions = append(suggestions, "Add a dedicated skills section with relevant technologies")
	}
	if len(resume.Education) > 0 {
		score += 10
	} else {
		suggestions = append(suggestions, "Consider adding education section")
	}
	if len(resume.TechnicalSkills) > 0 {
		score += 20
	}

	if score > 100 {
		score = 100
	}
	resume.ATSScore = score
	resume.FormattingIssues = issues
	resume.OptimizationSuggestions = suggestions
}
