package engine

import (
	"regexp"
	"strconv"
	"strings"

	"atsmatch/internal/types"
)

const maxResponsibilities = 10

var (
	yearsExperiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
		regexp.MustCompile(`(?i)(\d+)\s*-\s*\d+\s*years?`),
		regexp.MustCompile(`(?i)minimum\s*(\d+)\s*years?`),
	}

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)location[:\s]+([^,\n]+)`),
		regexp.MustCompile(`(?i)based in ([^,\n]+)`),
		regexp.MustCompile(`(?i)office in ([^,\n]+)`),
		regexp.MustCompile(`(?i)\bremote\b`),
		regexp.MustCompile(`(?i)\bhybrid\b`),
	}

	requiredSpanPattern = regexp.MustCompile(
		`(?is)\b(?:requirements?|qualifications?|required|must have|essential)\b[:\s]+(.*?)(?:\b(?:preferred|nice to have|bonus|plus|desirable)\b|\n\n|$)`)
	preferredSpanPattern = regexp.MustCompile(
		`(?is)\b(?:preferred|nice to have|bonus|plus|desirable)\b[:\s]+(.*?)(?:\b(?:requirements?|qualifications?|required|must have|essential|responsibilities)\b|\n\n|$)`)
	responsibilitySpanPattern = regexp.MustCompile(
		`(?is)\b(?:responsibilities|duties|you will|what you'll do)\b[:\s]+(.*?)(?:\b(?:requirements?|qualifications?|preferred)\b|\n\n|$)`)

	phraseDelimiterPattern = regexp.MustCompile(`[,;•\n\-\*]`)
)

// ExtractJobRequirements turns raw job-posting text into a structured
// JobRequirements record. It is deterministic and total: malformed or empty
// input yields a best-effort partial record, never an error. Title and
// company come only from the caller's hints.
func ExtractJobRequirements(raw string, hints types.JobPostingHints) types.JobRequirements {
	norm := Normalize(raw)
	flat := Flatten(norm)

	req := types.JobRequirements{
		Title:   hints.Title,
		Company: hints.Company,
	}

	req.Location = extractLocation(norm)
	req.JobType = extractJobType(flat)
	req.ExperienceLevel = extractExperienceLevel(flat)
	req.YearsExperience = extractYearsExperience(norm)

	req.ProgrammingLanguages = matchVocabulary(flat, programmingLanguageVocab)
	req.FrameworksTools = matchVocabulary(flat, frameworkToolVocab)
	req.Databases = matchVocabulary(flat, databaseVocab)
	req.CloudPlatforms = matchVocabulary(flat, cloudPlatformVocab)
	req.SoftSkills = matchVocabulary(flat, softSkillVocab)

	req.RequiredSkills, req.PreferredSkills = extractSkillRequirements(norm)
	req.EducationRequirements = extractEducation(flat)
	req.Responsibilities = extractResponsibilities(norm)

	req.ATSKeywords = buildATSKeywords(&req)
	req.KeywordFrequency = keywordFrequency(flat, req.ATSKeywords)

	return req
}

func extractLocation(text string) string {
	for _, pattern := range locationPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if len(match) > 1 {
			return strings.TrimSpace(match[1])
		}
		return match[0]
	}
	return ""
}

func extractJobType(flat string) string {
	for _, jobType := range jobTypeVocab {
		if strings.Contains(flat, jobType) {
			return jobType
		}
	}
	return ""
}

func extractExperienceLevel(flat string) string {
	for _, entry := range experienceLevelTable {
		for _, pattern := range entry.Patterns {
			if strings.Contains(flat, pattern) {
				return entry.Level
			}
		}
	}
	return ""
}

func extractYearsExperience(text string) *int {
	for _, pattern := range yearsExperiencePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		years, err := strconv.Atoi(match[1])
		if err != nil || years < 0 {
			continue
		}
		return &years
	}
	return nil
}

// matchVocabulary collects whole-word vocabulary hits in table order, which
// keeps extraction output stable across runs.
func matchVocabulary(flat string, vocab []string) []string {
	var found []string
	for _, term := range vocab {
		if containsWord(flat, term) {
			found = append(found, term)
		}
	}
	return found
}

func extractSkillRequirements(text string) (required, preferred []string) {
	for _, match := range requiredSpanPattern.FindAllStringSubmatch(text, -1) {
		required = append(required, splitSkillPhrases(match[1])...)
	}
	for _, match := range preferredSpanPattern.FindAllStringSubmatch(text, -1) {
		preferred = append(preferred, splitSkillPhrases(match[1])...)
	}

	required = dedupeFold(required)

	// Required wins: a phrase in both spans stays required only.
	requiredSet := make(map[string]bool, len(required))
	for _, skill := range required {
		requiredSet[strings.ToLower(skill)] = true
	}
	var disjoint []string
	for _, skill := range dedupeFold(preferred) {
		if !requiredSet[strings.ToLower(skill)] {
			disjoint = append(disjoint, skill)
		}
	}
	return required, disjoint
}

// splitSkillPhrases tokenizes a requirement span into candidate skill
// phrases on the common delimiters, keeping phrases of 3 to 49 characters.
func splitSkillPhrases(span string) []string {
	var phrases []string
	for _, phrase := range phraseDelimiterPattern.Split(span, -1) {
		phrase = strings.TrimSpace(phrase)
		if len(phrase) > 2 && len(phrase) < 50 {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}

func extractEducation(flat string) []string {
	var found []string
	for _, term := range educationVocab {
		if strings.Contains(flat, term) {
			found = append(found, term)
		}
	}
	return found
}

func extractResponsibilities(text string) []string {
	var responsibilities []string
	for _, match := range responsibilitySpanPattern.FindAllStringSubmatch(text, -1) {
		responsibilities = append(responsibilities, splitSkillPhrases(match[1])...)
	}
	responsibilities = dedupeFold(responsibilities)
	if len(responsibilities) > maxResponsibilities {
		responsibilities = responsibilities[:maxResponsibilities]
	}
	return responsibilities
}

// buildATSKeywords derives the canonical matching vocabulary: every
// collection gathered above plus the title and experience level,
// case-insensitively deduplicated with first-seen casing, length > 1.
func buildATSKeywords(req *types.JobRequirements) []string {
	var keywords []string
	seen := make(map[string]bool)
	add := func(candidates ...string) {
		for _, kw := range candidates {
			kw = strings.TrimSpace(kw)
			if len(kw) <= 1 {
				continue
			}
			key := strings.ToLower(kw)
			if seen[key] {
				continue
			}
			seen[key] = true
			keywords = append(keywords, kw)
		}
	}

	add(req.ProgrammingLanguages...)
	add(req.FrameworksTools...)
	add(req.Databases...)
	add(req.CloudPlatforms...)
	add(req.RequiredSkills...)
	add(req.PreferredSkills...)
	add(req.SoftSkills...)
	add(req.EducationRequirements...)
	add(req.Title)
	add(req.ExperienceLevel)

	return keywords
}

func keywordFrequency(flat string, keywords []string) map[string]int {
	frequency := make(map[string]int, len(keywords))
	for _, keyword := range keywords {
		if count := countWord(flat, keyword); count > 0 {
			frequency[keyword] = count
		}
	}
	return frequency
}

// dedupeFold removes case-insensitive duplicates, keeping first-seen order
// and casing.
func dedupeFold(items []string) []string {
	var out []string
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
