package engine

import (
	"sort"
	"strings"

	"atsmatch/internal/types"
)

// Sub-score weights for the overall match figure.
const (
	keywordWeight    = 0.4
	skillWeight      = 0.3
	experienceWeight = 0.2
	formattingWeight = 0.1
)

const neutralScore = 50.0

// Score compares a resume against a job posting. Pure and deterministic:
// the same pair always produces the same MatchScore, and every component
// stays within [0,100].
func Score(resume types.ResumeContent, job types.JobRequirements) types.MatchScore {
	searchText := resumeSearchText(resume)

	keywordScore, matched := keywordMatchScore(searchText, job.ATSKeywords)

	score := types.MatchScore{
		KeywordScore:    keywordScore,
		SkillScore:      skillAlignmentScore(resume, job),
		ExperienceScore: experienceRelevanceScore(resume, job),
		FormattingScore: float64(resume.ATSScore),
		MatchedKeywords: matched,
	}
	score.Overall = clampScore(keywordWeight*score.KeywordScore +
		skillWeight*score.SkillScore +
		experienceWeight*score.ExperienceScore +
		formattingWeight*score.FormattingScore)

	return score
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// resumeSearchText concatenates every text-bearing field of the resume into
// the lowercase view keyword matching runs against.
func resumeSearchText(resume types.ResumeContent) string {
	parts := []string{
		resume.Name,
		resume.Summary,
		strings.Join(resume.TechnicalSkills, " "),
		strings.Join(resume.ProgrammingLanguages, " "),
		strings.Join(resume.FrameworksTools, " "),
		strings.Join(resume.SoftSkills, " "),
		strings.Join(resume.Certifications, " "),
	}
	for _, job := range resume.WorkExperience {
		parts = append(parts, job.Title, job.Company, job.Description)
	}
	for _, project := range resume.Projects {
		parts = append(parts, project.Name, project.Description)
	}
	for _, edu := range resume.Education {
		parts = append(parts, edu.Degree, edu.Field, edu.Institution)
	}

	var nonEmpty []string
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, " "))
}

func keywordMatchScore(searchText string, keywords []string) (float64, map[string]int) {
	matched := make(map[string]int)
	if len(keywords) == 0 {
		return neutralScore, matched
	}

	for _, keyword := range keywords {
		if count := countWord(searchText, keyword); count > 0 {
			matched[keyword] = count
		}
	}
	return float64(len(matched)) / float64(len(keywords)) * 100, matched
}

func skillAlignmentScore(resume types.ResumeContent, job types.JobRequirements) float64 {
	jobSkills := foldedSet(job.RequiredSkills, job.ProgrammingLanguages, job.FrameworksTools)
	if len(jobSkills) == 0 {
		return neutralScore
	}

	resumeSkills := foldedSet(resume.TechnicalSkills, resume.ProgrammingLanguages, resume.FrameworksTools)
	matched := 0
	for skill := range jobSkills {
		if resumeSkills[skill] {
			matched++
		}
	}
	return float64(matched) / float64(len(jobSkills)) * 100
}

func foldedSet(lists ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, list := range lists {
		for _, item := range list {
			if item != "" {
				set[strings.ToLower(item)] = true
			}
		}
	}
	return set
}

// experienceRelevanceScore gives a 60-point baseline for having any work
// history plus up to 40 bonus points for the job's ten most frequent
// keywords appearing in experience descriptions.
func experienceRelevanceScore(resume types.ResumeContent, job types.JobRequirements) float64 {
	if len(resume.WorkExperience) == 0 {
		return 30
	}

	var builder strings.Builder
	for _, position := range resume.WorkExperience {
		builder.WriteString(strings.ToLower(position.Description))
		builder.WriteString(" ")
	}
	experienceText := builder.String()

	hits := 0
	for _, keyword := range topKeywordsByFrequency(job, 10) {
		if containsWord(experienceText, keyword) {
			hits++
		}
	}
	return clampScore(60 + float64(hits)/10*40)
}

// topKeywordsByFrequency orders atsKeywords by posting frequency, keeping
// the extraction order for ties so the result is deterministic.
func topKeywordsByFrequency(job types.JobRequirements, n int) []string {
	keywords := make([]string, len(job.ATSKeywords))
	copy(keywords, job.ATSKeywords)

	sort.SliceStable(keywords, func(i, j int) bool {
		return job.KeywordFrequency[keywords[i]] > job.KeywordFrequency[keywords[j]]
	})
	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}
