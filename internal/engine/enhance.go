package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"atsmatch/internal/types"
)

const (
	jobInsightsMaxTokens = 512
	summaryMaxTokens     = 200
	descriptionMaxTokens = 300

	jobInsightsPromptLimit = 2000
)

const jobInsightsPrompt = `Analyze this job posting and extract additional insights.

Job posting:
%s

Identify technical skills, tools, and industry-specific terminology not
already captured by these keywords: %s

Respond with only a JSON object of this shape:
{"additionalSkills": [], "industryTerms": []}`

const summaryPrompt = `Optimize this professional summary for the following job.

Job title: %s
Company: %s
Key requirements: %s

Original summary:
%s

Create an optimized summary that incorporates relevant keywords naturally,
highlights matching skills and experience, maintains a professional tone,
stays under 150 words, and focuses on the value proposition for this role.
Return only the optimized summary text.`

const descriptionPrompt = `Enhance this job description by naturally incorporating these relevant keywords: %s

Original description:
%s

Return an enhanced version that naturally incorporates 2-3 of the keywords,
maintains the original meaning and tone, does not sound forced, and keeps
approximately the same length. Return only the enhanced description.`

// jobInsights is the enhancer's answer shape for job keyword enrichment.
type jobInsights struct {
	AdditionalSkills []string `json:"additionalSkills"`
	IndustryTerms    []string `json:"industryTerms"`
}

// enhanceJobKeywords asks the enhancer for keywords the deterministic pass
// missed and merges them into atsKeywords. Unparseable output is dropped.
func (e *Engine) enhanceJobKeywords(ctx context.Context, raw string, req *types.JobRequirements) {
	if e.enhancer == nil {
		return
	}

	norm := Normalize(raw)
	excerpt := norm
	if len(excerpt) > jobInsightsPromptLimit {
		excerpt = excerpt[:jobInsightsPromptLimit]
	}

	prompt := fmt.Sprintf(jobInsightsPrompt, excerpt, strings.Join(req.ATSKeywords, ", "))
	output, ok := e.generate(ctx, prompt, jobInsightsMaxTokens)
	if !ok {
		return
	}

	var insights jobInsights
	if err := json.Unmarshal([]byte(output), &insights); err != nil {
		e.logger.Debug("unparseable enhancer insights, keeping deterministic keywords", "error", err.Error())
		return
	}

	flat := Flatten(norm)
	seen := make(map[string]bool, len(req.ATSKeywords))
	for _, kw := range req.ATSKeywords {
		seen[strings.ToLower(kw)] = true
	}
	for _, kw := range append(insights.AdditionalSkills, insights.IndustryTerms...) {
		kw = strings.TrimSpace(kw)
		if len(kw) <= 1 || seen[strings.ToLower(kw)] {
			continue
		}
		seen[strings.ToLower(kw)] = true
		req.ATSKeywords = append(req.ATSKeywords, kw)
		if count := countWord(flat, kw); count > 0 {
			req.KeywordFrequency[kw] = count
		}
	}
}

// enhanceSummary requests a summary rewrite folding in the job's top
// required skills. The second return reports acceptance; rejected output
// leaves the caller on the deterministic path.
func (e *Engine) enhanceSummary(ctx context.Context, summary string, job types.JobRequirements) (string, bool) {
	topSkills := job.RequiredSkills
	if len(topSkills) > 10 {
		topSkills = topSkills[:10]
	}

	prompt := fmt.Sprintf(summaryPrompt, job.Title, job.Company, strings.Join(topSkills, ", "), summary)
	output, ok := e.generate(ctx, prompt, summaryMaxTokens)
	if !ok {
		return "", false
	}
	if len(output) < minSummaryChars || len(strings.Fields(output)) > maxSummaryWords {
		return "", false
	}
	return output, true
}

// enhanceDescription requests an experience-description rewrite weaving in
// unused keywords. Accepted only when it keeps at least 80% of the original
// length and actually mentions one of the keywords.
func (e *Engine) enhanceDescription(ctx context.Context, description string, keywords []string) (string, bool) {
	prompt := fmt.Sprintf(descriptionPrompt, strings.Join(keywords, ", "), description)
	output, ok := e.generate(ctx, prompt, descriptionMaxTokens)
	if !ok {
		return "", false
	}
	if len(output)*10 < len(description)*8 {
		return "", false
	}
	mentionsKeyword := false
	for _, kw := range keywords {
		if containsWord(strings.ToLower(output), kw) {
			mentionsKeyword = true
			break
		}
	}
	if !mentionsKeyword {
		return "", false
	}
	return output, true
}

// trimGeneratedText strips whitespace and the code fences models like to
// wrap answers in.
func trimGeneratedText(output string) string {
	output = strings.TrimSpace(output)
	if strings.HasPrefix(output, "```") {
		output = strings.TrimPrefix(output, "```json")
		output = strings.TrimPrefix(output, "```")
		output = strings.TrimSuffix(output, "```")
		output = strings.TrimSpace(output)
	}
	return output
}
