package engine

import (
	"math"
	"reflect"
	"testing"

	"atsmatch/internal/types"
)

func TestScoreEmptyJobUsesNeutralFallbacks(t *testing.T) {
	resume := ExtractResumeContent(sampleResume)
	job := ExtractJobRequirements("", types.JobPostingHints{})

	score := Score(resume, job)

	if score.KeywordScore != 50 {
		t.Errorf("KeywordScore = %v, want neutral 50 for empty keyword set", score.KeywordScore)
	}
	if score.SkillScore != 50 {
		t.Errorf("SkillScore = %v, want neutral 50 for empty job skill set", score.SkillScore)
	}
	if len(score.MatchedKeywords) != 0 {
		t.Errorf("MatchedKeywords = %v, want empty", score.MatchedKeywords)
	}
}

func TestScoreBounds(t *testing.T) {
	resumes := []types.ResumeContent{
		{},
		ExtractResumeContent(sampleResume),
		{ATSScore: 100, WorkExperience: []types.WorkExperience{{Description: "everything"}}},
	}
	jobs := []types.JobRequirements{
		{},
		ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{Title: "Senior Python Developer"}),
	}

	for _, resume := range resumes {
		for _, job := range jobs {
			score := Score(resume, job)
			for name, value := range map[string]float64{
				"overall":    score.Overall,
				"keyword":    score.KeywordScore,
				"skill":      score.SkillScore,
				"experience": score.ExperienceScore,
				"formatting": score.FormattingScore,
			} {
				if value < 0 || value > 100 {
					t.Errorf("%s score %v out of [0,100]", name, value)
				}
			}

			weighted := 0.4*score.KeywordScore + 0.3*score.SkillScore +
				0.2*score.ExperienceScore + 0.1*score.FormattingScore
			if weighted >= 0 && weighted <= 100 && math.Abs(score.Overall-weighted) > 1e-9 {
				t.Errorf("Overall = %v, want weighted sum %v", score.Overall, weighted)
			}
		}
	}
}

func TestScoreMatchedKeywordsOmitZeroCounts(t *testing.T) {
	resume := ExtractResumeContent(sampleResume)
	job := ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{})

	score := Score(resume, job)

	for keyword, count := range score.MatchedKeywords {
		if count <= 0 {
			t.Errorf("MatchedKeywords[%q] = %d, zero counts must be omitted", keyword, count)
		}
	}
	if score.MatchedKeywords["Python"] == 0 {
		t.Error("MatchedKeywords missing Python, which the resume mentions")
	}
	if _, ok := score.MatchedKeywords["Django"]; ok {
		t.Error("MatchedKeywords contains Django, which the resume never mentions")
	}
}

func TestScoreKeywordFractionReflectsOverlap(t *testing.T) {
	resume := types.ResumeContent{
		Summary: "Software Developer. Experience with Python and web development.",
	}
	job := types.JobRequirements{
		ATSKeywords: []string{"Python", "Django", "PostgreSQL", "AWS", "Git"},
	}

	score := Score(resume, job)

	if score.KeywordScore != 20 {
		t.Errorf("KeywordScore = %v, want 20 for 1 of 5 keywords", score.KeywordScore)
	}
}

func TestExperienceRelevanceScore(t *testing.T) {
	job := types.JobRequirements{
		ATSKeywords:      []string{"Python", "Django"},
		KeywordFrequency: map[string]int{"Python": 3, "Django": 1},
	}

	tests := []struct {
		name     string
		resume   types.ResumeContent
		expected float64
	}{
		{
			name:     "no experience baseline",
			resume:   types.ResumeContent{},
			expected: 30,
		},
		{
			name: "experience without keyword hits",
			resume: types.ResumeContent{
				WorkExperience: []types.WorkExperience{{Description: "managed a bakery"}},
			},
			expected: 60,
		},
		{
			name: "experience with both top keywords",
			resume: types.ResumeContent{
				WorkExperience: []types.WorkExperience{{Description: "built Django apps in Python"}},
			},
			expected: 60 + 2.0/10*40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := experienceRelevanceScore(tt.resume, job)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("experienceRelevanceScore() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestTopKeywordsByFrequencyDeterministicOrder(t *testing.T) {
	job := types.JobRequirements{
		ATSKeywords:      []string{"Go", "Rust", "Python", "Django"},
		KeywordFrequency: map[string]int{"Python": 5, "Go": 2, "Rust": 2},
	}

	want := []string{"Python", "Go", "Rust", "Django"}
	for i := 0; i < 10; i++ {
		got := topKeywordsByFrequency(job, 10)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("topKeywordsByFrequency() = %v, want %v", got, want)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	resume := ExtractResumeContent(sampleResume)
	job := ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{Title: "Senior Python Developer"})

	first := Score(resume, job)
	second := Score(resume, job)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("scoring is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
