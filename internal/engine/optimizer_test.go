package engine

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"atsmatch/internal/types"
)

type fakeEnhancer struct {
	output string
	err    error
	calls  int
}

func (f *fakeEnhancer) Generate(ctx context.Context, prompt string, maxTokens int32) (string, error) {
	f.calls++
	return f.output, f.err
}

func TestOptimizeDeterministicSummaryFallback(t *testing.T) {
	eng := New(Options{})
	resume := ExtractResumeContent(sampleResume)
	job := ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{Title: "Senior Python Developer"})

	result := eng.Optimize(context.Background(), resume, job)

	want := "Software Developer. Experience with Python and web development." +
		" Experienced with Django. Experienced with PostgreSQL. Experienced with AWS."
	if result.OptimizedResume.Summary != want {
		t.Errorf("optimized summary = %q\nwant %q", result.OptimizedResume.Summary, want)
	}

	if result.AfterScore.Overall <= result.BeforeScore.Overall {
		t.Errorf("AfterScore.Overall = %v, want greater than BeforeScore.Overall %v",
			result.AfterScore.Overall, result.BeforeScore.Overall)
	}
	if len(result.ImprovementsMade) == 0 {
		t.Error("ImprovementsMade is empty for a resume that plainly improved")
	}
	if result.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestOptimizeIdentityPreserved(t *testing.T) {
	eng := New(Options{})
	resume := ExtractResumeContent(sampleResume)
	job := ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{})

	result := eng.Optimize(context.Background(), resume, job)

	optimized := result.OptimizedResume
	if optimized.Name != resume.Name || optimized.Email != resume.Email || optimized.Phone != resume.Phone {
		t.Errorf("identity fields changed: got %q/%q/%q, want %q/%q/%q",
			optimized.Name, optimized.Email, optimized.Phone,
			resume.Name, resume.Email, resume.Phone)
	}
	if !reflect.DeepEqual(result.OriginalResume, resume) {
		t.Error("OriginalResume does not equal the input resume")
	}
	if len(optimized.WorkExperience) != len(resume.WorkExperience) {
		t.Errorf("optimization changed the number of positions: %d -> %d",
			len(resume.WorkExperience), len(optimized.WorkExperience))
	}
	for i := range optimized.WorkExperience {
		if optimized.WorkExperience[i].Company != resume.WorkExperience[i].Company ||
			optimized.WorkExperience[i].Duration != resume.WorkExperience[i].Duration {
			t.Errorf("position %d employer or dates changed", i)
		}
	}
}

func TestOptimizeMonotonicAcrossInputs(t *testing.T) {
	eng := New(Options{})
	resumes := []types.ResumeContent{
		{},
		ExtractResumeContent(sampleResume),
		{Summary: "short"},
	}
	jobs := []types.JobRequirements{
		{},
		ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{}),
		{ATSKeywords: []string{"esoteric", "unmatched"}},
	}

	for _, resume := range resumes {
		for _, job := range jobs {
			result := eng.Optimize(context.Background(), resume, job)
			if result.AfterScore.Overall < result.BeforeScore.Overall {
				t.Errorf("score regressed: before %v, after %v (resume %q, keywords %v)",
					result.BeforeScore.Overall, result.AfterScore.Overall, resume.Summary, job.ATSKeywords)
			}
		}
	}
}

func TestOptimizeReoptimizationDoesNotRegress(t *testing.T) {
	eng := New(Options{})
	resume := ExtractResumeContent(sampleResume)
	job := ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{Title: "Senior Python Developer"})

	first := eng.Optimize(context.Background(), resume, job)
	second := eng.Optimize(context.Background(), first.OptimizedResume, job)

	if second.AfterScore.Overall < second.BeforeScore.Overall {
		t.Errorf("re-optimization regressed: before %v, after %v",
			second.BeforeScore.Overall, second.AfterScore.Overall)
	}
	if second.AfterScore.Overall < first.AfterScore.Overall {
		t.Errorf("second pass lowered the score: %v -> %v",
			first.AfterScore.Overall, second.AfterScore.Overall)
	}
}

func TestOptimizeSkillsUnionAndPriority(t *testing.T) {
	resume := types.ResumeContent{
		ProgrammingLanguages: []string{"Ruby", "Python"},
	}
	job := types.JobRequirements{
		ProgrammingLanguages: []string{"Python", "Go"},
		ATSKeywords:          []string{"Python", "Go"},
	}

	optimizeSkills(&resume, job)

	want := []string{"Python", "Go", "Ruby"}
	if !reflect.DeepEqual(resume.ProgrammingLanguages, want) {
		t.Errorf("ProgrammingLanguages = %v, want %v", resume.ProgrammingLanguages, want)
	}
}

func TestOptimizeAcceptsValidEnhancedSummary(t *testing.T) {
	rewritten := "Senior software developer with deep Python, Django and PostgreSQL experience delivering cloud services on AWS."
	enhancer := &fakeEnhancer{output: rewritten}
	eng := New(Options{Enhancer: enhancer})

	resume := ExtractResumeContent(sampleResume)
	job := ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{Title: "Senior Python Developer"})

	result := eng.Optimize(context.Background(), resume, job)

	if result.OptimizedResume.Summary != rewritten {
		t.Errorf("Summary = %q, want enhancer rewrite", result.OptimizedResume.Summary)
	}
	if enhancer.calls == 0 {
		t.Error("enhancer was never called")
	}
	if result.AfterScore.Overall < result.BeforeScore.Overall {
		t.Errorf("score regressed with enhancer: %v -> %v",
			result.BeforeScore.Overall, result.AfterScore.Overall)
	}
}

func TestOptimizeRejectsShortEnhancedSummary(t *testing.T) {
	enhancer := &fakeEnhancer{output: "Too short."}
	eng := New(Options{Enhancer: enhancer})

	resume := ExtractResumeContent(sampleResume)
	job := ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{})

	result := eng.Optimize(context.Background(), resume, job)

	if !strings.HasPrefix(result.OptimizedResume.Summary, resume.Summary) {
		t.Errorf("Summary = %q, want deterministic fallback built on the original", result.OptimizedResume.Summary)
	}
}

func TestOptimizeFallsBackOnEnhancerError(t *testing.T) {
	enhancer := &fakeEnhancer{err: errors.New("model unavailable")}
	eng := New(Options{Enhancer: enhancer})

	resume := ExtractResumeContent(sampleResume)
	job := ExtractJobRequirements(seniorPythonPosting, types.JobPostingHints{})

	result := eng.Optimize(context.Background(), resume, job)

	if result.AfterScore.Overall < result.BeforeScore.Overall {
		t.Errorf("score regressed on enhancer failure: %v -> %v",
			result.BeforeScore.Overall, result.AfterScore.Overall)
	}
	if !strings.Contains(result.OptimizedResume.Summary, "Experienced with") {
		t.Errorf("Summary = %q, want deterministic fallback clauses", result.OptimizedResume.Summary)
	}
}

func TestOptimizeGuardRevertsHarmfulRewrite(t *testing.T) {
	// The rewrite passes the plausibility checks but drops every keyword,
	// so only the monotonicity guard can save the score.
	enhancer := &fakeEnhancer{output: "Results-driven professional delivering outstanding value every single day."}
	eng := New(Options{Enhancer: enhancer})

	resume := types.ResumeContent{
		Summary: "Strong communication and teamwork across delivery projects.",
	}
	job := types.JobRequirements{
		RequiredSkills: []string{"communication", "teamwork"},
		ATSKeywords:    []string{"communication", "teamwork"},
	}

	result := eng.Optimize(context.Background(), resume, job)

	if result.AfterScore.Overall < result.BeforeScore.Overall {
		t.Errorf("guard failed: before %v, after %v",
			result.BeforeScore.Overall, result.AfterScore.Overall)
	}
	if result.OptimizedResume.Summary != resume.Summary {
		t.Errorf("Summary = %q, want the original restored by the guard", result.OptimizedResume.Summary)
	}
}

func TestOptimizeEmptySummaryBuiltFromRequirements(t *testing.T) {
	eng := New(Options{})
	resume := types.ResumeContent{Name: "Jane Doe"}
	job := types.JobRequirements{
		RequiredSkills:  []string{"Go", "Kubernetes"},
		ExperienceLevel: "senior",
		ATSKeywords:     []string{"Go", "Kubernetes", "senior"},
	}

	result := eng.Optimize(context.Background(), resume, job)

	summary := result.OptimizedResume.Summary
	if !strings.Contains(summary, "Go, Kubernetes") {
		t.Errorf("Summary = %q, want required skills named", summary)
	}
	if !strings.Contains(summary, "senior level positions") {
		t.Errorf("Summary = %q, want experience level named", summary)
	}
}
