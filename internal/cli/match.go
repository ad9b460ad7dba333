package cli

import (
	"context"
	"fmt"

	"atsmatch/internal/common"
	"atsmatch/internal/types"

	"github.com/spf13/cobra"
)

// matchInput carries both documents through the command runner.
type matchInput struct {
	ResumeText     string
	JobDescription string
}

var matchCmd = &cobra.Command{
	Use:   "match [resume-file] [job-description-file]",
	Short: "Score how well a resume matches a job posting",
	Long: `Score how well a resume matches a job posting the way an
applicant tracking system would. The command takes two arguments: the
path to the resume file and the path to the job description file. Both
files should be in plain text format. The overall score weighs keyword
coverage, skill overlap, experience fit and formatting.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	eng, cleanup, err := engineFromCommandContext(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	createInput := func(contents []string) (matchInput, error) {
		if len(contents) != 2 {
			return matchInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return matchInput{
			ResumeText:     contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input matchInput, cfg common.CommandConfig) {
		logger.Info("Starting match scoring",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	matchOperation := func(ctx context.Context, input matchInput) (types.MatchScore, error) {
		resume := eng.ExtractResume(input.ResumeText)
		job := eng.ExtractJob(ctx, input.JobDescription, types.JobPostingHints{})
		return eng.Match(resume, job), nil
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		matchConfig,
		args,
		createInput,
		matchOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score match: %w", err)
	}
	logger.Info("Match scoring completed successfully")
	return nil
}
