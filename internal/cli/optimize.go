package cli

import (
	"context"
	"fmt"
	"strings"

	"atsmatch/internal/common"
	"atsmatch/internal/render"
	"atsmatch/internal/types"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-file] [job-description-file]",
	Short: "Optimize a resume for a specific job posting",
	Long: `Optimize a resume for a specific job posting. The command
injects missing keywords the resume can honestly claim, reorders skills
to front-load what the posting asks for, and rewrites the summary and
experience bullets when the AI enhancer is enabled. The optimized
resume never scores worse than the original.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if optimizeConfig.OutputFormat == "" {
			optimizeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(optimizeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runOptimize,
}

var (
	optimizeConfig     common.CommandConfig
	optimizeRenderFile string
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().StringVar(&optimizeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	optimizeCmd.Flags().StringVar(&optimizeRenderFile, "render", "", "Also write the optimized resume as a document to this path (.md renders markdown, anything else plain text)")

	// Add completion for format flag
	_ = optimizeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runOptimize(cmd *cobra.Command, args []string) error {
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
		logger.Info("Starting resume optimization",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	optimizeOperation := func(ctx context.Context, input matchInput) (types.OptimizationResult, error) {
		resume := eng.ExtractResume(input.ResumeText)
		job := eng.ExtractJob(ctx, input.JobDescription, types.JobPostingHints{})
		result := eng.Optimize(ctx, resume, job)

		if optimizeRenderFile != "" {
			renderFormat := "text"
			if strings.HasSuffix(optimizeRenderFile, ".md") {
				renderFormat = "markdown"
			}
			if err := render.WriteDocument(optimizeRenderFile, result.OptimizedResume, renderFormat); err != nil {
				return types.OptimizationResult{}, err
			}
			logger.Info("Rendered optimized resume",
				"file", optimizeRenderFile, "render_format", renderFormat)
		}

		return result, nil
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		optimizeConfig,
		args,
		createInput,
		optimizeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to optimize resume: %w", err)
	}
	logger.Info("Resume optimization completed successfully")
	return nil
}
