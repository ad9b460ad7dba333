package cli

import (
	"context"
	"fmt"

	"atsmatch/internal/common"
	"atsmatch/internal/types"

	"github.com/spf13/cobra"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume [resume-file]",
	Short: "Parse a resume into structured sections",
	Long: `Parse a plain text resume into structured sections: contact
information, summary, skills, work experience, education, certifications
and projects. The output includes an ATS readiness score with any
formatting issues that would trip up a tracking system.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if parseResumeConfig.OutputFormat == "" {
			parseResumeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(parseResumeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runParseResume,
}

var parseResumeConfig common.CommandConfig

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseResumeCmd.Flags().StringVar(&parseResumeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = parseResumeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runParseResume(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	eng, cleanup, err := engineFromCommandContext(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return contents[0], nil
	}

	logDetails := func(input string, cfg common.CommandConfig) {
		logger.Info("Starting resume parsing",
			"resume_chars", len(input),
			"output_format", cfg.OutputFormat)
	}

	parseOperation := func(ctx context.Context, raw string) (types.ResumeContent, error) {
		return eng.ExtractResume(raw), nil
	}

	err = common.RunEngineCommand(
		cmd.Context(),
		logger,
		parseResumeConfig,
		args,
		createInput,
		parseOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	logger.Info("Resume parsing completed successfully")
	return nil
}
