package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/abhisek/lingodrill/internal/grading"
	"github.com/abhisek/lingodrill/internal/handwriting"
	"github.com/abhisek/lingodrill/internal/llm"
	"github.com/abhisek/lingodrill/internal/logging"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <image>",
	Short: "Grade one handwriting image (no database)",
	Long: `Send one image to the configured vision grader and print its verdict.

This is a stateless developer tool: no database, no schedule changes, no
events. Useful for checking provider credentials and grading quality.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("target", "", "Text the learner was asked to write (required)")
	previewCmd.Flags().String("meaning", "", "Meaning shown with the prompt")
	_ = previewCmd.MarkFlagRequired("target")
}

func runPreview(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString("target")
	meaning, _ := cmd.Flags().GetString("meaning")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.New(logging.Options{Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer log.Sync()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	drawing := grading.Drawing{Data: data, MIMEType: http.DetectContentType(data)}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.CallTimeout)
	defer cancel()

	// No event recorder: nothing is written to the database.
	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, nil, log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	ev := handwriting.NewEvaluator(provider, handwriting.Config{
		Language:         cfg.LanguageName,
		FeedbackLanguage: cfg.FeedbackLanguage,
	}, log)

	fmt.Fprintf(cmd.OutOrStdout(), "Grading %s (%s) with %s...\n", args[0], drawing.MIMEType, llmCfg.Provider)
	verdict, err := ev.Evaluate(ctx, drawing, target, meaning)
	if err != nil {
		return err
	}

	mark := "✗ incorrect"
	if verdict.Correct {
		mark = "✓ correct"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  score %.0f / 100\n%s\n", mark, verdict.Score, verdict.Feedback)
	return nil
}
