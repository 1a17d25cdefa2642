package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/mgpai22/podmeta/internal/metadata"
	"github.com/mgpai22/podmeta/internal/output"
	"github.com/mgpai22/podmeta/internal/subtitle"
)

var generateCmd = &cobra.Command{
	Use:   "generate [transcript_file]",
	Short: "Generate titles, a description and chapters with AI",
	Long: `Generate publishable metadata for a podcast episode from its transcript.

The transcript layout is detected automatically. Titles, description and
chapters are requested from the assistant in parallel. Chapters need a
timestamped transcript; without --only they are skipped for plain text. Results are written next to the transcript (or
to --output) together with a manifest describing the run.

Examples:
  podmeta generate episode.txt
  podmeta generate episode.srt --only chapters --provider openai
  podmeta generate episode.txt --provider command --command "llm -m local"`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().
		String("only", "", "Comma separated kinds to generate: titles, description, chapters (default all)")
	generateCmd.Flags().
		String("provider", "", "Assistant provider: gemini, openai, anthropic, command (default from settings)")
	generateCmd.Flags().
		String("model", "", "Model to use (provider-specific, uses sensible defaults)")
	generateCmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	generateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	generateCmd.Flags().
		String("command", "", "Assistant command for the command provider; reads the prompt on stdin")
	generateCmd.Flags().
		Int("concurrency", 0, "Number of parallel assistant requests (default from settings)")
	generateCmd.Flags().
		Int("titles", 5, "Number of title suggestions")
	generateCmd.Flags().
		String("instructions", "", "Additional instructions passed to the assistant")
	generateCmd.Flags().
		Bool("srt", false, "Also write SRT subtitles for timestamped transcripts")
}

var validModels = map[metadata.Provider][]string{
	metadata.ProviderGemini: {
		"gemini-3-pro-preview",
		"gemini-3-flash-preview",
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.5-flash-lite",
	},
	metadata.ProviderOpenAI: {
		"o1", "o3-mini", "o1-pro", "o3",
		"gpt-5", "gpt-5-nano", "gpt-5-mini", "gpt-5-pro",
		"gpt-5.1", "gpt-5.2", "gpt-5.2-pro",
	},
	metadata.ProviderAnthropic: {
		"claude-haiku-4-5",
		"claude-sonnet-4-5",
		"claude-opus-4-5",
		"claude-opus-4-1",
	},
}

// isValidModel reports whether model is known for provider; providers without
// a model list accept anything
func isValidModel(provider metadata.Provider, model string) bool {
	models, ok := validModels[provider]
	if !ok {
		return true
	}
	return slices.Contains(models, strings.ToLower(strings.TrimSpace(model)))
}

// parseKinds turns the --only value into kinds; empty means all
func parseKinds(only string) ([]metadata.Kind, error) {
	if strings.TrimSpace(only) == "" {
		return metadata.AllKinds, nil
	}

	var kinds []metadata.Kind
	for _, part := range strings.Split(only, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		kind, err := metadata.ParseKind(part)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no metadata kinds selected")
	}
	return kinds, nil
}

func withoutKind(kinds []metadata.Kind, drop metadata.Kind) []metadata.Kind {
	out := make([]metadata.Kind, 0, len(kinds))
	for _, k := range kinds {
		if k != drop {
			out = append(out, k)
		}
	}
	return out
}

func runGenerate(cmd *cobra.Command, args []string) error {
	transcriptPath := args[0]
	ctx := context.Background()

	only, _ := cmd.Flags().GetString("only")
	providerStr, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	modelOverride, _ := cmd.Flags().GetBool("model-override")
	apiKey, _ := cmd.Flags().GetString("api-key")
	command, _ := cmd.Flags().GetString("command")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	titleCount, _ := cmd.Flags().GetInt("titles")
	instructions, _ := cmd.Flags().GetString("instructions")
	writeSRT, _ := cmd.Flags().GetBool("srt")
	outputDir, _ := cmd.Flags().GetString("output")

	kinds, err := parseKinds(only)
	if err != nil {
		return err
	}

	if providerStr == "" {
		providerStr = settings.Provider
	}
	provider := metadata.Provider(strings.ToLower(providerStr))
	if !slices.Contains(metadata.Providers, provider) {
		return fmt.Errorf("unsupported provider %q", providerStr)
	}

	if model == "" {
		model = settings.Model
	}
	if command == "" {
		command = settings.Command
	}
	if concurrency == 0 {
		concurrency = settings.Concurrency
	}
	if concurrency < 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if titleCount <= 0 {
		return fmt.Errorf("titles must be positive, got %d", titleCount)
	}
	if outputDir == "" {
		outputDir = settings.OutputDir
	}

	if envVar := metadata.APIKeyEnv(provider); envVar != "" {
		if apiKey == "" {
			apiKey = os.Getenv(envVar)
		}
		if apiKey == "" {
			return fmt.Errorf(
				"API key is required: use --api-key flag or set %s environment variable",
				envVar,
			)
		}
	}

	if model != "" && !modelOverride && !isValidModel(provider, model) {
		return fmt.Errorf(
			"unsupported %s model %q: valid models are %s (use --model-override to bypass)",
			provider,
			model,
			strings.Join(validModels[provider], ", "),
		)
	}

	tr, err := loadTranscript(transcriptPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(only) == "" && !tr.HasTimestamps() {
		kinds = withoutKind(kinds, metadata.KindChapters)
		logger.Warnw("Skipping chapters for transcript without timestamps",
			"input", transcriptPath,
			"format", tr.Format)
	}

	assistant, err := metadata.Factory(ctx, provider, apiKey, metadata.Options{
		Model:   model,
		Command: command,
	})
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}

	if model == "" {
		model = metadata.DefaultModel(provider)
	}

	logger.Infow("Generating metadata",
		"input", transcriptPath,
		"kinds", kinds,
		"provider", provider,
		"model", model,
		"concurrency", concurrency,
	)

	generator := &metadata.Generator{
		Assistant:          assistant,
		Concurrency:        concurrency,
		Instructions:       instructions,
		TitleCount:         titleCount,
		MaxTranscriptChars: settings.MaxTranscriptChars,
		Recorder:           stats,
	}
	result, err := generator.Generate(ctx, tr, kinds)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	logger.Infow("Generation complete",
		"titles", len(result.Titles),
		"chapters", len(result.Chapters),
	)

	w := output.NewWriter(outputDir, tr.FilePath, output.ManifestFormat(settings.ManifestFormat))
	manifest := output.NewManifest(tr)
	manifest.Provider = string(provider)
	manifest.Model = model

	files, err := w.WriteResult(result)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	manifest.Files = append(manifest.Files, files...)

	if writeSRT {
		if !tr.HasTimestamps() {
			logger.Warnw("Skipping subtitles for transcript without timestamps",
				"format", tr.Format)
		} else {
			conversion := subtitle.ConvertToSRT(tr.Segments)
			stats.RecordRepairWarnings(len(conversion.Errors))
			manifest.Warnings = conversion.Errors
			printLimited(cmd.ErrOrStderr(), "Warnings", conversion.Errors, settings.MaxWarnings)

			path, err := w.WriteSubtitles(conversion.Content, subtitle.FormatSRT)
			if err != nil {
				return fmt.Errorf("failed to write subtitles: %w", err)
			}
			manifest.Files = append(manifest.Files, path)
		}
	}

	if previous, err := output.ReadManifest(w.ManifestPath()); err == nil {
		logger.Infow("Replacing previous run",
			"run_id", previous.RunID,
			"generated_at", previous.GeneratedAt)
	}

	manifestPath, err := w.WriteManifest(manifest)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	absDir, _ := filepath.Abs(w.Dir)
	fmt.Fprintf(out, "Metadata generated successfully: %s\n", absDir)
	if len(result.Titles) > 0 {
		fmt.Fprintf(out, "  Titles: %d\n", len(result.Titles))
	}
	if result.Description != "" {
		fmt.Fprintf(out, "  Description: %d characters\n", utf8.RuneCountInString(result.Description))
	}
	if len(result.Chapters) > 0 {
		fmt.Fprintf(out, "  Chapters:\n")
		for _, line := range strings.Split(metadata.FormatYouTubeChapters(result.Chapters), "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}
	fmt.Fprintf(out, "  Manifest: %s\n", manifestPath)
	return nil
}
