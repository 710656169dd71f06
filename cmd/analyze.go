package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spigell/jobsift/internal/detector"
	"github.com/spigell/jobsift/internal/logger"
	"github.com/spigell/jobsift/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptSave       = "Save to database"
	PromptDumpToFile = "Dump analysis to file"
	PromptQuit       = "Quit"
)

var errExit = errors.New("exit requested")

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Classify a job posting as active hiring, pipeline/evergreen or mixed signals",
	Long: "Analyze reads a job description from the given file (or stdin when no file is given)\n" +
		"and reports whether the posting looks like a real opening or a resume-collection pipeline.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("posted", "p", "", "posting date (ISO-8601, e.g. 2024-06-01)")
	analyzeCmd.Flags().StringP("title", "t", "", "a title to store alongside the analysis")
	analyzeCmd.Flags().BoolP("save", "s", false, "save the analysis to the database")
	analyzeCmd.Flags().BoolP("interactive", "i", false, "choose what to do with the analysis interactively")
	analyzeCmd.Flags().StringP("output", "o", "text", "output format: text or json")
}

func analyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	description, source, err := readJobDescription(args)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	posted := cmd.Flag("posted").Value.String()

	logger.Debug("starting analysis",
		zap.String("source", source),
		zap.Int("description_length", len(description)),
		zap.String("posted", posted),
	)

	analysis := detector.New(logger).Classify(description, posted)

	if err := printAnalysis(cmd, analysis); err != nil {
		logger.Fatal("printing analysis", zap.Error(err))
	}

	title := cmd.Flag("title").Value.String()
	if title == "" {
		title = source
	}

	if cmd.Flag("save").Value.String() == "true" {
		if err := saveAnalysis(ctx, config, logger, title, description, posted, analysis); err != nil {
			logger.Fatal("saving analysis", zap.Error(err))
		}
	}

	if cmd.Flag("interactive").Value.String() != "true" {
		return
	}

	prompt := promptui.Select{
		Label: "What next?",
		Items: []string{PromptSave, PromptDumpToFile, PromptQuit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAnalyzeAction(ctx, action, config, logger, title, description, posted, analysis); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAnalyzeAction(ctx context.Context, action string, config *Config, logger *zap.Logger, title, description, posted string, analysis detector.HiringAnalysis) error {
	switch action {
	case PromptSave:
		return saveAnalysis(ctx, config, logger, title, description, posted, analysis)
	case PromptDumpToFile:
		filename, err := dumpAnalysisToTmpFile(analysis)
		if err != nil {
			return fmt.Errorf("dump analysis to file: %w", err)
		}
		logger.Info("dumped analysis to file", zap.String("filename", filename))
		return nil
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func saveAnalysis(ctx context.Context, config *Config, logger *zap.Logger, title, description, posted string, analysis detector.HiringAnalysis) error {
	s, err := store.Open(config.storePath(), logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	id, err := s.SaveAnalysis(ctx, title, description, posted, analysis)
	if err != nil {
		return err
	}

	logger.Info("saved analysis", zap.String("id", id), zap.String("database", config.storePath()))
	return nil
}

func dumpAnalysisToTmpFile(analysis detector.HiringAnalysis) (string, error) {
	pretty, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", app+"-analysis-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(pretty); err != nil {
		return "", err
	}

	return f.Name(), nil
}

func readJobDescription(args []string) (text, source string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return string(data), args[0], nil
}

func printAnalysis(cmd *cobra.Command, analysis detector.HiringAnalysis) error {
	if cmd.Flag("output").Value.String() == "json" {
		pretty, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(pretty))
		return nil
	}

	fmt.Printf("Hiring type: %s (%s confidence)\n", analysis.HiringType, analysis.Confidence)
	fmt.Printf("Explanation: %s\n", analysis.Explanation)
	fmt.Printf("Scores: active=%d passive=%d red_flags=%d\n",
		analysis.ActiveScore, analysis.PassiveScore, analysis.RedFlagScore)

	if analysis.PostingAgeDays != nil {
		staleness := "fresh"
		if analysis.IsStale {
			staleness = "stale"
		}
		fmt.Printf("Posting age: %d days (%s)\n", *analysis.PostingAgeDays, staleness)
	}

	if len(analysis.Insights) > 0 {
		fmt.Println("\nInsights:")
		for _, insight := range analysis.Insights {
			fmt.Printf("  - %s\n", insight)
		}
	}

	if len(analysis.ApplicationStrategy) > 0 {
		fmt.Println("\nApplication strategy:")
		for _, step := range analysis.ApplicationStrategy {
			fmt.Printf("  - %s\n", step)
		}
	}

	if !strings.EqualFold(string(analysis.Confidence), string(detector.ConfidenceHigh)) {
		fmt.Println("\nSignals are not conclusive; read the posting carefully before applying.")
	}

	return nil
}
