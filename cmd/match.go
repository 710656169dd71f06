package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/jobsift/internal/logger"
	"github.com/spigell/jobsift/internal/matcher"
	"github.com/spigell/jobsift/internal/resume"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match <resume> <job>...",
	Short: "Rank job descriptions against a resume with semantic embeddings",
	Long: "Match embeds the resume and every job description with a local ONNX sentence\n" +
		"embedding model and reports 0-100 similarity scores. The resume may be a PDF\n" +
		"or a plain text file.",
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		match(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("model-bundle", "m", "", "directory with model.onnx and tokenizer vocab")
}

func match(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	bundleDir := cmd.Flag("model-bundle").Value.String()
	if bundleDir == "" && config.Matcher != nil {
		bundleDir = config.Matcher.BundleDir
	}
	if bundleDir == "" {
		logger.Fatal("model bundle is required",
			zap.String("hint", "set --model-bundle or the 'matcher.bundle-dir' key in the configuration file"),
		)
	}

	resumeText, err := readResumeText(logger, args[0])
	if err != nil {
		logger.Fatal("reading resume", zap.Error(err), zap.String("file", args[0]))
	}

	embedder, err := matcher.LoadEmbedder(matcher.EmbedderConfig{BundleDir: bundleDir})
	if err != nil {
		logger.Fatal("loading embedding model", zap.Error(err), zap.String("bundle", bundleDir))
	}
	defer embedder.Close()

	m := matcher.New(embedder, logger)

	jobs := make([]matcher.Job, 0, len(args)-1)
	for _, path := range args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal("reading job description", zap.Error(err), zap.String("file", path))
		}
		jobs = append(jobs, matcher.Job{
			ID:          path,
			Title:       filepath.Base(path),
			Description: string(data),
		})
	}

	if len(jobs) == 1 {
		result, err := m.Match(ctx, resumeText, jobs[0].Description)
		if err != nil {
			logger.Fatal("matching resume to job", zap.Error(err))
		}

		fmt.Printf("Score: %.2f/100 (%s)\n", result.Score, result.Level)
		fmt.Println(result.Recommendation)
		return
	}

	matches, err := m.RankJobs(ctx, resumeText, jobs)
	if err != nil {
		logger.Fatal("ranking jobs", zap.Error(err))
	}

	for i, jm := range matches {
		fmt.Printf("%d. %s: %.2f/100 (%s)\n", i+1, jm.JobTitle, jm.Score, jm.Level)
	}
}

func readResumeText(logger *zap.Logger, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		report, err := resume.NewParser(logger).ParseFile(path)
		if err != nil {
			return "", err
		}
		return report.Parsed.RawText, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
