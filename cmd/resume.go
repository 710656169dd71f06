package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/spigell/jobsift/internal/logger"
	"github.com/spigell/jobsift/internal/resume"
	"github.com/spigell/jobsift/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <file.pdf>",
	Short: "Parse a PDF resume and score it for ATS compatibility",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parseResume(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)

	resumeCmd.Flags().BoolP("save", "s", false, "save the parsed resume to the database")
	resumeCmd.Flags().StringP("output", "o", "text", "output format: text or json")
}

func parseResume(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	path := args[0]

	report, err := resume.NewParser(logger).ParseFile(path)
	if err != nil {
		logger.Fatal("parsing resume", zap.Error(err), zap.String("file", path))
	}

	if err := printResumeReport(cmd, report); err != nil {
		logger.Fatal("printing report", zap.Error(err))
	}

	if cmd.Flag("save").Value.String() != "true" {
		return
	}

	s, err := store.Open(config.storePath(), logger)
	if err != nil {
		logger.Fatal("opening store", zap.Error(err))
	}
	defer s.Close()

	id, err := s.SaveResume(ctx, filepath.Base(path), report)
	if err != nil {
		logger.Fatal("saving resume", zap.Error(err))
	}

	logger.Info("saved resume", zap.String("id", id), zap.String("database", config.storePath()))
}

func printResumeReport(cmd *cobra.Command, report *resume.Report) error {
	if cmd.Flag("output").Value.String() == "json" {
		pretty, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(pretty))
		return nil
	}

	fmt.Printf("ATS score: %.0f/100\n", report.ATSScore)

	if report.Parsed.Email != "" {
		fmt.Printf("Email: %s\n", report.Parsed.Email)
	}
	if report.Parsed.Phone != "" {
		fmt.Printf("Phone: %s\n", report.Parsed.Phone)
	}
	fmt.Printf("Words: %d\n", report.Parsed.WordCount)

	if len(report.Parsed.Skills) > 0 {
		fmt.Println("\nSkills:")
		for _, skill := range report.Parsed.Skills {
			fmt.Printf("  - %s\n", skill)
		}
	}

	if len(report.Parsed.Education) > 0 {
		fmt.Println("\nEducation:")
		for _, edu := range report.Parsed.Education {
			fmt.Printf("  - %s\n", edu.Degree)
		}
	}

	if len(report.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, suggestion := range report.Suggestions {
			fmt.Printf("  - %s\n", suggestion)
		}
	}

	return nil
}
