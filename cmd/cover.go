package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spigell/jobsift/internal/coverletter"
	"github.com/spigell/jobsift/internal/logger"
	"github.com/spigell/jobsift/internal/resume"
	"github.com/spigell/jobsift/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var coverCmd = &cobra.Command{
	Use:   "cover <resume> <job>",
	Short: "Draft a personalized cover letter for a job posting",
	Long: "Cover reads a resume (PDF or text) and a job description and drafts a cover\n" +
		"letter through the Gemini API. The tone can be professional, enthusiastic or formal.",
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cover(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(coverCmd)

	coverCmd.Flags().String("tone", string(coverletter.ToneProfessional), "letter tone: professional, enthusiastic or formal")
	coverCmd.Flags().String("name", "", "candidate name used in the letter")
	coverCmd.Flags().String("company", "", "company name for the posting")
	coverCmd.Flags().String("title", "", "job title for the posting")
	coverCmd.Flags().StringArray("experience", nil, "recent experience entry, e.g. 'Backend Engineer at Initech' (repeatable)")
}

func cover(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	tone, err := coverletter.ParseTone(cmd.Flag("tone").Value.String())
	if err != nil {
		zl.Fatal("parsing tone", zap.Error(err))
	}

	resumeText, err := readResumeText(zl, args[0])
	if err != nil {
		zl.Fatal("reading resume", zap.Error(err), zap.String("file", args[0]))
	}

	jobData, err := os.ReadFile(args[1])
	if err != nil {
		zl.Fatal("reading job description", zap.Error(err), zap.String("file", args[1]))
	}

	gemini := geminiConfig(config)

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		zl.Fatal("loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY"),
		)
	}

	backend, err := coverletter.NewGeminiGenerator(ctx, apiKey, gemini.Model)
	if err != nil {
		zl.Fatal("creating gemini generator", zap.Error(err))
	}

	genLogger := logger.WithCommonFields(zl, "gemini", backend.Model())

	experience, err := cmd.Flags().GetStringArray("experience")
	if err != nil {
		zl.Fatal("reading experience flag", zap.Error(err))
	}

	summary := coverletter.ResumeSummary{
		Name:       cmd.Flag("name").Value.String(),
		Skills:     extractSkillsForLetter(zl, resumeText),
		Experience: experience,
	}

	job := coverletter.JobSummary{
		Title:       cmd.Flag("title").Value.String(),
		Company:     cmd.Flag("company").Value.String(),
		Description: string(jobData),
	}

	letter, err := coverletter.New(backend, genLogger, gemini.MaxLogLength).Generate(ctx, summary, job, tone)
	if err != nil {
		zl.Fatal("generating cover letter", zap.Error(err))
	}

	fmt.Println(letter)
}

func extractSkillsForLetter(zl *zap.Logger, resumeText string) []string {
	return resume.NewParser(zl).ParseText(resumeText).Parsed.Skills
}

func geminiConfig(config *Config) *GeminiConfig {
	if config != nil && config.AI != nil && config.AI.Gemini != nil {
		return config.AI.Gemini
	}
	return &GeminiConfig{}
}
