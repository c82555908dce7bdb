package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/topicscout/scout/internal/config"
	"github.com/topicscout/scout/internal/pipeline"
	"github.com/topicscout/scout/internal/report"
)

var researchCmd = &cobra.Command{
	Use:   "research <topic>",
	Short: "Run a one-shot research briefing",
	Long: `Research runs the full pipeline for a single topic and writes the
markdown briefing to a file, or to stdout with --stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().String("output", "", "output file (default research_<topic>.md)")
	researchCmd.Flags().Bool("stdout", false, "write the briefing to stdout instead of a file")
	researchCmd.Flags().Int("sources", 0, "number of sources to research (default from env)")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("topic must not be empty")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if n, _ := cmd.Flags().GetInt("sources"); n > 0 {
		cfg.NumSources = n
	}
	logger := newLogger(cfg.LogLevel)

	agent, err := buildAgent(cfg, logger)
	if err != nil {
		return err
	}

	record := agent.Research(cmd.Context(), topic, func(stage pipeline.Stage) {
		logger.Info("research progress", "stage", string(stage))
	})
	markdown, err := report.Render(record, topic, time.Now())
	if err != nil {
		return fmt.Errorf("rendering briefing: %w", err)
	}

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		fmt.Fprint(os.Stdout, markdown)
		return nil
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = report.DownloadName(topic)
	}
	if err := os.WriteFile(output, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("writing briefing: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Briefing written to %s\n", output)
	return nil
}
