package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chatscribe/chatscribe/internal/logger"
	"github.com/chatscribe/chatscribe/internal/output"
	"github.com/chatscribe/chatscribe/pkg/render"
	"github.com/chatscribe/chatscribe/pkg/transcript"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert a saved transcript file into a document",
	Long: `Export reads a saved conversation (JSON or YAML) and renders it as a
single document.

The transcript file holds the raw per-message HTML an extractor captured:

  {
    "platform": "chatgpt",
    "url": "https://chatgpt.com/c/abc123",
    "messages": [
      {"role": "user", "content": "<p>Hello</p>"},
      {"role": "assistant", "content": "<p>Hi there!</p>"}
    ]
  }

Examples:
  chatscribe export -i conversation.json --format markdown -o chat.md
  chatscribe export -i conversation.yaml --format text
  chatscribe export -i conversation.json --output-format yaml`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	flags := exportCmd.Flags()
	flags.StringP("input", "i", "", "transcript file to export (required)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "markdown", "document format: text, markdown, rich")
	flags.String("output-format", "text", "output serialization: text, json, yaml")
	flags.Bool("include-metadata", true, "prepend the chat url line (use --include-metadata=false to disable)")

	_ = exportCmd.MarkFlagRequired("input")
}

func runExport(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	inputPath, _ := cmd.Flags().GetString("input")
	file, err := transcript.LoadFile(inputPath)
	if err != nil {
		logError("%v", err)
		return err
	}
	logger.Debug("transcript loaded", "path", inputPath, "platform", file.Platform, "messages", len(file.Messages))

	format, _ := cmd.Flags().GetString("format")
	includeMetadata, _ := cmd.Flags().GetBool("include-metadata")

	opts := transcript.DefaultOptions()
	opts.IncludeMetadata = includeMetadata
	opts.Platform = file.Platform
	opts.URL = file.URL

	result := transcript.AssembleWithResult(file.Messages, render.Format(format), opts)
	for _, w := range result.Warnings {
		logger.Warn("assembly degraded", "warning", w.String())
	}

	return writeDocument(cmd, output.Document{
		Platform: file.Platform,
		URL:      file.URL,
		Messages: len(file.Messages),
		Content:  result.Content,
	})
}

// writeDocument serializes the document per the shared output flags.
func writeDocument(cmd *cobra.Command, doc output.Document) error {
	outputFormat, _ := cmd.Flags().GetString("output-format")
	outputPath, _ := cmd.Flags().GetString("output")

	dest := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			logError("failed to create output file: %v", err)
			return err
		}
		defer f.Close()
		dest = f
	}

	w, err := output.NewWriter(dest, output.Format(outputFormat))
	if err != nil {
		logError("%v", err)
		return err
	}
	if err := w.Write(doc); err != nil {
		logError("failed to write document: %v", err)
		return err
	}
	return w.Flush()
}
