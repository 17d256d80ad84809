package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chatscribe/chatscribe/internal/extractor"
	"github.com/chatscribe/chatscribe/internal/logger"
	"github.com/chatscribe/chatscribe/internal/output"
	"github.com/chatscribe/chatscribe/internal/scraper"
	"github.com/chatscribe/chatscribe/pkg/render"
	"github.com/chatscribe/chatscribe/pkg/transcript"
)

// waitSelectors are the elements whose presence means the conversation has
// hydrated, per platform.
var waitSelectors = map[extractor.Platform]string{
	extractor.PlatformChatGPT: "[data-message-author-role]",
	extractor.PlatformClaude:  `div[data-testid="user-message"]`,
	extractor.PlatformGemini:  "user-query",
	extractor.PlatformGrok:    "div.message-bubble",
}

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a live conversation page and export it",
	Long: `Capture fetches a conversation page, extracts its messages with
platform-specific selectors, and renders them as a single document.

Chat frontends render client-side, so capture defaults to a headless
browser ("dynamic"). Use --fetch-mode static only for saved pages.

Examples:
  chatscribe capture -u "https://chatgpt.com/c/abc123" --format markdown
  chatscribe capture -u "https://claude.ai/chat/xyz" -o chat.md
  chatscribe capture -u "https://gemini.google.com/app/123" --fetch-mode auto`,
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)

	flags := captureCmd.Flags()
	flags.StringP("url", "u", "", "conversation URL to capture (required)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "markdown", "document format: text, markdown, rich")
	flags.String("output-format", "text", "output serialization: text, json, yaml")
	flags.Bool("include-metadata", true, "prepend the chat url line (use --include-metadata=false to disable)")
	flags.String("platform", "", "override platform detection: chatgpt, claude, gemini, grok")
	flags.String("fetch-mode", "dynamic", "fetch mode: static, dynamic, auto")
	flags.Duration("timeout", 30*time.Second, "fetch timeout")
	flags.Duration("settle", 2*time.Second, "extra wait after the page loads")

	_ = captureCmd.MarkFlagRequired("url")
}

func runCapture(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	targetURL, _ := cmd.Flags().GetString("url")

	platform := extractor.Platform(viper.GetString("platform"))
	if p, _ := cmd.Flags().GetString("platform"); p != "" {
		platform = extractor.Platform(p)
	}
	if platform == "" {
		platform = extractor.DetectPlatform(targetURL)
	}
	logger.Debug("capture starting", "url", targetURL, "platform", platform)

	mode, _ := cmd.Flags().GetString("fetch-mode")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	settle, _ := cmd.Flags().GetDuration("settle")

	cfg := scraper.DefaultConfig()
	cfg.Timeout = timeout
	fetcher, err := scraper.NewFetcher(scraper.Mode(mode), cfg)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer fetcher.Close()

	page, err := fetcher.Fetch(ctx, targetURL, scraper.Options{
		Timeout:      timeout,
		WaitSelector: waitSelectors[platform],
		WaitDuration: settle,
	})
	if err != nil {
		logError("failed to fetch page: %v", err)
		return err
	}
	logger.Debug("page fetched", "title", page.Title, "html_size", len(page.HTML))

	msgs, err := extractor.Messages(page.HTML, platform)
	if err != nil {
		logError("failed to extract messages: %v", err)
		return err
	}
	if len(msgs) == 0 {
		logger.Warn("no messages found on page", "url", targetURL, "platform", platform)
	}

	format, _ := cmd.Flags().GetString("format")
	includeMetadata, _ := cmd.Flags().GetBool("include-metadata")

	opts := transcript.DefaultOptions()
	opts.IncludeMetadata = includeMetadata
	opts.Platform = string(platform)
	opts.URL = targetURL

	result := transcript.AssembleWithResult(msgs, render.Format(format), opts)
	for _, w := range result.Warnings {
		logger.Warn("assembly degraded", "warning", w.String())
	}

	return writeDocument(cmd, output.Document{
		Platform: string(platform),
		URL:      targetURL,
		Messages: len(msgs),
		Content:  result.Content,
	})
}
