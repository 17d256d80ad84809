// Package commands implements the CLI commands for chatscribe.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "chatscribe",
	Short: "Export AI chat conversations as clean text or Markdown",
	Long: `Chatscribe converts chat conversations (ChatGPT, Claude, Gemini, Grok)
into safe, readable plain-text or Markdown documents. Message HTML is
sanitized before rendering: scripts, styles, event handlers, and
dangerous URL schemes never reach the output.

Examples:
  # Export a saved transcript file as Markdown
  chatscribe export -i conversation.json --format markdown -o chat.md

  # Capture a live conversation page
  chatscribe capture -u "https://chatgpt.com/c/abc123" --format text

  # Wrap the document in a JSON envelope
  chatscribe export -i conversation.yaml --output-format json`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.chatscribe.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".chatscribe")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CHATSCRIBE")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
