package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/developertarun01/weyfar-cli/internal/adapters/driven/config/configvalue"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change settings in the configuration file (~/.weyfar/config.toml).

Keys use dotted names, for example api.base_url or airline.cache.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save the file.

Numbers and booleans are stored typed: "5" becomes 5 and "true" becomes true.
Comma-separated values such as kafka.brokers are split when read.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configCredentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Set travel API credentials",
	Long: `Prompt for the travel API client ID and secret and save them.
The secret is read without echo when stdin is a terminal.`,
	RunE: runConfigCredentials,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configCredentialsCmd)
	rootCmd.AddCommand(configCmd)
}

// secretKeys are masked by config show.
var secretKeys = map[string]bool{
	keyAPIClientSecret: true,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Configuration")
	cmd.Println("=============")
	cmd.Printf("  File: %s\n", configStore.Path())
	cmd.Println()

	keys := configStore.Keys()
	if len(keys) == 0 {
		cmd.Println("No settings. Use 'weyfar config set <key> <value>' to add one.")
		return nil
	}

	for _, key := range keys {
		value := configStore.GetString(key)
		if secretKeys[key] && value != "" {
			value = maskSecret(value)
		}
		cmd.Printf("  %s = %s\n", key, value)
	}

	cmd.Println()
	for _, env := range []string{envAPIBaseURL, envAPIClientID, envAPIClientSecret} {
		if os.Getenv(env) != "" {
			cmd.Printf("  %s is set and overrides the file\n", env)
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := strings.TrimSpace(args[0])
	if err := configStore.Set(key, configvalue.Parse(args[1])); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigCredentials(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Print("Client ID: ")
	clientID := readLine(reader)
	if clientID == "" {
		return errors.New("client ID is required")
	}

	cmd.Print("Client secret: ")
	secret := readSecret(cmd.InOrStdin(), reader)
	cmd.Println()
	if secret == "" {
		return errors.New("client secret is required")
	}

	if err := configStore.Set(keyAPIClientID, clientID); err != nil {
		return fmt.Errorf("failed to save client ID: %w", err)
	}
	if err := configStore.Set(keyAPIClientSecret, secret); err != nil {
		return fmt.Errorf("failed to save client secret: %w", err)
	}

	cmd.Printf("Credentials saved to %s\n", configStore.Path())
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readSecret reads without echo when in is a terminal, otherwise a plain line.
func readSecret(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
