package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change deserializer settings, default language files and the
metrics storage location.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Available keys:
  deserialize.scalar_failure  fatal | drop
  languages.paths             comma-separated language files, empty to clear
  storage.data_dir            directory of the metrics database`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runConfigWizard,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configWizardCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Deserialize]")
	cmd.Printf("  Scalar failure: %s (%s)\n", settings.Deserialize.ScalarFailure, describePolicy(settings.Deserialize.ScalarFailure))
	cmd.Println()

	cmd.Println("[Languages]")
	if len(settings.Languages.Paths) == 0 {
		cmd.Println("  Paths: (none)")
	} else {
		cmd.Println("  Paths:")
		for _, p := range settings.Languages.Paths {
			cmd.Printf("    - %s\n", p)
		}
	}
	cmd.Println()

	cmd.Println("[Storage]")
	if settings.Storage.DataDir == "" {
		cmd.Println("  Data dir: (default)")
	} else {
		cmd.Printf("  Data dir: %s\n", settings.Storage.DataDir)
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	switch key {
	case services.KeyScalarFailure:
		if err := settingsService.SetScalarFailurePolicy(domain.ScalarFailurePolicy(value)); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	case services.KeyLanguagePaths:
		if err := settingsService.SetLanguagePaths(splitList(value)); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	case services.KeyDataDir:
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings.Storage.DataDir = value
		if err := settingsService.Save(settings); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	default:
		return fmt.Errorf("unknown setting %q (available: %s)", key, strings.Join(services.SettingKeys(), ", "))
	}

	cmd.Printf("Set %s to %q\n", key, value)
	return nil
}

func runConfigWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("lionweb Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Scalar failure policy
	cmd.Println("Step 1: Undecodable property values")
	cmd.Println("-----------------------------------")
	policies := domain.AllScalarFailurePolicies()
	defaultChoice := 1
	for i, policy := range policies {
		cmd.Printf("  %d. %s - %s\n", i+1, policy, describePolicy(policy))
		if policy == current.Deserialize.ScalarFailure {
			defaultChoice = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultChoice)
	choice := parseChoice(readLine(reader), len(policies), defaultChoice)
	selected := policies[choice-1]

	if err := settingsService.SetScalarFailurePolicy(selected); err != nil {
		return fmt.Errorf("failed to set scalar failure policy: %w", err)
	}
	cmd.Printf("Set scalar failure policy to: %s\n\n", selected)

	// Step 2: Default language files
	cmd.Println("Step 2: Default language files")
	cmd.Println("------------------------------")
	cmd.Printf("Current: %s\n", strings.Join(current.Languages.Paths, ", "))
	cmd.Print("Comma-separated paths (blank keeps current): ")
	if input := readLine(reader); input != "" {
		if err := settingsService.SetLanguagePaths(splitList(input)); err != nil {
			return fmt.Errorf("failed to set language paths: %w", err)
		}
	}
	cmd.Println()

	cmd.Println("Settings saved.")
	return nil
}

func describePolicy(policy domain.ScalarFailurePolicy) string {
	switch policy {
	case domain.ScalarFailureFatal:
		return "abort the run"
	case domain.ScalarFailureDrop:
		return "leave the property unset"
	default:
		return "unknown"
	}
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
