package cli

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage connector settings",
	Long: `View and change the settings connectors read, such as client ids,
redirect URIs and API keys. Values from the environment take precedence
over the settings file. Secrets are masked.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show [connector-id]",
	Short: "Show connector settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Write a setting to the settings file",
	Long: `Write a setting to the settings file. An empty value removes it.

Example:
  sercha-connect config set GMAIL_CLIENT_ID 1234.apps.googleusercontent.com`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configCheckCmd = &cobra.Command{
	Use:   "check [connector-id]",
	Short: "Check that required settings are present",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigCheck,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	values := svc.DescribeAll()
	if len(args) == 1 {
		if values, err = svc.Describe(args[0]); err != nil {
			return err
		}
	}
	if opts.JSON {
		return printJSON(cmd, values)
	}

	rows := make([][]string, len(values))
	for i, v := range values {
		source := "default"
		if v.IsSet {
			source = "set"
		}
		value := v.Value
		if value == "" {
			value = "(not set)"
		}
		required := ""
		if v.Required {
			required = "yes"
		}
		rows[i] = []string{v.ConnectorID, v.Key, value, source, required}
	}
	return printTable(cmd, []string{"connector", "key", "value", "source", "required"}, rows)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	value := ""
	if len(args) == 2 {
		value = args[1]
	}
	if err := svc.Set(args[0], value); err != nil {
		return err
	}
	if value == "" {
		cmd.Printf("Removed %s.\n", args[0])
		return nil
	}
	cmd.Printf("Set %s.\n", args[0])
	return nil
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	if err := svc.Validate(args[0]); err != nil {
		return err
	}
	cmd.Printf("%s: all required settings present.\n", args[0])
	return nil
}
