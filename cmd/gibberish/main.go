package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gibberish/internal/app"
	"gibberish/internal/config"
	"gibberish/internal/gibberish"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

// userMessage turns an error into the line shown to the user.
func userMessage(err error) string {
	var schemaErr *gibberish.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return schemaErr.Message()
	case errors.Is(err, gibberish.ErrAuthentication):
		return "Failed to decode gibberish"
	default:
		return err.Error()
	}
}

// loadConfig reads the config file, falling back to defaults when it does
// not exist, and applies environment overrides.
func loadConfig() (*config.Config, *app.Defaults, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults.ConfigPath, defaults.BaseDir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, defaults, nil
}

// newApp reads the config and creates a GibberishApp. The caller must defer app.Close().
func newApp(cmd *cobra.Command) (*app.GibberishApp, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	a, err := app.NewGibberishApp(cfg, app.Options{
		Stdin:   os.Stdin,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		Verbose: verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "gibberish FILE",
	Short: "Turn a file into gibberish and back",
	Long: `gibberish encrypts FILE and writes it under a new extension, hiding both
the content and the original extension. Run it with -d on the result to get
the original file back.

Without -p the passphrase is the target extension (when encoding) or the
input's extension (when decoding). That mode only obfuscates; use -p for
real protection.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		decode, _ := cmd.Flags().GetBool("degibberish")
		extension, _ := cmd.Flags().GetString("extension")
		interactive, _ := cmd.Flags().GetBool("passphrase")
		yes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		var res *gibberish.Result
		if decode {
			res, err = a.Decode(args[0], interactive, yes)
		} else {
			res, err = a.Encode(args[0], extension, interactive, yes)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case !res.Written:
			fmt.Fprintln(out, "Aborting")
		case decode:
			fmt.Fprintf(out, "Decoded gibberish to %s\n", res.Target)
		default:
			fmt.Fprintf(out, "Gibberish written to %s\n", res.Target)
		}
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults.BaseDir)
		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Fprintf(out, "Base Dir: %s\n", defaults.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, defaults, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# Configuration from %s (with environment overrides)\n\n", defaults.ConfigPath)
		m := &config.Manager{}
		return m.Write(out, cfg)
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent encode and decode operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(ops) == 0 {
			fmt.Fprintln(out, "No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := op.FinishedAt.Sub(op.StartedAt).Truncate(time.Millisecond)
			fmt.Fprintf(out, "#%d  %-6s  %s  %-8s  %8s  %s -> %s\n",
				op.ID,
				op.Mode,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
				op.Input,
				op.Target,
			)
			if op.Error != "" {
				fmt.Fprintf(out, "      %s\n", op.Error)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolP("degibberish", "d", false, "Decode a gibberish file back to the original")
	rootCmd.Flags().StringP("extension", "e", "", "Extension of the gibberish file (default from config, \"gibberish\")")
	rootCmd.Flags().BoolP("passphrase", "p", false, "Prompt for a passphrase instead of using the extension")
	rootCmd.Flags().BoolP("yes", "y", false, "Overwrite existing files without asking")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Also write log records to stderr")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
}
