package main

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"fv-go/internal/app"
	"fv-go/internal/config"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config, resolves the active user, and creates an FVApp.
// The caller must defer a.Close(). operation identifies the CLI command
// being run (e.g. "Upload", "Delete").
func newApp(cmd *cobra.Command, operation string) (*app.FVApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// An empty username makes the app fall back to the securer's current
	// principal; the flag value is an asserted identity, not a verified one.
	username, _ := cmd.Flags().GetString("user")

	a, err := app.NewFVApp(cfg, operation, username)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readPassphrase prompts on stderr and reads a passphrase without echo.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(data), nil
}

var rootCmd = &cobra.Command{
	Use:   "fv",
	Short: "Per-user private file vault",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["root_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Vault root: %s\n", defaults["root_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Vault root:  %s\n", cfg.RootDir)
		fmt.Printf("Security:    %s\n", orDefault(cfg.Security.Type, "posix"))
		fmt.Printf("Journal:     %s\n", orDefault(cfg.Journal.Type, "sqlite"))
		fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
		return nil
	},
}

// key command
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage encryption keys",
}

var keyInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "SetupKeys")
		if err != nil {
			return err
		}
		defer a.Close()

		if a.EncryptionConfigured() {
			return fmt.Errorf("encryption keys already exist")
		}

		pass, err := readPassphrase("Passphrase for private key: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if pass != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := a.SetupKeys(pass); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}

		fmt.Println("Encryption keys generated.")
		return nil
	},
}

// put command
var putCmd = &cobra.Command{
	Use:   "put FILE",
	Short: "Store a file in the vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encrypt, _ := cmd.Flags().GetBool("encrypt")

		a, err := newApp(cmd, "Upload")
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.Put(args[0], encrypt)
		if err != nil {
			return fmt.Errorf("storing file: %w", err)
		}

		fmt.Printf("Stored %s (%d bytes)\n", rec.Filename, rec.Size)
		return nil
	},
}

// rm command
var rmCmd = &cobra.Command{
	Use:   "rm FILE",
	Short: "Remove a stored file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Delete")
		if err != nil {
			return err
		}
		defer a.Close()

		// A bare filename refers to the stored file; anything with a
		// path separator is taken as-is.
		target := args[0]
		if filepath.Base(target) == target {
			if rec, ok := a.Get(target); ok {
				target = rec.Path
			}
		}

		if err := a.Remove(target); err != nil {
			return fmt.Errorf("removing file: %w", err)
		}

		fmt.Printf("Removed %s\n", filepath.Base(target))
		return nil
	},
}

// ls command
var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored files",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "List")
		if err != nil {
			return err
		}
		defer a.Close()

		records := a.List()
		if len(records) == 0 {
			fmt.Println("No files stored.")
			return nil
		}

		for _, rec := range records {
			enc := " "
			if rec.IsEncrypted {
				enc = "E"
			}
			fmt.Printf("%s %10d  %s  %s\n",
				enc,
				rec.Size,
				rec.ModifiedAt.Format("2006-01-02 15:04:05"),
				rec.Filename,
			)
		}
		return nil
	},
}

// verify command
var verifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Check that a stored file is readable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "VerifyAccess")
		if err != nil {
			return err
		}
		defer a.Close()

		target := args[0]
		if filepath.Base(target) == target {
			if rec, ok := a.Get(target); ok {
				target = rec.Path
			}
		}

		if !a.Verify(target) {
			return fmt.Errorf("unreadable: %s", target)
		}

		fmt.Printf("ok: %s\n", target)
		return nil
	},
}

// cat command
var catCmd = &cobra.Command{
	Use:   "cat FILE",
	Short: "Write a stored file to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Retrieve")
		if err != nil {
			return err
		}
		defer a.Close()

		name := filepath.Base(args[0])
		rec, ok := a.Get(name)
		if !ok {
			return fmt.Errorf("no such file: %s", name)
		}

		var pass string
		if rec.IsEncrypted {
			pass, err = readPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
		}

		if err := a.Retrieve(name, os.Stdout, pass); err != nil {
			return fmt.Errorf("retrieving file: %w", err)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View vault operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd, "GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if !op.FinishedAt.IsZero() {
				duration = op.FinishedAt.Sub(op.StartedAt).String()
			}
			fmt.Printf("%-10s  %-10s  %s  %-8s  %-20s  %s\n",
				op.Operation,
				op.Username,
				op.StartedAt.Format("2006-01-02 15:04:05"),
				op.Status,
				op.Filename,
				duration,
			)
		}
		return nil
	},
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	rootCmd.PersistentFlags().StringP("user", "u", "", "Vault user (default: current security principal)")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	keyCmd.AddCommand(keyInitCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(putCmd)
	putCmd.Flags().BoolP("encrypt", "e", false, "Encrypt the stored copy")
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
}
