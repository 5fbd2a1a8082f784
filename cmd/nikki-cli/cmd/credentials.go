package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"nikki/internal/adapters/credentials"
)

var credentialsCmd = &cobra.Command{
	Use:         "credentials",
	Short:       "Manage the service-account key stored in the OS keyring",
	Annotations: map[string]string{noSession: ""},
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set <file|->",
	Short: "Store a service-account JSON key in the keyring",
	Long: `Validate a service-account JSON key and store it in the OS keyring.
Escaped newlines in private_key are normalized. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read credentials: %w", err)
		}

		store := credentials.NewKeyring()
		if err := store.Save(data); err != nil {
			return err
		}
		sa, err := credentials.FromStore(store)
		if err != nil {
			return err
		}
		fmt.Printf("Stored credentials for %s\n", sa.ClientEmail)
		return nil
	},
}

var credentialsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show which service account is stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sa, err := credentials.FromStore(credentials.NewKeyring())
		if errors.Is(err, credentials.ErrNotFound) {
			fmt.Println("No credentials stored")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s (project %s)\n", sa.ClientEmail, sa.ProjectID)
		return nil
	},
}

var credentialsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored key from the keyring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := credentials.NewKeyring().Delete()
		if errors.Is(err, credentials.ErrNotFound) {
			fmt.Println("No credentials stored")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println("Credentials removed")
		return nil
	},
}

func init() {
	credentialsCmd.AddCommand(credentialsSetCmd, credentialsShowCmd, credentialsClearCmd)
	rootCmd.AddCommand(credentialsCmd)
}
