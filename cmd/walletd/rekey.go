package main

import (
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/internal/config"

	"github.com/spf13/cobra"
)

var rekeyCmd = &cobra.Command{
	Use:   "rekey <wallet-id>",
	Short: "Re-encrypt a stored wallet under a new password",
	Long: `Decrypts the wallet with its current password and stores it again under a new
password with a fresh id. The original entry is removed. Passwords are read from the terminal.

Example:
  walletd rekey 4f9c2a1e-6d3b-4c1a-9d8e-2b7f5a0c3e11`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldPassword, err := config.PromptForPassword("Current wallet password: ")
		if err != nil {
			return err
		}
		defer clear(oldPassword)

		newPassword, err := config.PromptForPassword("New wallet password: ")
		if err != nil {
			return err
		}
		defer clear(newPassword)

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		newID, err := a.custody.Rekey(cmd.Context(), args[0], oldPassword, newPassword)
		if err != nil {
			return err
		}

		fmt.Println(newID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rekeyCmd)
}
