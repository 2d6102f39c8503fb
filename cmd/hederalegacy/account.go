package main

import (
	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/spf13/cobra"
)

func newAccountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Keys, accounts and hbar transfers",
	}

	generateKeyCmd := &cobra.Command{
		Use:   "generate-key",
		Short: "Generate an ED25519 key pair",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			t, err := a.token()
			if err != nil {
				return err
			}
			_, err = t.GenerateKey()
			return err
		},
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account with a new key and 1000 ℏ",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			t, err := a.token()
			if err != nil {
				return err
			}
			return a.run(hl.NewStep("createAccount", func() error {
				_, err := t.CreateAccount()
				return err
			}))
		},
	}

	transferCmd := &cobra.Command{
		Use:   "transfer <to> <hbar>",
		Short: "Send hbars from the acting account",
		Args:  exactArgs(2, "to", "hbar"),
		RunE: func(_ *cobra.Command, args []string) error {
			amount, err := parseHbar(args[1])
			if err != nil {
				return err
			}
			t, err := a.token()
			if err != nil {
				return err
			}
			return a.run(hl.NewStep("cryptoTransfer", func() error {
				return t.CryptoTransfer(args[0], amount)
			}))
		},
	}

	cmd.AddCommand(
		generateKeyCmd,
		createCmd,
		transferCmd,
	)

	return cmd
}

