package main

import (
	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/alexdcox/hedera-legacy-go/nft"
	"github.com/spf13/cobra"
)

const defaultMetadata = "QmU7FNsvsN4x9J4hKU81V67vUjvK3iz7Z4aa4xJrR2i9Z6/Solana_Data_1.json"

func (a *app) token() (*nft.Token, error) {
	contract, err := a.contract(hl.DeploymentNft)
	if err != nil {
		return nil, err
	}
	// The treasury may be unset for commands that never touch it.
	treasury := a.config.Profiles[hl.ProfileTreasury]
	return nft.New(contract, treasury, a.config.SupplyKey), nil
}

func newNftCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nft",
		Short: "Native Hedera Legacy token: create, mint, associate, transfer",
	}

	step := func(name string, run func(t *nft.Token) error) func(*cobra.Command, []string) error {
		return func(*cobra.Command, []string) error {
			t, err := a.token()
			if err != nil {
				return err
			}
			return a.run(hl.NewStep(name, func() error { return run(t) }))
		}
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the NFT with the treasury and supply key",
		Args:  cobra.NoArgs,
		RunE: step("createToken", func(t *nft.Token) error {
			_, err := t.CreateToken()
			return err
		}),
	}

	mintCmd := &cobra.Command{
		Use:   "mint [metadata]",
		Short: "Mint one NFT signed with the supply key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metadata := defaultMetadata
			if len(args) == 1 {
				metadata = args[0]
			}
			return step("mintToken", func(t *nft.Token) error {
				_, err := t.MintToken([]byte(metadata))
				return err
			})(cmd, args)
		},
	}

	var holder string
	associateCmd := &cobra.Command{
		Use:   "associate",
		Short: "Associate a holder account with the NFT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := a.config.Profile(holder)
			if err != nil {
				return err
			}
			return step("associate", func(t *nft.Token) error {
				return t.Associate(creds)
			})(cmd, args)
		},
	}
	associateCmd.Flags().StringVar(&holder, "holder", hl.ProfileAlice, "Profile of the account to associate")

	var dissociateHolder string
	dissociateCmd := &cobra.Command{
		Use:   "dissociate",
		Short: "Dissociate a holder account from the NFT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := a.config.Profile(dissociateHolder)
			if err != nil {
				return err
			}
			return step("dissociate", func(t *nft.Token) error {
				return t.Dissociate(creds)
			})(cmd, args)
		},
	}
	dissociateCmd.Flags().StringVar(&dissociateHolder, "holder", hl.ProfileAlice, "Profile of the account to dissociate")

	var to string
	transferCmd := &cobra.Command{
		Use:   "transfer <serial>",
		Short: "Transfer a serial from the treasury to a holder",
		Args:  exactArgs(1, "serial"),
		RunE: func(cmd *cobra.Command, args []string) error {
			serial, err := parseSerial(args[0])
			if err != nil {
				return err
			}
			creds, err := a.config.Profile(to)
			if err != nil {
				return err
			}
			return step("transferToken", func(t *nft.Token) error {
				return t.TransferToken(serial, creds)
			})(cmd, args)
		},
	}
	transferCmd.Flags().StringVar(&to, "to", hl.ProfileAlice, "Profile of the receiving account")

	tokenURICmd := &cobra.Command{
		Use:   "token-uri <serial>",
		Short: "Read the metadata URI of a serial",
		Args:  exactArgs(1, "serial"),
		RunE: func(cmd *cobra.Command, args []string) error {
			serial, err := parseUint64("serial", args[0])
			if err != nil {
				return err
			}
			return step("tokenURI", func(t *nft.Token) error {
				_, err := t.TokenURI(serial)
				return err
			})(cmd, args)
		},
	}

	var memo string
	payCmd := &cobra.Command{
		Use:   "pay <contract>",
		Short: "Send a 1.00000001 ℏ donation with a memo to a contract",
		Args:  exactArgs(1, "contract"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return step("pay", func(t *nft.Token) error {
				_, err := t.Pay(args[0], memo)
				return err
			})(cmd, args)
		},
	}
	payCmd.Flags().StringVar(&memo, "memo", "Donate", "Memo passed to pay()")

	infoCmd := &cobra.Command{
		Use:   "token-info",
		Short: "Show the NFT",
		Args:  cobra.NoArgs,
		RunE: step("tokenInfo", func(t *nft.Token) error {
			return t.PrintTokenInfo()
		}),
	}

	cmd.AddCommand(
		createCmd,
		mintCmd,
		associateCmd,
		dissociateCmd,
		transferCmd,
		tokenURICmd,
		payCmd,
		infoCmd,
	)

	return cmd
}
