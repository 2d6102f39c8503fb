package main

import (
	"strconv"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/alexdcox/hedera-legacy-go/collection"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newCollectionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collection",
		Short: "HederaLegacy NFT collection contract (owner and buyer operations)",
	}

	step := func(name string, run func(c *collection.Collection) error) func(*cobra.Command, []string) error {
		return func(*cobra.Command, []string) error {
			contract, err := a.contract(hl.DeploymentCollection)
			if err != nil {
				return err
			}
			c := collection.New(contract)
			return a.run(hl.NewStep(name, func() error { return run(c) }))
		}
	}

	var bytecodePath string
	var initialize bool
	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the collection contract bytecode",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			contract, err := a.contract(hl.DeploymentCollection)
			if err != nil {
				return err
			}
			c := collection.New(contract)
			steps := []hl.Step{deployStep(contract, bytecodePath)}
			if initialize {
				steps = append(steps, hl.NewStep("initialize", func() error {
					_, err := c.Initialize()
					return err
				}))
			}
			return a.run(steps...)
		},
	}
	deployCmd.Flags().StringVar(&bytecodePath, "bytecode", "HederaLegacy.bin", "Compiled contract (.bin hex or .json artifact)")
	deployCmd.Flags().BoolVar(&initialize, "initialize", true, "Call initialize after deploying")

	initializeCmd := &cobra.Command{
		Use:   "initialize",
		Short: "Create the collection token (payable 30 ℏ)",
		Args:  cobra.NoArgs,
		RunE: step("initialize", func(c *collection.Collection) error {
			_, err := c.Initialize()
			return err
		}),
	}

	mintCmd := &cobra.Command{
		Use:   "mint <amount>",
		Short: "Mint NFTs as the owner",
		Args:  exactArgs(1, "amount"),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseUint64("amount", args[0])
			if err != nil {
				return err
			}
			return step("mint", func(c *collection.Collection) error {
				_, err := c.Mint(amount)
				return err
			})(cmd, args)
		},
	}

	withdrawCmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw the contract's hbars to the owner",
		Args:  cobra.NoArgs,
		RunE:  step("withdraw", (*collection.Collection).Withdraw),
	}

	setCostCmd := &cobra.Command{
		Use:   "set-cost <tinybars>",
		Short: "Set the public mint price",
		Args:  exactArgs(1, "tinybars"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, err := parseUint256("cost", args[0])
			if err != nil {
				return err
			}
			return step("setCost", func(c *collection.Collection) error {
				return c.SetCost(cost)
			})(cmd, args)
		},
	}

	pauseCmd := &cobra.Command{
		Use:   "pause <true|false>",
		Short: "Pause or resume public minting",
		Args:  exactArgs(1, "paused"),
		RunE: func(cmd *cobra.Command, args []string) error {
			paused, err := strconv.ParseBool(args[0])
			if err != nil {
				return errors.Wrapf(hl.ErrInvalidArgument, "paused '%s'", args[0])
			}
			return step("pause", func(c *collection.Collection) error {
				return c.Pause(paused)
			})(cmd, args)
		},
	}

	costCmd := &cobra.Command{
		Use:   "cost",
		Short: "Query the mint price (query payment 6 ℏ)",
		Args:  cobra.NoArgs,
		RunE: step("cost", func(c *collection.Collection) error {
			_, err := c.Cost()
			return err
		}),
	}

	tokenInfoCmd := &cobra.Command{
		Use:   "token-info",
		Short: "Show the collection token",
		Args:  cobra.NoArgs,
		RunE: step("tokenInfo", func(c *collection.Collection) error {
			return c.PrintTokenInfo()
		}),
	}

	cryptoTransferCmd := &cobra.Command{
		Use:   "crypto-transfer <to> <hbar>",
		Short: "Send hbars from the acting account",
		Args:  exactArgs(2, "to", "hbar"),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseHbar(args[1])
			if err != nil {
				return err
			}
			return step("cryptoTransfer", func(c *collection.Collection) error {
				return c.CryptoTransfer(args[0], amount)
			})(cmd, args)
		},
	}

	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "List the serials owned by the acting account",
		Args:  cobra.NoArgs,
		RunE: step("walletOfOwner", func(c *collection.Collection) error {
			_, err := c.WalletOfOwner()
			return err
		}),
	}

	readCostCmd := &cobra.Command{
		Use:   "read-cost",
		Short: "Read the mint price through a transaction (payable 1 ℏ)",
		Args:  cobra.NoArgs,
		RunE: step("readCost", func(c *collection.Collection) error {
			_, err := c.ReadCost()
			return err
		}),
	}

	buyCmd := &cobra.Command{
		Use:   "buy <amount>",
		Short: "Mint NFTs at the public price (10 ℏ each)",
		Args:  exactArgs(1, "amount"),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseUint64("amount", args[0])
			if err != nil {
				return err
			}
			return step("buyerMint", func(c *collection.Collection) error {
				_, err := c.BuyerMint(amount)
				return err
			})(cmd, args)
		},
	}

	freeMintCmd := &cobra.Command{
		Use:   "free-mint",
		Short: "Call mint() without payment",
		Args:  cobra.NoArgs,
		RunE: step("freeMint", func(c *collection.Collection) error {
			_, err := c.FreeMint()
			return err
		}),
	}

	writeMintCmd := &cobra.Command{
		Use:   "write-mint",
		Short: "Mint a single NFT and report the royalty recipient",
		Args:  cobra.NoArgs,
		RunE: step("writeMint", func(c *collection.Collection) error {
			_, err := c.WriteMint()
			return err
		}),
	}

	cmd.AddCommand(
		deployCmd,
		initializeCmd,
		mintCmd,
		withdrawCmd,
		setCostCmd,
		pauseCmd,
		costCmd,
		tokenInfoCmd,
		cryptoTransferCmd,
		walletCmd,
		readCostCmd,
		buyCmd,
		freeMintCmd,
		writeMintCmd,
	)

	return cmd
}
