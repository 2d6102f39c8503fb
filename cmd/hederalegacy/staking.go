package main

import (
	"time"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/alexdcox/hedera-legacy-go/staking"
	"github.com/spf13/cobra"
)

func (a *app) staking() (*staking.Staking, error) {
	contract, err := a.contract(hl.DeploymentStaking)
	if err != nil {
		return nil, err
	}
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}
	return staking.New(contract, creds.PrivateKey), nil
}

func newStakingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staking",
		Short: "HLEG reward token and NFT staking contract",
	}

	// stakingStep wraps a single staking operation as a session step.
	stakingStep := func(name string, run func(s *staking.Staking) error) func(*cobra.Command, []string) error {
		return func(*cobra.Command, []string) error {
			s, err := a.staking()
			if err != nil {
				return err
			}
			return a.run(hl.NewStep(name, func() error { return run(s) }))
		}
	}

	var bytecodePath string
	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the staking contract bytecode",
		Args:  cobra.NoArgs,
	}
	deployCmd.Flags().StringVar(&bytecodePath, "bytecode", "HLEG.bin", "Compiled contract (.bin hex or .json artifact)")

	var initialize bool
	deployCmd.Flags().BoolVar(&initialize, "initialize", true, "Call initialize after deploying")
	deployCmd.RunE = func(*cobra.Command, []string) error {
		s, err := a.staking()
		if err != nil {
			return err
		}
		steps := []hl.Step{deployStep(s.Contract, bytecodePath)}
		if initialize {
			steps = append(steps, hl.NewStep("initialize", func() error {
				_, err := s.Initialize()
				return err
			}))
		}
		return a.run(steps...)
	}

	initializeCmd := &cobra.Command{
		Use:   "initialize",
		Short: "Create the reward token (payable 30 ℏ)",
		Args:  cobra.NoArgs,
		RunE: stakingStep("initialize", func(s *staking.Staking) error {
			_, err := s.Initialize()
			return err
		}),
	}

	mintCmd := &cobra.Command{
		Use:   "mint <receiver> <amount>",
		Short: "Mint reward token base units to an account",
		Args:  exactArgs(2, "receiver", "amount"),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseUint256("amount", args[1])
			if err != nil {
				return err
			}
			return stakingStep("mint", func(s *staking.Staking) error {
				return s.Mint(args[0], amount)
			})(cmd, args)
		},
	}

	transferCmd := &cobra.Command{
		Use:   "transfer <receiver> <amount>",
		Short: "Transfer reward token base units from the contract",
		Args:  exactArgs(2, "receiver", "amount"),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseUint256("amount", args[1])
			if err != nil {
				return err
			}
			return stakingStep("transfer", func(s *staking.Staking) error {
				return s.Transfer(args[0], amount)
			})(cmd, args)
		},
	}

	balanceOfCmd := &cobra.Command{
		Use:   "balance-of [account]",
		Short: "Reward token balance of an account (default: the acting account)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return stakingStep("balanceOf", func(s *staking.Staking) error {
				account := s.Ledger.Operator()
				if len(args) == 1 {
					account = args[0]
				}
				return s.BalanceOf(account)
			})(cmd, args)
		},
	}

	associateCmd := &cobra.Command{
		Use:   "associate [token...]",
		Short: "Associate the acting account with tokens (default: the reward token)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return stakingStep("associate", func(s *staking.Staking) error {
				tokens := args
				if len(tokens) == 0 {
					tokenID, err := s.TokenID()
					if err != nil {
						return err
					}
					tokens = []string{tokenID}
				}
				return s.Associate(tokens)
			})(cmd, args)
		},
	}

	tokenInfoCmd := &cobra.Command{
		Use:   "token-info",
		Short: "Show the reward token",
		Args:  cobra.NoArgs,
		RunE: stakingStep("tokenInfo", func(s *staking.Staking) error {
			return s.PrintTokenInfo()
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
			return stakingStep("cryptoTransfer", func(s *staking.Staking) error {
				return s.CryptoTransfer(args[0], amount)
			})(cmd, args)
		},
	}

	var period uint64
	stakeCmd := &cobra.Command{
		Use:   "stake <serial...>",
		Short: "Stake NFTs by serial (payable 10 ℏ)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serials, err := parseSerials(args)
			if err != nil {
				return err
			}
			return stakingStep("stake", func(s *staking.Staking) error {
				return s.Stake(serials, period)
			})(cmd, args)
		},
	}
	stakeCmd.Flags().Uint64Var(&period, "period", 30, "Staking period")

	unstakeCmd := &cobra.Command{
		Use:   "unstake <serial...>",
		Short: "Unstake NFTs by serial and collect rewards (payable 10 ℏ)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serials, err := parseSerials(args)
			if err != nil {
				return err
			}
			return stakingStep("unstake", func(s *staking.Staking) error {
				return s.Unstake(serials)
			})(cmd, args)
		},
	}

	claimCmd := &cobra.Command{
		Use:   "claim",
		Short: "Claim staking rewards",
		Args:  cobra.NoArgs,
		RunE: stakingStep("claim", func(s *staking.Staking) error {
			return s.Claim()
		}),
	}

	withdrawCmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw the contract's hbars to the owner",
		Args:  cobra.NoArgs,
		RunE: stakingStep("withdraw", func(s *staking.Staking) error {
			return s.Withdraw()
		}),
	}

	myStakeCmd := &cobra.Command{
		Use:   "my-stake",
		Short: "List the acting account's stakes",
		Args:  cobra.NoArgs,
		RunE: stakingStep("myStake", func(s *staking.Staking) error {
			_, err := s.MyStake()
			return err
		}),
	}

	vaultCmd := &cobra.Command{
		Use:   "vault <index>",
		Short: "Read a vault entry (query payment 10 ℏ)",
		Args:  exactArgs(1, "index"),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseUint64("index", args[0])
			if err != nil {
				return err
			}
			return stakingStep("vault", func(s *staking.Staking) error {
				_, err := s.Vault(index)
				return err
			})(cmd, args)
		},
	}

	var cyclePeriod uint64
	var wait time.Duration
	cycleCmd := &cobra.Command{
		Use:   "cycle <serial...>",
		Short: "Stake, claim and unstake with pauses in between",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serials, err := parseSerials(args)
			if err != nil {
				return err
			}
			s, err := a.staking()
			if err != nil {
				return err
			}
			return a.run(StakingCycle(s, serials, cyclePeriod, wait)...)
		},
	}
	cycleCmd.Flags().Uint64Var(&cyclePeriod, "period", 30, "Staking period")
	cycleCmd.Flags().DurationVar(&wait, "wait", 15*time.Second, "Pause between stake, claim and unstake")

	cmd.AddCommand(
		deployCmd,
		initializeCmd,
		mintCmd,
		transferCmd,
		balanceOfCmd,
		associateCmd,
		tokenInfoCmd,
		cryptoTransferCmd,
		stakeCmd,
		unstakeCmd,
		claimCmd,
		withdrawCmd,
		myStakeCmd,
		vaultCmd,
		cycleCmd,
	)

	return cmd
}

func StakingCycle(s *staking.Staking, serials []int64, period uint64, wait time.Duration) []hl.Step {
	myStake := hl.NewStep("myStake", func() error {
		_, err := s.MyStake()
		return err
	})

	return []hl.Step{
		hl.NewStep("stake", func() error { return s.Stake(serials, period) }),
		myStake,
		hl.Wait(wait),
		hl.NewStep("claim", func() error { return s.Claim() }),
		myStake,
		hl.Wait(wait),
		hl.NewStep("unstake", func() error { return s.Unstake(serials) }),
		myStake,
	}
}
