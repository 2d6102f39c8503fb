package main

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type _config struct {
	ConfigPath   string
	LogLevel     string
	Profile      string
	Network      string
	DatabasePath string
}

// app holds what every command shares: the loaded configuration, the local
// store and, once a command asks for it, the ledger client.
type app struct {
	flags  _config
	config *hl.Config
	store  hl.Store
	ledger hl.Ledger
	out    *hl.Printer

	// newLedger is swapped in tests.
	newLedger func(creds hl.Credentials) (hl.Ledger, error)
}

func newApp() *app {
	a := &app{out: hl.NewPrinter(os.Stdout)}
	a.newLedger = a.dialLedger
	return a
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "hederalegacy",
		Short:             "Deploy and drive the Hedera Legacy contracts and token",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.flags.ConfigPath, "config", "", "Path to an optional config file (yaml|json|toml)")
	flags.StringVar(&a.flags.LogLevel, "loglevel", "", "Set the log level (trace|debug|info|warn|error|fatal) Can also be set via the HEDERA_LOG_LEVEL environment variable")
	flags.StringVar(&a.flags.Profile, "as", hl.ProfileOperator, "Account profile to act as (operator|alice|ben|treasury)")
	flags.StringVar(&a.flags.Network, "network", "", "Override HEDERA_NETWORK (mainnet|testnet|previewnet|local)")
	flags.StringVar(&a.flags.DatabasePath, "db", "", "Override HEDERA_DB_PATH, the sqlite deployment/journal store")

	root.AddCommand(
		newStakingCmd(a),
		newCollectionCmd(a),
		newNftCmd(a),
		newAccountCmd(a),
		newBalanceCmd(a),
		newSlotCmd(a),
		newServeCmd(a),
		newJournalCmd(a),
	)

	return root
}

func (a *app) load(cmd *cobra.Command, _ []string) (err error) {
	level, err := hl.SetLogLevel(a.flags.LogLevel)
	if err != nil {
		return
	}
	log.Debug().Msgf("log level: '%s'", level)

	if a.config, err = hl.LoadConfig(a.flags.ConfigPath); err != nil {
		return
	}

	if a.flags.Network != "" {
		a.config.Network = hl.Network(strings.ToLower(a.flags.Network))
		if err = a.config.Network.Validate(); err != nil {
			return
		}
	}
	if a.flags.DatabasePath != "" {
		a.config.DatabasePath = a.flags.DatabasePath
	}

	if a.store == nil {
		if a.store, err = hl.NewSqliteStore(a.config.DatabasePath); err != nil {
			return
		}
	}

	log.Debug().Msgf("network %s, store %s, command %s", a.config.Network, a.config.DatabasePath, cmd.CommandPath())
	return
}

func (a *app) close() (err error) {
	if a.ledger != nil {
		if err = a.ledger.Close(); err != nil {
			log.Warn().Msgf("closing ledger: %+v", err)
		}
		a.ledger = nil
	}
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	return
}

func (a *app) credentials() (hl.Credentials, error) {
	return a.config.Profile(a.flags.Profile)
}

func (a *app) dialLedger(creds hl.Credentials) (hl.Ledger, error) {
	return hl.NewClient(&hl.ClientOptions{
		Network:    a.config.Network,
		AccountID:  creds.AccountID,
		PrivateKey: creds.PrivateKey,
		Journal:    a.store,
	})
}

// Ledger connects as the --as profile on first use.
func (a *app) Ledger() (hl.Ledger, error) {
	if a.ledger != nil {
		return a.ledger, nil
	}

	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}

	if a.ledger, err = a.newLedger(creds); err != nil {
		return nil, err
	}
	return a.ledger, nil
}

func (a *app) contract(name string) (contract *hl.Contract, err error) {
	ledger, err := a.Ledger()
	if err != nil {
		return
	}

	deployment, err := a.config.Deployment(a.store, name)
	if err != nil {
		return
	}

	contract = &hl.Contract{
		Ledger:     ledger,
		Out:        a.out,
		Store:      a.store,
		Deployment: deployment,
		Gas:        a.config.MaxGas,
	}
	return
}

// run executes steps in a session for the --as account.
func (a *app) run(steps ...hl.Step) error {
	ledger, err := a.Ledger()
	if err != nil {
		return err
	}
	return hl.NewSession(ledger, a.out, alias(a.flags.Profile)).Run(steps...)
}

func alias(profile string) string {
	if profile == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(profile)
	return string(unicode.ToUpper(r)) + profile[size:]
}

func exactArgs(n int, names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.Wrapf(hl.ErrInvalidArgument, "expected %d argument(s) <%s>, got %d", n, strings.Join(names, "> <"), len(args))
		}
		return nil
	}
}

func deployStep(contract *hl.Contract, bytecodePath string) hl.Step {
	return hl.NewStep("deploy", func() error {
		bytecode, err := hl.LoadBytecode(bytecodePath)
		if err != nil {
			return err
		}
		_, err = contract.Deploy(bytecode)
		return err
	})
}
