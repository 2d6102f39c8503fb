package main

import (
	"time"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/alexdcox/hedera-legacy-go/rpcclient"
	"github.com/spf13/cobra"
)

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [account...]",
		Short: "Print hbar and token balances (default: the acting account)",
		RunE: func(_ *cobra.Command, args []string) error {
			ledger, err := a.Ledger()
			if err != nil {
				return err
			}
			session := hl.NewSession(ledger, a.out, alias(a.flags.Profile))

			if len(args) == 0 {
				return session.PrintBalance(session.Alias, session.Account)
			}
			for _, account := range args {
				if err = session.PrintBalance(account, account); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newSlotCmd(a *app) *cobra.Command {
	var slot uint64
	var arraySlot uint64

	cmd := &cobra.Command{
		Use:   "slot <address|account>",
		Short: "Compute Solidity storage slots for an address key",
		Args:  exactArgs(1, "address"),
		RunE: func(_ *cobra.Command, args []string) error {
			addr, err := hl.ResolveAddress(args[0])
			if err != nil {
				return err
			}

			mapping, err := hl.AddressMappingSlot(addr, slot)
			if err != nil {
				return err
			}

			a.out.Println(hl.AddressTextHash(addr).Hex()[2:])
			a.out.Println(mapping.Hex()[2:])
			a.out.Println(hl.NestedSlot(mapping).Hex()[2:])
			a.out.Println(hl.ArraySlot(arraySlot).Hex()[2:])
			return nil
		},
	}
	cmd.Flags().Uint64Var(&slot, "slot", 16, "Declaration slot of the mapping")
	cmd.Flags().Uint64Var(&arraySlot, "array-slot", 15, "Declaration slot of the dynamic array")

	return cmd
}

func newJournalCmd(a *app) *cobra.Command {
	var limit int
	var remote string

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List journaled submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) (err error) {
			var entries []hl.JournalEntry
			if remote != "" {
				client, err2 := rpcclient.NewRpcClient(remote)
				if err2 != nil {
					return err2
				}
				entries, err = client.GetJournal(limit)
			} else {
				entries, err = a.store.ListJournal(limit)
			}
			if err != nil {
				return
			}

			for _, e := range entries {
				a.out.Printf("%s  %-18s %-12s %s (%s, %s)\n",
					e.CreatedAt.Local().Format(time.DateTime),
					e.Op,
					e.Status,
					e.TransactionID,
					e.Payer,
					e.Network)
			}
			a.out.Printf("%d entries\n", len(entries))
			return
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show (0 for all)")
	cmd.Flags().StringVar(&remote, "remote", "", "Read from a running serve instance at host:port instead of the local store")

	return cmd
}
