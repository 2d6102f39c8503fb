package hederalegacy

import (
	"time"

	"github.com/pkg/errors"
)

type Step struct {
	Name string
	Run  func() error
}

func NewStep(name string, run func() error) Step {
	return Step{Name: name, Run: run}
}

// Wait is a step that pauses the run, used between staking calls so rewards
// accrue.
func Wait(d time.Duration) Step {
	return Step{
		Name: "wait " + d.String(),
		Run: func() error {
			time.Sleep(d)
			return nil
		},
	}
}

// Session runs a sequence of steps for one account. The account balance is
// printed before and after; the first failing step stops the sequence.
type Session struct {
	Ledger  Ledger
	Out     *Printer
	Alias   string
	Account string
}

func NewSession(ledger Ledger, out *Printer, alias string) *Session {
	return &Session{
		Ledger:  ledger,
		Out:     out,
		Alias:   alias,
		Account: ledger.Operator(),
	}
}

func (s *Session) PrintBalance(alias, account string) error {
	balance, err := s.Ledger.Balance(account)
	if err != nil {
		return err
	}
	s.Out.Printf("Balance of %s (accountId %s): %s\n", alias, account, balance)
	return nil
}

func (s *Session) Run(steps ...Step) (err error) {
	if err = s.PrintBalance(s.Alias, s.Account); err != nil {
		return
	}

	for _, step := range steps {
		log.Debug().Msgf("step: %s", step.Name)
		if err = step.Run(); err != nil {
			err = errors.Wrapf(err, "%s", step.Name)
			log.Error().Msgf("%+v", err)
			break
		}
	}

	if balanceErr := s.PrintBalance(s.Alias, s.Account); balanceErr != nil {
		log.Error().Msgf("closing balance: %+v", balanceErr)
		if err == nil {
			err = balanceErr
		}
	}

	return
}
