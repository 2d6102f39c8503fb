package hederalegacy

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

type Deployment struct {
	Name       string    `json:"name"`
	ContractID string    `json:"contractId,omitempty"`
	TokenID    string    `json:"tokenId,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type JournalEntry struct {
	Op            string    `json:"op"`
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	Payer         string    `json:"payer"`
	Network       Network   `json:"network"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Journal interface {
	AppendJournal(entry JournalEntry) error
}

// Store keeps what a run learns from the network: contract and token ids
// produced by deploy/initialize, and a journal of submitted transactions.
type Store interface {
	Journal
	SaveDeployment(deployment Deployment) error
	GetDeployment(name string) (Deployment, error)
	ListDeployments() ([]Deployment, error)
	ListJournal(limit int) ([]JournalEntry, error)
	Close() error
}

type InMemoryStore struct {
	mu          sync.RWMutex
	deployments map[string]Deployment
	journal     []JournalEntry
}

var _ Store = &InMemoryStore{}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		deployments: make(map[string]Deployment),
	}
}

// SaveDeployment replaces the record. An empty id clears what was stored.
func (s *InMemoryStore) SaveDeployment(deployment Deployment) error {
	if deployment.Name == "" {
		return errors.Wrap(ErrInvalidArgument, "deployment name is empty")
	}
	if deployment.UpdatedAt.IsZero() {
		deployment.UpdatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.deployments[deployment.Name] = deployment
	return nil
}

func (s *InMemoryStore) GetDeployment(name string) (Deployment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deployment, ok := s.deployments[name]
	if !ok {
		return Deployment{}, errors.Wrapf(ErrDeploymentNotFound, "'%s'", name)
	}
	return deployment, nil
}

func (s *InMemoryStore) ListDeployments() ([]Deployment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deployments := make([]Deployment, 0, len(s.deployments))
	for _, d := range s.deployments {
		deployments = append(deployments, d)
	}
	sort.Slice(deployments, func(i, j int) bool {
		return deployments[i].Name < deployments[j].Name
	})
	return deployments, nil
}

func (s *InMemoryStore) AppendJournal(entry JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.journal = append(s.journal, entry)
	return nil
}

// ListJournal returns the newest entries first. A limit <= 0 returns all.
func (s *InMemoryStore) ListJournal(limit int) ([]JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]JournalEntry, 0, len(s.journal))
	for i := len(s.journal) - 1; i >= 0; i-- {
		if limit > 0 && len(entries) == limit {
			break
		}
		entries = append(entries, s.journal[i])
	}
	return entries, nil
}

func (s *InMemoryStore) Close() error {
	return nil
}
