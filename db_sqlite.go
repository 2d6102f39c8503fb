package hederalegacy

import (
	"database/sql"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type SqliteStore struct {
	db *sql.DB
	mu sync.Mutex
}

var _ Store = &SqliteStore{}

func NewSqliteStore(path string) (store *SqliteStore, err error) {
	log.Debug().Msgf("opening sqlite db at: '%s'", path)

	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		err = errors.Wrap(err, "failed to open database")
		return
	}

	if err = sqldb.Ping(); err != nil {
		_ = sqldb.Close()
		err = errors.Wrap(err, "failed to ping database")
		return
	}

	store = &SqliteStore{db: sqldb}
	if err = store.initTables(); err != nil {
		_ = sqldb.Close()
		err = errors.Wrap(err, "failed to init tables")
		return
	}

	return
}

func (s *SqliteStore) initTables() (err error) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS deployment (
			name TEXT PRIMARY KEY,
			contract_id TEXT NOT NULL DEFAULT '',
			token_id TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS journal (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			op TEXT NOT NULL,
			txid TEXT NOT NULL,
			status TEXT NOT NULL,
			payer TEXT NOT NULL,
			network TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_txid ON journal(txid)`,
	}

	for i, query := range queries {
		_, err = s.db.Exec(query)
		if err != nil {
			err = errors.Wrapf(err, "failed to execute query: %d", i)
			return
		}
	}

	return
}

// SaveDeployment upserts the record. Both ids are written as given.
func (s *SqliteStore) SaveDeployment(deployment Deployment) (err error) {
	if deployment.Name == "" {
		return errors.Wrap(ErrInvalidArgument, "deployment name is empty")
	}
	if deployment.UpdatedAt.IsZero() {
		deployment.UpdatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO deployment (name, contract_id, token_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			contract_id = excluded.contract_id,
			token_id = excluded.token_id,
			updated_at = excluded.updated_at`,
		deployment.Name,
		deployment.ContractID,
		deployment.TokenID,
		deployment.UpdatedAt,
	)
	return errors.WithStack(err)
}

func (s *SqliteStore) GetDeployment(name string) (deployment Deployment, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.QueryRow(
		"SELECT name, contract_id, token_id, updated_at FROM deployment WHERE name = ?",
		name,
	).Scan(&deployment.Name, &deployment.ContractID, &deployment.TokenID, &deployment.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = errors.Wrapf(ErrDeploymentNotFound, "'%s'", name)
		return
	}
	err = errors.WithStack(err)

	return
}

func (s *SqliteStore) ListDeployments() (deployments []Deployment, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT name, contract_id, token_id, updated_at FROM deployment ORDER BY name")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	deployments = make([]Deployment, 0)
	for rows.Next() {
		var d Deployment
		if err = rows.Scan(&d.Name, &d.ContractID, &d.TokenID, &d.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		deployments = append(deployments, d)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error during row iteration")
	}

	return
}

func (s *SqliteStore) AppendJournal(entry JournalEntry) (err error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		"INSERT INTO journal (op, txid, status, payer, network, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		entry.Op,
		entry.TransactionID,
		entry.Status,
		entry.Payer,
		string(entry.Network),
		entry.CreatedAt,
	)
	return errors.WithStack(err)
}

func (s *SqliteStore) ListJournal(limit int) (entries []JournalEntry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
		SELECT op, txid, status, payer, network, created_at
		FROM journal
		ORDER BY id DESC
		LIMIT ?`,
		limit)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	entries = make([]JournalEntry, 0)
	for rows.Next() {
		var e JournalEntry
		var network string
		if err = rows.Scan(&e.Op, &e.TransactionID, &e.Status, &e.Payer, &network, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		e.Network = Network(network)
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error during row iteration")
	}

	return
}

func (s *SqliteStore) Close() error {
	return errors.WithStack(s.db.Close())
}
