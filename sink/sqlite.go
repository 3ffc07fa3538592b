package sink

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/wordpack/realizer"
)

const (
	DefaultSQLiteBatch = 5000

	createSolutions = `CREATE TABLE IF NOT EXISTS solutions (
	answer TEXT NOT NULL,
	g1 TEXT NOT NULL, g2 TEXT NOT NULL, g3 TEXT NOT NULL,
	g4 TEXT NOT NULL, g5 TEXT NOT NULL, g6 TEXT NOT NULL
)`
	insertSolution = `INSERT INTO solutions (answer, g1, g2, g3, g4, g5, g6)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
)

var errNoTransaction = errors.New("sqlite sink has no open transaction")

// SQLite stores solutions in a solutions table, committing every batch
// rows.
type SQLite struct {
	db      *sql.DB
	tx      *sql.Tx
	stmt    *sql.Stmt
	batch   int
	pending int
	total   int64
}

func OpenSQLite(path string, batch int) (*SQLite, error) {
	if batch <= 0 {
		batch = DefaultSQLiteBatch
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// a single writer; the pool only hands out one connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createSolutions); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating solutions table: %w", err)
	}
	s := &SQLite{db: db, batch: batch}
	if err := s.begin(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) begin() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(insertSolution)
	if err != nil {
		tx.Rollback()
		return err
	}
	s.tx, s.stmt, s.pending = tx, stmt, 0
	return nil
}

// commit finishes the open transaction. The transaction is gone afterwards
// whether or not the commit succeeded.
func (s *SQLite) commit() error {
	tx, stmt := s.tx, s.stmt
	s.tx, s.stmt = nil, nil
	stmt.Close()
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing solutions: %w", err)
	}
	s.total += int64(s.pending)
	log.Debug().Int("rows", s.pending).Int64("total", s.total).Msg("committed-batch")
	return nil
}

func (s *SQLite) Write(sol realizer.Solution) error {
	if s.tx == nil {
		return errNoTransaction
	}
	_, err := s.stmt.Exec(sol.Answer,
		sol.Guesses[0], sol.Guesses[1], sol.Guesses[2],
		sol.Guesses[3], sol.Guesses[4], sol.Guesses[5])
	if err != nil {
		return err
	}
	s.pending++
	if s.pending < s.batch {
		return nil
	}
	if err := s.commit(); err != nil {
		return err
	}
	return s.begin()
}

// Close commits any pending rows and closes the database.
func (s *SQLite) Close() error {
	var err error
	if s.tx != nil {
		err = s.commit()
	}
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}
