// Package persistence archives finished simulation runs in SQLite.
// The simulation itself never reads from here; the CLI exports to it.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/inequality-sim/internal/agents"
	"github.com/talgya/inequality-sim/internal/engine"
	"github.com/talgya/inequality-sim/internal/metrics"
)

// RunID identifies an archived run.
type RunID string

// RunMeta is caller-supplied context stored alongside a run.
type RunMeta struct {
	Label string
}

// Run is one row of the runs table.
type Run struct {
	ID          RunID   `db:"id"`
	Label       string  `db:"label"`
	Policy      string  `db:"policy"`
	Population  int     `db:"population"`
	Seed        int64   `db:"seed"`
	Steps       int     `db:"steps"`
	FinalGini   float64 `db:"final_gini"`
	FinalTotal  float64 `db:"final_total"`
	CreatedUnix int64   `db:"created_unix"`
}

// Created returns the archive time.
func (r Run) Created() time.Time {
	return time.Unix(r.CreatedUnix, 0)
}

// AgentRow is one agent's final state within a run.
type AgentRow struct {
	AgentID    uint64  `db:"agent_id"`
	Wealth     float64 `db:"wealth"`
	Growth     float64 `db:"growth"`
	Innovation float64 `db:"innovation"`
	Bracket    int     `db:"bracket"`
	Mobility   float64 `db:"mobility"`
	PartyElite bool    `db:"party_elite"`
	Innovating bool    `db:"innovating"`
}

// DB wraps a SQLite connection holding archived runs.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	for _, p := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	} {
		if _, err := db.conn.Exec(p); err != nil {
			return err
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		policy TEXT NOT NULL,
		population INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		final_gini REAL NOT NULL,
		final_total REAL NOT NULL,
		created_unix INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS history (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		step INTEGER NOT NULL,
		gini REAL NOT NULL,
		total_wealth REAL NOT NULL,
		mobility REAL NOT NULL,
		moving_up INTEGER NOT NULL,
		moving_down INTEGER NOT NULL,
		lower_count INTEGER NOT NULL,
		middle_count INTEGER NOT NULL,
		upper_count INTEGER NOT NULL,
		PRIMARY KEY (run_id, step)
	);

	CREATE TABLE IF NOT EXISTS agents (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		agent_id INTEGER NOT NULL,
		wealth REAL NOT NULL,
		growth REAL NOT NULL,
		innovation REAL NOT NULL,
		bracket INTEGER NOT NULL,
		mobility REAL NOT NULL,
		party_elite INTEGER NOT NULL,
		innovating INTEGER NOT NULL,
		PRIMARY KEY (run_id, agent_id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_unix);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes the run's summary, metric history and final agent states in
// a single transaction.
func (db *DB) SaveRun(sim *engine.Simulation, meta RunMeta) (RunID, error) {
	cfg, err := sim.Config()
	if err != nil {
		return "", err
	}
	hist, _ := sim.History()
	pop, _ := sim.Agents()

	run := Run{
		ID:          RunID(uuid.NewString()),
		Label:       meta.Label,
		Policy:      cfg.Policy,
		Population:  len(pop),
		Seed:        cfg.Seed,
		Steps:       sim.Status().StepCount,
		CreatedUnix: time.Now().Unix(),
	}
	if n := len(hist); n > 0 {
		run.FinalGini = hist[n-1].Gini
		run.FinalTotal = hist[n-1].TotalWealth
	} else {
		w, _ := sim.WealthDistribution()
		run.FinalGini = metrics.Gini(w)
		run.FinalTotal = metrics.Total(w)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(`INSERT INTO runs
		(id, label, policy, population, seed, steps, final_gini, final_total, created_unix)
		VALUES (:id, :label, :policy, :population, :seed, :steps, :final_gini, :final_total, :created_unix)`,
		run); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO history
		(run_id, step, gini, total_wealth, mobility, moving_up, moving_down,
		 lower_count, middle_count, upper_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()
	for _, p := range hist {
		c := p.Churn
		if _, err := stmt.Exec(run.ID, p.Step, p.Gini, p.TotalWealth, p.Mobility,
			c.MovingUp, c.MovingDown, c.Lower, c.Middle, c.Upper); err != nil {
			return "", fmt.Errorf("insert history step %d: %w", p.Step, err)
		}
	}

	astmt, err := tx.Preparex(`INSERT INTO agents
		(run_id, agent_id, wealth, growth, innovation, bracket, mobility, party_elite, innovating)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer astmt.Close()
	for _, a := range pop {
		if _, err := astmt.Exec(run.ID, uint64(a.ID), a.Wealth, a.Growth, a.Innovation,
			int(a.Bracket), a.Mobility, a.PartyElite, a.Innovating); err != nil {
			return "", fmt.Errorf("insert agent %d: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Info("run archived", "run", run.ID, "policy", run.Policy, "steps", run.Steps, "agents", len(pop))
	return run.ID, nil
}

type historyRow struct {
	Step        int     `db:"step"`
	Gini        float64 `db:"gini"`
	TotalWealth float64 `db:"total_wealth"`
	Mobility    float64 `db:"mobility"`
	MovingUp    int     `db:"moving_up"`
	MovingDown  int     `db:"moving_down"`
	Lower       int     `db:"lower_count"`
	Middle      int     `db:"middle_count"`
	Upper       int     `db:"upper_count"`
}

// LoadHistory returns a run's data points in step order.
func (db *DB) LoadHistory(id RunID) ([]metrics.DataPoint, error) {
	if _, err := db.GetRun(id); err != nil {
		return nil, err
	}
	var rows []historyRow
	if err := db.conn.Select(&rows,
		"SELECT step, gini, total_wealth, mobility, moving_up, moving_down, lower_count, middle_count, upper_count FROM history WHERE run_id = ? ORDER BY step",
		id); err != nil {
		return nil, err
	}
	out := make([]metrics.DataPoint, len(rows))
	for i, r := range rows {
		out[i] = metrics.DataPoint{
			Step:        r.Step,
			Gini:        r.Gini,
			TotalWealth: r.TotalWealth,
			Mobility:    r.Mobility,
			Churn: metrics.Churn{
				MovingUp:   r.MovingUp,
				MovingDown: r.MovingDown,
				Lower:      r.Lower,
				Middle:     r.Middle,
				Upper:      r.Upper,
			},
		}
	}
	return out, nil
}

// LoadAgents returns a run's final agent states in id order.
func (db *DB) LoadAgents(id RunID) ([]AgentRow, error) {
	var rows []AgentRow
	err := db.conn.Select(&rows,
		"SELECT agent_id, wealth, growth, innovation, bracket, mobility, party_elite, innovating FROM agents WHERE run_id = ? ORDER BY agent_id",
		id)
	return rows, err
}

// GetRun returns one run's summary.
func (db *DB) GetRun(id RunID) (Run, error) {
	var r Run
	err := db.conn.Get(&r, "SELECT * FROM runs WHERE id = ?", id)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: %w", id, err)
	}
	return r, nil
}

// ListRuns returns every archived run, newest first.
func (db *DB) ListRuns() ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, "SELECT * FROM runs ORDER BY created_unix DESC, rowid DESC")
	return runs, err
}

// BracketValue converts the stored bracket back to its type.
func (r AgentRow) BracketValue() agents.Bracket {
	return agents.Bracket(r.Bracket)
}
