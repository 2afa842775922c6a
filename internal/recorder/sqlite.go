package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"FundScope/internal/model"
)

// SQLiteRecorder appends portfolio history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the history database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS portfolio_snapshots (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			user_id          TEXT NOT NULL,
			total_invested   REAL,
			total_exit_value REAL,
			gross_moic       REAL,
			fund_irr         REAL,
			deal_count       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_user_ts ON portfolio_snapshots(user_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS scenario_runs (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp           INTEGER NOT NULL,
			user_id             TEXT NOT NULL,
			label               TEXT,
			multiplier          REAL,
			gross_exit_value    REAL,
			profit_before_carry REAL,
			gross_moic          REAL,
			carry_pct           REAL,
			carry_amount        REAL,
			total_fees          REAL,
			net_to_investors    REAL,
			real_moic           REAL,
			scenario_irr        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_user_ts ON scenario_runs(user_id, timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordPortfolio(userID string, s model.PortfolioSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO portfolio_snapshots
		(timestamp, user_id, total_invested, total_exit_value, gross_moic, fund_irr, deal_count)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), userID,
		s.TotalInvested, s.TotalExitValue, s.GrossMOIC, nullable(s.FundIRR), s.DealCount,
	)
	return err
}

func (r *SQLiteRecorder) RecordScenarioRun(userID string, results []model.ScenarioResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for _, res := range results {
		_, err := r.db.Exec(`INSERT INTO scenario_runs
			(timestamp, user_id, label, multiplier, gross_exit_value, profit_before_carry,
			 gross_moic, carry_pct, carry_amount, total_fees, net_to_investors, real_moic, scenario_irr)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			now, userID, res.Label, res.Multiplier, res.GrossExitValue, res.ProfitBeforeCarry,
			res.GrossMOIC, res.CarryPct, res.CarryAmount, res.TotalFees,
			res.NetToInvestors, res.RealMOIC, nullable(res.ScenarioIRR),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

// nullable maps an undefined rate to SQL NULL so history never stores a fake
// zero IRR.
func nullable(rate *float64) any {
	if rate == nil {
		return nil
	}
	return *rate
}
