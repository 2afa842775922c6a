package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"FundScope/internal/model"
)

// SQLiteStore persists assumptions and deals to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so snapshot reads don't block API writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS assumptions (
			user_id           TEXT PRIMARY KEY,
			investment_period INTEGER,
			exit_horizon      INTEGER,
			fund_life         INTEGER,
			lockup_period     INTEGER,
			min_ticket        REAL,
			max_ticket        REAL,
			target_fund       REAL,
			preferred_return  REAL,
			management_fee    REAL,
			admin_cost        REAL,
			target_ownership  REAL,
			expected_dilution REAL,
			t1_exp_moic       REAL,
			t2_exp_moic       REAL,
			t3_exp_moic       REAL,
			tier1_carry       REAL,
			tier2_carry       REAL,
			tier3_carry       REAL,
			failure_rate      REAL,
			break_even_rate   REAL,
			high_return_rate  REAL,
			updated_at        INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS deals (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL,
			company         TEXT,
			company_type    TEXT,
			industry        TEXT,
			entry_year      INTEGER,
			exit_year       INTEGER,
			invested        REAL,
			entry_valuation REAL,
			base_factor     REAL,
			downside_factor REAL,
			upside_factor   REAL,
			scenario        TEXT,
			created_at      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deals_user ON deals(user_id)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadAssumptions(userID string) (*model.Assumptions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT
		investment_period, exit_horizon, fund_life, lockup_period,
		min_ticket, max_ticket, target_fund,
		preferred_return, management_fee, admin_cost, target_ownership, expected_dilution,
		t1_exp_moic, t2_exp_moic, t3_exp_moic,
		tier1_carry, tier2_carry, tier3_carry,
		failure_rate, break_even_rate, high_return_rate
		FROM assumptions WHERE user_id = ?`, userID)

	var a model.Assumptions
	err := row.Scan(
		&a.InvestmentPeriod, &a.ExitHorizon, &a.FundLife, &a.LockupPeriod,
		&a.MinTicket, &a.MaxTicket, &a.TargetFund,
		&a.PreferredReturn, &a.ManagementFee, &a.AdminCost, &a.TargetOwnership, &a.ExpectedDilution,
		&a.Tier1ExpMOIC, &a.Tier2ExpMOIC, &a.Tier3ExpMOIC,
		&a.Tier1Carry, &a.Tier2Carry, &a.Tier3Carry,
		&a.FailureRate, &a.BreakEvenRate, &a.HighReturnRate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load assumptions: %w", err)
	}
	return &a, nil
}

func (s *SQLiteStore) SaveAssumptions(userID string, a model.Assumptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO assumptions
		(user_id, investment_period, exit_horizon, fund_life, lockup_period,
		 min_ticket, max_ticket, target_fund,
		 preferred_return, management_fee, admin_cost, target_ownership, expected_dilution,
		 t1_exp_moic, t2_exp_moic, t3_exp_moic,
		 tier1_carry, tier2_carry, tier3_carry,
		 failure_rate, break_even_rate, high_return_rate, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(user_id) DO UPDATE SET
			investment_period = excluded.investment_period,
			exit_horizon      = excluded.exit_horizon,
			fund_life         = excluded.fund_life,
			lockup_period     = excluded.lockup_period,
			min_ticket        = excluded.min_ticket,
			max_ticket        = excluded.max_ticket,
			target_fund       = excluded.target_fund,
			preferred_return  = excluded.preferred_return,
			management_fee    = excluded.management_fee,
			admin_cost        = excluded.admin_cost,
			target_ownership  = excluded.target_ownership,
			expected_dilution = excluded.expected_dilution,
			t1_exp_moic       = excluded.t1_exp_moic,
			t2_exp_moic       = excluded.t2_exp_moic,
			t3_exp_moic       = excluded.t3_exp_moic,
			tier1_carry       = excluded.tier1_carry,
			tier2_carry       = excluded.tier2_carry,
			tier3_carry       = excluded.tier3_carry,
			failure_rate      = excluded.failure_rate,
			break_even_rate   = excluded.break_even_rate,
			high_return_rate  = excluded.high_return_rate,
			updated_at        = excluded.updated_at`,
		userID, a.InvestmentPeriod, a.ExitHorizon, a.FundLife, a.LockupPeriod,
		a.MinTicket, a.MaxTicket, a.TargetFund,
		a.PreferredReturn, a.ManagementFee, a.AdminCost, a.TargetOwnership, a.ExpectedDilution,
		a.Tier1ExpMOIC, a.Tier2ExpMOIC, a.Tier3ExpMOIC,
		a.Tier1Carry, a.Tier2Carry, a.Tier3Carry,
		a.FailureRate, a.BreakEvenRate, a.HighReturnRate, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save assumptions: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadDeals(userID string) ([]model.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT
		id, company, company_type, industry, entry_year, exit_year,
		invested, entry_valuation, base_factor, downside_factor, upside_factor, scenario
		FROM deals WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("load deals: %w", err)
	}
	defer rows.Close()

	var deals []model.Deal
	for rows.Next() {
		d := model.Deal{UserID: userID}
		if err := rows.Scan(
			&d.ID, &d.Company, &d.CompanyType, &d.Industry, &d.EntryYear, &d.ExitYear,
			&d.Invested, &d.EntryValuation, &d.BaseFactor, &d.DownsideFactor, &d.UpsideFactor, &d.Scenario,
		); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func (s *SQLiteStore) InsertDeal(userID string, d model.Deal) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO deals
		(id, user_id, company, company_type, industry, entry_year, exit_year,
		 invested, entry_valuation, base_factor, downside_factor, upside_factor, scenario, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, userID, d.Company, d.CompanyType, d.Industry, d.EntryYear, d.ExitYear,
		d.Invested, d.EntryValuation, d.BaseFactor, d.DownsideFactor, d.UpsideFactor,
		string(d.Scenario), time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert deal: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) DeleteDeal(userID, dealID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM deals WHERE id = ? AND user_id = ?`, dealID, userID)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListUsers() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT user_id FROM assumptions UNION SELECT user_id FROM deals`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
