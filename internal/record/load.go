package record

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
)

// Load reads the entire store into an immutable Dataset.
//
// Every table is read in primary-key order so the in-memory slice order is
// stable across loads; the selectors rely on that order only as the final
// tie-break after explicit identity sorting. Corrupt rows are a
// DataSourceUnavailable condition: the load fails as a whole rather than
// serving a partial dataset.
func (s *Store) Load(ctx context.Context) (*Dataset, error) {
	fiscalYear, err := s.readFiscalYear(ctx)
	if err != nil {
		return nil, &UnavailableError{Path: s.path, Err: err}
	}

	ministries, err := s.readMinistries(ctx)
	if err != nil {
		return nil, &UnavailableError{Path: s.path, Err: err}
	}

	stats, err := s.readMinistryStats(ctx)
	if err != nil {
		return nil, &UnavailableError{Path: s.path, Err: err}
	}

	projects, err := s.readProjects(ctx)
	if err != nil {
		return nil, &UnavailableError{Path: s.path, Err: err}
	}

	recipients, err := s.readRecipients(ctx)
	if err != nil {
		return nil, &UnavailableError{Path: s.path, Err: err}
	}

	slog.Info("record store loaded",
		"path", s.path,
		"fiscal_year", fiscalYear,
		"ministries", len(ministries),
		"projects", len(projects),
		"recipients", len(recipients),
	)

	return NewDataset(fiscalYear, ministries, projects, recipients, stats), nil
}

func (s *Store) readFiscalYear(ctx context.Context) (int, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'fiscal_year'`).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("read fiscal year: %w", err)
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse fiscal year %q: %w", value, err)
	}
	return year, nil
}

func (s *Store) readMinistries(ctx context.Context) ([]Ministry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, total_budget, bureau_count, project_ids
		FROM ministries
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query ministries: %w", err)
	}
	defer rows.Close()

	var ministries []Ministry
	for rows.Next() {
		var m Ministry
		var projectIDs string
		if err := rows.Scan(&m.ID, &m.Name, &m.TotalBudget, &m.BureauCount, &projectIDs); err != nil {
			return nil, fmt.Errorf("scan ministry: %w", err)
		}
		if err := json.Unmarshal([]byte(projectIDs), &m.ProjectIDs); err != nil {
			return nil, fmt.Errorf("ministry %d project_ids: %w", m.ID, err)
		}
		ministries = append(ministries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ministries: %w", err)
	}

	return ministries, nil
}

func (s *Store) readMinistryStats(ctx context.Context) ([]MinistryStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ministry, total_spending
		FROM ministry_stats
		ORDER BY ministry ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query ministry stats: %w", err)
	}
	defer rows.Close()

	var stats []MinistryStats
	for rows.Next() {
		var st MinistryStats
		if err := rows.Scan(&st.Ministry, &st.TotalSpending); err != nil {
			return nil, fmt.Errorf("scan ministry stats: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ministry stats: %w", err)
	}

	return stats, nil
}

func (s *Store) readProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT project_id, project_name, ministry, bureau, fiscal_year,
		       initial_budget, supplementary_budget, carryover_budget, reserve_fund,
		       total_budget, executed_amount, execution_rate, carryover_to_next,
		       account_category, spending_ids, total_spending_amount
		FROM projects
		ORDER BY project_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		var spendingIDs string
		if err := rows.Scan(
			&p.ProjectID, &p.ProjectName, &p.Ministry, &p.Bureau, &p.FiscalYear,
			&p.InitialBudget, &p.SupplementaryBudget, &p.CarryoverBudget, &p.ReserveFund,
			&p.TotalBudget, &p.ExecutedAmount, &p.ExecutionRate, &p.CarryoverToNext,
			&p.AccountCategory, &spendingIDs, &p.TotalSpendingAmount,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		if err := json.Unmarshal([]byte(spendingIDs), &p.SpendingIDs); err != nil {
			return nil, fmt.Errorf("project %d spending_ids: %w", p.ProjectID, err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

func (s *Store) readRecipients(ctx context.Context) ([]Recipient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT spending_id, spending_name, corporate_number, location,
		       total_spending_amount, project_count, projects
		FROM recipients
		ORDER BY spending_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query recipients: %w", err)
	}
	defer rows.Close()

	var recipients []Recipient
	for rows.Next() {
		var r Recipient
		var contributions string
		if err := rows.Scan(
			&r.SpendingID, &r.SpendingName, &r.CorporateNumber, &r.Location,
			&r.TotalSpendingAmount, &r.ProjectCount, &contributions,
		); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		if err := json.Unmarshal([]byte(contributions), &r.Projects); err != nil {
			return nil, fmt.Errorf("recipient %d projects: %w", r.SpendingID, err)
		}
		recipients = append(recipients, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipients: %w", err)
	}

	return recipients, nil
}
