package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrExecute classifies engine-side failures while applying the payload.
	ErrExecute = errors.New("migration execution failed")
	// ErrVerify classifies failures of the read-only verification queries.
	ErrVerify = errors.New("verification query failed")
)

const (
	duelStatusQuery   = `SELECT status, COUNT(*) FROM duels GROUP BY status ORDER BY status`
	marketStatusQuery = `SELECT status, COUNT(*) FROM markets GROUP BY status ORDER BY status`
	adminLookupQuery  = `
SELECT au.id, au.role, u.wallet_address, au.created_at
FROM admin_users au
JOIN users u ON u.id = au.user_id
WHERE u.wallet_address = $1`
)

// Runner applies one payload and checks the expected post-conditions over a
// single connection.
type Runner struct {
	DB          *sql.DB
	AdminWallet string
}

func NewRunner(database *sql.DB, adminWallet string) *Runner {
	return &Runner{DB: database, AdminWallet: adminWallet}
}

// Execute applies the whole payload in one ExecContext call. There is no
// explicit transaction around the batch: each statement commits on its own,
// and a mid-batch failure leaves earlier statements applied. Re-running a
// non-idempotent payload is on the payload, not the runner.
func (r *Runner) Execute(ctx context.Context, p *Payload) error {
	if _, err := r.DB.ExecContext(ctx, string(p.SQL)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrExecute, p.Path, err)
	}
	return nil
}

// Verify runs the fixed read-only checks: duel and market status breakdowns,
// then the admin-user lookup. A missing admin row yields a nil Report.Admin
// rather than an error.
func (r *Runner) Verify(ctx context.Context) (*Report, error) {
	rep := &Report{}
	var err error
	if rep.Duels, err = r.statusCounts(ctx, duelStatusQuery, "duels"); err != nil {
		return nil, err
	}
	if rep.Markets, err = r.statusCounts(ctx, marketStatusQuery, "markets"); err != nil {
		return nil, err
	}

	var admin AdminRecord
	row := r.DB.QueryRowContext(ctx, adminLookupQuery, r.AdminWallet)
	switch err := row.Scan(&admin.ID, &admin.Role, &admin.WalletAddress, &admin.CreatedAt); {
	case errors.Is(err, sql.ErrNoRows):
		// warning surfaced by the caller
	case err != nil:
		return nil, fmt.Errorf("%w: admin lookup: %v", ErrVerify, err)
	default:
		rep.Admin = &admin
	}
	return rep, nil
}

// Run is the full flow: execute, then verify. Verification is skipped when
// execution fails.
func (r *Runner) Run(ctx context.Context, p *Payload) (*Report, error) {
	if err := r.Execute(ctx, p); err != nil {
		return nil, err
	}
	return r.Verify(ctx)
}

func (r *Runner) statusCounts(ctx context.Context, query, table string) ([]StatusCount, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s breakdown: %v", ErrVerify, table, err)
	}
	defer rows.Close()
	var out []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("%w: %s breakdown: %v", ErrVerify, table, err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s breakdown: %v", ErrVerify, table, err)
	}
	return out, nil
}
