package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"grana/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record does not exist or was soft-deleted.
var ErrNotFound = errors.New("record not found")

// SyncStatus values for the transaction export pipeline.
const (
	SyncPending = "pending"
	SyncSynced  = "synced"
	SyncError   = "error"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateTransaction inserts a transaction and returns its ID. The row
// starts in sync_status pending so the export worker picks it up.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (date, year, month, description, amount_cents, type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Date.String(), t.Date.Year(), t.Date.Month(), t.Description, t.Amount.Cents, string(t.Type))
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"description", t.Description,
		"amount_cents", t.Amount.Cents,
		"type", string(t.Type),
		"date", t.Date.String())

	return id, nil
}

// GetTransaction retrieves a single transaction by ID.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, date, description, amount_cents, type
		 FROM transactions WHERE id = ? AND deleted_at IS NULL`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, ErrNotFound
		}
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return t, nil
}

// ListTransactions returns all transactions for the given month.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, m core.Month) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, amount_cents, type
		 FROM transactions WHERE year = ? AND month = ? AND deleted_at IS NULL
		 ORDER BY date, id`, m.Year, m.Month)
	if err != nil {
		return nil, fmt.Errorf("list transactions for %s: %w", m, err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// ListAllTransactions returns every live transaction. The dashboard uses
// this to derive previous-month comparisons and trailing averages.
func (r *SQLiteRepository) ListAllTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, amount_cents, type
		 FROM transactions WHERE deleted_at IS NULL ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// UpdateTransaction overwrites a transaction's fields (last-write-wins),
// resets its export state and returns the new version.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE transactions
		 SET date = ?, year = ?, month = ?, description = ?, amount_cents = ?, type = ?,
		     sync_status = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL
		 RETURNING version`,
		t.Date.String(), t.Date.Year(), t.Date.Month(), t.Description, t.Amount.Cents,
		string(t.Type), SyncPending, t.ID).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("update transaction %d: %w", t.ID, err)
	}
	return version, nil
}

// DeleteTransaction soft-deletes a transaction.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return requireRow(res, id)
}

// PendingExport is the minimal row the export queue needs.
type PendingExport struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

// GetPendingExportTransactions returns transactions awaiting export.
func (r *SQLiteRepository) GetPendingExportTransactions(ctx context.Context, limit int) ([]PendingExport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, version, created_at FROM transactions
		 WHERE sync_status = ? AND deleted_at IS NULL
		 ORDER BY id LIMIT ?`, SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending export transactions: %w", err)
	}
	defer rows.Close()

	var pending []PendingExport
	for rows.Next() {
		var p PendingExport
		var created string
		if err := rows.Scan(&p.ID, &p.Version, &created); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		// SQLite's CURRENT_TIMESTAMP format, with RFC3339 as fallback
		if t, err := time.Parse("2006-01-02 15:04:05", created); err == nil {
			p.CreatedAt = t
		} else if t, err := time.Parse(time.RFC3339, created); err == nil {
			p.CreatedAt = t
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// MarkExported marks a transaction as successfully exported.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		SyncSynced, id)
	if err != nil {
		return fmt.Errorf("mark transaction exported: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as exported", "id", id)
	return nil
}

// MarkExportError marks a transaction as having failed export.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		SyncError, id)
	if err != nil {
		return fmt.Errorf("mark transaction export error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with export error", "id", id)
	return nil
}

// CreateExpense inserts a categorized expense record.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (title, category, amount_cents, date, year, month, planned)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.Category, e.Amount.Cents, e.Date.String(), e.Date.Year(), e.Date.Month(), boolToInt(e.Planned))
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense id: %w", err)
	}
	return id, nil
}

// ListExpenses returns all expenses for the given month.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, m core.Month) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, category, amount_cents, date, planned
		 FROM expenses WHERE year = ? AND month = ? AND deleted_at IS NULL
		 ORDER BY date, id`, m.Year, m.Month)
	if err != nil {
		return nil, fmt.Errorf("list expenses for %s: %w", m, err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		var date string
		var planned int
		if err := rows.Scan(&e.ID, &e.Title, &e.Category, &e.Amount.Cents, &date, &planned); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse expense date %q: %w", date, err)
		}
		e.Date = d
		e.Planned = planned != 0
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// UpdateExpense overwrites an expense's fields (last-write-wins).
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses
		 SET title = ?, category = ?, amount_cents = ?, date = ?, year = ?, month = ?,
		     planned = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		e.Title, e.Category, e.Amount.Cents, e.Date.String(), e.Date.Year(), e.Date.Month(),
		boolToInt(e.Planned), e.ID)
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	return requireRow(res, e.ID)
}

// DeleteExpense soft-deletes an expense.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET deleted_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return requireRow(res, id)
}

// ListCategories returns every category, seeded ones included.
func (r *SQLiteRepository) ListCategories(ctx context.Context) (core.Categories, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, icon FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats core.Categories
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// CreateCategory inserts a category.
func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, color, icon) VALUES (?, ?, ?)`,
		c.Name, c.Color, c.Icon)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("category id: %w", err)
	}
	return id, nil
}

// CreateAsset inserts an investment position.
func (r *SQLiteRepository) CreateAsset(ctx context.Context, a core.Asset) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (name, type, value_cents, monthly_yield, date)
		 VALUES (?, ?, ?, ?, ?)`,
		a.Name, string(a.Type), a.Value.Cents, a.MonthlyYield, a.Date.String())
	if err != nil {
		return 0, fmt.Errorf("create asset: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("asset id: %w", err)
	}
	return id, nil
}

// ListAssets returns every live investment position.
func (r *SQLiteRepository) ListAssets(ctx context.Context) ([]core.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, value_cents, monthly_yield, date
		 FROM assets WHERE deleted_at IS NULL ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []core.Asset
	for rows.Next() {
		var a core.Asset
		var typ, date string
		if err := rows.Scan(&a.ID, &a.Name, &typ, &a.Value.Cents, &a.MonthlyYield, &date); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		a.Type = core.ParseAssetType(typ)
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse asset date %q: %w", date, err)
		}
		a.Date = d
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// UpdateAsset overwrites an asset's fields.
func (r *SQLiteRepository) UpdateAsset(ctx context.Context, a core.Asset) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assets
		 SET name = ?, type = ?, value_cents = ?, monthly_yield = ?, date = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		a.Name, string(a.Type), a.Value.Cents, a.MonthlyYield, a.Date.String(), a.ID)
	if err != nil {
		return fmt.Errorf("update asset %d: %w", a.ID, err)
	}
	return requireRow(res, a.ID)
}

// DeleteAsset soft-deletes an asset.
func (r *SQLiteRepository) DeleteAsset(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assets SET deleted_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete asset %d: %w", id, err)
	}
	return requireRow(res, id)
}

// CreateTarget inserts a savings goal.
func (r *SQLiteRepository) CreateTarget(ctx context.Context, t core.Target) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO targets (title, goal_cents, progress_cents, monthly_amount_cents, date)
		 VALUES (?, ?, ?, ?, ?)`,
		t.Title, t.Goal.Cents, t.Progress.Cents, t.MonthlyAmount.Cents, t.Date.String())
	if err != nil {
		return 0, fmt.Errorf("create target: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("target id: %w", err)
	}
	return id, nil
}

// ListTargets returns every live savings goal.
func (r *SQLiteRepository) ListTargets(ctx context.Context) ([]core.Target, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, goal_cents, progress_cents, monthly_amount_cents, date
		 FROM targets WHERE deleted_at IS NULL ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list targets: %w", err)
	}
	defer rows.Close()

	var targets []core.Target
	for rows.Next() {
		var t core.Target
		var date string
		if err := rows.Scan(&t.ID, &t.Title, &t.Goal.Cents, &t.Progress.Cents, &t.MonthlyAmount.Cents, &date); err != nil {
			return nil, fmt.Errorf("scan target: %w", err)
		}
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse target date %q: %w", date, err)
		}
		t.Date = d
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// UpdateTarget overwrites a target's fields (progress updates included).
func (r *SQLiteRepository) UpdateTarget(ctx context.Context, t core.Target) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE targets
		 SET title = ?, goal_cents = ?, progress_cents = ?, monthly_amount_cents = ?, date = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		t.Title, t.Goal.Cents, t.Progress.Cents, t.MonthlyAmount.Cents, t.Date.String(), t.ID)
	if err != nil {
		return fmt.Errorf("update target %d: %w", t.ID, err)
	}
	return requireRow(res, t.ID)
}

// DeleteTarget soft-deletes a target.
func (r *SQLiteRepository) DeleteTarget(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE targets SET deleted_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete target %d: %w", id, err)
	}
	return requireRow(res, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var date, typ string
	if err := row.Scan(&t.ID, &date, &t.Description, &t.Amount.Cents, &typ); err != nil {
		return core.Transaction{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", date, err)
	}
	t.Date = d
	t.Type = core.ParseTransactionType(typ)
	return t, nil
}

func collectTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
