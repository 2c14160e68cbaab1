// Package storage is the sqlite persistence layer for self-contained
// deployments that do not sit in front of a remote backend.
package storage

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"sportsfund/internal/core"
	"sportsfund/internal/fund"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ fund.Store = (*SQLiteRepository)(nil)

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

// Login implements fund.Authenticator.
func (r *SQLiteRepository) Login(ctx context.Context, phoneNumber string) (core.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, name, role FROM users WHERE phone_number = ?`, phoneNumber)

	var sess core.Session
	if err := row.Scan(&sess.UserID, &sess.Name, &sess.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Session{}, fund.ErrUnknownPhone
		}
		return core.Session{}, fmt.Errorf("lookup phone number: %w", err)
	}
	return sess, nil
}

// ListUsers implements fund.UserStore.
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, name, phone_number, email, role, status FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.Role, &u.Status); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateUser implements fund.UserStore.
func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	if u.Role == "" {
		u.Role = core.RoleMember
	}
	if u.Status == "" {
		u.Status = core.StatusActive
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, phone_number, email, role, status) VALUES (?, ?, ?, ?, ?)`,
		u.Name, u.Phone, u.Email, u.Role, u.Status)
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	u.ID, err = res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("read user id: %w", err)
	}
	return u, nil
}

// UpdateUser implements fund.UserStore.
func (r *SQLiteRepository) UpdateUser(ctx context.Context, id int64, u core.User) (core.User, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, phone_number = ?, email = ?, role = ?, status = ? WHERE user_id = ?`,
		u.Name, u.Phone, u.Email, u.Role, u.Status, id)
	if err != nil {
		return core.User{}, fmt.Errorf("update user: %w", err)
	}
	if err := requireRow(res, "user", id); err != nil {
		return core.User{}, err
	}

	u.ID = id
	return u, nil
}

// DeleteUser implements fund.UserStore.
func (r *SQLiteRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRow(res, "user", id)
}

// ListContributions implements fund.ContributionStore.
func (r *SQLiteRepository) ListContributions(ctx context.Context, f fund.ContributionFilter) ([]core.Contribution, error) {
	query := `SELECT contribution_id, user_id, amount, date, month FROM contributions WHERE 1=1`
	var args []any
	if f.UserID != "" {
		userID, err := strconv.ParseInt(f.UserID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse user_id filter %q: %w", f.UserID, err)
		}
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	if f.Month != "" {
		query += ` AND month = ?`
		args = append(args, f.Month)
	}
	query += ` ORDER BY contribution_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var contributions []core.Contribution
	for rows.Next() {
		var c core.Contribution
		if err := rows.Scan(&c.ID, &c.UserID, &c.Amount, &c.Date, &c.Month); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		contributions = append(contributions, c)
	}
	return contributions, rows.Err()
}

// CreateContribution implements fund.ContributionStore.
func (r *SQLiteRepository) CreateContribution(ctx context.Context, c core.Contribution) (core.Contribution, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contributions (user_id, amount, date, month) VALUES (?, ?, ?, ?)`,
		c.UserID, c.Amount.Float64(), c.Date, c.Month)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("create contribution: %w", err)
	}

	c.ID, err = res.LastInsertId()
	if err != nil {
		return core.Contribution{}, fmt.Errorf("read contribution id: %w", err)
	}
	return c, nil
}

// UpdateContribution implements fund.ContributionStore.
func (r *SQLiteRepository) UpdateContribution(ctx context.Context, id int64, c core.Contribution) (core.Contribution, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contributions SET user_id = ?, amount = ?, date = ?, month = ? WHERE contribution_id = ?`,
		c.UserID, c.Amount.Float64(), c.Date, c.Month, id)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("update contribution: %w", err)
	}
	if err := requireRow(res, "contribution", id); err != nil {
		return core.Contribution{}, err
	}

	c.ID = id
	return c, nil
}

// DeleteContribution implements fund.ContributionStore.
func (r *SQLiteRepository) DeleteContribution(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contributions WHERE contribution_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contribution: %w", err)
	}
	return requireRow(res, "contribution", id)
}

// ListExpenses implements fund.ExpenseStore.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, f fund.ExpenseFilter) ([]core.Expense, error) {
	query := `SELECT expense_id, description, amount, date, month, created_by FROM expenses`
	var args []any
	if f.Month != "" {
		query += ` WHERE month = ?`
		args = append(args, f.Month)
	}
	query += ` ORDER BY expense_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Date, &e.Month, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// CreateExpense implements fund.ExpenseStore.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (description, amount, date, month, created_by) VALUES (?, ?, ?, ?, ?)`,
		e.Description, e.Amount.Float64(), e.Date, e.Month, e.CreatedBy)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	e.ID, err = res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("read expense id: %w", err)
	}
	return e, nil
}

// UpdateExpense implements fund.ExpenseStore.
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, id int64, e core.Expense) (core.Expense, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET description = ?, amount = ?, date = ?, month = ?, created_by = ? WHERE expense_id = ?`,
		e.Description, e.Amount.Float64(), e.Date, e.Month, e.CreatedBy, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	if err := requireRow(res, "expense", id); err != nil {
		return core.Expense{}, err
	}

	e.ID = id
	return e, nil
}

// DeleteExpense implements fund.ExpenseStore.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE expense_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res, "expense", id)
}

// ExportCSV implements fund.Exporter.
func (r *SQLiteRepository) ExportCSV(ctx context.Context, resource string, w io.Writer) error {
	cw := csv.NewWriter(w)

	switch resource {
	case fund.ResourceUsers:
		users, err := r.ListUsers(ctx)
		if err != nil {
			return err
		}
		if err := cw.Write([]string{"user_id", "name", "phone_number", "email", "role", "status"}); err != nil {
			return err
		}
		for _, u := range users {
			if err := cw.Write([]string{
				strconv.FormatInt(u.ID, 10), u.Name, u.Phone, u.Email, string(u.Role), string(u.Status),
			}); err != nil {
				return err
			}
		}
	case fund.ResourceContributions:
		contributions, err := r.ListContributions(ctx, fund.ContributionFilter{})
		if err != nil {
			return err
		}
		if err := cw.Write([]string{"contribution_id", "user_id", "amount", "date", "month"}); err != nil {
			return err
		}
		for _, c := range contributions {
			if err := cw.Write([]string{
				strconv.FormatInt(c.ID, 10), strconv.FormatInt(c.UserID, 10), c.Amount.String(), c.Date, c.Month,
			}); err != nil {
				return err
			}
		}
	case fund.ResourceExpenses:
		expenses, err := r.ListExpenses(ctx, fund.ExpenseFilter{})
		if err != nil {
			return err
		}
		if err := cw.Write([]string{"expense_id", "description", "amount", "date", "month", "created_by"}); err != nil {
			return err
		}
		for _, e := range expenses {
			if err := cw.Write([]string{
				strconv.FormatInt(e.ID, 10), e.Description, e.Amount.String(), e.Date, e.Month, strconv.FormatInt(e.CreatedBy, 10),
			}); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("export resource %q: %w", resource, fund.ErrNotFound)
	}

	cw.Flush()
	return cw.Error()
}

func requireRow(res sql.Result, entity string, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, fund.ErrNotFound)
	}
	return nil
}
