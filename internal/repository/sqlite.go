package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avbelov/countbook/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements Repository on a single database file.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Users

func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, full_name, language, active_book_id FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.FullName, &u.Language, &u.ActiveBookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, full_name, language, active_book_id) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.FullName, user.Language, user.ActiveBookID)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateUser(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, full_name = ?, language = ?, active_book_id = ? WHERE id = ?`,
		user.Username, user.FullName, user.Language, user.ActiveBookID, user.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Books

const bookColumns = `id, user_id, book_uid, title, currency, created, deleted`

func (r *SQLiteRepository) scanBook(row *sql.Row) (*model.Book, error) {
	var b model.Book
	var created int64
	err := row.Scan(&b.ID, &b.UserID, &b.UID, &b.Title, &b.Currency, &created, &b.Deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan book: %w", err)
	}
	b.Created = time.Unix(created, 0).UTC()
	return &b, nil
}

func (r *SQLiteRepository) GetBookByID(ctx context.Context, id int64, notDeleted bool) (*model.Book, error) {
	q := `SELECT ` + bookColumns + ` FROM books WHERE id = ?`
	if notDeleted {
		q += ` AND deleted = 0`
	}
	return r.scanBook(r.db.QueryRowContext(ctx, q, id))
}

func (r *SQLiteRepository) GetBookByUID(ctx context.Context, uid string, notDeleted bool) (*model.Book, error) {
	q := `SELECT ` + bookColumns + ` FROM books WHERE book_uid = ?`
	if notDeleted {
		q += ` AND deleted = 0`
	}
	return r.scanBook(r.db.QueryRowContext(ctx, q, uid))
}

func (r *SQLiteRepository) GetBookByTitle(ctx context.Context, userID int64, title string, notDeleted bool) (*model.Book, error) {
	q := `SELECT ` + bookColumns + ` FROM books WHERE user_id = ? AND title = ?`
	if notDeleted {
		q += ` AND deleted = 0`
	}
	return r.scanBook(r.db.QueryRowContext(ctx, q, userID, title))
}

func (r *SQLiteRepository) GetBooks(ctx context.Context, userID int64, notDeleted bool) ([]model.Book, error) {
	q := `SELECT ` + bookColumns + ` FROM books WHERE user_id = ?`
	if notDeleted {
		q += ` AND deleted = 0`
	}
	q += ` ORDER BY created DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("get books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		var created int64
		if err := rows.Scan(&b.ID, &b.UserID, &b.UID, &b.Title, &b.Currency, &created, &b.Deleted); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		b.Created = time.Unix(created, 0).UTC()
		books = append(books, b)
	}
	return books, rows.Err()
}

// CreateBook inserts the book and assigns its join token. The token embeds
// the row id so lookups stay unambiguous even across uuid collisions.
func (r *SQLiteRepository) CreateBook(ctx context.Context, book *model.Book) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO books (user_id, title, currency, created, deleted) VALUES (?, ?, ?, ?, 0)`,
		book.UserID, book.Title, book.Currency, book.Created.Unix())
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("book id: %w", err)
	}
	uid := fmt.Sprintf("%d:%s", id, uuid.NewString())
	if _, err := tx.ExecContext(ctx, `UPDATE books SET book_uid = ? WHERE id = ?`, uid, id); err != nil {
		return fmt.Errorf("set book uid: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	book.ID = id
	book.UID = uid
	return nil
}

func (r *SQLiteRepository) UpdateBook(ctx context.Context, book *model.Book) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE books SET title = ?, currency = ?, deleted = ? WHERE id = ?`,
		book.Title, book.Currency, book.Deleted, book.ID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// Categories

const categoryColumns = `id, book_id, parent_id, kind, title, deleted`

func (r *SQLiteRepository) GetCategories(ctx context.Context, bookID int64, filter CategoryFilter) ([]model.Category, error) {
	q := `SELECT ` + categoryColumns + ` FROM categories WHERE book_id = ?`
	args := []any{bookID}
	if filter.ParentID != nil {
		q += ` AND parent_id = ?`
		args = append(args, *filter.ParentID)
	}
	if filter.Kind != "" {
		q += ` AND kind = ?`
		args = append(args, string(filter.Kind))
	}
	if filter.NotDeleted {
		q += ` AND deleted = 0`
	}
	q += ` ORDER BY title ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.BookID, &c.ParentID, &c.Kind, &c.Title, &c.Deleted); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *SQLiteRepository) scanCategory(row *sql.Row) (*model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.BookID, &c.ParentID, &c.Kind, &c.Title, &c.Deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

func (r *SQLiteRepository) GetCategoryByID(ctx context.Context, bookID, id int64, kind model.CategoryKind, notDeleted bool) (*model.Category, error) {
	q := `SELECT ` + categoryColumns + ` FROM categories WHERE book_id = ? AND id = ?`
	args := []any{bookID, id}
	if kind != "" {
		q += ` AND kind = ?`
		args = append(args, string(kind))
	}
	if notDeleted {
		q += ` AND deleted = 0`
	}
	return r.scanCategory(r.db.QueryRowContext(ctx, q, args...))
}

func (r *SQLiteRepository) GetCategoryByTitle(ctx context.Context, bookID, parentID int64, kind model.CategoryKind, title string) (*model.Category, error) {
	q := `SELECT ` + categoryColumns + ` FROM categories
		WHERE book_id = ? AND parent_id = ? AND title = ? AND deleted = 0`
	args := []any{bookID, parentID, title}
	if kind != "" {
		q += ` AND kind = ?`
		args = append(args, string(kind))
	}
	return r.scanCategory(r.db.QueryRowContext(ctx, q, args...))
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (book_id, parent_id, kind, title, deleted) VALUES (?, ?, ?, ?, 0)`,
		category.BookID, category.ParentID, string(category.Kind), category.Title)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	category.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("category id: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, category *model.Category) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET parent_id = ?, title = ?, deleted = ? WHERE id = ?`,
		category.ParentID, category.Title, category.Deleted, category.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// DeleteCategoryTree soft-deletes a category and every descendant. The
// subtree is collected with a worklist, then marked in one statement inside
// one transaction so a crash can never leave a partially-deleted subtree.
func (r *SQLiteRepository) DeleteCategoryTree(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	ids := []int64{id}
	queue := []int64{id}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		children, err := childCategoryIDs(ctx, tx, parent)
		if err != nil {
			return err
		}
		ids = append(ids, children...)
		queue = append(queue, children...)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, v := range ids {
		args[i] = v
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE categories SET deleted = 1 WHERE id IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("delete category tree: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func childCategoryIDs(ctx context.Context, tx *sql.Tx, parentID int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM categories WHERE parent_id = ?`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan child id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Entries

func (r *SQLiteRepository) CreateEntry(ctx context.Context, entry *model.Entry) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (user_id, book_id, category_id, kind, amount, year, month, day, created, deleted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		entry.UserID, entry.BookID, entry.CategoryID, string(entry.Kind), entry.Amount,
		entry.Year, entry.Month, entry.Day, entry.Created.Unix())
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	entry.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("entry id: %w", err)
	}
	return nil
}

// EntriesPerCategory sums live entries per category. Deleted categories are
// excluded from the join so their entries surface with an empty title.
func (r *SQLiteRepository) EntriesPerCategory(ctx context.Context, bookID int64, kind model.CategoryKind, year, month, day *int) ([]CategoryTotal, error) {
	q := `SELECT e.category_id, IFNULL(c.title, ''), SUM(e.amount) AS amount
		FROM entries e
		LEFT JOIN categories c ON e.category_id = c.id AND c.deleted = 0
		WHERE e.book_id = ? AND e.deleted = 0`
	args := []any{bookID}
	if kind != "" {
		q += ` AND e.kind = ?`
		args = append(args, string(kind))
	}
	if year != nil {
		q += ` AND e.year = ?`
		args = append(args, *year)
	}
	if month != nil {
		q += ` AND e.month = ?`
		args = append(args, *month)
	}
	if day != nil {
		q += ` AND e.day = ?`
		args = append(args, *day)
	}
	q += ` GROUP BY e.category_id ORDER BY amount ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("entries per category: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var t CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.Title, &t.Amount); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *SQLiteRepository) periodTotals(ctx context.Context, q string, args ...any) ([]PeriodTotal, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("period totals: %w", err)
	}
	defer rows.Close()

	var totals []PeriodTotal
	for rows.Next() {
		var t PeriodTotal
		if err := rows.Scan(&t.Period, &t.Amount); err != nil {
			return nil, fmt.Errorf("scan period total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *SQLiteRepository) EntriesPerDay(ctx context.Context, bookID int64, kind model.CategoryKind, year, month int) ([]PeriodTotal, error) {
	q := `SELECT day, SUM(amount) FROM entries
		WHERE book_id = ? AND deleted = 0 AND year = ? AND month = ?`
	args := []any{bookID, year, month}
	if kind != "" {
		q += ` AND kind = ?`
		args = append(args, string(kind))
	}
	q += ` GROUP BY day ORDER BY day ASC`
	return r.periodTotals(ctx, q, args...)
}

func (r *SQLiteRepository) EntriesPerMonth(ctx context.Context, bookID int64, kind model.CategoryKind, year int) ([]PeriodTotal, error) {
	q := `SELECT month, SUM(amount) FROM entries
		WHERE book_id = ? AND deleted = 0 AND year = ?`
	args := []any{bookID, year}
	if kind != "" {
		q += ` AND kind = ?`
		args = append(args, string(kind))
	}
	q += ` GROUP BY month ORDER BY month ASC`
	return r.periodTotals(ctx, q, args...)
}

func (r *SQLiteRepository) EntriesPerYear(ctx context.Context, bookID int64, kind model.CategoryKind) ([]PeriodTotal, error) {
	q := `SELECT year, SUM(amount) FROM entries
		WHERE book_id = ? AND deleted = 0`
	args := []any{bookID}
	if kind != "" {
		q += ` AND kind = ?`
		args = append(args, string(kind))
	}
	q += ` GROUP BY year ORDER BY year ASC`
	return r.periodTotals(ctx, q, args...)
}

// Shared books

const sharedBookSelect = `SELECT sb.id, sb.user_id, sb.book_id, b.user_id, b.book_uid,
	b.title, b.currency, b.created, sb.disabled, sb.deleted
	FROM shared_books sb
	JOIN books b ON sb.book_id = b.id`

func sharedBookWhere(filter SharedBookFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.ID != nil {
		conds = append(conds, `sb.id = ?`)
		args = append(args, *filter.ID)
	}
	if filter.UserID != nil {
		conds = append(conds, `sb.user_id = ?`)
		args = append(args, *filter.UserID)
	}
	if filter.BookID != nil {
		conds = append(conds, `sb.book_id = ?`)
		args = append(args, *filter.BookID)
	}
	if filter.Disabled != nil {
		conds = append(conds, `sb.disabled = ?`)
		args = append(args, *filter.Disabled)
	}
	if filter.NotDeleted {
		conds = append(conds, `sb.deleted = 0`, `b.deleted = 0`)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return ` WHERE ` + strings.Join(conds, ` AND `), args
}

func scanSharedBook(scan func(...any) error) (*model.SharedBook, error) {
	var sb model.SharedBook
	var created int64
	err := scan(&sb.ID, &sb.UserID, &sb.BookID, &sb.OwnerID, &sb.BookUID,
		&sb.Title, &sb.Currency, &created, &sb.Disabled, &sb.Deleted)
	if err != nil {
		return nil, err
	}
	sb.Created = time.Unix(created, 0).UTC()
	return &sb, nil
}

func (r *SQLiteRepository) GetSharedBooks(ctx context.Context, filter SharedBookFilter) ([]model.SharedBook, error) {
	where, args := sharedBookWhere(filter)
	rows, err := r.db.QueryContext(ctx, sharedBookSelect+where+` ORDER BY b.created DESC, b.id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("get shared books: %w", err)
	}
	defer rows.Close()

	var shared []model.SharedBook
	for rows.Next() {
		sb, err := scanSharedBook(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan shared book: %w", err)
		}
		shared = append(shared, *sb)
	}
	return shared, rows.Err()
}

func (r *SQLiteRepository) GetSharedBook(ctx context.Context, filter SharedBookFilter) (*model.SharedBook, error) {
	where, args := sharedBookWhere(filter)
	row := r.db.QueryRowContext(ctx, sharedBookSelect+where+` LIMIT 1`, args...)
	sb, err := scanSharedBook(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shared book: %w", err)
	}
	return sb, nil
}

func (r *SQLiteRepository) CreateSharedBook(ctx context.Context, userID, bookID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO shared_books (user_id, book_id, disabled, deleted) VALUES (?, ?, 0, 0)`,
		userID, bookID)
	if err != nil {
		return 0, fmt.Errorf("insert shared book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("shared book id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateSharedBook(ctx context.Context, id int64, disabled, deleted bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE shared_books SET disabled = ?, deleted = ? WHERE id = ?`, disabled, deleted, id)
	if err != nil {
		return fmt.Errorf("update shared book: %w", err)
	}
	return nil
}

// Dialog state

func (r *SQLiteRepository) GetDialogState(ctx context.Context, userID int64) (string, []byte, error) {
	var step string
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT step, data FROM dialog_states WHERE user_id = ?`, userID).Scan(&step, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("get dialog state: %w", err)
	}
	return step, data, nil
}

func (r *SQLiteRepository) PutDialogState(ctx context.Context, userID int64, step string, data []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dialog_states (user_id, step, data, updated) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET step = excluded.step, data = excluded.data, updated = excluded.updated`,
		userID, step, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("put dialog state: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteDialogState(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dialog_states WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete dialog state: %w", err)
	}
	return nil
}
