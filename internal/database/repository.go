package database

import (
	"ShopScraper/internal/models"
	"ShopScraper/internal/pager"
	"context"
	"database/sql"
	"fmt"
	"log"
)

const (
	productsTable = "products"
	stagingTable  = "products_staging"
)

// dialect holds the SQL differences between the supported drivers.
type dialect struct {
	name        string
	driverName  string
	orderBy     string
	tableExists string
	placeholder func(i int) string
}

// DBRepository stores the listings of the latest search.
type DBRepository struct {
	DB      *sql.DB
	dialect dialect
}

// InitDB opens the store for driver ("sqlite" or "postgres"). The products
// table is not created here: a store that has never received a batch reads as empty.
func InitDB(driver, dsn string) (*DBRepository, error) {
	var d dialect
	switch driver {
	case "sqlite", "":
		d = sqliteDialect
		dsn = sqliteDSN(dsn)
	case "postgres":
		d = postgresDialect
	default:
		return nil, &StorageError{Kind: OpenFailed, Backend: driver, Err: fmt.Errorf("unsupported driver %q", driver)}
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, &StorageError{Kind: OpenFailed, Backend: d.name, Err: fmt.Errorf("error opening database: %w", err)}
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Kind: OpenFailed, Backend: d.name, Err: fmt.Errorf("error pinging database: %w", err)}
	}

	log.Printf("Database (%s) initialized successfully.", d.name)
	return &DBRepository{DB: db, dialect: d}, nil
}

// Close closes the database connection.
func (repo *DBRepository) Close() error {
	return repo.DB.Close()
}

// Replace swaps the stored batch for listings in a single transaction:
// the new rows are written to a staging table which is then renamed over
// products. Readers see either the old batch or the complete new one.
func (repo *DBRepository) Replace(ctx context.Context, listings []models.Listing) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return repo.writeErr(fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback()

	stmts := []string{
		`DROP TABLE IF EXISTS ` + stagingTable,
		`CREATE TABLE ` + stagingTable + ` (link TEXT, title TEXT, price TEXT, img TEXT)`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return repo.writeErr(fmt.Errorf("prepare staging table: %w", err))
		}
	}

	insert := fmt.Sprintf(`INSERT INTO %s (link, title, price, img) VALUES (%s, %s, %s, %s)`,
		stagingTable, repo.ph(1), repo.ph(2), repo.ph(3), repo.ph(4))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return repo.writeErr(fmt.Errorf("prepare insert: %w", err))
	}
	for i, l := range listings {
		if _, err := stmt.ExecContext(ctx, l.Link, l.Title, l.Price, l.ImageURL); err != nil {
			stmt.Close()
			return repo.writeErr(fmt.Errorf("insert row %d (%s): %w", i, l.Link, err))
		}
	}
	// SQLite refuses to drop tables while a statement is still open on the connection.
	if err := stmt.Close(); err != nil {
		return repo.writeErr(fmt.Errorf("close insert: %w", err))
	}

	swap := []string{
		`DROP TABLE IF EXISTS ` + productsTable,
		`ALTER TABLE ` + stagingTable + ` RENAME TO ` + productsTable,
	}
	for _, s := range swap {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return repo.writeErr(fmt.Errorf("swap tables: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return repo.writeErr(fmt.Errorf("commit: %w", err))
	}

	log.Printf("Stored %d listings.", len(listings))
	return nil
}

// ListAll returns every stored listing in insertion order.
func (repo *DBRepository) ListAll(ctx context.Context) ([]models.Listing, error) {
	return repo.list(ctx, "")
}

func (repo *DBRepository) list(ctx context.Context, suffix string, args ...interface{}) ([]models.Listing, error) {
	listings := []models.Listing{}
	err := repo.read(ctx, func(tx *sql.Tx) error {
		var err error
		listings, err = repo.query(ctx, tx, suffix, args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// ListPage returns one page of the stored batch with its bounds and the batch size.
// The count and the rows come from the same transaction, so the page always
// describes the batch its rows belong to.
func (repo *DBRepository) ListPage(ctx context.Context, requested, pageSize int) ([]models.Listing, pager.Page, int, error) {
	listings := []models.Listing{}
	page := pager.Paginate(0, pageSize, requested)
	total := 0

	err := repo.read(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+productsTable).Scan(&total); err != nil {
			return fmt.Errorf("count listings: %w", err)
		}
		page = pager.Paginate(total, pageSize, requested)

		var err error
		listings, err = repo.query(ctx, tx, fmt.Sprintf(" LIMIT %s OFFSET %s", repo.ph(1), repo.ph(2)), page.End-page.Start, page.Start)
		return err
	})
	if err != nil {
		return nil, pager.Page{}, 0, err
	}
	return listings, page, total, nil
}

func (repo *DBRepository) query(ctx context.Context, tx *sql.Tx, suffix string, args ...interface{}) ([]models.Listing, error) {
	query := fmt.Sprintf(`SELECT link, title, price, img FROM %s ORDER BY %s`, productsTable, repo.dialect.orderBy) + suffix
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.Link, &l.Title, &l.Price, &l.ImageURL); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// read runs fn in a transaction so every query in it sees the same batch.
// fn is skipped when no batch has ever been stored.
func (repo *DBRepository) read(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return repo.readErr(err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx, repo.dialect.tableExists, productsTable).Scan(&n); err != nil {
		return repo.readErr(fmt.Errorf("check products table: %w", err))
	}
	if n == 0 {
		return nil
	}

	if err := fn(tx); err != nil {
		return repo.readErr(err)
	}
	return nil
}

func (repo *DBRepository) ph(i int) string {
	return repo.dialect.placeholder(i)
}

func (repo *DBRepository) writeErr(err error) error {
	return &StorageError{Kind: WriteFailed, Backend: repo.dialect.name, Err: err}
}

func (repo *DBRepository) readErr(err error) error {
	return &StorageError{Kind: ReadFailed, Backend: repo.dialect.name, Err: err}
}
