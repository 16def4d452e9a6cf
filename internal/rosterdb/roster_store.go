package rosterdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/goccy/go-json"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// employeesTable is the name of the roster table.
const employeesTable = "attrition_employees"

// employeeColumns lists the columns in scan order.
const employeeColumns = "employee_id, name, department, role, baseline_risk, top_drivers, last_assessed, age, tenure_years, satisfaction"

// RosterStoreImpl handles roster storage operations using various database backends.
type RosterStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.RosterStore = &RosterStoreImpl{} // Compile-time check

// NewRosterStore initializes and returns a RosterStore for the backend.
// The none backend returns the read-only fixture roster.
func NewRosterStore(backend schema.DatabaseBackend, connStr string) (contract.RosterStore, error) {
	if backend == schema.NoneBackend || backend == "" {
		return NewFixtureStore(), nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", employeesTable, err)
	}

	return newRosterStoreWithDB(db, backend, connStr), nil
}

// newRosterStoreWithDB wraps an open connection. Tests use it with sqlmock.
func newRosterStoreWithDB(db *sql.DB, backend schema.DatabaseBackend, connStr string) *RosterStoreImpl {
	return &RosterStoreImpl{db: db, backend: backend, connStr: connStr}
}

// openDB opens a connection for a SQL backend without verifying it.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetRosterDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite roster at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MySQL connection string: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		cfg.MultiStatements = true
		db, err := sql.Open("mysql", cfg.FormatDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL roster: %w", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL roster: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported roster backend: %s. Must be none, sqlite, mysql, or postgresql", backend)
	}
}

// quoteTableName quotes a table name for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// rebind rewrites '?' placeholders to '$n' for PostgreSQL.
func rebind(query string, backend schema.DatabaseBackend) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
// It matches the first migration of each dialect.
func getCreateTableQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(employeesTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				employee_id VARCHAR(64) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				department VARCHAR(128) NOT NULL,
				role VARCHAR(128) NOT NULL,
				baseline_risk DOUBLE NOT NULL,
				top_drivers TEXT NOT NULL,
				last_assessed VARCHAR(10),
				age INT NOT NULL,
				tenure_years DOUBLE NOT NULL,
				satisfaction DOUBLE NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				employee_id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				department TEXT NOT NULL,
				role TEXT NOT NULL,
				baseline_risk DOUBLE PRECISION NOT NULL,
				top_drivers TEXT NOT NULL,
				last_assessed TEXT,
				age INTEGER NOT NULL,
				tenure_years DOUBLE PRECISION NOT NULL,
				satisfaction DOUBLE PRECISION NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				employee_id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				department TEXT NOT NULL,
				role TEXT NOT NULL,
				baseline_risk REAL NOT NULL,
				top_drivers TEXT NOT NULL,
				last_assessed TEXT,
				age INTEGER NOT NULL,
				tenure_years REAL NOT NULL,
				satisfaction REAL NOT NULL
			);
		`, quotedTableName)
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEmployee reads one employee row. Drivers are stored as a JSON array.
func scanEmployee(row rowScanner) (schema.Employee, error) {
	var e schema.Employee
	var drivers string
	var assessed sql.NullString
	if err := row.Scan(&e.ID, &e.Name, &e.Department, &e.Role, &e.BaselineRisk,
		&drivers, &assessed, &e.Age, &e.TenureYears, &e.Satisfaction); err != nil {
		return e, err
	}
	if drivers != "" {
		if err := json.Unmarshal([]byte(drivers), &e.TopDrivers); err != nil {
			return e, fmt.Errorf("failed to decode top drivers of %s: %w", e.ID, err)
		}
	}
	e.LastAssessed = assessed.String
	return e, nil
}

// ListEmployees returns every employee ordered by ID.
func (rs *RosterStoreImpl) ListEmployees(ctx context.Context) ([]schema.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY employee_id", employeeColumns, quoteTableName(employeesTable, rs.backend))
	rows, err := rs.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	employees := []schema.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}
	return employees, nil
}

// GetEmployee returns the employee with the given ID.
func (rs *RosterStoreImpl) GetEmployee(ctx context.Context, id string) (schema.Employee, error) {
	query := rebind(fmt.Sprintf("SELECT %s FROM %s WHERE employee_id = ?",
		employeeColumns, quoteTableName(employeesTable, rs.backend)), rs.backend)
	e, err := scanEmployee(rs.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("%w: %s", contract.ErrEmployeeNotFound, id)
	}
	if err != nil {
		return e, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return e, nil
}

// SeedEmployees replaces rows by ID inside a single transaction.
func (rs *RosterStoreImpl) SeedEmployees(ctx context.Context, employees []schema.Employee) error {
	quoted := quoteTableName(employeesTable, rs.backend)
	deleteQuery := rebind(fmt.Sprintf("DELETE FROM %s WHERE employee_id = ?", quoted), rs.backend)
	insertQuery := rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", quoted, employeeColumns), rs.backend)

	tx, err := rs.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range employees {
		drivers := e.TopDrivers
		if drivers == nil {
			drivers = []string{}
		}
		encoded, err := json.Marshal(drivers)
		if err != nil {
			return fmt.Errorf("failed to encode top drivers of %s: %w", e.ID, err)
		}
		var assessed any
		if e.LastAssessed != "" {
			assessed = e.LastAssessed
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, e.ID); err != nil {
			return fmt.Errorf("failed to replace employee %s: %w", e.ID, err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, e.ID, e.Name, e.Department, e.Role, e.BaselineRisk,
			string(encoded), assessed, e.Age, e.TenureYears, e.Satisfaction); err != nil {
			return fmt.Errorf("failed to insert employee %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}

// ClearEmployees deletes every row of the roster table.
func (rs *RosterStoreImpl) ClearEmployees(ctx context.Context) error {
	query := fmt.Sprintf("DELETE FROM %s", quoteTableName(employeesTable, rs.backend))
	if _, err := rs.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to clear employees: %w", err)
	}
	return nil
}

// Close closes the underlying DB connection.
func (rs *RosterStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the roster store.
func (rs *RosterStoreImpl) GetStatus(ctx context.Context) (schema.RosterStatus, error) {
	status := schema.RosterStatus{
		Backend:     string(rs.backend),
		Connected:   rs.db != nil,
		Departments: make(map[string]int),
	}
	if rs.db == nil {
		return status, nil
	}

	quoted := quoteTableName(employeesTable, rs.backend)

	// Get total employees
	row := rs.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted))
	if err := row.Scan(&status.TotalEmployees); err != nil {
		return status, fmt.Errorf("failed to get total employees: %w", err)
	}

	if status.TotalEmployees > 0 {
		// Get headcount per department
		departments, err := rs.countDepartments(ctx, quoted)
		if err != nil {
			return status, err
		}
		status.Departments = departments

		// Get latest assessment and mean baseline
		var assessed sql.NullString
		row = rs.db.QueryRowContext(ctx, fmt.Sprintf("SELECT MAX(last_assessed), AVG(baseline_risk) FROM %s", quoted))
		if err := row.Scan(&assessed, &status.MeanBaselineRisk); err != nil {
			return status, fmt.Errorf("failed to get assessment summary: %w", err)
		}
		status.LastAssessed = assessed.String
	}

	// The migrations table only exists after `roster migrate`
	row = rs.db.QueryRowContext(ctx, "SELECT version FROM schema_migrations LIMIT 1")
	if err := row.Scan(&status.SchemaVersion); err != nil {
		status.SchemaVersion = 0
	}

	return status, nil
}

// countDepartments returns the headcount of each department.
func (rs *RosterStoreImpl) countDepartments(ctx context.Context, quoted string) (map[string]int, error) {
	rows, err := rs.db.QueryContext(ctx, fmt.Sprintf("SELECT department, COUNT(*) FROM %s GROUP BY department", quoted))
	if err != nil {
		return nil, fmt.Errorf("failed to get departments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	departments := make(map[string]int)
	for rows.Next() {
		var dept string
		var count int
		if err := rows.Scan(&dept, &count); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments[dept] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}
	return departments, nil
}
