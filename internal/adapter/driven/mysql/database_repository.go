package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/go-sql-driver/mysql"
)

var errNotConnected = errors.New("database connection not open")

// DatabaseRepositoryImpl implementa o DatabaseRepository sobre database/sql.
type DatabaseRepositoryImpl struct {
	open func(dsn string) (*sql.DB, error)

	db   *sql.DB
	conn *sql.Conn
}

// NewDatabaseRepository cria um repositório que abre conexões com o driver MySQL.
func NewDatabaseRepository() repository.DatabaseRepository {
	return &DatabaseRepositoryImpl{
		open: func(dsn string) (*sql.DB, error) { return sql.Open("mysql", dsn) },
	}
}

// DSN monta a string de conexão sem schema; o schema é selecionado com USE.
func DSN(creds repository.DatabaseCredentials) string {
	cfg := mysql.NewConfig()
	cfg.User = creds.Username
	cfg.Passwd = creds.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(creds.Host, strconv.Itoa(creds.Port))
	return cfg.FormatDSN()
}

// Connect abre uma conexão dedicada e seleciona o schema.
func (r *DatabaseRepositoryImpl) Connect(ctx context.Context, creds repository.DatabaseCredentials) error {
	db, err := r.open(DSN(creds))
	if err != nil {
		return fmt.Errorf("error opening MySQL connection to %s:%d: %w", creds.Host, creds.Port, err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return fmt.Errorf("error connecting to MySQL at %s:%d: %w", creds.Host, creds.Port, err)
	}

	if _, err := conn.ExecContext(ctx, "USE "+quoteIdentifier(creds.Schema)); err != nil {
		conn.Close()
		db.Close()
		return fmt.Errorf("error selecting schema '%s': %w", creds.Schema, err)
	}

	r.db, r.conn = db, conn
	return nil
}

// Tables lista as tabelas do schema selecionado.
func (r *DatabaseRepositoryImpl) Tables(ctx context.Context) ([]string, error) {
	if r.conn == nil {
		return nil, errNotConnected
	}

	rows, err := r.conn.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, fmt.Errorf("error listing tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error reading table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// DumpTable lê todas as linhas de table como texto.
func (r *DatabaseRepositoryImpl) DumpTable(ctx context.Context, table string) (repository.TableDump, error) {
	dump := repository.TableDump{Table: table}
	if r.conn == nil {
		return dump, errNotConnected
	}

	rows, err := r.conn.QueryContext(ctx, "SELECT * FROM "+quoteIdentifier(table))
	if err != nil {
		return dump, fmt.Errorf("error querying table '%s': %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return dump, fmt.Errorf("error reading columns of '%s': %w", table, err)
	}
	dump.Header = columns

	values := make([]sql.RawBytes, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return dump, fmt.Errorf("error reading row of '%s': %w", table, err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = string(v)
		}
		dump.Rows = append(dump.Rows, record)
	}
	return dump, rows.Err()
}

// Close encerra a conexão e o pool.
func (r *DatabaseRepositoryImpl) Close() error {
	var errs []error
	if r.conn != nil {
		errs = append(errs, r.conn.Close())
		r.conn = nil
	}
	if r.db != nil {
		errs = append(errs, r.db.Close())
		r.db = nil
	}
	return errors.Join(errs...)
}

func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
