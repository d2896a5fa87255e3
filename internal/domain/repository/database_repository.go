package repository

import "context"

// DatabaseCredentials identifica uma conexão MySQL.
type DatabaseCredentials struct {
	Host     string
	Port     int
	Username string
	Password string
	Schema   string
}

// TableDump holds the rows of one table; NULL values become empty strings.
type TableDump struct {
	Table  string
	Header []string
	Rows   [][]string
}

// DatabaseRepository lê as tabelas de um schema MySQL por uma única conexão.
type DatabaseRepository interface {
	Connect(ctx context.Context, creds DatabaseCredentials) error
	Tables(ctx context.Context) ([]string, error)
	DumpTable(ctx context.Context, table string) (TableDump, error)
	Close() error
}
