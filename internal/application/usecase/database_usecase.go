package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/dustin/go-humanize"
)

const (
	RDSBackupScript = "rds-backup"
	RDSInitScript   = "rds-init"

	DefaultDatabaseHost  = "127.0.0.1"
	DefaultDatabasePort  = 3306
	DefaultRDSInitAction = "INCREMENT"

	databasesDir = "databases"
)

// RDSBackupOptions são as entradas do rds-backup.
type RDSBackupOptions struct {
	Region string
	Schema string
	// Secret is the id or ARN of the secret holding 'username' and 'password'.
	Secret    string
	Host      string
	Port      int
	OutputDir string
}

// RDSInitOptions são as entradas do rds-init; campos vazios ficam fora do payload.
type RDSInitOptions struct {
	Region       string
	FunctionName string
	ProjectName  string
	Action       string
	DBSchemas    string
	SQLFilename  string
	OutputDir    string
}

// DatabaseUseCase faz o backup de um schema MySQL em CSV e dispara a Lambda de init do RDS.
type DatabaseUseCase struct {
	scriptBase
	db  repository.DatabaseRepository
	now func() time.Time
}

// NewDatabaseUseCase creates a new database use case.
func NewDatabaseUseCase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
	db repository.DatabaseRepository,
) *DatabaseUseCase {
	return &DatabaseUseCase{
		scriptBase: newScriptBase(clients, exportRepo, console, config),
		db:         db,
		now:        time.Now,
	}
}

// Backup writes every table of the schema to 'databases/<YYYYMMDD>_<schema>/<table>.csv'.
func (uc *DatabaseUseCase) Backup(ctx context.Context, opts RDSBackupOptions) error {
	results := entity.NewResults(RDSBackupScript, entity.ServiceSecretsManager)

	return uc.run(RDSBackupScript, ModeBase, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region, "db-schema", opts.Schema, "secret", opts.Secret); err != nil {
			return err
		}
		host, port := opts.Host, opts.Port
		if host == "" {
			uc.console.LogInfo("Default 'host' to: %s", DefaultDatabaseHost)
			host = DefaultDatabaseHost
		}
		if port == 0 {
			uc.console.LogInfo("Default 'port' to: %d", DefaultDatabasePort)
			port = DefaultDatabasePort
		}

		client, err := uc.clients.SecretsManager(ctx, opts.Region)
		if err != nil {
			return err
		}
		secret, err := getSecretJSON(ctx, client, opts.Secret, results)
		if err != nil {
			return err
		}
		username, err := secretKey(secret, opts.Secret, "username")
		if err != nil {
			return err
		}
		password, err := secretKey(secret, opts.Secret, "password")
		if err != nil {
			return err
		}

		if err := uc.db.Connect(ctx, repository.DatabaseCredentials{
			Host:     host,
			Port:     port,
			Username: username,
			Password: password,
			Schema:   opts.Schema,
		}); err != nil {
			return fmt.Errorf("could not connect to MySQL instance: %w", err)
		}
		defer uc.db.Close()
		uc.console.LogSuccess("Connection to RDS MySQL instance succeeded (%s:%d)", host, port)

		dir := filepath.Join(opts.OutputDir, databasesDir, uc.now().Format("20060102")+"_"+opts.Schema)
		if err := uc.export.ResetDir(dir); err != nil {
			return err
		}

		tables, err := uc.db.Tables(ctx)
		if err != nil {
			return err
		}
		uc.console.LogInfo("Found %d tables in the '%s' database", len(tables), opts.Schema)
		for n, table := range tables {
			dump, err := uc.db.DumpTable(ctx, table)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, table+".csv")
			if err := uc.export.WriteCSV(path, dump.Header, dump.Rows); err != nil {
				return err
			}
			uc.console.LogInfo("(%d) Saved %s rows from '%s' table to: %s", n+1, humanize.Comma(int64(len(dump.Rows))), table, path)
		}
		return nil
	})
}

// rdsInitPayload monta o evento da Lambda, omitindo campos vazios. Action vazia vira INCREMENT.
func rdsInitPayload(opts RDSInitOptions) ([]byte, error) {
	payload := map[string]string{
		"PROJECT_NAME": opts.ProjectName,
		"ACTION":       opts.Action,
		"DB_SCHEMAS":   opts.DBSchemas,
		"SQL_FILENAME": opts.SQLFilename,
	}
	if payload["ACTION"] == "" {
		payload["ACTION"] = DefaultRDSInitAction
	}
	for k, v := range payload {
		if v == "" {
			delete(payload, k)
		}
	}
	return json.Marshal(payload)
}

// invokeRecord é a resposta do Invoke com o payload como texto.
type invokeRecord struct {
	StatusCode      int32
	FunctionError   *string `json:",omitempty"`
	ExecutedVersion *string `json:",omitempty"`
	Payload         string
}

// Init invokes the RDS init function synchronously and fails unless it answers 200.
func (uc *DatabaseUseCase) Init(ctx context.Context, opts RDSInitOptions) error {
	results := entity.NewResults(RDSInitScript, entity.ServiceLambda)

	return uc.run(RDSInitScript, ModeBase, opts.OutputDir, results, func() error {
		if err := requireArgs("region", opts.Region, "function-name", opts.FunctionName,
			"db-schemas", opts.DBSchemas, "sql-filename", opts.SQLFilename); err != nil {
			return err
		}
		client, err := uc.clients.Lambda(ctx, opts.Region)
		if err != nil {
			return err
		}
		payload, err := rdsInitPayload(opts)
		if err != nil {
			return err
		}

		uc.console.LogInfo("Invoking Lambda function '%s' with payload: %s", opts.FunctionName, payload)
		out, err := client.Invoke(ctx, &lambda.InvokeInput{
			FunctionName:   aws.String(opts.FunctionName),
			InvocationType: lambdatypes.InvocationTypeRequestResponse,
			Payload:        payload,
		})
		if err != nil {
			results.SetError(entity.ServiceLambda, "lambda_invoke", err)
			return fmt.Errorf("error invoking Lambda function '%s': %w", opts.FunctionName, err)
		}
		record := invokeRecord{
			StatusCode:      out.StatusCode,
			FunctionError:   out.FunctionError,
			ExecutedVersion: out.ExecutedVersion,
			Payload:         string(out.Payload),
		}
		results.Set(entity.ServiceLambda, "lambda_invoke", record)

		if out.StatusCode != 200 || out.FunctionError != nil {
			return fmt.Errorf("%w: '%s' (status code: %d, function error: %s): %s", types.ErrInvokeFailed,
				opts.FunctionName, out.StatusCode, aws.ToString(out.FunctionError), record.Payload)
		}
		uc.console.LogSuccess("Lambda Invoke response payload: %s", record.Payload)
		return nil
	})
}
