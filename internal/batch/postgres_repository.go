package batch

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/myrteametrics/goldenbatch-api/internal/utils/dbutils"
	"go.uber.org/zap"
)

const table = "batch_history_v1"

var fields = []string{"id", "start_time", "duration_min", "is_good", "ph", "diameter", "zeta"}

// PostgresRepository is a read only repository on the batch history table
type PostgresRepository struct {
	conn *sqlx.DB
}

// NewPostgresRepository returns a new instance of PostgresRepository
func NewPostgresRepository(conn *sqlx.DB) Repository {
	r := PostgresRepository{
		conn: conn,
	}
	var ifm Repository = &r
	return ifm
}

// Get returns a batch by its id
func (r *PostgresRepository) Get(id string) (HistoricalBatch, bool, error) {
	rows, err := r.newStatement().
		Select(fields...).
		From(table).
		Where(sq.Eq{"id": id}).
		Query()
	if err != nil {
		return HistoricalBatch{}, false, r.wrap(err)
	}
	defer rows.Close()
	return dbutils.ScanFirst(rows, r.scan)
}

// GetAll returns every batch ordered by start time then id
func (r *PostgresRepository) GetAll() ([]HistoricalBatch, error) {
	rows, err := r.newStatement().
		Select(fields...).
		From(table).
		OrderBy("start_time", "id").
		Query()
	if err != nil {
		return nil, r.wrap(err)
	}
	defer rows.Close()
	return dbutils.ScanAll(rows, r.scan)
}

// scan scans a row into a HistoricalBatch struct
func (r *PostgresRepository) scan(rows *sql.Rows) (HistoricalBatch, error) {
	var b HistoricalBatch
	err := rows.Scan(&b.ID, &b.StartTime, &b.DurationMin, &b.IsGood, &b.CQAResults.PH, &b.CQAResults.Diameter, &b.CQAResults.Zeta)
	if err != nil {
		return HistoricalBatch{}, err
	}
	b.StartTime = b.StartTime.UTC()
	return b, nil
}

func (r *PostgresRepository) wrap(err error) error {
	if pqerr := dbutils.UndefinedTable(err); pqerr != nil {
		zap.L().Error("Batch history table is missing, check POSTGRESQL_MIGRATION_ON_STARTUP", zap.String("table", table))
		return fmt.Errorf("table %s does not exist: %w", table, err)
	}
	return err
}

// newStatement creates a new statement builder with Dollar format
func (r *PostgresRepository) newStatement() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(r.conn.DB)
}
