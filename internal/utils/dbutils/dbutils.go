package dbutils

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// UndefinedTable checks if the error is of code 42P01 (ie. migrations were not applied)
func UndefinedTable(err error) *pq.Error {
	var pqerr *pq.Error
	if errors.As(err, &pqerr) &&
		pqerr.Code == "42P01" {
		return pqerr
	}
	return nil
}

// ScanFirst scans the first row of a sql.Rows and returns the result
func ScanFirst[T any](rows *sql.Rows, scan func(rows *sql.Rows) (T, error)) (T, bool, error) {
	if rows.Next() {
		obj, err := scan(rows)
		return obj, err == nil, err
	}
	var a T
	return a, false, rows.Err()
}

// ScanAll scans all the rows of the given rows and returns a slice of T
func ScanAll[T any](rows *sql.Rows, scan func(rows *sql.Rows) (T, error)) ([]T, error) {
	objs := make([]T, 0)
	for rows.Next() {
		obj, err := scan(rows)
		if err != nil {
			zap.L().Warn("scan error", zap.Error(err))
			return []T{}, err
		}
		objs = append(objs, obj)
	}
	return objs, rows.Err()
}
