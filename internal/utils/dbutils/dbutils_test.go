package dbutils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestUndefinedTable(t *testing.T) {
	err := fmt.Errorf("query failed: %w", &pq.Error{Code: "42P01", Message: `relation "batch_history_v1" does not exist`})
	if UndefinedTable(err) == nil {
		t.Error("42P01 should be detected as an undefined table")
	}
	if UndefinedTable(&pq.Error{Code: "23505"}) != nil {
		t.Error("23505 is not an undefined table")
	}
	if UndefinedTable(errors.New("random")) != nil {
		t.Error("a non pq error is not an undefined table")
	}
}
