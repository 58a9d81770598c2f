package tests

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/myrteametrics/myrtea-sdk/v5/postgres"
)

// DBClient returns a postgresql client for the integration tests.
// It targets localhost unless GOLDENBATCH_TEST_POSTGRESQL_HOSTNAME is set.
func DBClient(t *testing.T) *sqlx.DB {
	credentials := postgres.Credentials{
		URL:      "localhost",
		Port:     "5432",
		DbName:   "postgres",
		User:     "postgres",
		Password: "postgres",
	}
	if host := os.Getenv("GOLDENBATCH_TEST_POSTGRESQL_HOSTNAME"); host != "" {
		credentials.URL = host
	}
	dbClient, err := postgres.DbConnection(credentials)
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
	return dbClient
}

// DBExec execute an sql query which can lead to an immediate failure of the unit test
func DBExec(dbClient *sqlx.DB, query string, t *testing.T, failNow bool) {
	_, err := dbClient.Exec(query)
	if err != nil {
		t.Error(err)
		if failNow {
			t.FailNow()
		}
	}
}
