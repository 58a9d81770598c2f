package app

import (
	"github.com/myrteametrics/myrtea-sdk/v5/helpers"
)

// ConfigPath is the toml configuration file path
var ConfigPath = "config"

// ConfigName is the toml configuration file name
var ConfigName = "goldenbatch-api"

// EnvPrefix is the standard environment variable prefix
var EnvPrefix = "GOLDENBATCH"

// AllowedConfigKey list every allowed configuration key
var AllowedConfigKey = [][]helpers.ConfigKey{
	helpers.GetGeneralConfigKeys(),
	helpers.GetHTTPServerConfigKeys(),
	helpers.GetPostgresqlConfigKeys(),
	{
		{Type: helpers.StringFlag, Name: "POSTGRESQL_CONN_POOL_MAX_OPEN", DefaultValue: "6", Description: "PostgreSQL connection pool max open"},
		{Type: helpers.StringFlag, Name: "POSTGRESQL_CONN_POOL_MAX_IDLE", DefaultValue: "3", Description: "PostgreSQL connection pool max idle"},
		{Type: helpers.StringFlag, Name: "POSTGRESQL_CONN_MAX_LIFETIME", DefaultValue: "0", Description: "PostgreSQL connection max lifetime"},
		{Type: helpers.StringFlag, Name: "POSTGRESQL_MIGRATION_ON_STARTUP", DefaultValue: "true", Description: "Run migrations on startup"},
	},
	// Live batch simulation
	{
		{Type: helpers.StringFlag, Name: "SIMULATION_SAMPLE_COUNT", DefaultValue: "60", Description: "Number of samples of the baseline batch"},
		{Type: helpers.StringFlag, Name: "SIMULATION_CENTER_VALUE", DefaultValue: "20", Description: "Center of the ideal trend curve"},
		{Type: helpers.StringFlag, Name: "SIMULATION_AMPLITUDE", DefaultValue: "60", Description: "Amplitude of the ideal trend curve"},
		{Type: helpers.StringFlag, Name: "SIMULATION_PERIOD", DefaultValue: "100", Description: "Period of the ideal trend curve, in samples"},
		{Type: helpers.StringFlag, Name: "SIMULATION_BAND_WIDTH", DefaultValue: "5", Description: "Half width of the golden tunnel"},
		{Type: helpers.StringFlag, Name: "SIMULATION_NOISE", DefaultValue: "2", Description: "Maximum noise added to the ideal trend"},
		{Type: helpers.StringFlag, Name: "SIMULATION_SEED", DefaultValue: "0", Description: "Seed of the baseline generator (0 means unseeded)"},
		{Type: helpers.StringFlag, Name: "SIMULATION_INITIAL_CURSOR", DefaultValue: "30", Description: "Number of samples revealed on startup"},
		{Type: helpers.StringFlag, Name: "SIMULATION_AUTOPLAY", DefaultValue: "true", Description: "Play the simulation on startup"},
		{Type: helpers.StringFlag, Name: "SIMULATION_TICK_INTERVAL", DefaultValue: "1s", Description: "Interval between two revealed samples"},
		{Type: helpers.StringFlag, Name: "SIMULATION_SECONDS_PER_SAMPLE", DefaultValue: "10", Description: "Process seconds represented by one sample"},
		{Type: helpers.StringFlag, Name: "SIMULATION_VALUE_OFFSET_LIMIT", DefaultValue: "10", Description: "Absolute limit of the value offset"},
		{Type: helpers.StringFlag, Name: "SIMULATION_BOUND_OFFSET_LIMIT", DefaultValue: "5", Description: "Absolute limit of the upper bound offset"},
		{Type: helpers.StringFlag, Name: "ALARM_RULE_YELLOW", DefaultValue: "violations > 5", Description: "Expression raising a yellow alarm"},
		{Type: helpers.StringFlag, Name: "ALARM_RULE_RED", DefaultValue: "violations > 15", Description: "Expression raising a red alarm"},
		{Type: helpers.StringFlag, Name: "BATCH_HISTORY_BACKEND", DefaultValue: "mock", Description: "Batch history storage (mock or postgres)"},
		{Type: helpers.StringFlag, Name: "BATCH_HISTORY_MOCK_SIZE", DefaultValue: "15", Description: "Number of batches of the mock history"},
	},
	// HTTP API
	{
		{Type: helpers.StringFlag, Name: "LOGGER_LEVEL", DefaultValue: "info", Description: "Initial logger level"},
		{Type: helpers.StringFlag, Name: "HTTP_SERVER_API_ENABLE_VERBOSE_ERROR", DefaultValue: "false", Description: "Run the API with verbose error"},
		{Type: helpers.StringFlag, Name: "HTTP_SERVER_REQUEST_TIMEOUT", DefaultValue: "30s", Description: "Timeout of the non streaming requests"},
		{Type: helpers.StringFlag, Name: "SWAGGER_HOST", DefaultValue: "localhost:9000", Description: "Swagger UI target hostname"},
		{Type: helpers.StringFlag, Name: "SWAGGER_BASEPATH", DefaultValue: "/api/v1", Description: "Swagger UI target basepath"},
		{Type: helpers.StringFlag, Name: "RATE_LIMIT_RPS", DefaultValue: "5", Description: "Commands allowed per second and per client (0 disables the limit)"},
		{Type: helpers.StringFlag, Name: "RATE_LIMIT_BURST", DefaultValue: "10", Description: "Commands burst allowed per client"},
	},
}

// InitConfiguration loads the configuration file and the environment variables
func InitConfiguration() {
	helpers.InitializeConfig(AllowedConfigKey, ConfigName, ConfigPath, EnvPrefix)
}
