package config

// EnvPrefix is empty because every field names its full variable.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	SlotDriverMemory = "memory"
	SlotDriverRedis  = "redis"
	SlotDriverSQL    = "sql"
)

const (
	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvPort           = "STOREFRONT_APP_PORT"
	EnvDBDSN          = "STOREFRONT_DB_DSN"
	EnvDBDriver       = "STOREFRONT_DB_DRIVER"
	EnvDBHost         = "STOREFRONT_DB_HOST"
	EnvDBUser         = "STOREFRONT_DB_USER"
	EnvDBName         = "STOREFRONT_DB_NAME"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvRedisAddr      = "STOREFRONT_REDIS_ADDR"
	EnvSessionSecret  = "STOREFRONT_SESSION_SECRET"
	EnvCartSlotDriver = "STOREFRONT_CART_SLOT_DRIVER"
	EnvCatalogEnabled = "STOREFRONT_CATALOG_ENABLED"
)

var dbPartEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
