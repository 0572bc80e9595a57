package config

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "DEENERGY_DB_DSN"
	EnvDBHost = "DEENERGY_DB_HOST"
	EnvDBUser = "DEENERGY_DB_USER"
	EnvDBName = "DEENERGY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
