package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
		// UniqueLogins toggles the storage-level unique index on
		// utilisateur.login.
		UniqueLogins bool
	}
	Auth struct {
		BcryptCost int
	}
	Audit struct {
		Enabled bool
		Dir     string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_unique_logins", true)
	v.SetDefault("audit_enabled", false)
	v.SetDefault("audit_dir", "./audit")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:         v.GetString("DATABASE_PATH"),
			UniqueLogins: v.GetBool("AUTH_UNIQUE_LOGINS"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Audit: Audit{
			Enabled: v.GetBool("AUDIT_ENABLED"),
			Dir:     v.GetString("AUDIT_DIR"),
		},
	}
}
