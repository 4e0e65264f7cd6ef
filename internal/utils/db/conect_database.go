package db

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func env(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}

// ConnectDataBase abre a conexão Postgres a partir das variáveis de ambiente.
// DATABASE_URL tem precedência; caso ausente, o DSN é montado com DB_HOST,
// DB_PORT, DB_USER, DB_PASSWORD e DB_NAME.
func ConnectDataBase() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		sslMode := ""
		if env("DB_SSL_MODE_DISABLE", "true") == "true" {
			sslMode = " sslmode=disable"
		}
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s%s",
			env("DB_HOST", "localhost"),
			env("DB_USER", "postgres"),
			env("DB_PASSWORD", "postgres"),
			env("DB_NAME", "beepy"),
			env("DB_PORT", "5432"),
			sslMode,
		)
	}

	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}
