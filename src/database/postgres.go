package database

import (
	"context"
	"fmt"

	"server/src/config"
	aws_handler "server/src/utils/aws"

	"github.com/jackc/pgx/v5/pgxpool"
)

func SetupDB(cfg *config.Config) (*pgxpool.Pool, error) {
	sqlCfg := cfg.Databases.SQL

	username := sqlCfg.Username
	password := sqlCfg.Password
	if sqlCfg.SecretARN != "" {
		awsHandler, err := aws_handler.NewAWSHandler(sqlCfg.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("failed to init AWS session for db credentials: %w", err)
		}
		creds, err := awsHandler.SecretManager.GetDatabaseCredentials(sqlCfg.SecretARN)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch db credentials secret: %w", err)
		}
		username = creds.Username
		password = creds.Password
	}

	dsn := sqlCfg.ConnectionString
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			sqlCfg.Host,
			username,
			password,
			sqlCfg.Database,
			sqlCfg.Port)
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = 5
	poolCfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}
