package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ConnectPostgres opens the catalog pool, pings it and makes sure the
// catalog tables exist.
func ConnectPostgres(ctx context.Context, dsn string, log *zap.Logger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := poolConfig(dsn)
	if err != nil {
		return nil, err
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Info("connected to postgres",
		zap.String("host", config.ConnConfig.Host),
		zap.String("database", config.ConnConfig.Database),
	)

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Info("catalog schema ready")
	return db, nil
}

func poolConfig(dsn string) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	return config, nil
}

// initSchema creates the catalog tables when missing. The service only
// reads them; rows are maintained by the back office.
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

var schema = []string{
	// -------------------------------
	// CURRENT CATALOG
	// -------------------------------
	`
	CREATE TABLE IF NOT EXISTS planos_operadora (
		id SERIAL PRIMARY KEY,
		operadora_id VARCHAR(64) NOT NULL,
		operadora_nome VARCHAR(255),
		plano_nome VARCHAR(255) NOT NULL,
		modalidade VARCHAR(8) NOT NULL,
		vidas_min INT NULL,
		vidas_max INT NULL,
		coparticipacao BOOLEAN DEFAULT false,
		coparticipacao_pct NUMERIC(5,2) NULL,
		abrangencia VARCHAR(255) NULL,
		rede_hospitalar TEXT[] DEFAULT '{}',
		notas TEXT NULL,
		ativo BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
	`,
	`
	CREATE TABLE IF NOT EXISTS precos_faixa (
		id SERIAL PRIMARY KEY,
		plano_id INT NOT NULL REFERENCES planos_operadora(id) ON DELETE CASCADE,
		faixa_etaria VARCHAR(8) NOT NULL,
		valor NUMERIC(12,2) NOT NULL
	)
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_planos_operadora_modalidade
		ON planos_operadora (modalidade) WHERE ativo
	`,

	// -------------------------------
	// LEGACY CATALOG
	// -------------------------------
	`
	CREATE TABLE IF NOT EXISTS planos_saude (
		id SERIAL PRIMARY KEY,
		nome VARCHAR(255) NOT NULL,
		operadora VARCHAR(255) NOT NULL,
		tipo_contratacao VARCHAR(16) NOT NULL,
		acomodacao VARCHAR(64) NULL,
		coparticipacao VARCHAR(64) NULL,
		abrangencia VARCHAR(255) NULL,
		reembolso TEXT NULL,
		extras TEXT NULL,
		valores JSONB NOT NULL DEFAULT '{}',
		destaque BOOLEAN DEFAULT false,
		ordem INT DEFAULT 0,
		logo_url VARCHAR(500) NULL,
		ativo BOOLEAN NOT NULL DEFAULT true
	)
	`,
}
