// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/kenlo-pricing-api/infrastructure/database/postgres"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

const (
	pricingConfigTable = "pricing_config_versions"
)

var ErrVersionNotFound = errors.New("versão não encontrada")

var pricingConfigColumns = []string{"id", "version", "document", "created_by", "created_at"}

// PricingConfigRepository guarda versões imutáveis do documento de configuração de preços
type PricingConfigRepository interface {
	Latest(ctx context.Context) (*domain.PricingConfigVersion, error)
	GetByVersion(ctx context.Context, version string) (*domain.PricingConfigVersion, error)
	List(ctx context.Context, limit int) ([]*domain.PricingConfigVersion, error)
	Save(ctx context.Context, version *domain.PricingConfigVersion) error
}

type pricingConfigRepository struct {
	conn postgres.Queryer
}

func NewPricingConfigRepository(conn postgres.Queryer) PricingConfigRepository {
	return &pricingConfigRepository{
		conn: conn,
	}
}

func (r *pricingConfigRepository) Latest(ctx context.Context) (*domain.PricingConfigVersion, error) {
	query, args, err := squirrel.
		Select(pricingConfigColumns...).
		From(pricingConfigTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.scanOne(r.conn.QueryRow(ctx, query, args...))
}

func (r *pricingConfigRepository) GetByVersion(ctx context.Context, version string) (*domain.PricingConfigVersion, error) {
	query, args, err := squirrel.
		Select(pricingConfigColumns...).
		From(pricingConfigTable).
		Where(squirrel.Eq{"version": version}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.scanOne(r.conn.QueryRow(ctx, query, args...))
}

// List retorna as versões mais recentes primeiro, sem o documento
func (r *pricingConfigRepository) List(ctx context.Context, limit int) ([]*domain.PricingConfigVersion, error) {
	query, args, err := squirrel.
		Select("id", "version", "created_by", "created_at").
		From(pricingConfigTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	versions := make([]*domain.PricingConfigVersion, 0)
	for rows.Next() {
		v := &domain.PricingConfigVersion{}
		if err := rows.Scan(&v.ID, &v.Version, &v.CreatedBy, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		versions = append(versions, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return versions, nil
}

func (r *pricingConfigRepository) Save(ctx context.Context, version *domain.PricingConfigVersion) error {
	query, args, err := squirrel.
		Insert(pricingConfigTable).
		Columns("version", "document", "created_by").
		Values(version.Version, string(version.Document), version.CreatedBy).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&version.ID, &version.CreatedAt); err != nil {
		return fmt.Errorf("erro ao inserir versão %s: %w", version.Version, err)
	}

	return nil
}

func (r *pricingConfigRepository) scanOne(row *sql.Row) (*domain.PricingConfigVersion, error) {
	v := &domain.PricingConfigVersion{}
	var document string

	err := row.Scan(&v.ID, &v.Version, &document, &v.CreatedBy, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("erro ao escanear versão: %w", err)
	}

	v.Document = []byte(document)
	return v, nil
}
