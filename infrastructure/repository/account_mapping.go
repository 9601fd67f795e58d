package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/database/postgres"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
)

const accountMappingsTable = "account_mappings"

// AccountMappingRepository carrega a tabela de mapeamento (tenant, provider)
// quando ela é mantida no banco em vez da tabela semente embutida
type AccountMappingRepository interface {
	ListMappings(ctx context.Context) ([]domain.AccountConfig, error)
}

type accountMappingRepository struct {
	conn *postgres.Connection
}

func NewAccountMappingRepository(conn *postgres.Connection) AccountMappingRepository {
	return &accountMappingRepository{
		conn: conn,
	}
}

func (r *accountMappingRepository) ListMappings(ctx context.Context) ([]domain.AccountConfig, error) {
	mappingsSQL, mappingsArgs, err := squirrel.
		Select("tenant_id, provider, account_id, display_name, has_account").
		From(accountMappingsTable).
		OrderBy("tenant_id ASC, provider ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, mappingsSQL, mappingsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	mappings := make([]domain.AccountConfig, 0)
	for rows.Next() {
		var m domain.AccountConfig
		var provider string

		if err := rows.Scan(
			&m.TenantID,
			&provider,
			&m.AccountID,
			&m.DisplayName,
			&m.HasAccount,
		); err != nil {
			return nil, err
		}

		m.Provider = domain.Provider(provider)
		mappings = append(mappings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mappings, nil
}
