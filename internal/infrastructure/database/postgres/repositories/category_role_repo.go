package repositories

import (
	"context"

	"github.com/thaisign/thsl-translate/internal/domain/sign"
	"github.com/thaisign/thsl-translate/internal/infrastructure/database/postgres"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/pkg/errors"
)

type categoryRoleRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewCategoryRoleRepo builds a sign.CategoryRoleRepository over the
// sl_category_roles table.
func NewCategoryRoleRepo(conn *postgres.Connection, log logging.Logger) sign.CategoryRoleRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &categoryRoleRepo{
		conn:     conn,
		log:      log.Named("repo.category_role"),
		executor: conn.DB(),
	}
}

func (r *categoryRoleRepo) ListAll(ctx context.Context) ([]sign.CategoryRoleEntry, error) {
	query := `SELECT category, role, priority FROM sl_category_roles ORDER BY priority, category`
	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query category-role table")
	}
	defer rows.Close()

	var out []sign.CategoryRoleEntry
	for rows.Next() {
		var e sign.CategoryRoleEntry
		if err := rows.Scan(&e.Category, &e.Role, &e.Priority); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "scan category-role row")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "iterate category-role rows")
	}
	return out, nil
}
