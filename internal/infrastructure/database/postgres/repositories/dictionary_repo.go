// Package repositories implements the sign domain repositories on top of
// PostgreSQL.
package repositories

import (
	"context"
	"database/sql"

	"github.com/thaisign/thsl-translate/internal/domain/sign"
	"github.com/thaisign/thsl-translate/internal/infrastructure/database/postgres"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/pkg/errors"
)

type dictionaryRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewDictionaryRepo builds a sign.DictionaryRepository over the sl_words
// table.
func NewDictionaryRepo(conn *postgres.Connection, log logging.Logger) sign.DictionaryRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &dictionaryRepo{
		conn:     conn,
		log:      log.Named("repo.dictionary"),
		executor: conn.DB(),
	}
}

const dictionaryColumns = `id, word, category, asset_ref, created_at, updated_at`

func (r *dictionaryRepo) GetByWord(ctx context.Context, word string) ([]sign.DictionaryEntry, error) {
	query := `SELECT ` + dictionaryColumns + ` FROM sl_words WHERE word = $1 ORDER BY id`
	rows, err := r.executor.QueryContext(ctx, query, word)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query dictionary by word")
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *dictionaryRepo) GetByWords(ctx context.Context, words []string) (map[string][]sign.DictionaryEntry, error) {
	out := make(map[string][]sign.DictionaryEntry, len(words))
	if len(words) == 0 {
		return out, nil
	}

	// pgx supports binding a text array; unnest keeps the query planable
	// for arbitrary batch sizes.
	query := `SELECT ` + dictionaryColumns + `
		FROM sl_words
		WHERE word = ANY($1)
		ORDER BY word, id`
	rows, err := r.executor.QueryContext(ctx, query, words)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query dictionary batch")
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		out[e.Word] = append(out[e.Word], e)
	}
	return out, nil
}

func (r *dictionaryRepo) List(ctx context.Context, limit, offset int) ([]sign.DictionaryEntry, int64, error) {
	var total int64
	if err := r.executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM sl_words`).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "count dictionary entries")
	}

	query := `SELECT ` + dictionaryColumns + ` FROM sl_words ORDER BY word, id LIMIT $1 OFFSET $2`
	rows, err := r.executor.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "list dictionary entries")
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func scanEntries(rows *sql.Rows) ([]sign.DictionaryEntry, error) {
	var out []sign.DictionaryEntry
	for rows.Next() {
		var e sign.DictionaryEntry
		if err := rows.Scan(&e.ID, &e.Word, &e.Category, &e.AssetRef, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "scan dictionary entry")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "iterate dictionary rows")
	}
	return out, nil
}
