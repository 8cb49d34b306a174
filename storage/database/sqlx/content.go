package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/content"
)

type contentRepository struct {
	db *sqlx.DB
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *sqlx.DB) *contentRepository {
	return &contentRepository{db: db}
}

func (repo contentRepository) QuerySutras(ctx context.Context, book int) ([]content.Sutra, error) {
	sutras := make([]content.Sutra, 0)
	query := repo.db.Rebind(`
		SELECT id, book, sutra_number, title, sutra_text, commentary
		FROM sutras WHERE book = ? ORDER BY sutra_number`)
	if err := repo.db.SelectContext(ctx, &sutras, query, book); err != nil {
		return nil, errors.Wrap(err, "selecting sutras")
	}
	return sutras, nil
}

func (repo contentRepository) QueryGlossary(ctx context.Context) ([]content.GlossaryTerm, error) {
	terms := make([]content.GlossaryTerm, 0)
	query := "SELECT id, term, definition, sort_key FROM glossary_terms ORDER BY sort_key, term"
	if err := repo.db.SelectContext(ctx, &terms, query); err != nil {
		return nil, errors.Wrap(err, "selecting glossary terms")
	}
	return terms, nil
}

func (repo contentRepository) GetSutra(ctx context.Context, id string) (content.Sutra, error) {
	var sutra content.Sutra
	query := repo.db.Rebind("SELECT id, book, sutra_number, title, sutra_text, commentary FROM sutras WHERE id = ?")
	if err := repo.db.GetContext(ctx, &sutra, query, id); err != nil {
		if err == sql.ErrNoRows {
			return content.Sutra{}, content.ErrNotFound
		}
		return content.Sutra{}, errors.Wrap(err, "selecting sutra")
	}
	return sutra, nil
}

func (repo contentRepository) GetGlossaryTerm(ctx context.Context, id string) (content.GlossaryTerm, error) {
	var term content.GlossaryTerm
	query := repo.db.Rebind("SELECT id, term, definition, sort_key FROM glossary_terms WHERE id = ?")
	if err := repo.db.GetContext(ctx, &term, query, id); err != nil {
		if err == sql.ErrNoRows {
			return content.GlossaryTerm{}, content.ErrNotFound
		}
		return content.GlossaryTerm{}, errors.Wrap(err, "selecting glossary term")
	}
	return term, nil
}

// inTx runs fn in a transaction, rolled back when fn fails.
func (repo contentRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func (repo contentRepository) SaveSutras(ctx context.Context, sutras []content.Sutra) error {
	return repo.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, s := range sutras {
			_, err := tx.NamedExecContext(ctx, `
				INSERT INTO sutras (id, book, sutra_number, title, sutra_text, commentary)
				VALUES (:id, :book, :sutra_number, :title, :sutra_text, :commentary)
				ON CONFLICT (book, sutra_number) DO UPDATE SET
					title = excluded.title, sutra_text = excluded.sutra_text, commentary = excluded.commentary`,
				s,
			)
			if err != nil {
				return errors.Wrapf(err, "saving sutra %d.%d", s.Book, s.Number)
			}
		}
		return nil
	})
}

func (repo contentRepository) SaveGlossaryTerms(ctx context.Context, terms []content.GlossaryTerm) error {
	return repo.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, t := range terms {
			_, err := tx.NamedExecContext(ctx, `
				INSERT INTO glossary_terms (id, term, definition, sort_key)
				VALUES (:id, :term, :definition, :sort_key)
				ON CONFLICT (term) DO UPDATE SET definition = excluded.definition, sort_key = excluded.sort_key`,
				t,
			)
			if err != nil {
				return errors.Wrapf(err, "saving glossary term %q", t.Term)
			}
		}
		return nil
	})
}
