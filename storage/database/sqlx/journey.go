package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core/journey"
	"github.com/trezcool/dailysutra/core/progress"
)

// journeyRow is a journey document with its JSON columns.
type journeyRow struct {
	UserID       string    `db:"user_id"`
	JourneyID    string    `db:"journey_id"`
	DayProgress  string    `db:"day_progress"`
	WeekProgress string    `db:"week_progress"`
	Settings     string    `db:"settings"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func newJourneyRow(doc journey.Document) (journeyRow, error) {
	state := doc.State.Clone()
	days, err := json.Marshal(state.DayProgress)
	if err != nil {
		return journeyRow{}, errors.Wrap(err, "encoding day progress")
	}
	weeks, err := json.Marshal(state.WeekProgress)
	if err != nil {
		return journeyRow{}, errors.Wrap(err, "encoding week progress")
	}
	settings, err := json.Marshal(state.Settings)
	if err != nil {
		return journeyRow{}, errors.Wrap(err, "encoding settings")
	}
	return journeyRow{
		UserID:       doc.UserID,
		JourneyID:    doc.JourneyID,
		DayProgress:  string(days),
		WeekProgress: string(weeks),
		Settings:     string(settings),
		UpdatedAt:    doc.UpdatedAt.UTC(),
	}, nil
}

func (row journeyRow) document() (journey.Document, error) {
	state := progress.Initial()
	if err := json.Unmarshal([]byte(row.DayProgress), &state.DayProgress); err != nil {
		return journey.Document{}, errors.Wrap(err, "decoding day progress")
	}
	if err := json.Unmarshal([]byte(row.WeekProgress), &state.WeekProgress); err != nil {
		return journey.Document{}, errors.Wrap(err, "decoding week progress")
	}
	if err := json.Unmarshal([]byte(row.Settings), &state.Settings); err != nil {
		return journey.Document{}, errors.Wrap(err, "decoding settings")
	}
	return journey.Document{
		UserID:    row.UserID,
		JourneyID: row.JourneyID,
		State:     state.Clone(),
		UpdatedAt: row.UpdatedAt,
	}, nil
}

type journeyRepository struct {
	db *sqlx.DB
}

var _ journey.Repository = (*journeyRepository)(nil) // interface compliance check

func NewJourneyRepository(db *sqlx.DB) *journeyRepository {
	return &journeyRepository{db: db}
}

func (repo journeyRepository) GetJourney(ctx context.Context, userID, journeyID string) (journey.Document, error) {
	var row journeyRow
	query := repo.db.Rebind(`
		SELECT user_id, journey_id, day_progress, week_progress, settings, updated_at
		FROM journeys WHERE user_id = ? AND journey_id = ?`)
	if err := repo.db.GetContext(ctx, &row, query, userID, journeyID); err != nil {
		if err == sql.ErrNoRows {
			return journey.Document{}, journey.ErrNotFound
		}
		return journey.Document{}, errors.Wrap(err, "selecting journey")
	}
	return row.document()
}

func (repo journeyRepository) UpdateJourney(
	ctx context.Context,
	userID, journeyID string,
	updatedAt time.Time,
	update func(state progress.State) (progress.State, error),
) (doc journey.Document, err error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return journey.Document{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	doc = journey.Document{UserID: userID, JourneyID: journeyID, State: progress.Initial(), UpdatedAt: updatedAt}
	row, err := newJourneyRow(doc)
	if err != nil {
		return journey.Document{}, err
	}

	// write first, so the lock is held before reading: the row's on postgres, the database's on sqlite
	if _, err = tx.NamedExecContext(ctx, `
		INSERT INTO journeys (user_id, journey_id, day_progress, week_progress, settings, updated_at)
		VALUES (:user_id, :journey_id, :day_progress, :week_progress, :settings, :updated_at)
		ON CONFLICT (user_id, journey_id) DO NOTHING`,
		row,
	); err != nil {
		return journey.Document{}, errors.Wrap(err, "inserting journey")
	}
	if _, err = tx.ExecContext(
		ctx,
		tx.Rebind("UPDATE journeys SET updated_at = updated_at WHERE user_id = ? AND journey_id = ?"),
		userID, journeyID,
	); err != nil {
		return journey.Document{}, errors.Wrap(err, "locking journey")
	}

	var current journeyRow
	query := tx.Rebind(`
		SELECT user_id, journey_id, day_progress, week_progress, settings, updated_at
		FROM journeys WHERE user_id = ? AND journey_id = ?`)
	if err = tx.GetContext(ctx, &current, query, userID, journeyID); err != nil {
		return journey.Document{}, errors.Wrap(err, "selecting journey")
	}
	stored, err := current.document()
	if err != nil {
		return journey.Document{}, err
	}

	if doc.State, err = update(stored.State); err != nil {
		return journey.Document{}, err
	}
	if row, err = newJourneyRow(doc); err != nil {
		return journey.Document{}, err
	}
	if _, err = tx.NamedExecContext(ctx, `
		UPDATE journeys SET
			day_progress = :day_progress, week_progress = :week_progress,
			settings = :settings, updated_at = :updated_at
		WHERE user_id = :user_id AND journey_id = :journey_id`,
		row,
	); err != nil {
		return journey.Document{}, errors.Wrap(err, "saving journey")
	}

	if err = tx.Commit(); err != nil {
		return journey.Document{}, errors.Wrap(err, "committing journey")
	}
	return doc, nil
}

func (repo journeyRepository) DeleteJourneys(ctx context.Context, userID string) error {
	_, err := repo.db.ExecContext(ctx, repo.db.Rebind("DELETE FROM journeys WHERE user_id = ?"), userID)
	return errors.Wrap(err, "deleting journeys")
}
