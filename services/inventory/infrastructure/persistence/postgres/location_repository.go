// Package postgres implements the inventory repositories against
// PostgreSQL. Full-text search runs on weighted tsvectors (name weighted
// above description) queried with the three to_tsquery forms produced by
// the search package.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	domain "github.com/ghuser/stockroom/services/inventory/domain"
	domainevents "github.com/ghuser/stockroom/services/inventory/domain/events"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	"github.com/ghuser/stockroom/services/inventory/domain/search"
)

// PostgreSQL error codes and the constraint names from the migrations.
// The constraint names are part of the contract: they let the repository
// translate referential-integrity rejections into distinct domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	constraintLocationParent = "locations_parent_location_id_fkey"
	constraintItemLocation   = "items_location_id_fkey"
)

// documentExpr is the weighted two-field document every search query runs
// against: name carries weight A, description weight B.
const locationDocumentExpr = `setweight(to_tsvector('english', l.name), 'A') ||
	setweight(to_tsvector('english', coalesce(l.description, '')), 'B')`

// LocationRepository implements repositories.LocationRepository against
// PostgreSQL.
type LocationRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewLocationRepository returns a LocationRepository backed by the given
// connection pool and event bus. The bus publishes LocationCreatedEvents
// transactionally after a successful save.
func NewLocationRepository(db *database.Database, bus *events.EventBus) *LocationRepository {
	return &LocationRepository{db: db, bus: bus}
}

// Save persists a new Location and publishes a LocationCreatedEvent within
// the same transaction. Returns ErrLocationExists on a duplicate id and
// ErrParentNotFound when the parent foreign key is violated.
func (r *LocationRepository) Save(ctx context.Context, loc *models.Location) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO locations (id, name, description, parent_location_id, created_at, updated_at)
			VALUES ($1, $2, NULLIF($3, ''), $4, now(), now())
			RETURNING created_at, updated_at`,
			loc.ID, loc.Name, loc.Description, loc.Parent.Nullable(),
		)
		if err := row.Scan(&loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return translateLocationWriteErr(err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, loc); err != nil {
				return fmt.Errorf("publish location created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a Location by id. Returns ErrLocationNotFound if absent.
func (r *LocationRepository) GetByID(ctx context.Context, id string) (*models.Location, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, name, coalesce(description, ''), parent_location_id, created_at, updated_at
		FROM locations WHERE id = $1`, id)
	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("query location: %w", err)
	}
	return loc, nil
}

// GetAll returns every location; feeds the tree builder.
func (r *LocationRepository) GetAll(ctx context.Context) ([]*models.Location, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, name, coalesce(description, ''), parent_location_id, created_at, updated_at
		FROM locations`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	return scanLocations(rows)
}

// GetChildren returns the direct children of parentID, name-ordered.
func (r *LocationRepository) GetChildren(ctx context.Context, parentID string) ([]*models.Location, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, name, coalesce(description, ''), parent_location_id, created_at, updated_at
		FROM locations WHERE parent_location_id = $1
		ORDER BY name, id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("query child locations: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	return scanLocations(rows)
}

// Update persists name/description/parent changes to an existing location.
// Returns ErrLocationNotFound if the id is absent and ErrParentNotFound on
// a parent foreign-key violation.
func (r *LocationRepository) Update(ctx context.Context, loc *models.Location) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE locations
		SET name = $2, description = NULLIF($3, ''), parent_location_id = $4, updated_at = now()
		WHERE id = $1`,
		loc.ID, loc.Name, loc.Description, loc.Parent.Nullable(),
	)
	if err != nil {
		return translateLocationWriteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if n == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

// Delete removes a location. The ON DELETE RESTRICT foreign keys reject the
// delete while children or items reference it; those rejections surface as
// ErrLocationHasChildren and ErrLocationHasItems respectively.
func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			switch pgErr.ConstraintName {
			case constraintLocationParent:
				return fmt.Errorf("%w: %q", domain.ErrLocationHasChildren, id)
			case constraintItemLocation:
				return fmt.Errorf("%w: %q", domain.ErrLocationHasItems, id)
			}
		}
		return fmt.Errorf("delete location: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if n == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

// Exists reports whether a location with the given id exists.
func (r *LocationRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM locations WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check location exists: %w", err)
	}
	return exists, nil
}

// HasChildren reports whether any location names id as its parent.
func (r *LocationRepository) HasChildren(ctx context.Context, id string) (bool, error) {
	var has bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM locations WHERE parent_location_id = $1)`, id).Scan(&has)
	if err != nil {
		return false, fmt.Errorf("check location children: %w", err)
	}
	return has, nil
}

// SearchRanked runs the three-form ranked query: a location matches when
// its weighted document satisfies the phrase, AND, or OR form; the score is
// 3*phrase + 2*and + 1*or ts_rank, ordered descending with name then id as
// tiebreaks. The total match count is computed by the same predicate
// without ranking.
func (r *LocationRepository) SearchRanked(ctx context.Context, qs search.QuerySet, opts repositories.QueryOpts) ([]*models.Location, int, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT l.id, l.name, coalesce(l.description, ''), l.parent_location_id, l.created_at, l.updated_at
		FROM locations l,
		     LATERAL (SELECT `+locationDocumentExpr+` AS doc) d,
		     LATERAL (SELECT to_tsquery('english', $1) AS phrase_q,
		                     to_tsquery('english', $2) AS and_q,
		                     to_tsquery('english', $3) AS or_q) q
		WHERE d.doc @@ q.phrase_q OR d.doc @@ q.and_q OR d.doc @@ q.or_q
		ORDER BY (3 * ts_rank(d.doc, q.phrase_q)
		        + 2 * ts_rank(d.doc, q.and_q)
		        +     ts_rank(d.doc, q.or_q)) DESC,
		         l.name ASC, l.id ASC
		LIMIT $4 OFFSET $5`,
		qs.Phrase, qs.And, qs.Or, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search locations: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	locs, err := scanLocations(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.DB().QueryRowContext(ctx, `
		SELECT count(*)
		FROM locations l,
		     LATERAL (SELECT `+locationDocumentExpr+` AS doc) d,
		     LATERAL (SELECT to_tsquery('english', $1) AS phrase_q,
		                     to_tsquery('english', $2) AS and_q,
		                     to_tsquery('english', $3) AS or_q) q
		WHERE d.doc @@ q.phrase_q OR d.doc @@ q.and_q OR d.doc @@ q.or_q`,
		qs.Phrase, qs.And, qs.Or,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count location matches: %w", err)
	}

	return locs, total, nil
}

func (r *LocationRepository) publishCreated(tx *sql.Tx, loc *models.Location) error {
	event := domainevents.LocationCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		LocationID:  loc.ID,
		Name:        loc.Name,
		Description: loc.Description,
		ParentID:    loc.Parent.Nullable(),
		OccurredAt:  loc.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicLocationCreated, msg)
}

// translateLocationWriteErr maps pgconn errors from location inserts and
// updates to domain sentinels.
func translateLocationWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return domain.ErrLocationExists
		case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == constraintLocationParent:
			return domain.ErrParentNotFound
		}
	}
	return fmt.Errorf("write location: %w", err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (*models.Location, error) {
	var (
		loc      models.Location
		parentID sql.NullString
		created  time.Time
		updated  time.Time
	)
	if err := row.Scan(&loc.ID, &loc.Name, &loc.Description, &parentID, &created, &updated); err != nil {
		return nil, err
	}
	if parentID.Valid {
		loc.Parent = models.ChildOf(parentID.String)
	} else {
		loc.Parent = models.Root()
	}
	loc.CreatedAt = created
	loc.UpdatedAt = updated
	return &loc, nil
}

func scanLocations(rows *sql.Rows) ([]*models.Location, error) {
	var locs []*models.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locs = append(locs, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return locs, nil
}
