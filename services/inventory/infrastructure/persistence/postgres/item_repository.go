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

const itemDocumentExpr = `setweight(to_tsvector('english', i.name), 'A') ||
	setweight(to_tsvector('english', coalesce(i.description, '')), 'B')`

const itemColumns = `i.id, i.name, coalesce(i.description, ''), i.location_id, i.properties, i.created_at, i.updated_at`

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// Properties are persisted as a JSONB document.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection
// pool and event bus. The bus publishes ItemCreatedEvents and
// ItemMovedEvents transactionally after successful writes.
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

// Save persists a new Item and publishes an ItemCreatedEvent within the
// same transaction. Returns ErrLocationNotFound when the location foreign
// key is violated.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	props, err := json.Marshal(item.Properties)
	if err != nil {
		return fmt.Errorf("marshal item properties: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO items (id, name, description, location_id, properties, created_at, updated_at)
			VALUES ($1, $2, NULLIF($3, ''), $4, $5, now(), now())
			RETURNING created_at, updated_at`,
			item.ID, item.Name, item.Description, item.LocationID, props,
		)
		if err := row.Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
			return translateItemWriteErr(err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, item); err != nil {
				return fmt.Errorf("publish item created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an Item by id. Returns ErrItemNotFound if absent.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items i WHERE i.id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// GetByLocation returns every item placed in the given location, name-ordered.
func (r *ItemRepository) GetByLocation(ctx context.Context, locationID string) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items i WHERE i.location_id = $1 ORDER BY i.name, i.id`, locationID)
	if err != nil {
		return nil, fmt.Errorf("query items by location: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	return scanItems(rows)
}

// List returns a name-ordered page over all items plus the total count.
// Backs the blank-search-term fallback, so it produces the same pagination
// envelope as a ranked search.
func (r *ItemRepository) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items i ORDER BY i.name, i.id LIMIT $1 OFFSET $2`,
		opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx, `SELECT count(*) FROM items`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	return items, total, nil
}

// Update persists name/description/location/properties changes.
// Returns ErrItemNotFound if the id is absent.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	props, err := json.Marshal(item.Properties)
	if err != nil {
		return fmt.Errorf("marshal item properties: %w", err)
	}
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE items
		SET name = $2, description = NULLIF($3, ''), location_id = $4, properties = $5, updated_at = now()
		WHERE id = $1`,
		item.ID, item.Name, item.Description, item.LocationID, props,
	)
	if err != nil {
		return translateItemWriteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Delete removes an item by id. Returns ErrItemNotFound if absent.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Exists reports whether an item with the given id exists.
func (r *ItemRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

// MoveMany reassigns every given item to newLocationID in a single UPDATE
// and publishes an ItemMovedEvent in the same transaction. Returns the
// number of rows moved, and ErrLocationNotFound when the target location
// foreign key is violated.
func (r *ItemRepository) MoveMany(ctx context.Context, ids []uuid.UUID, newLocationID string) (int64, error) {
	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}

	var moved int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE items SET location_id = $1, updated_at = now()
			WHERE id = ANY($2::uuid[])`,
			newLocationID, idStrs,
		)
		if err != nil {
			return translateItemWriteErr(err)
		}
		moved, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("move items: %w", err)
		}

		if r.bus != nil {
			if err := r.publishMoved(tx, ids, newLocationID, moved); err != nil {
				return fmt.Errorf("publish items moved: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// SearchRanked mirrors LocationRepository.SearchRanked over the items table.
func (r *ItemRepository) SearchRanked(ctx context.Context, qs search.QuerySet, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM items i,
		     LATERAL (SELECT `+itemDocumentExpr+` AS doc) d,
		     LATERAL (SELECT to_tsquery('english', $1) AS phrase_q,
		                     to_tsquery('english', $2) AS and_q,
		                     to_tsquery('english', $3) AS or_q) q
		WHERE d.doc @@ q.phrase_q OR d.doc @@ q.and_q OR d.doc @@ q.or_q
		ORDER BY (3 * ts_rank(d.doc, q.phrase_q)
		        + 2 * ts_rank(d.doc, q.and_q)
		        +     ts_rank(d.doc, q.or_q)) DESC,
		         i.name ASC, i.id ASC
		LIMIT $4 OFFSET $5`,
		qs.Phrase, qs.And, qs.Or, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.DB().QueryRowContext(ctx, `
		SELECT count(*)
		FROM items i,
		     LATERAL (SELECT `+itemDocumentExpr+` AS doc) d,
		     LATERAL (SELECT to_tsquery('english', $1) AS phrase_q,
		                     to_tsquery('english', $2) AS and_q,
		                     to_tsquery('english', $3) AS or_q) q
		WHERE d.doc @@ q.phrase_q OR d.doc @@ q.and_q OR d.doc @@ q.or_q`,
		qs.Phrase, qs.And, qs.Or,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count item matches: %w", err)
	}

	return items, total, nil
}

func (r *ItemRepository) publishCreated(tx *sql.Tx, item *models.Item) error {
	event := domainevents.ItemCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     item.ID,
		Name:       item.Name,
		LocationID: item.LocationID,
		OccurredAt: item.CreatedAt,
	}
	return r.publish(tx, domainevents.TopicItemCreated, event, event.EventID)
}

func (r *ItemRepository) publishMoved(tx *sql.Tx, ids []uuid.UUID, newLocationID string, moved int64) error {
	event := domainevents.ItemMovedEvent{
		EventID:       uuid.New(),
		Version:       1,
		ItemIDs:       ids,
		NewLocationID: newLocationID,
		MovedCount:    moved,
		OccurredAt:    time.Now().UTC(),
	}
	return r.publish(tx, domainevents.TopicItemMoved, event, event.EventID)
}

func (r *ItemRepository) publish(tx *sql.Tx, topic string, event any, eventID uuid.UUID) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// translateItemWriteErr maps pgconn errors from item writes to domain
// sentinels. A location foreign-key violation on an item write means the
// referenced location does not exist.
func translateItemWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation &&
		pgErr.ConstraintName == constraintItemLocation {
		return domain.ErrLocationNotFound
	}
	return fmt.Errorf("write item: %w", err)
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		item  models.Item
		props []byte
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.LocationID,
		&props, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if len(props) > 0 {
		if err := json.Unmarshal(props, &item.Properties); err != nil {
			return nil, fmt.Errorf("unmarshal item properties: %w", err)
		}
	}
	if item.Properties == nil {
		item.Properties = map[string]string{}
	}
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]*models.Item, error) {
	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}
