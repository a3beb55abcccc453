package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"realty_extractor/internal/domain"
	"realty_extractor/internal/domain/entity"
	"realty_extractor/pkg/errcodes"
	"realty_extractor/pkg/lox"
)

const listingColumns = `id, source_url, title, description, prior, property_type, listing_type,
		extraction_quality, result, diagnostics, created_at`

type ListingRepository struct {
	db *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// withTx выполняет функцию в транзакции.
func (r *ListingRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Create сохраняет объявление. Пустые ID и CreatedAt заполняются здесь.
func (r *ListingRepository) Create(ctx context.Context, listing *entity.StoredListing) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		return r.createTx(ctx, tx, listing)
	})
}

// CreateBatch сохраняет объявления атомарно.
func (r *ListingRepository) CreateBatch(ctx context.Context, listings []*entity.StoredListing) error {
	if len(listings) == 0 {
		return nil
	}

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		for i, l := range listings {
			if err := r.createTx(ctx, tx, l); err != nil {
				return domain.WrapError(err, errcodes.InternalServerError,
					fmt.Sprintf("failed at index %d", i))
			}
		}
		return nil
	})
}

func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StoredListing, error) {
	query := r.db.Rebind(`SELECT ` + listingColumns + ` FROM listings WHERE id = ?`)

	var schema listingSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.ListingNotFound, "listing not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get listing")
	}

	listing, err := schema.toDomain()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to convert listing")
	}

	return listing, nil
}

// List возвращает страницу объявлений, новые первыми.
func (r *ListingRepository) List(ctx context.Context, limit, offset int) ([]*entity.StoredListing, error) {
	query := r.db.Rebind(`SELECT ` + listingColumns + ` FROM listings ORDER BY created_at DESC, id LIMIT ? OFFSET ?`)

	var schemas []listingSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit, offset); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list listings")
	}

	listings, err := lox.MapErr(schemas, func(s listingSchema) (*entity.StoredListing, error) {
		return s.toDomain()
	})
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to convert listing")
	}

	return listings, nil
}

// createTx — вставка в рамках транзакции.
func (r *ListingRepository) createTx(ctx context.Context, tx *sqlx.Tx, listing *entity.StoredListing) error {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now().UTC()
	}

	schema, err := fromStoredListing(listing)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to marshal listing")
	}

	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES (:id, :source_url, :title, :description, :prior, :property_type, :listing_type,
			:extraction_quality, :result, :diagnostics, :created_at)`

	if _, err := tx.NamedExecContext(ctx, query, schema.toParams()); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert listing")
	}

	return nil
}
