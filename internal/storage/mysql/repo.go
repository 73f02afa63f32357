package mysql

import (
	"context"
	"database/sql"

	"homenest/internal/domain"
)

// PropertyRepo and ReviewRepo share one *sql.DB; the driver owns
// pooling and nothing here holds per-request state.

type PropertyRepo struct{ db *sql.DB }

func NewProperties(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

func (r *PropertyRepo) Insert(ctx context.Context, p domain.Property) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertPropertySQL,
		p.VendorEmail,
		p.Name,
		p.Price,
		p.Image,
		p.Description,
		p.Category,
		p.Location,
		p.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *PropertyRepo) Update(ctx context.Context, id int64, u domain.PropertyUpdate) (int64, error) {
	res, err := r.db.ExecContext(ctx, updatePropertySQL,
		u.Name,
		u.Price,
		u.Image,
		u.Description,
		u.Category,
		u.Location,
		id,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PropertyRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, deletePropertySQL, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PropertyRepo) Get(ctx context.Context, id int64) (domain.Property, error) {
	row := r.db.QueryRowContext(ctx, getPropertySQL, id)
	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return domain.Property{}, domain.ErrNotFound
	}
	return p, err
}

func (r *PropertyRepo) List(ctx context.Context) ([]domain.Property, error) {
	return queryProperties(ctx, r.db, listPropertiesSQL)
}

func (r *PropertyRepo) ListFeatured(ctx context.Context, limit int) ([]domain.Property, error) {
	return queryProperties(ctx, r.db, listFeaturedSQL, limit)
}

func (r *PropertyRepo) ListByVendor(ctx context.Context, email string) ([]domain.Property, error) {
	return queryProperties(ctx, r.db, listByVendorSQL, email)
}

func queryProperties(ctx context.Context, db *sql.DB, query string, args ...any) ([]domain.Property, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanProperty(s scanner) (domain.Property, error) {
	var p domain.Property
	var updatedAt sql.NullTime
	if err := s.Scan(
		&p.ID,
		&p.VendorEmail,
		&p.Name,
		&p.Price,
		&p.Image,
		&p.Description,
		&p.Category,
		&p.Location,
		&p.CreatedAt,
		&updatedAt,
	); err != nil {
		return domain.Property{}, err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		p.UpdatedAt = &t
	}
	return p, nil
}

// ---- reviews ----

type ReviewRepo struct{ db *sql.DB }

func NewReviews(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Insert(ctx context.Context, rv domain.Review) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.PropertyID,
		rv.ReviewerEmail,
		rv.Text,
		rv.Rating,
		rv.PropertyName,
		rv.Thumbnail,
		rv.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ReviewRepo) ListByReviewer(ctx context.Context, email string) ([]domain.Review, error) {
	return r.queryReviews(ctx, listReviewsByReviewerSQL, email)
}

func (r *ReviewRepo) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Review, error) {
	return r.queryReviews(ctx, listReviewsByPropertySQL, propertyID)
}

func (r *ReviewRepo) SyncDenormalized(ctx context.Context, propertyID int64, name, thumbnail string) (int64, error) {
	res, err := r.db.ExecContext(ctx, syncReviewDenormSQL, name, thumbnail, propertyID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ReviewRepo) DeleteByProperty(ctx context.Context, propertyID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteReviewsByPropertySQL, propertyID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ReviewRepo) ListStaleProperties(ctx context.Context, limit int) ([]domain.Property, error) {
	return queryProperties(ctx, r.db, listStalePropertiesSQL, limit)
}

func (r *ReviewRepo) DeleteOrphans(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteOrphanReviewsSQL)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ReviewRepo) queryReviews(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var updatedAt sql.NullTime
		if err := rows.Scan(
			&rv.ID,
			&rv.PropertyID,
			&rv.ReviewerEmail,
			&rv.Text,
			&rv.Rating,
			&rv.PropertyName,
			&rv.Thumbnail,
			&rv.CreatedAt,
			&updatedAt,
		); err != nil {
			return nil, err
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			rv.UpdatedAt = &t
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
