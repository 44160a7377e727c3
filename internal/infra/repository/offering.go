package repository

import (
	"context"
	"errors"
	"time"

	"petbooking/internal/domain/offering"
	"petbooking/internal/infra"
	"petbooking/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

const serviceColumns = `id, code, name, description, allowed_days, start_time, end_time`

type ServiceOfferingRepository struct {
	pool db.DBTX
}

func NewServiceOfferingRepository(pool db.DBTX) *ServiceOfferingRepository {
	return &ServiceOfferingRepository{pool: pool}
}

func (r *ServiceOfferingRepository) FindByID(ctx context.Context, id int64) (*offering.ServiceOffering, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)

	s, err := scanServiceOffering(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("service offering not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service offering by ID", err)
	}
	return s, nil
}

func (r *ServiceOfferingRepository) FindAll(ctx context.Context) ([]*offering.ServiceOffering, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+serviceColumns+` FROM services ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list service offerings", err)
	}
	defer rows.Close()

	var result []*offering.ServiceOffering
	for rows.Next() {
		s, err := scanServiceOffering(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan service offering", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read service offerings", err)
	}
	return result, nil
}

func scanServiceOffering(row pgx.Row) (*offering.ServiceOffering, error) {
	var (
		id                 int64
		code, name         string
		description        *string
		allowedDays        *string
		startTime, endTime *time.Time
	)
	if err := row.Scan(&id, &code, &name, &description, &allowedDays, &startTime, &endTime); err != nil {
		return nil, err
	}

	return offering.Reconstruct(
		id, code, name,
		derefOrEmpty(description),
		derefOrEmpty(allowedDays),
		startTime, endTime,
	), nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
