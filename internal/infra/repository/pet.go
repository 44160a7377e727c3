package repository

import (
	"context"
	"errors"

	"petbooking/internal/domain/pet"
	"petbooking/internal/infra"
	"petbooking/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

const petColumns = `id, name, species, breed, age, owner_name, owner_phone`

type PetRepository struct {
	pool db.DBTX
}

func NewPetRepository(pool db.DBTX) *PetRepository {
	return &PetRepository{pool: pool}
}

func (r *PetRepository) FindByID(ctx context.Context, id int64) (*pet.Pet, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("pet not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find pet by ID", err)
	}
	return p, nil
}

func (r *PetRepository) FindAll(ctx context.Context) ([]*pet.Pet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+petColumns+` FROM pets ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pets", err)
	}
	defer rows.Close()

	var result []*pet.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan pet", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read pets", err)
	}
	return result, nil
}

func scanPet(row pgx.Row) (*pet.Pet, error) {
	var (
		id                    int64
		name, species         string
		breed                 *string
		age                   *int
		ownerName, ownerPhone string
	)
	if err := row.Scan(&id, &name, &species, &breed, &age, &ownerName, &ownerPhone); err != nil {
		return nil, err
	}

	breedText := ""
	if breed != nil {
		breedText = *breed
	}

	return pet.Reconstruct(id, name, species, breedText, age, ownerName, ownerPhone), nil
}
