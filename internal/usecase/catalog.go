package usecase

import (
	"context"

	"petbooking/internal/domain/offering"
	"petbooking/internal/domain/pet"
	"petbooking/internal/infra"
	"petbooking/internal/pkg/errs"
)

//go:generate mockgen -source=catalog.go -destination=../../tests/mock/usecase/catalog.go -package=usecasemock

// PetRepository extends the scheduler's lookup with the listing the booking
// form needs.
type PetRepository interface {
	PetLookup
	FindAll(ctx context.Context) ([]*pet.Pet, error)
}

type ServiceRepository interface {
	ServiceLookup
	FindAll(ctx context.Context) ([]*offering.ServiceOffering, error)
}

// CatalogUseCase serves the read-only pet and service lists the booking form
// is built from. The catalog itself is seeded, not managed over the API.
type CatalogUseCase interface {
	GetPet(ctx context.Context, id int64) (*pet.Pet, error)
	ListPets(ctx context.Context) ([]*pet.Pet, error)
	GetService(ctx context.Context, id int64) (*offering.ServiceOffering, error)
	ListServices(ctx context.Context) ([]*offering.ServiceOffering, error)
}

type catalogUseCaseImpl struct {
	pets     PetRepository
	services ServiceRepository
}

func NewCatalogUseCase(pets PetRepository, services ServiceRepository) CatalogUseCase {
	return &catalogUseCaseImpl{
		pets:     pets,
		services: services,
	}
}

func (u *catalogUseCaseImpl) GetPet(ctx context.Context, id int64) (*pet.Pet, error) {
	p, err := u.pets.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrPetNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return p, nil
}

func (u *catalogUseCaseImpl) ListPets(ctx context.Context) ([]*pet.Pet, error) {
	pets, err := u.pets.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return pets, nil
}

func (u *catalogUseCaseImpl) GetService(ctx context.Context, id int64) (*offering.ServiceOffering, error) {
	s, err := u.services.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrServiceNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return s, nil
}

func (u *catalogUseCaseImpl) ListServices(ctx context.Context) ([]*offering.ServiceOffering, error) {
	services, err := u.services.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return services, nil
}
