package components

import (
	"petbooking/internal/infra/db"
	"petbooking/internal/infra/repository"
	"petbooking/internal/infra/uow"
	"petbooking/internal/pkg/config"
	"petbooking/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewReservationRepository,
		uow.NewPgxTxRunner,
		fx.Annotate(
			repository.NewPetRepository,
			fx.As(new(usecase.PetRepository)),
			fx.As(new(usecase.PetLookup)),
		),
		fx.Annotate(
			repository.NewServiceOfferingRepository,
			fx.As(new(usecase.ServiceRepository)),
			fx.As(new(usecase.ServiceLookup)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
	),
)

func NewReservationRepository(pool db.DBTX, cfg config.Config) usecase.ReservationStore {
	return repository.NewReservationRepository(pool, cfg.Booking.LockTimeout)
}
