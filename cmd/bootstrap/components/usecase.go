package components

import (
	"petbooking/internal/pkg/clock"
	"petbooking/internal/pkg/config"
	"petbooking/internal/usecase"
	"petbooking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewReservationUseCase,
		usecase.NewAuthUseCase,
		usecase.NewCatalogUseCase,
	),
)

func NewReservationUseCase(
	reservations usecase.ReservationStore,
	pets usecase.PetLookup,
	services usecase.ServiceLookup,
	tx shared.TxRunner,
	clk clock.Clock,
	cfg config.Config,
) usecase.ReservationUseCase {
	return usecase.NewReservationUseCase(reservations, pets, services, tx, clk, cfg.Booking)
}
