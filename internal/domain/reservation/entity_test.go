//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"petbooking/internal/domain/reservation"
	"petbooking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ReservationBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewReservationBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, reservation.StatusBooked, actual.Status())
		assert.Equal(t, int32(0), actual.Version())
		assert.True(t, actual.IsBooked())
	})

	t.Run("field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing pet",
				mutate: func(b *builder.ReservationBuilder) { b.PetID = 0 },
				errIs:  reservation.ErrMissingPet,
			},
			{
				name:   "negative pet id",
				mutate: func(b *builder.ReservationBuilder) { b.PetID = -1 },
				errIs:  reservation.ErrMissingPet,
			},
			{
				name:   "missing service",
				mutate: func(b *builder.ReservationBuilder) { b.ServiceID = 0 },
				errIs:  reservation.ErrMissingService,
			},
			{
				name:   "missing owner phone",
				mutate: func(b *builder.ReservationBuilder) { b.OwnerPhone = "" },
				errIs:  reservation.ErrMissingOwnerPhone,
			},
			{
				name:   "whitespace only phone",
				mutate: func(b *builder.ReservationBuilder) { b.OwnerPhone = "   " },
				errIs:  reservation.ErrMissingOwnerPhone,
			},
			{
				name:   "zero reservation time",
				mutate: func(b *builder.ReservationBuilder) { b.ReservationTime = time.Time{} },
				errIs:  reservation.ErrZeroTime,
			},
		})
	})
}

func TestReservationCancel(t *testing.T) {
	t.Run("booked reservation can be canceled", func(t *testing.T) {
		res := builder.NewReservationBuilder().BuildStored()
		require.NoError(t, res.Cancel())
		assert.Equal(t, reservation.StatusCanceled, res.Status())
	})

	t.Run("canceled reservation cannot be canceled again", func(t *testing.T) {
		res := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Status = reservation.StatusCanceled
		}).BuildStored()
		assert.ErrorIs(t, res.Cancel(), reservation.ErrNotCancelable)
	})

	t.Run("completed reservation cannot be canceled", func(t *testing.T) {
		res := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Status = reservation.StatusCompleted
		}).BuildStored()
		assert.ErrorIs(t, res.Cancel(), reservation.ErrNotCancelable)
	})
}

func TestReservationComplete(t *testing.T) {
	t.Run("booked reservation can be completed", func(t *testing.T) {
		res := builder.NewReservationBuilder().BuildStored()
		require.NoError(t, res.Complete())
		assert.Equal(t, reservation.StatusCompleted, res.Status())
	})

	t.Run("canceled reservation cannot be completed", func(t *testing.T) {
		res := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Status = reservation.StatusCanceled
		}).BuildStored()
		assert.ErrorIs(t, res.Complete(), reservation.ErrNotCompletable)
	})

	t.Run("completed reservation cannot be completed again", func(t *testing.T) {
		res := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Status = reservation.StatusCompleted
		}).BuildStored()
		assert.ErrorIs(t, res.Complete(), reservation.ErrNotCompletable)
	})
}

func TestPhoneMatches(t *testing.T) {
	res := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.OwnerPhone = "010-1234-5678"
	}).BuildStored()

	assert.True(t, res.PhoneMatches("010-1234-5678"))
	assert.False(t, res.PhoneMatches("010-9999-0000"))
	assert.False(t, res.PhoneMatches(""))
}
