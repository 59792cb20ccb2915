package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationIsStale(t *testing.T) {
	now := time.Date(2025, time.August, 27, 20, 0, 0, 0, time.Local)
	grace := 30 * time.Minute

	past := Reservation{Data: "8/27/2025", Hour: "7:00:00PM"}
	assert.True(t, past.IsStale(now, grace), "an hour past the moment is stale")

	recent := Reservation{Data: "8/27/2025", Hour: "7:45:00PM"}
	assert.False(t, recent.IsStale(now, grace), "still inside the grace window")

	upcoming := Reservation{Data: "8/27/2025", Hour: "9:00:00PM"}
	assert.False(t, upcoming.IsStale(now, grace))

	completed := Reservation{Data: "8/27/2025", Hour: "7:00:00PM", Concluido: true}
	assert.False(t, completed.IsStale(now, grace), "completed reservations are never stale")

	unparseable := Reservation{Data: "soon", Hour: "7:00:00PM"}
	assert.False(t, unparseable.IsStale(now, grace), "unparseable dates are never stale")

	longPast := Reservation{Data: "8/13/2025", Hour: "7:00:00PM"}
	assert.True(t, longPast.IsStale(now, grace), "two weeks old is stale")
}

func TestReservationMomentCombinesDateAndHour(t *testing.T) {
	reservation := Reservation{Data: "8/27/2025", Hour: "5:44:01PM"}
	moment, ok := reservation.Moment()
	require.True(t, ok)
	assert.True(t, time.Date(2025, time.August, 27, 17, 44, 1, 0, time.Local).Equal(moment))
}

func TestReservationFromDoc(t *testing.T) {
	reservedAt := time.Date(2025, time.August, 20, 10, 0, 0, 0, time.UTC)
	reservation := ReservationFromDoc("res-1", map[string]interface{}{
		"uid":          "user-1",
		"data":         "8/27/2025",
		"hour":         "7:00:00PM",
		"assentos":     int64(4),
		"reservado_em": reservedAt,
		"concluido":    false,
	})

	assert.Equal(t, "res-1", reservation.ID)
	assert.Equal(t, "user-1", reservation.UID)
	assert.Equal(t, 4, reservation.Assentos)
	assert.True(t, reservedAt.Equal(reservation.ReservadoEm))
	assert.False(t, reservation.Concluido)
	assert.True(t, reservation.ConcluidoEm.IsZero())
}
