package models

import (
	"time"

	"restaurant-panel/internal/utils"
)

// Reservation is a document from the "reservas" collection, created by the
// customer booking app. Data holds the reservation date as "MM/DD/YYYY" and
// Hour the 12-hour clock string ("5:44:01PM"); both are kept raw and only
// combined on demand. Cliente is the in-memory owner join.
type Reservation struct {
	ID          string       `json:"id"`
	UID         string       `json:"uid,omitempty"`
	Data        string       `json:"data"`
	Hour        string       `json:"hour"`
	Assentos    int          `json:"assentos"`
	ReservadoEm time.Time    `json:"reservado_em"`
	Concluido   bool         `json:"concluido"`
	ConcluidoEm time.Time    `json:"concluido_em,omitempty"`
	Cliente     *UserProfile `json:"cliente,omitempty"`
}

// Moment combines the date and hour strings into the absolute instant the
// reservation is for. ok=false when either piece is unparseable.
func (r *Reservation) Moment() (time.Time, bool) {
	return utils.ReservationMoment(r.Data, r.Hour)
}

// IsStale reports whether a non-completed reservation's moment is more than
// grace before now. Reservations with unparseable date or hour are never
// stale.
func (r *Reservation) IsStale(now time.Time, grace time.Duration) bool {
	if r.Concluido {
		return false
	}
	moment, ok := r.Moment()
	if !ok {
		return false
	}
	return now.Sub(moment) > grace
}

func ReservationFromDoc(id string, data map[string]interface{}) Reservation {
	return Reservation{
		ID:          id,
		UID:         asString(data["uid"]),
		Data:        asString(data["data"]),
		Hour:        asString(data["hour"]),
		Assentos:    asInt(data["assentos"]),
		ReservadoEm: utils.NormalizeTimestamp(data["reservado_em"]),
		Concluido:   asBool(data["concluido"]),
		ConcluidoEm: utils.NormalizeTimestamp(data["concluido_em"]),
	}
}
