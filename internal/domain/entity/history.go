package entity

import (
	"time"

	"github.com/google/uuid"
)

// HistoryGame is one entry of the public games timeline.
type HistoryGame struct {
	GameOffer
	ID        uuid.UUID `json:"id"`
	FoundDate time.Time `json:"found_date"`
}

func NewHistoryGame(offer GameOffer, foundAt time.Time) HistoryGame {
	return HistoryGame{
		GameOffer: offer,
		ID:        uuid.New(),
		FoundDate: foundAt,
	}
}
