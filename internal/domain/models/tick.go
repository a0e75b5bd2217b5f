package models

import "time"

// Tick is one live trade observation from the exchange stream.
type Tick struct {
	Symbol string
	Price  float64
	Volume float64
	At     time.Time
}
