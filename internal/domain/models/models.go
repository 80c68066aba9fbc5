package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Genre struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

type Customer struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Name   string    `json:"name" db:"name"`
	Phone  string    `json:"phone" db:"phone"`
	IsGold bool      `json:"isGold" db:"is_gold"`
}

// GenreSnapshot is the copy of a genre stored inside a movie.
type GenreSnapshot struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// MaxStock caps a movie's number in stock. Returns beyond it are accepted
// and leave the stock at the cap.
const MaxStock = 255

type Movie struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Genre           GenreSnapshot `json:"genre"`
	NumberInStock   int           `json:"numberInStock"`
	DailyRentalRate float64       `json:"dailyRentalRate"`
}

// CustomerSnapshot captures the customer at checkout time and never changes afterwards.
type CustomerSnapshot struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	IsGold bool      `json:"isGold"`
}

// MovieSnapshot captures the movie at checkout time and never changes afterwards.
type MovieSnapshot struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	DailyRentalRate float64   `json:"dailyRentalRate"`
}

func (c *Customer) Snapshot() CustomerSnapshot {
	return CustomerSnapshot{ID: c.ID, Name: c.Name, Phone: c.Phone, IsGold: c.IsGold}
}

func (m *Movie) Snapshot() MovieSnapshot {
	return MovieSnapshot{ID: m.ID, Title: m.Title, DailyRentalRate: m.DailyRentalRate}
}

func (g *Genre) Snapshot() GenreSnapshot {
	return GenreSnapshot{ID: g.ID, Name: g.Name}
}

type Rental struct {
	ID           uuid.UUID        `json:"id"`
	Customer     CustomerSnapshot `json:"customer"`
	Movie        MovieSnapshot    `json:"movie"`
	DateOut      time.Time        `json:"dateOut"`
	DateReturned *time.Time       `json:"dateReturned"`
	RentalFee    *float64         `json:"rentalFee"`
}

// IsReturned reports whether the rental has already been closed.
func (r *Rental) IsReturned() bool {
	return r.DateReturned != nil
}

// DaysOut returns the number of whole days elapsed between DateOut and at.
func (r *Rental) DaysOut(at time.Time) int {
	elapsed := at.Sub(r.DateOut)
	if elapsed <= 0 {
		return 0
	}
	return int(math.Floor(elapsed.Hours() / 24))
}

// Fee is the amount due if the rental is returned at the given time:
// whole elapsed days times the movie's daily rate.
func (r *Rental) Fee(at time.Time) float64 {
	return float64(r.DaysOut(at)) * r.Movie.DailyRentalRate
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}
