package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRentalFee(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	testCases := []struct {
		name    string
		dateOut time.Time
		rate    float64
		want    float64
	}{
		{"seven full days", now.AddDate(0, 0, -7), 2, 14},
		{"seven days and a few hours", now.Add(-7*24*time.Hour - 5*time.Hour), 2, 14},
		{"same day", now.Add(-3 * time.Hour), 2, 0},
		{"one day", now.Add(-24 * time.Hour), 3.5, 3.5},
		{"zero rate", now.AddDate(0, 0, -10), 0, 0},
		{"date out in the future", now.Add(time.Hour), 2, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rental := Rental{DateOut: tc.dateOut, Movie: MovieSnapshot{DailyRentalRate: tc.rate}}
			assert.Equal(t, tc.want, rental.Fee(now))
		})
	}
}

func TestRentalIsReturned(t *testing.T) {
	rental := Rental{}
	assert.False(t, rental.IsReturned())
	now := time.Now()
	rental.DateReturned = &now
	assert.True(t, rental.IsReturned())
}

func TestSnapshotsAreCopies(t *testing.T) {
	customer := Customer{Name: "12345", Phone: "12345"}
	snapshot := customer.Snapshot()
	customer.Name = "changed"
	assert.Equal(t, "12345", snapshot.Name)

	movie := Movie{Title: "12345", DailyRentalRate: 2}
	movieSnapshot := movie.Snapshot()
	movie.DailyRentalRate = 5
	assert.Equal(t, float64(2), movieSnapshot.DailyRentalRate)
}
