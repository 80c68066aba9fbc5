package models

import "vidly/proj/internal/storage/postgres"

type Models struct {
	Genres    *GenreModel
	Customers *CustomerModel
	Movies    *MovieModel
	Rentals   *RentalModel
	Users     *UserModel
}

func New(db *postgres.PostgresDB) *Models {
	movies := &MovieModel{DB: db.Conn}
	return &Models{
		Genres:    &GenreModel{DB: db.Conn},
		Customers: &CustomerModel{DB: db.Conn},
		Movies:    movies,
		Rentals:   &RentalModel{DB: db.Conn, Movies: movies},
		Users:     &UserModel{DB: db.Conn},
	}
}
