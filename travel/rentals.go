package travel

import (
	"context"
	"time"
)

// CarRental is a row of the car_rentals table.
type CarRental struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	PriceTier string `json:"price_tier"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Booked    int    `json:"booked"`
}

// RentalQuery filters SearchCarRentals. Name and location match on substring
// so users do not have to spell vendors exactly.
type RentalQuery struct {
	Location string
	Name     string
}

func (s *Store) SearchCarRentals(ctx context.Context, q RentalQuery) ([]CarRental, error) {
	query := "SELECT id, name, location, price_tier, start_date, end_date, booked FROM car_rentals WHERE 1 = 1"
	var params []any
	if q.Location != "" {
		query += " AND location LIKE ?"
		params = append(params, "%"+q.Location+"%")
	}
	if q.Name != "" {
		query += " AND name LIKE ?"
		params = append(params, "%"+q.Name+"%")
	}
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []CarRental
	for rows.Next() {
		var r CarRental
		if err := rows.Scan(&r.ID, &r.Name, &r.Location, &r.PriceTier, &r.StartDate, &r.EndDate, &r.Booked); err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

func (s *Store) BookCarRental(ctx context.Context, rentalID int64) error {
	res, err := s.db.ExecContext(ctx, "UPDATE car_rentals SET booked = 1 WHERE id = ?", rentalID)
	if err != nil {
		return err
	}
	return checkAffected(res, ErrRentalNotFound)
}

// UpdateCarRental changes the rental dates. Nil dates are left untouched.
func (s *Store) UpdateCarRental(ctx context.Context, rentalID int64, startDate, endDate *time.Time) error {
	if startDate != nil {
		res, err := s.db.ExecContext(ctx, "UPDATE car_rentals SET start_date = ? WHERE id = ?", formatTimestamp(*startDate), rentalID)
		if err != nil {
			return err
		}
		if err := checkAffected(res, ErrRentalNotFound); err != nil {
			return err
		}
	}
	if endDate != nil {
		res, err := s.db.ExecContext(ctx, "UPDATE car_rentals SET end_date = ? WHERE id = ?", formatTimestamp(*endDate), rentalID)
		if err != nil {
			return err
		}
		if err := checkAffected(res, ErrRentalNotFound); err != nil {
			return err
		}
	}
	if startDate == nil && endDate == nil {
		if ok, err := exists(ctx, s.db, "SELECT 1 FROM car_rentals WHERE id = ?", rentalID); err != nil {
			return err
		} else if !ok {
			return ErrRentalNotFound
		}
	}
	return nil
}

func (s *Store) CancelCarRental(ctx context.Context, rentalID int64) error {
	res, err := s.db.ExecContext(ctx, "UPDATE car_rentals SET booked = 0 WHERE id = ?", rentalID)
	if err != nil {
		return err
	}
	return checkAffected(res, ErrRentalNotFound)
}
