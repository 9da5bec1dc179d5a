package travel

import (
	"context"
	"time"
)

// Hotel is a row of the hotels table.
type Hotel struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	PriceTier    string `json:"price_tier"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
	Booked       int    `json:"booked"`
}

// HotelQuery filters SearchHotels on substring matches.
type HotelQuery struct {
	Location string
	Name     string
}

func (s *Store) SearchHotels(ctx context.Context, q HotelQuery) ([]Hotel, error) {
	query := "SELECT id, name, location, price_tier, checkin_date, checkout_date, booked FROM hotels WHERE 1 = 1"
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
	var ret []Hotel
	for rows.Next() {
		var h Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.PriceTier, &h.CheckinDate, &h.CheckoutDate, &h.Booked); err != nil {
			return nil, err
		}
		ret = append(ret, h)
	}
	return ret, rows.Err()
}

func (s *Store) BookHotel(ctx context.Context, hotelID int64) error {
	res, err := s.db.ExecContext(ctx, "UPDATE hotels SET booked = 1 WHERE id = ?", hotelID)
	if err != nil {
		return err
	}
	return checkAffected(res, ErrHotelNotFound)
}

// UpdateHotel changes the stay dates. Nil dates are left untouched.
func (s *Store) UpdateHotel(ctx context.Context, hotelID int64, checkinDate, checkoutDate *time.Time) error {
	if checkinDate != nil {
		res, err := s.db.ExecContext(ctx, "UPDATE hotels SET checkin_date = ? WHERE id = ?", formatTimestamp(*checkinDate), hotelID)
		if err != nil {
			return err
		}
		if err := checkAffected(res, ErrHotelNotFound); err != nil {
			return err
		}
	}
	if checkoutDate != nil {
		res, err := s.db.ExecContext(ctx, "UPDATE hotels SET checkout_date = ? WHERE id = ?", formatTimestamp(*checkoutDate), hotelID)
		if err != nil {
			return err
		}
		if err := checkAffected(res, ErrHotelNotFound); err != nil {
			return err
		}
	}
	if checkinDate == nil && checkoutDate == nil {
		if ok, err := exists(ctx, s.db, "SELECT 1 FROM hotels WHERE id = ?", hotelID); err != nil {
			return err
		} else if !ok {
			return ErrHotelNotFound
		}
	}
	return nil
}

func (s *Store) CancelHotel(ctx context.Context, hotelID int64) error {
	res, err := s.db.ExecContext(ctx, "UPDATE hotels SET booked = 0 WHERE id = ?", hotelID)
	if err != nil {
		return err
	}
	return checkAffected(res, ErrHotelNotFound)
}
