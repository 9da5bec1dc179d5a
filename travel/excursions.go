package travel

import (
	"context"
	"strings"
)

// Excursion is a row of the trip_recommendations table.
type Excursion struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Keywords string `json:"keywords"`
	Details  string `json:"details"`
	Booked   int    `json:"booked"`
}

// ExcursionQuery filters SearchExcursions. Keywords is a comma separated
// list, any of which may match the keywords column.
type ExcursionQuery struct {
	Location string
	Name     string
	Keywords string
}

func (s *Store) SearchExcursions(ctx context.Context, q ExcursionQuery) ([]Excursion, error) {
	query := "SELECT id, name, location, keywords, details, booked FROM trip_recommendations WHERE 1 = 1"
	var params []any
	if q.Location != "" {
		query += " AND location LIKE ?"
		params = append(params, "%"+q.Location+"%")
	}
	if q.Name != "" {
		query += " AND name LIKE ?"
		params = append(params, "%"+q.Name+"%")
	}
	if q.Keywords != "" {
		var conds []string
		for _, kw := range strings.Split(q.Keywords, ",") {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			conds = append(conds, "keywords LIKE ?")
			params = append(params, "%"+kw+"%")
		}
		if len(conds) > 0 {
			query += " AND (" + strings.Join(conds, " OR ") + ")"
		}
	}
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []Excursion
	for rows.Next() {
		var e Excursion
		if err := rows.Scan(&e.ID, &e.Name, &e.Location, &e.Keywords, &e.Details, &e.Booked); err != nil {
			return nil, err
		}
		ret = append(ret, e)
	}
	return ret, rows.Err()
}

func (s *Store) BookExcursion(ctx context.Context, recommendationID int64) error {
	res, err := s.db.ExecContext(ctx, "UPDATE trip_recommendations SET booked = 1 WHERE id = ?", recommendationID)
	if err != nil {
		return err
	}
	return checkAffected(res, ErrExcursionNotFound)
}

// UpdateExcursion replaces the free-form details of a recommendation.
func (s *Store) UpdateExcursion(ctx context.Context, recommendationID int64, details string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE trip_recommendations SET details = ? WHERE id = ?", details, recommendationID)
	if err != nil {
		return err
	}
	return checkAffected(res, ErrExcursionNotFound)
}

func (s *Store) CancelExcursion(ctx context.Context, recommendationID int64) error {
	res, err := s.db.ExecContext(ctx, "UPDATE trip_recommendations SET booked = 0 WHERE id = ?", recommendationID)
	if err != nil {
		return err
	}
	return checkAffected(res, ErrExcursionNotFound)
}
