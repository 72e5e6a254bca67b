package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGSegmentRepository struct {
	db *pgxpool.Pool
}

func NewSegmentRepository(db *pgxpool.Pool) SegmentRepository {
	return &PGSegmentRepository{db: db}
}

func (r *PGSegmentRepository) ListActive(ctx context.Context, from, to time.Time) ([]domain.Segment, error) {
	rows, err := r.db.Query(ctx, `SELECT s.id, s.batch_id, s.carrier, s.flight_number, s.origin, s.destination,
			s.departure_date, s.departure_time, s.arrival_time
		FROM segments s
		JOIN segment_batches b ON b.id = s.batch_id AND b.active
		WHERE s.departure_date BETWEEN $1 AND $2
		ORDER BY s.departure_date, s.departure_time, s.id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	segments := make([]domain.Segment, 0)
	for rows.Next() {
		var (
			s        domain.Segment
			dep, arr pgtype.Time
		)
		if err := rows.Scan(&s.ID, &s.BatchID, &s.Carrier, &s.FlightNumber, &s.Origin, &s.Destination,
			&s.DepartureDate, &dep, &arr); err != nil {
			return nil, err
		}
		s.DepartureTime = clockFromPG(dep)
		s.ArrivalTime = clockFromPG(arr)
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

func clockFromPG(t pgtype.Time) domain.Clock {
	return domain.Clock(t.Microseconds / int64(time.Second/time.Microsecond))
}

var _ SegmentRepository = (*PGSegmentRepository)(nil)
