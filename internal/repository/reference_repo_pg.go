package repository

import (
	"context"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGCarrierRepository struct {
	db *pgxpool.Pool
}

func NewCarrierRepository(db *pgxpool.Pool) CarrierRepository {
	return &PGCarrierRepository{db: db}
}

func (r *PGCarrierRepository) Scores(ctx context.Context) (domain.CarrierScores, error) {
	rows, err := r.db.Query(ctx, `SELECT carrier, score FROM carrier_scores`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(domain.CarrierScores)
	for rows.Next() {
		var (
			carrier string
			score   int
		)
		if err := rows.Scan(&carrier, &score); err != nil {
			return nil, err
		}
		scores[domain.NormalizeCode(carrier)] = score
	}
	return scores, rows.Err()
}

type PGTariffRepository struct {
	db *pgxpool.Pool
}

func NewTariffRepository(db *pgxpool.Pool) TariffRepository {
	return &PGTariffRepository{db: db}
}

func (r *PGTariffRepository) ListActive(ctx context.Context) ([]domain.Tariff, error) {
	rows, err := r.db.Query(ctx, `SELECT t.origin, t.destination, t.carrier, t.service, t.rate
		FROM tariffs t
		JOIN tariff_batches b ON b.id = t.batch_id AND b.active`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tariffs := make([]domain.Tariff, 0)
	for rows.Next() {
		var t domain.Tariff
		if err := rows.Scan(&t.Origin, &t.Destination, &t.Carrier, &t.Service, &t.Rate); err != nil {
			return nil, err
		}
		tariffs = append(tariffs, t)
	}
	return tariffs, rows.Err()
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) FindByCodes(ctx context.Context, codes []string) (map[string]domain.AirportInfo, error) {
	found := make(map[string]domain.AirportInfo, len(codes))
	if len(codes) == 0 {
		return found, nil
	}
	rows, err := r.db.Query(ctx, `SELECT a.iata, a.name, a.latitude, a.longitude
		FROM airports a
		JOIN airport_batches b ON b.id = a.batch_id AND b.active
		WHERE a.iata = ANY($1)`, codes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.AirportInfo
		if err := rows.Scan(&a.IATA, &a.Name, &a.Latitude, &a.Longitude); err != nil {
			return nil, err
		}
		a.IATA = domain.NormalizeCode(a.IATA)
		found[a.IATA] = a
	}
	return found, rows.Err()
}

func (r *PGAirportRepository) ListActive(ctx context.Context) ([]domain.AirportInfo, error) {
	rows, err := r.db.Query(ctx, `SELECT a.iata, a.name, a.latitude, a.longitude
		FROM airports a
		JOIN airport_batches b ON b.id = a.batch_id AND b.active
		WHERE EXISTS (
			SELECT 1 FROM segments s
			JOIN segment_batches sb ON sb.id = s.batch_id AND sb.active
			WHERE s.origin = a.iata)
		ORDER BY a.iata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAirports(rows)
}

func (r *PGAirportRepository) ListAll(ctx context.Context) ([]domain.AirportInfo, error) {
	rows, err := r.db.Query(ctx, `SELECT a.iata, a.name, a.latitude, a.longitude
		FROM airports a
		JOIN airport_batches b ON b.id = a.batch_id AND b.active
		WHERE a.iata IS NOT NULL
		ORDER BY a.iata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAirports(rows)
}

func scanAirports(rows pgx.Rows) ([]domain.AirportInfo, error) {
	airports := make([]domain.AirportInfo, 0)
	for rows.Next() {
		var a domain.AirportInfo
		if err := rows.Scan(&a.IATA, &a.Name, &a.Latitude, &a.Longitude); err != nil {
			return nil, err
		}
		a.IATA = domain.NormalizeCode(a.IATA)
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

type PGCityRepository struct {
	db *pgxpool.Pool
}

func NewCityRepository(db *pgxpool.Pool) CityRepository {
	return &PGCityRepository{db: db}
}

// FindCity loads the cities of the state and matches the name in Go, since the
// stored names keep their accents.
func (r *PGCityRepository) FindCity(ctx context.Context, name, uf string) (*domain.City, error) {
	uf = domain.NormalizeText(uf)
	if uf == "" || domain.NormalizeText(name) == "" {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT c.name, c.uf, c.latitude, c.longitude
		FROM cities c
		JOIN city_batches b ON b.id = c.batch_id AND b.active
		WHERE upper(c.uf) = $1 AND c.latitude IS NOT NULL AND c.longitude IS NOT NULL
		ORDER BY c.name`, uf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []domain.City
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.Name, &c.UF, &c.Latitude, &c.Longitude); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if c, ok := domain.MatchCity(cities, name); ok {
		return &c, nil
	}
	return nil, nil
}

var (
	_ CarrierRepository = (*PGCarrierRepository)(nil)
	_ TariffRepository  = (*PGTariffRepository)(nil)
	_ AirportRepository = (*PGAirportRepository)(nil)
	_ CityRepository    = (*PGCityRepository)(nil)
)
