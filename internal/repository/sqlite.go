package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
	_ "modernc.org/sqlite"
)

// Snapshot is a full copy of the active network, written to an offline store.
type Snapshot struct {
	Segments []domain.Segment
	Carriers domain.CarrierScores
	Tariffs  []domain.Tariff
	Airports []domain.AirportInfo
	Cities   []domain.City
}

// SQLiteStore keeps one snapshot of the network in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the snapshot file and runs migrations. Use
// ":memory:" for a throwaway store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	version := 0
	s.db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := s.db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS segments (
				id             INTEGER PRIMARY KEY,
				batch_id       INTEGER NOT NULL DEFAULT 0,
				carrier        TEXT NOT NULL,
				flight_number  TEXT NOT NULL,
				origin         TEXT NOT NULL,
				destination    TEXT NOT NULL,
				departure_date TEXT NOT NULL,
				departure_time TEXT NOT NULL,
				arrival_time   TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_segments_date ON segments(departure_date);

			CREATE TABLE IF NOT EXISTS carrier_scores (
				carrier TEXT PRIMARY KEY,
				score   INTEGER NOT NULL
			);

			CREATE TABLE IF NOT EXISTS tariffs (
				origin      TEXT NOT NULL,
				destination TEXT NOT NULL,
				carrier     TEXT NOT NULL,
				service     TEXT NOT NULL,
				rate        REAL NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_tariffs_lane ON tariffs(origin, destination);

			CREATE TABLE IF NOT EXISTS airports (
				iata      TEXT PRIMARY KEY,
				name      TEXT NOT NULL,
				latitude  REAL,
				longitude REAL
			);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	if version < 2 {
		_, err := s.db.Exec(`
			CREATE TABLE IF NOT EXISTS cities (
				name      TEXT NOT NULL,
				uf        TEXT NOT NULL,
				latitude  REAL NOT NULL,
				longitude REAL NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_cities_uf ON cities(uf);

			INSERT OR IGNORE INTO schema_version (version) VALUES (2);
		`)
		if err != nil {
			return fmt.Errorf("migration v2: %w", err)
		}
	}
	return nil
}

// Load replaces the stored snapshot atomically.
func (s *SQLiteStore) Load(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"segments", "carrier_scores", "tariffs", "airports", "cities"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, seg := range snap.Segments {
		id := seg.ID
		if id == 0 {
			id = int64(i + 1)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO segments
			(id, batch_id, carrier, flight_number, origin, destination, departure_date, departure_time, arrival_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, seg.BatchID, domain.NormalizeCode(seg.Carrier), seg.FlightNumber,
			domain.NormalizeCode(seg.Origin), domain.NormalizeCode(seg.Destination),
			seg.DepartureDate.Format(domain.DateLayout), seg.DepartureTime.Seconds(), seg.ArrivalTime.Seconds()); err != nil {
			return fmt.Errorf("insert segment %d: %w", id, err)
		}
	}
	for carrier, score := range snap.Carriers {
		if _, err := tx.ExecContext(ctx, `INSERT INTO carrier_scores (carrier, score) VALUES (?, ?)`,
			domain.NormalizeCode(carrier), score); err != nil {
			return fmt.Errorf("insert carrier %s: %w", carrier, err)
		}
	}
	for _, t := range snap.Tariffs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tariffs (origin, destination, carrier, service, rate) VALUES (?, ?, ?, ?, ?)`,
			t.Origin, t.Destination, t.Carrier, t.Service, t.Rate); err != nil {
			return fmt.Errorf("insert tariff: %w", err)
		}
	}
	for _, a := range snap.Airports {
		if _, err := tx.ExecContext(ctx, `INSERT INTO airports (iata, name, latitude, longitude) VALUES (?, ?, ?, ?)`,
			domain.NormalizeCode(a.IATA), a.Name, a.Latitude, a.Longitude); err != nil {
			return fmt.Errorf("insert airport %s: %w", a.IATA, err)
		}
	}
	for _, c := range snap.Cities {
		if _, err := tx.ExecContext(ctx, `INSERT INTO cities (name, uf, latitude, longitude) VALUES (?, ?, ?, ?)`,
			strings.TrimSpace(c.Name), domain.NormalizeText(c.UF), c.Latitude, c.Longitude); err != nil {
			return fmt.Errorf("insert city %s: %w", c.Name, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Segments() SegmentRepository { return sqliteSegments{db: s.db} }
func (s *SQLiteStore) Carriers() CarrierRepository { return sqliteCarriers{db: s.db} }
func (s *SQLiteStore) Tariffs() TariffRepository { return sqliteTariffs{db: s.db} }
func (s *SQLiteStore) Airports() AirportRepository { return sqliteAirports{db: s.db} }
func (s *SQLiteStore) Cities() CityRepository { return sqliteCities{db: s.db} }

type sqliteSegments struct{ db *sql.DB }

func (r sqliteSegments) ListActive(ctx context.Context, from, to time.Time) ([]domain.Segment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, batch_id, carrier, flight_number, origin, destination,
			departure_date, departure_time, arrival_time
		FROM segments
		WHERE departure_date BETWEEN ? AND ?
		ORDER BY departure_date, departure_time, id`, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	segments := make([]domain.Segment, 0)
	for rows.Next() {
		var (
			s             domain.Segment
			date, dep, ar string
		)
		if err := rows.Scan(&s.ID, &s.BatchID, &s.Carrier, &s.FlightNumber, &s.Origin, &s.Destination, &date, &dep, &ar); err != nil {
			return nil, err
		}
		if s.DepartureDate, err = time.Parse(domain.DateLayout, date); err != nil {
			return nil, fmt.Errorf("segment %d: %w", s.ID, err)
		}
		if s.DepartureTime, err = domain.ParseClock(dep); err != nil {
			return nil, fmt.Errorf("segment %d: %w", s.ID, err)
		}
		if s.ArrivalTime, err = domain.ParseClock(ar); err != nil {
			return nil, fmt.Errorf("segment %d: %w", s.ID, err)
		}
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

type sqliteCarriers struct{ db *sql.DB }

func (r sqliteCarriers) Scores(ctx context.Context) (domain.CarrierScores, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT carrier, score FROM carrier_scores`)
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
		scores[carrier] = score
	}
	return scores, rows.Err()
}

type sqliteTariffs struct{ db *sql.DB }

func (r sqliteTariffs) ListActive(ctx context.Context) ([]domain.Tariff, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT origin, destination, carrier, service, rate FROM tariffs`)
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

type sqliteAirports struct{ db *sql.DB }

func (r sqliteAirports) FindByCodes(ctx context.Context, codes []string) (map[string]domain.AirportInfo, error) {
	found := make(map[string]domain.AirportInfo, len(codes))
	if len(codes) == 0 {
		return found, nil
	}
	args := make([]any, len(codes))
	for i, c := range codes {
		args[i] = domain.NormalizeCode(c)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(codes)), ",")
	airports, err := r.query(ctx, `SELECT iata, name, latitude, longitude FROM airports WHERE iata IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	for _, a := range airports {
		found[a.IATA] = a
	}
	return found, nil
}

func (r sqliteAirports) ListActive(ctx context.Context) ([]domain.AirportInfo, error) {
	return r.query(ctx, `SELECT iata, name, latitude, longitude FROM airports a
		WHERE EXISTS (SELECT 1 FROM segments s WHERE s.origin = a.iata)
		ORDER BY iata`)
}

func (r sqliteAirports) ListAll(ctx context.Context) ([]domain.AirportInfo, error) {
	return r.query(ctx, `SELECT iata, name, latitude, longitude FROM airports ORDER BY iata`)
}

func (r sqliteAirports) query(ctx context.Context, q string, args ...any) ([]domain.AirportInfo, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.AirportInfo, 0)
	for rows.Next() {
		var (
			a        domain.AirportInfo
			lat, lon sql.NullFloat64
		)
		if err := rows.Scan(&a.IATA, &a.Name, &lat, &lon); err != nil {
			return nil, err
		}
		if lat.Valid && lon.Valid {
			a.Latitude, a.Longitude = &lat.Float64, &lon.Float64
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

type sqliteCities struct{ db *sql.DB }

func (r sqliteCities) FindCity(ctx context.Context, name, uf string) (*domain.City, error) {
	uf = domain.NormalizeText(uf)
	if uf == "" || domain.NormalizeText(name) == "" {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT name, uf, latitude, longitude FROM cities
		WHERE uf = ? ORDER BY name`, uf)
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
	_ SegmentRepository = sqliteSegments{}
	_ CarrierRepository = sqliteCarriers{}
	_ TariffRepository  = sqliteTariffs{}
	_ AirportRepository = sqliteAirports{}
	_ CityRepository    = sqliteCities{}
)
