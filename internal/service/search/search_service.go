package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/Domenick1991/airroutes/internal/geo"
	"github.com/Domenick1991/airroutes/internal/kafka"
	"github.com/Domenick1991/airroutes/internal/metrics"
	"github.com/Domenick1991/airroutes/internal/repository"
	"github.com/Domenick1991/airroutes/internal/routing"
	"github.com/Domenick1991/airroutes/internal/tariff"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type SearchUseCase interface {
	Search(ctx context.Context, req Request) (*Result, error)
	NearestAirport(ctx context.Context, lat, lon float64) (*domain.Airport, error)
	NearestAirportToCity(ctx context.Context, city, uf string) (*CityAirport, error)
	Airport(ctx context.Context, iata string) (*domain.Airport, error)
	ListAirports(ctx context.Context) ([]domain.Airport, error)
}

// Cache stores snapshot inputs between requests. Getters return nil on a miss.
type Cache interface {
	GetCarrierScores(ctx context.Context) (domain.CarrierScores, error)
	SetCarrierScores(ctx context.Context, scores domain.CarrierScores) error
	GetAirports(ctx context.Context, codes []string) (map[string]domain.AirportInfo, error)
	SetAirports(ctx context.Context, airports []domain.AirportInfo) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Request struct {
	Origins      []string
	Destinations []string
	// DateFrom is also the earliest departure of the first leg.
	DateFrom time.Time
	DateTo   time.Time
	// Weight in kg; zero selects the default weight.
	Weight float64
}

type Result struct {
	SearchID   string          `json:"search_id"`
	Candidates int             `json:"candidates"`
	Options    routing.Options `json:"options"`
}

// CityAirport is the airport closest to a resolved city.
type CityAirport struct {
	City    domain.City    `json:"city"`
	Airport domain.Airport `json:"airport"`
}

// Settings are the search limits that do not change per request.
type Settings struct {
	Rules             routing.Rules
	BufferDays        int
	DefaultWeight     float64
	Workers           int
	CurrencySymbol    string
	PreferredService  string
	MissingTariffCost float64
}

func DefaultSettings() Settings {
	return Settings{
		Rules:             routing.DefaultRules(),
		BufferDays:        5,
		DefaultWeight:     100,
		Workers:           4,
		CurrencySymbol:    "R$",
		PreferredService:  tariff.DefaultService,
		MissingTariffCost: routing.MissingTariffCost,
	}
}

type SearchService struct {
	segments repository.SegmentRepository
	carriers repository.CarrierRepository
	tariffs  repository.TariffRepository
	airports repository.AirportRepository
	cities   repository.CityRepository

	cache    Cache
	producer Producer
	topic    string
	metrics  *metrics.Search
	logger   *slog.Logger
	settings Settings
	weights  routing.Weights
	newID    func() string
}

type Option func(*SearchService)

func WithCache(cache Cache) Option {
	return func(s *SearchService) {
		s.cache = cache
	}
}

func WithEventPublisher(producer Producer, topic string) Option {
	return func(s *SearchService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithMetrics(m *metrics.Search) Option {
	return func(s *SearchService) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *SearchService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithSettings(settings Settings) Option {
	return func(s *SearchService) {
		s.settings = settings
	}
}

func WithWeights(w routing.Weights) Option {
	return func(s *SearchService) {
		s.weights = w
	}
}

func NewSearchService(
	segments repository.SegmentRepository,
	carriers repository.CarrierRepository,
	tariffs repository.TariffRepository,
	airports repository.AirportRepository,
	cities repository.CityRepository,
	opts ...Option,
) *SearchService {
	s := &SearchService{
		segments: segments,
		carriers: carriers,
		tariffs:  tariffs,
		airports: airports,
		cities:   cities,
		logger:   slog.Default(),
		settings: DefaultSettings(),
		weights:  routing.DefaultWeights(),
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SearchService) Search(ctx context.Context, req Request) (*Result, error) {
	const op = "search"
	started := time.Now()
	res := &Result{SearchID: s.newID(), Options: routing.EmptyOptions()}
	log := s.logger.With("search_id", res.SearchID)

	req, err := s.normalize(req)
	if err != nil {
		s.metrics.Observe(metrics.ResultInvalid, time.Since(started), 0, 0)
		return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidRequest, Err: err}
	}
	log.InfoContext(ctx, "search.started",
		"origins", req.Origins,
		"destinations", req.Destinations,
		"date_from", req.DateFrom.Format(domain.DateLayout),
		"date_to", req.DateTo.Format(domain.DateLayout),
		"weight", req.Weight)

	pipeline, err := s.loadPipeline(ctx, req)
	if err != nil {
		err = &domain.OpError{Op: op, Kind: failureKind(err), Err: err}
		log.ErrorContext(ctx, "search.failed", "error", err)
		s.finish(ctx, res, req, started, 0, err)
		return res, err
	}

	candidates, missingLegs, err := s.runPairs(ctx, log, pipeline, req)
	if err != nil {
		err = &domain.OpError{Op: op, Kind: domain.KindCanceled, Err: err}
		log.WarnContext(ctx, "search.cancelled", "error", err)
		s.finish(ctx, res, req, started, 0, err)
		return res, err
	}

	selection := routing.Optimize(candidates, s.weights)
	formatter := routing.NewFormatter(s.directory(log), s.settings.CurrencySymbol, log)
	res.Options = formatter.Format(ctx, selection)
	res.Candidates = len(candidates)

	log.InfoContext(ctx, "search.completed",
		"nodes", pipeline.Graph.NodeCount(),
		"edges", pipeline.Graph.EdgeCount(),
		"candidates", len(candidates),
		"selected", len(selection),
		"missing_tariff_legs", missingLegs,
		"elapsed", time.Since(started))
	s.finish(ctx, res, req, started, missingLegs, nil)
	return res, nil
}

func (s *SearchService) normalize(req Request) (Request, error) {
	req.Origins = uniqueCodes(req.Origins)
	req.Destinations = uniqueCodes(req.Destinations)
	switch {
	case len(req.Origins) == 0:
		return req, fmt.Errorf("%w: at least one origin is required", domain.ErrInvalidRequest)
	case len(req.Destinations) == 0:
		return req, fmt.Errorf("%w: at least one destination is required", domain.ErrInvalidRequest)
	case req.DateFrom.IsZero():
		return req, fmt.Errorf("%w: date_from is required", domain.ErrInvalidRequest)
	case req.DateTo.IsZero():
		req.DateTo = req.DateFrom
	}
	if dateOf(req.DateTo).Before(dateOf(req.DateFrom)) {
		return req, fmt.Errorf("%w: date_to is before date_from", domain.ErrInvalidRequest)
	}
	if req.Weight < 0 || math.IsNaN(req.Weight) || math.IsInf(req.Weight, 0) {
		return req, fmt.Errorf("%w: weight must be a non-negative number", domain.ErrInvalidRequest)
	}
	if req.Weight == 0 {
		req.Weight = s.settings.DefaultWeight
	}
	return req, nil
}

// loadPipeline reads every snapshot input once per search; any failure aborts.
func (s *SearchService) loadPipeline(ctx context.Context, req Request) (routing.Pipeline, error) {
	from := dateOf(req.DateFrom)
	to := dateOf(req.DateTo).AddDate(0, 0, s.settings.BufferDays)

	segments, err := s.segments.ListActive(ctx, from, to)
	if err != nil {
		return routing.Pipeline{}, fmt.Errorf("load segments: %w", err)
	}
	scores, err := s.carrierScores(ctx)
	if err != nil {
		return routing.Pipeline{}, fmt.Errorf("load carrier scores: %w", err)
	}
	rows, err := s.tariffs.ListActive(ctx)
	if err != nil {
		return routing.Pipeline{}, fmt.Errorf("load tariffs: %w", err)
	}

	table := tariff.NewTable(rows,
		tariff.WithPreferredService(s.settings.PreferredService),
		tariff.WithMissingCost(s.settings.MissingTariffCost))

	return routing.Pipeline{
		Graph:   routing.BuildGraph(segments, scores),
		Scores:  scores,
		Tariffs: table,
		Rules:   s.settings.Rules,
		Start:   req.DateFrom,
		Weight:  req.Weight,
	}, nil
}

type pair struct {
	origin      string
	destination string
}

// runPairs evaluates every origin/destination pair on a bounded worker pool. Results
// are collected by pair index so the candidate order does not depend on scheduling.
func (s *SearchService) runPairs(ctx context.Context, log *slog.Logger, p routing.Pipeline, req Request) ([]routing.Candidate, int, error) {
	pairs := make([]pair, 0, len(req.Origins)*len(req.Destinations))
	for _, o := range req.Origins {
		for _, d := range req.Destinations {
			pairs = append(pairs, pair{o, d})
		}
	}

	results := make([]routing.PairResult, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.settings.Workers))
	for i, pr := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.Pair(gctx, pr.origin, pr.destination)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var (
		candidates  []routing.Candidate
		missingLegs int
	)
	for i, r := range results {
		log.DebugContext(ctx, "search.pair",
			"origin", pairs[i].origin,
			"destination", pairs[i].destination,
			"paths", r.Paths,
			"infeasible", r.Infeasible,
			"unschedulable", r.Unschedulable,
			"candidates", len(r.Candidates))
		candidates = append(candidates, r.Candidates...)
		missingLegs += r.MissingTariffLegs
	}
	return candidates, missingLegs, nil
}

func (s *SearchService) carrierScores(ctx context.Context) (domain.CarrierScores, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCarrierScores(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.logger.WarnContext(ctx, "cache.carrier_scores.get_failed", "error", err)
		}
	}

	scores, err := s.carriers.Scores(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetCarrierScores(ctx, scores); err != nil {
			s.logger.WarnContext(ctx, "cache.carrier_scores.set_failed", "error", err)
		}
	}
	return scores, nil
}

// finish records metrics and publishes the search event. Publishing never fails the
// search.
func (s *SearchService) finish(ctx context.Context, res *Result, req Request, started time.Time, missingLegs int, searchErr error) {
	elapsed := time.Since(started)
	outcome := metrics.ResultOK
	switch {
	case searchErr != nil:
		outcome = metrics.ResultError
	case res.Candidates == 0:
		outcome = metrics.ResultEmpty
	}
	s.metrics.Observe(outcome, elapsed, res.Candidates, missingLegs)

	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.SearchEvent{
		SearchID:     res.SearchID,
		Origins:      req.Origins,
		Destinations: req.Destinations,
		DateFrom:     req.DateFrom.Format(domain.DateLayout),
		DateTo:       req.DateTo.Format(domain.DateLayout),
		Weight:       req.Weight,
		Candidates:   res.Candidates,
		Categories:   filledCategories(res.Options),
		DurationMS:   elapsed.Milliseconds(),
		Failed:       searchErr != nil,
		OccurredAt:   time.Now().UTC(),
	}
	if searchErr != nil {
		event.Error = searchErr.Error()
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.producer.Publish(pubCtx, s.topic, res.SearchID, event); err != nil {
		s.logger.WarnContext(ctx, "search.event.publish_failed", "search_id", res.SearchID, "error", err)
	}
}

func (s *SearchService) NearestAirport(ctx context.Context, lat, lon float64) (*domain.Airport, error) {
	const op = "nearest_airport"
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 || math.IsNaN(lat) || math.IsNaN(lon) {
		return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidRequest,
			Err: fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidRequest)}
	}

	airports, err := s.airports.ListActive(ctx)
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindDataAccess, Err: err}
	}
	nearest, ok := geo.Nearest(lat, lon, airports)
	if !ok {
		return nil, &domain.OpError{Op: op, Kind: domain.KindNotFound,
			Err: fmt.Errorf("%w: no active airport has coordinates", domain.ErrNotFound)}
	}
	return &nearest, nil
}

// NearestAirportToCity resolves city within the state uf and returns the active
// airport closest to it.
func (s *SearchService) NearestAirportToCity(ctx context.Context, city, uf string) (*CityAirport, error) {
	const op = "nearest_airport_to_city"
	if domain.NormalizeText(city) == "" || domain.NormalizeText(uf) == "" {
		return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidRequest,
			Err: fmt.Errorf("%w: city and uf are required", domain.ErrInvalidRequest)}
	}

	found, err := s.cities.FindCity(ctx, city, uf)
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindDataAccess, Err: err}
	}
	if found == nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindNotFound,
			Err: fmt.Errorf("%w: city %q in %s", domain.ErrNotFound, city, domain.NormalizeText(uf))}
	}

	airport, err := s.NearestAirport(ctx, found.Latitude, found.Longitude)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "nearest_airport.city",
		"city", found.Name, "uf", found.UF, "iata", airport.IATA, "distance_km", airport.DistanceKm)
	return &CityAirport{City: *found, Airport: *airport}, nil
}

// Airport looks one airport up by IATA code through the airport cache.
func (s *SearchService) Airport(ctx context.Context, iata string) (*domain.Airport, error) {
	const op = "airport"
	code := domain.NormalizeCode(iata)
	if code == "" {
		return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidRequest,
			Err: fmt.Errorf("%w: iata is required", domain.ErrInvalidRequest)}
	}

	found, err := s.directory(s.logger).Airports(ctx, []string{code})
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindDataAccess, Err: err}
	}
	info, ok := found[code]
	if !ok {
		return nil, &domain.OpError{Op: op, Kind: domain.KindNotFound,
			Err: fmt.Errorf("%w: airport %s", domain.ErrNotFound, code)}
	}
	return &domain.Airport{AirportInfo: info}, nil
}

// ListAirports returns every airport of the active batch for pickers.
func (s *SearchService) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	infos, err := s.airports.ListAll(ctx)
	if err != nil {
		return nil, &domain.OpError{Op: "list_airports", Kind: domain.KindDataAccess, Err: err}
	}

	airports := make([]domain.Airport, len(infos))
	for i, a := range infos {
		airports[i] = domain.Airport{AirportInfo: a}
	}
	return airports, nil
}

func (s *SearchService) directory(log *slog.Logger) routing.AirportDirectory {
	return &airportDirectory{repo: s.airports, cache: s.cache, logger: log}
}

// airportDirectory resolves display data through the cache, falling back to the
// repository for the codes the cache does not hold.
type airportDirectory struct {
	repo   repository.AirportRepository
	cache  Cache
	logger *slog.Logger
}

func (d *airportDirectory) Airports(ctx context.Context, codes []string) (map[string]domain.AirportInfo, error) {
	found := make(map[string]domain.AirportInfo, len(codes))
	missing := codes
	if d.cache != nil {
		cached, err := d.cache.GetAirports(ctx, codes)
		if err != nil {
			d.logger.WarnContext(ctx, "cache.airports.get_failed", "error", err)
		}
		missing = make([]string, 0, len(codes))
		for _, c := range codes {
			if a, ok := cached[c]; ok {
				found[c] = a
				continue
			}
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return found, nil
	}

	loaded, err := d.repo.FindByCodes(ctx, missing)
	if err != nil {
		if len(found) > 0 {
			d.logger.WarnContext(ctx, "airports.lookup_failed", "codes", missing, "error", err)
			return found, nil
		}
		return nil, err
	}
	fresh := make([]domain.AirportInfo, 0, len(loaded))
	for _, c := range missing {
		if a, ok := loaded[c]; ok {
			found[c] = a
			fresh = append(fresh, a)
		}
	}
	if d.cache != nil && len(fresh) > 0 {
		if err := d.cache.SetAirports(ctx, fresh); err != nil {
			d.logger.WarnContext(ctx, "cache.airports.set_failed", "error", err)
		}
	}
	return found, nil
}

// failureKind tells a caller-side cancellation apart from a storage failure.
func failureKind(err error) domain.ErrorKind {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.KindCanceled
	}
	return domain.KindDataAccess
}

func filledCategories(opts routing.Options) []string {
	filled := make([]string, 0, len(opts))
	for _, c := range routing.Categories {
		if opts[c] != nil {
			filled = append(filled, string(c))
		}
	}
	return filled
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = domain.NormalizeCode(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ SearchUseCase = (*SearchService)(nil)
