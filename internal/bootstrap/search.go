package bootstrap

import (
	"github.com/Domenick1991/airroutes/config"
	"github.com/Domenick1991/airroutes/internal/routing"
	"github.com/Domenick1991/airroutes/internal/service/search"
)

// SearchOptions maps configuration onto search service options. Call after
// config defaults have been applied.
func SearchOptions(cfg *config.Config) []search.Option {
	settings := search.Settings{
		Rules: routing.Rules{
			MaxHops:       cfg.Search.MaxHops,
			MinConnection: cfg.Search.MinConnection(),
			MaxConnection: cfg.Search.MaxConnection(),
		},
		BufferDays:        cfg.Search.SnapshotBufferDays,
		DefaultWeight:     cfg.Search.DefaultWeight,
		Workers:           cfg.Search.Workers,
		CurrencySymbol:    cfg.Search.CurrencySymbol,
		PreferredService:  cfg.Search.PreferredTariffService,
		MissingTariffCost: cfg.Search.MissingTariffCost,
	}
	return []search.Option{
		search.WithSettings(settings),
		search.WithWeights(Weights(cfg.Weights)),
	}
}

// Weights overrides the default score weights with every configured value. An
// explicit 0 switches the term off.
func Weights(cfg config.WeightsConfig) routing.Weights {
	w := routing.DefaultWeights()
	override(&w.Duration, cfg.Duration)
	override(&w.Cost, cfg.Cost)
	override(&w.Stops, cfg.Stops)
	override(&w.Affinity, cfg.Affinity)
	override(&w.MissingTariffPenalty, cfg.MissingTariffPenalty)
	return w
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
