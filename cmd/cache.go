package main

import (
	"github.com/anpylar/anpylar/cache"
	"github.com/anpylar/anpylar/frontend"
	"github.com/anpylar/anpylar/frontend/paket"
	"github.com/rs/zerolog"
)

// openCache opens the minify cache when enabled. Failing to open it only
// disables caching.
func openCache(cfg *frontend.Config, log zerolog.Logger) (cache.Store, func()) {
	if !cfg.Cache.Enabled {
		return nil, func() {}
	}
	store, err := cache.NewBadger(cache.Options{Dir: cfg.Cache.Dir})
	if err != nil {
		log.Warn().Err(err).Msg("minify cache disabled")
		return nil, func() {}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("closing minify cache")
		}
	}
}

// extensions returns the flag list if given, the configured one otherwise.
func extensions(flag string, cfg *frontend.Config) []string {
	if flag != "" {
		return paket.ParseExtensions(flag)
	}
	return cfg.Paket.Extensions
}
