// Package config loads engine settings from YAML or JSON.
//
// Config wraps a decoded document and offers typed accessors with defaults.
// Keys may be dotted paths into nested maps:
//
//	cfg, err := config.FromFile("engine.yaml")
//	driver := cfg.String("store.driver", "memory")
//
// A document such as
//
//	engine:
//	  id: main
//	store:
//	  driver: sqlite
//	  path: ./animexpr.db
//	log:
//	  level: debug
//
// is turned into Settings with Load.
//
// Environment variables can override a file:
//
//	cfg = config.Merge(cfg, config.FromEnv("ANIMEXPR", os.Environ()))
//
// ANIMEXPR_STORE_DRIVER=memory then sets store.driver.
package config
