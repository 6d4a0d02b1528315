// Package config loads lunchtray's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it (a leading ~ is expanded)
//  2. Otherwise, use $XDG_CONFIG_HOME/lunchtray/config.toml
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing, empty or malformed, use defaults
//
// Only invalid TOML is an error. A malformed cutoff_time silently becomes
// 10:00, matching how the menu package reads it.
//
// # Example
//
//	district_id = "8571dba1-79cf-eb11-a2c4-f81ec5475527"
//	building_id = "b812a68d-5ed4-eb11-a2c4-87353d5bc03e"
//	menu_plans = ["K-12 Breakfast", "Elementary Lunch"]
//	cutoff_time = "10:00"
//	update_interval = 180 # minutes
//	calendar_days = 30
//	log_level = "info"
//	cache_path = "off"    # disable the snapshot cache
//
// # Default Values
//
//   - API base: https://api.linqconnect.com/api
//   - Log file: $XDG_STATE_HOME/lunchtray/lunchtray.log
//   - Cache: $XDG_CACHE_HOME/lunchtray/snapshot.db
package config
