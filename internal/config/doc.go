// Package config loads and validates the synco.json sync job settings.
package config
