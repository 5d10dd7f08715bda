// Package config holds the engine's timing, layout and display settings.
package config
