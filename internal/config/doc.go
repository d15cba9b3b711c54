// Package config provides the configuration system for codeshot.
//
// Settings are merged from three layers, with higher layers overriding
// lower ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← CODESHOT_*
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/codeshot/settings.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Settings are addressed by dot-separated paths:
//
//	cfg := config.New()
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	theme, err := cfg.GetString("silicon.theme")
//	rounded, err := cfg.GetBool("silicon.roundedCorners")
//
// Set writes into the user layer only; Save persists that layer back to
// settings.toml so defaults and environment overrides never leak into
// the user's file.
package config
