// Package config provides the configuration system for x5.
//
// # Architecture
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← X5_EDITOR_WRAP_WIDTH, X5_LOG_LEVEL, X5_LOG_FILE
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/x5/config.toml (.yaml, .lua)
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Load merges layers 1 to 3 and decodes them into a typed Config; the
// caller applies flags with ApplyOverrides.
//
// # Settings
//
//	[editor]
//	wrap_width = 0      # 0: terminal width, < 0: no wrapping
//
//	[log]
//	level = "info"      # debug, info, warn, error
//	file = ""           # empty: logging disabled
//
//	[keymap]
//	"ctrl+w" = "quit"   # key = action, "none" unbinds
//
// # Sub-packages
//
//   - loader: Configuration file loading (TOML, YAML, Lua, environment variables)
//   - watcher: fsnotify based change detection for live reload
package config
