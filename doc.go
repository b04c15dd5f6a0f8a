// File: lixenwraith/layers/doc.go

// Package layers provides a layered configuration registry for Go
// applications: defaults, a configuration file, environment variables,
// and explicit runtime overrides unified behind a single dot-notation
// key space with deterministic precedence.
//
// Features:
//   - Four precedence-ordered layers: overrides > environment > config file > defaults
//   - Case-insensitive dot-path addressing over nested key/value trees
//   - RFC 7386 style deep merge with nil-as-delete semantics
//   - Key aliasing with transitive resolution and cycle detection
//   - Environment variable bindings plus automatic prefix-derived lookup
//   - TOML, YAML, JSON, and dotenv file formats
//   - Config file discovery across an ordered search-path list
//   - Crash-safe writes (temp file, backup, atomic replace)
//   - Struct decoding via mapstructure and typed accessors via cast
//
// Quick Start:
//
//	reg := layers.New()
//	reg.SetDefault("server.port", 8080)
//	reg.SetConfigName("app")
//	reg.SetConfigType("toml")
//	reg.AddConfigPath("/etc/app")
//	if err := reg.ReadInConfig(); err != nil {
//	    var nf layers.ConfigFileNotFoundError
//	    if !errors.As(err, &nf) {
//	        log.Fatal(err)
//	    }
//	}
//	reg.SetEnvPrefix("APP")
//	reg.AutomaticEnv()
//
//	port := reg.GetInt("server.port")
//
// Precedence (highest to lowest):
//  1. Overrides (Set)
//  2. Environment variables (BindEnv / AutomaticEnv)
//  3. Configuration file (ReadInConfig / MergeInConfig / MergeConfigMap)
//  4. Default values (SetDefault / SetDefaults)
//
// Keys are case-insensitive everywhere: "Server.Port", "server.port" and
// "SERVER.PORT" address the same value. Case information is discarded at
// the point of first use.
//
// Concurrency:
// A Registry performs no internal locking. It models a single logical
// thread of control; callers mutating a Registry from multiple goroutines
// must synchronize externally. Environment variables are read live from
// the injected provider on every lookup, never cached.
package layers
