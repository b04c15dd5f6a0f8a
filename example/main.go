// File: lixenwraith/layers/example/main.go

// Demonstrates the layered registry end to end: defaults, a config
// file written and re-read, environment overlay, runtime overrides,
// aliases, sub-registries, and struct decoding.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lixenwraith/layers"
)

type AppConfig struct {
	Server struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		URL      string `mapstructure:"url"`
		MaxConns int    `mapstructure:"max_conns"`
	} `mapstructure:"database"`
}

func main() {
	dir, err := os.MkdirTemp("", "layers-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// Defaults: the lowest-precedence layer.
	reg := layers.New()
	reg.SetDefaults(map[string]any{
		"server": map[string]any{
			"host": "localhost",
			"port": 8080,
		},
		"database": map[string]any{
			"url":       "sqlite://memory",
			"max_conns": 10,
		},
	})

	// Write the resolved settings out, then read them back as the
	// config-file layer of a fresh registry.
	configPath := filepath.Join(dir, "app.toml")
	if err := reg.WriteConfigAs(configPath); err != nil {
		log.Fatal(err)
	}
	fmt.Println("wrote", configPath)

	reg = layers.New()
	reg.SetConfigFile(configPath)
	if err := reg.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("config file in use:", reg.ConfigFileUsed())

	// Environment beats the config file.
	os.Setenv("APP_SERVER_PORT", "9090")
	defer os.Unsetenv("APP_SERVER_PORT")
	reg.SetEnvPrefix("APP")
	reg.AutomaticEnv()
	fmt.Println("port after env:", reg.GetInt("server.port")) // 9090

	// Overrides beat everything.
	reg.Set("server.port", 4000)
	fmt.Println("port after override:", reg.GetInt("server.port")) // 4000

	// Aliases resolve transparently at lookup time.
	if err := reg.RegisterAlias("db.url", "database.url"); err != nil {
		log.Fatal(err)
	}
	fmt.Println("db.url:", reg.GetString("db.url"))

	// Sub-registries are independent copies of a nested section.
	if db := reg.Sub("database"); db != nil {
		db.Set("url", "postgres://prod")
		fmt.Println("sub url:", db.GetString("url"))           // postgres://prod
		fmt.Println("parent url:", reg.GetString("database.url")) // unchanged
	}

	// Struct decoding over the fully resolved settings.
	var cfg AppConfig
	if err := reg.Unmarshal(&cfg); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("decoded: %+v\n", cfg)
}
