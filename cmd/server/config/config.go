// Package config holds the server configuration container. Values load
// through goliatone/go-config, so defaults here can be overlaid from
// config files or the environment.
package config

import (
	"fmt"
	"strings"
)

// AppConfig is the root configuration struct.
type AppConfig struct {
	Server Server `json:"server" koanf:"server"`
	Auth   Auth   `json:"auth" koanf:"auth"`
}

type Server struct {
	Address string `json:"address" koanf:"address"`
	Debug   bool   `json:"debug" koanf:"debug"`
}

type Auth struct {
	ContextKey             string   `json:"context_key" koanf:"context_key"`
	PublicPaths            []string `json:"public_paths" koanf:"public_paths"`
	SeedTokens             []string `json:"seed_tokens" koanf:"seed_tokens"`
	SuppressInternalDetail bool     `json:"suppress_internal_detail" koanf:"suppress_internal_detail"`
}

func (a AppConfig) Validate() error {
	if addr := a.Server.Address; addr != "" && !strings.Contains(addr, ":") {
		return fmt.Errorf("server address %q must be host:port", addr)
	}
	return nil
}

func (a AppConfig) GetServer() Server {
	return a.Server
}

func (a AppConfig) GetAuth() Auth {
	return a.Auth
}

func (s Server) GetAddress() string {
	if s.Address == "" {
		return ":8080"
	}
	return s.Address
}

func (s Server) GetDebug() bool {
	return s.Debug
}

func (a Auth) GetContextKey() string {
	return a.ContextKey
}

func (a Auth) GetPublicPaths() []string {
	return a.PublicPaths
}

func (a Auth) GetSeedTokens() []string {
	return a.SeedTokens
}

func (a Auth) GetSuppressInternalDetail() bool {
	return a.SuppressInternalDetail
}
