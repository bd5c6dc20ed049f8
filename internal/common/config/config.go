package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type DB struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
	Name string `yaml:"database"`
}

type MQ struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	User  string `yaml:"user"`
	Pass  string `yaml:"password"`
	VHost string `yaml:"vhost"`
}

type HTTP struct {
	Port int `yaml:"port"`
}

type Auth struct {
	// JWTSecret signs bearer tokens. POS_JWT_SECRET overrides the file value.
	JWTSecret string `yaml:"jwt_secret"`
	TokenTTL  int    `yaml:"token_ttl_hours"`
}

type Masters struct {
	// Path of the SQLite masters database (menu, users, tables, waiters).
	Path string `yaml:"path"`
}

type App struct {
	Database DB      `yaml:"database"`
	Rabbit   MQ      `yaml:"rabbitmq"`
	HTTP     HTTP    `yaml:"http"`
	Auth     Auth    `yaml:"auth"`
	Masters  Masters `yaml:"masters"`
}

func Load(path string) (App, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return App{}, fmt.Errorf("read config: %w", err)
	}
	a := App{
		Rabbit:  MQ{Port: 5672, VHost: "/"},
		HTTP:    HTTP{Port: 3000},
		Auth:    Auth{TokenTTL: 24},
		Masters: Masters{Path: "masters.db"},
	}
	a.Database.Port = 5432
	if err := yaml.Unmarshal(b, &a); err != nil {
		return App{}, fmt.Errorf("parse config: %w", err)
	}
	if s := os.Getenv("POS_JWT_SECRET"); s != "" {
		a.Auth.JWTSecret = s
	}
	if a.Auth.JWTSecret == "" {
		return App{}, fmt.Errorf("invalid config: auth.jwt_secret is required")
	}
	return a, nil
}

func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
