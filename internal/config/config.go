package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Application struct {
	Host          string        `koanf:"host"`
	Timezone      string        `koanf:"timezone"`
	Locale        string        `koanf:"locale"`
	Notifications Notifications `koanf:"notifications"`
	Storage       Storage       `koanf:"storage"`
}

type Notifications struct {
	History int `koanf:"history"`
}

type Storage struct {
	Backend string   `koanf:"backend"`
	Dir     string   `koanf:"dir"`
	SQLite  SQLite   `koanf:"sqlite"`
	DB      Database `koanf:"db"`
}

type SQLite struct {
	Path string `koanf:"path"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Defaults() Application {
	return Application{
		Host:     ":8181",
		Timezone: "Local",
		Locale:   "en-IN",
		Notifications: Notifications{
			History: 50,
		},
		Storage: Storage{
			Backend: BackendFile,
			Dir:     "data",
			SQLite: SQLite{
				Path: "data/pennywise.db",
			},
			DB: Database{
				Host:   "localhost",
				Port:   5432,
				User:   "pennywise",
				Pass:   "",
				Name:   "pennywise",
				Schema: "pennywise",
			},
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "PENNYWISE_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "PENNYWISE_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

// Validate reports every problem at once.
func (a Application) Validate() error {
	var errs []error
	if a.Host == "" {
		errs = append(errs, errors.New("host must not be empty"))
	}
	if _, err := a.Location(); err != nil {
		errs = append(errs, fmt.Errorf("invalid timezone %q: %w", a.Timezone, err))
	}
	if a.Locale != "" {
		if _, err := language.Parse(a.Locale); err != nil {
			errs = append(errs, fmt.Errorf("invalid locale %q: %w", a.Locale, err))
		}
	}
	if a.Notifications.History < 1 {
		errs = append(errs, errors.New("notifications.history must be at least 1"))
	}

	switch a.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if a.Storage.Dir == "" {
			errs = append(errs, errors.New("storage.dir is required for the file backend"))
		}
	case BackendSQLite:
		if a.Storage.SQLite.Path == "" {
			errs = append(errs, errors.New("storage.sqlite.path is required for the sqlite backend"))
		}
	case BackendPostgres:
		db := a.Storage.DB
		if db.Host == "" || db.Name == "" || db.User == "" {
			errs = append(errs, errors.New("storage.db host, name and user are required for the postgres backend"))
		}
		if db.Port <= 0 || db.Port > 65535 {
			errs = append(errs, fmt.Errorf("storage.db.port %d is out of range", db.Port))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", a.Storage.Backend))
	}
	return errors.Join(errs...)
}

// Location resolves the configured timezone. Empty means the process local zone.
func (a Application) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}
