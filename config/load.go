package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load reads an optional .env file, parses the environment and decodes the
// university directory.
func Load() (Configs, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Configs{}, err
	}

	var cfg Configs
	if err := env.Parse(&cfg); err != nil {
		return Configs{}, err
	}

	dir, err := LoadUniversityDirectory(cfg.University.DirectoryFile)
	if err != nil {
		return Configs{}, err
	}
	cfg.University.Directory = dir

	return cfg, nil
}
