// Package config loads game settings and the catalog tables from the embedded
// defaults, an optional yaml file and command line flags.
package config

import (
	_ "embed"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/dopewars/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

const (
	scoresBackendFile   = "file"
	scoresBackendSQLite = "sqlite"
)

type Config struct {
	Days          int
	StartingCash  int
	StartCity     string
	Seed          uint64
	ScoresBackend string
	ScoresPath    string
	JournalDir    string
	MetricsPath   string
	LogFile       string
	Catalog       domain.Catalog
}

type ConfigTmp struct {
	Days          int    `yaml:"days"`
	StartingCash  int    `yaml:"starting_cash"`
	StartCity     string `yaml:"start_city"`
	Seed          uint64 `yaml:"seed"`
	ScoresBackend string `yaml:"scores_backend"`
	ScoresPath    string `yaml:"scores_path"`
	JournalDir    string `yaml:"journal_dir"`
	MetricsPath   string `yaml:"metrics_path"`
	LogFile       string `yaml:"log_file"`

	Commodities []domain.CommodityArchetype `yaml:"commodities"`
	Banks       []BankTmp                   `yaml:"banks"`
	Weapons     []WeaponTmp                 `yaml:"weapons"`
	Cities      []CityTmp                   `yaml:"cities"`
	Encounters  []EncounterTmp              `yaml:"encounters"`
}

type BankTmp struct {
	Name                string `yaml:"name"`
	InterestRate        string `yaml:"interest_rate"`
	MinimumFirstDeposit int    `yaml:"minimum_first_deposit,omitempty"`
}

type WeaponTmp struct {
	Name     string   `yaml:"name"`
	Price    int      `yaml:"price"`
	Counters []string `yaml:"counters"`
}

type CityTmp struct {
	Name    string   `yaml:"name"`
	Bank    string   `yaml:"bank,omitempty"`
	Store   string   `yaml:"store,omitempty"`
	Weapons []string `yaml:"weapons,omitempty"`
}

type EncounterTmp struct {
	Kind   string `yaml:"kind"`
	Weight int    `yaml:"weight"`
}

// Get parses the process flags.
func Get() (Config, error) {
	return Parse(os.Args[1:])
}

// Parse builds the config from args. Values come from the embedded defaults,
// then the -config file if given, then any flag set explicitly.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("dopewars", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to yaml config")
	days := fs.Int("days", 30, "number of days in a game")
	cash := fs.Int("cash", 500, "starting cash")
	seed := fs.Uint64("seed", 0, "random seed, 0 picks one from the clock")
	scoresPath := fs.String("scores", "", "high score file or database path")
	scoresBackend := fs.String("scores-backend", scoresBackendFile, "high score storage: file or sqlite")
	journalDir := fs.String("journal", "./wal/journal", "game journal directory")
	metricsPath := fs.String("metrics", "./data/dopewars.prom", "metrics textfile written on exit, empty to disable")
	logFile := fs.String("log", "dopewars.log", "log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	tmp, err := defaults()
	if err != nil {
		return Config{}, err
	}
	if *configPath != "" {
		f, err := os.ReadFile(*configPath)
		if err != nil {
			return Config{}, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(f, &tmp); err != nil {
			return Config{}, errors.Wrap(err, "decode config")
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "days":
			tmp.Days = *days
		case "cash":
			tmp.StartingCash = *cash
		case "seed":
			tmp.Seed = *seed
		case "scores":
			tmp.ScoresPath = *scoresPath
		case "scores-backend":
			tmp.ScoresBackend = *scoresBackend
		case "journal":
			tmp.JournalDir = *journalDir
		case "metrics":
			tmp.MetricsPath = *metricsPath
		case "log":
			tmp.LogFile = *logFile
		}
	})

	return tmp.build()
}

// Default returns the embedded configuration.
func Default() (Config, error) {
	tmp, err := defaults()
	if err != nil {
		return Config{}, err
	}
	return tmp.build()
}

func defaults() (ConfigTmp, error) {
	var tmp ConfigTmp
	if err := yaml.Unmarshal(defaultsYAML, &tmp); err != nil {
		return ConfigTmp{}, errors.Wrap(err, "decode embedded defaults")
	}
	return tmp, nil
}

func (c ConfigTmp) build() (Config, error) {
	catalog, err := c.catalog()
	if err != nil {
		return Config{}, err
	}

	conf := Config{
		Days:          c.Days,
		StartingCash:  c.StartingCash,
		StartCity:     c.StartCity,
		Seed:          c.Seed,
		ScoresBackend: c.ScoresBackend,
		ScoresPath:    c.ScoresPath,
		JournalDir:    c.JournalDir,
		MetricsPath:   c.MetricsPath,
		LogFile:       c.LogFile,
		Catalog:       catalog,
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}

	return conf, nil
}

func (c ConfigTmp) catalog() (domain.Catalog, error) {
	catalog := domain.Catalog{
		Commodities: append([]domain.CommodityArchetype(nil), c.Commodities...),
	}

	for _, b := range c.Banks {
		rate, err := decimal.NewFromString(b.InterestRate)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("incorrect 'interest_rate' param for bank %q (must be a decimal, e.g. 0.04), error: %w", b.Name, err)
		}
		catalog.Banks = append(catalog.Banks, domain.BankSpec{
			Name:                b.Name,
			InterestRate:        rate,
			MinimumFirstDeposit: b.MinimumFirstDeposit,
		})
	}

	for _, w := range c.Weapons {
		counters := make([]domain.EncounterKind, 0, len(w.Counters))
		for _, k := range w.Counters {
			counters = append(counters, domain.EncounterKind(k))
		}
		catalog.Weapons = append(catalog.Weapons, domain.Weapon{Name: w.Name, Price: w.Price, Counters: counters})
	}

	for _, city := range c.Cities {
		catalog.Cities = append(catalog.Cities, domain.CitySpec{
			Name:    city.Name,
			Bank:    city.Bank,
			Store:   city.Store,
			Weapons: append([]string(nil), city.Weapons...),
		})
	}

	for _, e := range c.Encounters {
		catalog.Encounters = append(catalog.Encounters, domain.EncounterWeight{
			Kind:   domain.EncounterKind(e.Kind),
			Weight: e.Weight,
		})
	}

	return catalog, nil
}

// Validate checks the settings and the catalog.
func (c Config) Validate() error {
	if c.Days <= 0 {
		return fmt.Errorf("invalid days %d, must be positive", c.Days)
	}
	if c.StartingCash < 0 {
		return fmt.Errorf("invalid starting cash %d, must not be negative", c.StartingCash)
	}
	if c.ScoresBackend != scoresBackendFile && c.ScoresBackend != scoresBackendSQLite {
		return fmt.Errorf("invalid scores backend %q, use %s or %s", c.ScoresBackend, scoresBackendFile, scoresBackendSQLite)
	}
	if err := c.Catalog.Validate(); err != nil {
		return errors.Wrap(err, "invalid catalog")
	}
	if _, ok := c.Catalog.City(c.StartCity); !ok {
		return fmt.Errorf("start city %q is not in the catalog", c.StartCity)
	}
	return nil
}
