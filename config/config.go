package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jaki95/music-bingo/internal/bingo"
	"github.com/jaki95/music-bingo/internal/domain"
)

type Config struct {
	LogLevel int    `yaml:"log_level"`
	Songs    string `yaml:"songs"`

	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
}

type GameConfig struct {
	// ID defaults to today's date at generation time when empty.
	ID              string `yaml:"id"`
	Title           string `yaml:"title"`
	Mode            string `yaml:"mode"`
	Rows            int    `yaml:"rows"`
	Columns         int    `yaml:"columns"`
	NumberOfTickets int    `yaml:"tickets"`
	PageOrder       *bool  `yaml:"page_order"`

	LeadIn     time.Duration `yaml:"lead_in"`
	Transition time.Duration `yaml:"transition"`
}

type StorageConfig struct {
	// Type of storage: "local" or "gcs"
	Type string `yaml:"type"`

	// Local storage options
	OutputDir string `yaml:"output_dir"`

	GCS GCSConfig `yaml:"gcs"`
}

type GCSConfig struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

// Load reads the YAML file at path, applies environment overrides and fills
// in defaults. A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config

	// Unmarshal the YAML data into the struct
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	config.applyEnv()
	config.applyDefaults()
	return config, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	_ = godotenv.Load()

	config := &Config{}
	config.applyEnv()
	config.applyDefaults()
	return config
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"BINGO_STORAGE_TYPE":             &c.Storage.Type,
		"BINGO_OUTPUT_DIR":               &c.Storage.OutputDir,
		"BINGO_GCS_BUCKET":               &c.Storage.GCS.Bucket,
		"BINGO_GCS_PREFIX":               &c.Storage.GCS.Prefix,
		"GOOGLE_APPLICATION_CREDENTIALS": &c.Storage.GCS.CredentialsFile,
	}
	for key, field := range overrides {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*field = value
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Game.Mode == "" {
		c.Game.Mode = string(domain.ModeBingo)
	}
	if c.Game.Rows == 0 {
		c.Game.Rows = 3
	}
	if c.Game.Columns == 0 {
		c.Game.Columns = 5
	}
	if c.Game.NumberOfTickets == 0 {
		c.Game.NumberOfTickets = 24
	}
	if c.Game.PageOrder == nil {
		pageOrder := true
		c.Game.PageOrder = &pageOrder
	}

	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}

	if c.Storage.OutputDir == "" {
		c.Storage.OutputDir = "output"
	}
}

// Options converts the game section into generator options.
func (c *Config) Options() (bingo.Options, error) {
	mode, err := domain.ParseGameMode(c.Game.Mode)
	if err != nil {
		return bingo.Options{}, err
	}
	return bingo.Options{
		GameID:          c.Game.ID,
		Title:           c.Game.Title,
		Mode:            mode,
		Rows:            c.Game.Rows,
		Columns:         c.Game.Columns,
		NumberOfTickets: c.Game.NumberOfTickets,
		PageOrder:       c.Game.PageOrder == nil || *c.Game.PageOrder,
		LeadIn:          c.Game.LeadIn,
		Transition:      c.Game.Transition,
	}, nil
}
