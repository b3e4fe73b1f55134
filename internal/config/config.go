package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"sixmax-holdem/internal/util"
)

// Config provides configuration for the hold'em simulator
type Config struct {
	loaded     bool
	ListenAddr string `yaml:"listenAddr" envconfig:"listen_addr"`
	DataDir    string `yaml:"dataDir" envconfig:"data_dir"`
	Log        struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Game struct {
		StartingChips int `yaml:"startingChips" envconfig:"starting_chips"`
		SmallBlind    int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind      int `yaml:"bigBlind" envconfig:"big_blind"`
		TurnSeconds   int `yaml:"turnSeconds" envconfig:"turn_seconds"`
	} `yaml:"game"`
}

// Defaults returns the configuration used when nothing is specified
func Defaults() Config {
	c := Config{
		ListenAddr: ":5000",
		DataDir:    "data",
	}
	c.Game.StartingChips = 1000
	c.Game.SmallBlind = 10
	c.Game.BigBlind = 20
	c.Game.TurnSeconds = 15

	return c
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is not an error;
// the defaults plus environment overrides are used instead
func Load() error {
	config = Defaults()

	configFile := util.Getenv("SMH_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("smh", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
