package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	Cfg_verbose    = "verbose"
	Cfg_apiPort    = "api_port"
	Cfg_daemonAddr = "daemon_addr"
	Cfg_keystore   = "keystore"
)

var (
	defaults = map[string]interface{}{
		Cfg_verbose:    false,
		Cfg_apiPort:    50051,
		Cfg_daemonAddr: "localhost:50051",
		Cfg_keystore:   "",
	}
)

func init() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func GetConfig() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("mockchain")
	viper.AddConfigPath("/etc/mockchain/")
	viper.AddConfigPath("$HOME/.mockchain")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("MOCKCHAIN")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error
			logrus.New().Warnf("no config found")
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	c := &Config{}

	c.chain, err = buildChainConfig()
	if err != nil {
		return nil, errors.Wrap(err, "chain config")
	}

	if viper.GetBool(Cfg_verbose) {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.WithField("level", "debug").Debug("setting log level")
	}

	return c, nil
}

type Config struct {
	chain *Chain
}

func (c *Config) Chain() *Chain {
	return c.chain
}

// KeystorePath resolves the wallet keystore file, defaulting to
// $HOME/.mockchain/keystore.yaml and creating the parent directory.
func KeystorePath() (string, error) {
	path := viper.GetString(Cfg_keystore)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolving home dir")
		}
		path = filepath.Join(home, ".mockchain", "keystore.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", errors.Wrap(err, "creating keystore dir")
	}

	return path, nil
}
