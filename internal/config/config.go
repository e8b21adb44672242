package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/sigmaspace/ergochain/pkg/chain"
)

var (
	defaults = map[string]interface{}{
		"verbose": false,
		"network": "mainnet",
	}
)

func init() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func GetConfig() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("ergochain")
	viper.AddConfigPath("/etc/ergochain/")
	viper.AddConfigPath("$HOME/.ergochain")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("ERGOCHAIN")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	c := &Config{}

	c.network, err = buildNetwork()
	if err != nil {
		return nil, errors.Wrap(err, "network config")
	}

	if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.WithField("level", "debug").Debug("setting log level")
	}

	return c, nil
}

func buildNetwork() (chain.NetworkPrefix, error) {
	switch n := viper.GetString("network"); n {
	case "mainnet":
		return chain.Mainnet, nil
	case "testnet":
		return chain.Testnet, nil
	default:
		return 0, errors.Errorf("unknown network %q", n)
	}
}

type Config struct {
	network chain.NetworkPrefix
}

func (c *Config) Network() chain.NetworkPrefix {
	return c.network
}
