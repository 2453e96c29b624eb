package config

import (
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

// AppConfig ...
type AppConfig struct {
	Storage struct {
		DSN string `yaml:"dsn"`
	}
	AWS struct {
		Region             string `yaml:"region"`
		CredentialsFile    string `yaml:"credentialsFile"`
		CredentialsProfile string `yaml:"credentialsProfile"`
		Retries            int    `yaml:"retries"`
	}
	Consumer struct {
		Queue struct {
			Name string `yaml:"name"`
			URL  string `yaml:"url"`
		}
		WaitTimeSeconds   *int64 `yaml:"waitTimeSeconds"`
		MaxMessages       int64  `yaml:"maxMessages"`
		VisibilityTimeout int64  `yaml:"visibilityTimeout"`
		Expiration        int    `yaml:"expiration"`
		LogLevel          string `yaml:"loglevel"`
	}
	Producer struct {
		Queue struct {
			Name string `yaml:"name"`
			URL  string `yaml:"url"`
		}
		RateMs   int    `yaml:"rateMs"`
		Workers  int    `yaml:"workers"`
		LogLevel string `yaml:"loglevel"`
	}
}

// Read loads the config from the file named by CFG_PATH.
func Read() (*AppConfig, error) {
	filename := os.Getenv("CFG_PATH")
	cfg := &AppConfig{}
	buff, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(buff, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
