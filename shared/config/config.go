package config

import (
	"context"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public Public
	Env    Env
}

// Public holds file-supplied tunables, loaded from public.yaml.
type Public struct {
	ListenAddr      string        `yaml:"listen_addr" validate:"required"`
	LogLevel        string        `yaml:"log_level" validate:"required"`
	LogJSON         bool          `yaml:"log_json"`
	DefaultLanguage string        `yaml:"default_language" validate:"required"`
	RequestTimeout  time.Duration `yaml:"request_timeout" validate:"required"`
}

// Env holds instance credentials and paths, never written to disk.
type Env struct {
	InstanceURL string `env:"INSTANCE_URL,required"`
	AccessToken string `env:"ACCESS_TOKEN,required"`
	DataDir     string `env:"DATA_DIR,default=data"`
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(output); err != nil {
		panic("config is missing required fields: " + err.Error())
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var env Env
	if err := envconfig.Process(context.Background(), &env); err != nil {
		panic("can't process environment config: " + err.Error())
	}

	return &Config{public, env}
}
