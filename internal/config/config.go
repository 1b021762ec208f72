package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ArchiveRedis  = "redis"
	ArchiveSQLite = "sqlite"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"KXO_LOG_LEVEL" env-default:"info"`
	Kernel   Kernel  `yaml:"kernel"`
	Archive  Archive `yaml:"archive"`
}

// Kernel names the three files the kxo module exposes.
type Kernel struct {
	DevicePath string `yaml:"device-path" env:"KXO_DEVICE_PATH" env-default:"/dev/kxo"`
	StatusPath string `yaml:"status-path" env:"KXO_STATUS_PATH" env-default:"/sys/module/kxo/initstate"`
	AttrPath   string `yaml:"attr-path" env:"KXO_ATTR_PATH" env-default:"/sys/class/kxo/kxo/kxo_state"`
}

// Archive selects where completed games are persisted after the session.
// An empty backend disables archiving.
type Archive struct {
	Backend    string `yaml:"backend" env:"KXO_ARCHIVE_BACKEND" env-default:""`
	Redis      Redis  `yaml:"redis"`
	SQLitePath string `yaml:"sqlite-path" env:"KXO_ARCHIVE_SQLITE_PATH" env-default:"kxo-games.db"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in the config file, falling back to
// environment variables and defaults when the file does not exist.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read environment: %w", err))
		}
		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
