package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	UITerminal = "terminal"
	UIWeb      = "web"
)

type Config struct {
	LogLevel   string   `yaml:"log-level" env:"GOMOKU_LOG_LEVEL" env-default:"info"`
	UI         string   `yaml:"ui" env:"GOMOKU_UI" env-default:"terminal"`
	HTTPPort   string   `yaml:"http-port" env:"GOMOKU_HTTP_PORT" env-default:"9090"`
	SocketPort string   `yaml:"socket-port" env:"GOMOKU_SOCKET_PORT" env-default:"9091"`
	Board      Board    `yaml:"board"`
	Terminal   Terminal `yaml:"terminal"`
}

// Board holds the grid geometry. Size is read once at start-up.
type Board struct {
	Size   int     `yaml:"size" env:"GOMOKU_BOARD_SIZE" env-default:"15"`
	Margin float64 `yaml:"margin" env:"GOMOKU_BOARD_MARGIN" env-default:"30"`
	Pitch  float64 `yaml:"pitch" env:"GOMOKU_BOARD_PITCH" env-default:"30"`
}

// Terminal geometry is counted in screen cells; every intersection is two columns wide.
type Terminal struct {
	MarginX int `yaml:"margin-x" env:"GOMOKU_TERMINAL_MARGIN_X" env-default:"4"`
	MarginY int `yaml:"margin-y" env:"GOMOKU_TERMINAL_MARGIN_Y" env-default:"2"`
}

var (
	ErrInvalidBoardSize = errors.New("board size must be positive")
	ErrInvalidPitch     = errors.New("board pitch must be positive")
	ErrUnknownUI        = errors.New("unknown ui")
)

// MustLoad - load all configurations in config.yml file. A missing file falls back to the
// environment and defaults; a .env next to it is loaded first when present.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(filepath.Dir(path), ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err = cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Board.Size < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidBoardSize, that.Board.Size)
	}

	if that.Board.Pitch <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPitch, that.Board.Pitch)
	}

	switch that.UI {
	case UITerminal, UIWeb:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUI, that.UI)
	}
}
