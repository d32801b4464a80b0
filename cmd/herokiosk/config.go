package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"herorun/lib/player"
)

type Config struct {
	Site   string       `yaml:"site"`
	Player PlayerConfig `yaml:"player"`
	Deck   DeckConfig   `yaml:"deck"`
	MIDI   MIDIConfig   `yaml:"midi"`
}

type PlayerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DeckConfig struct {
	Enabled    bool `yaml:"enabled"`
	Brightness int  `yaml:"brightness"`
}

type MIDIConfig struct {
	Port    string `yaml:"port"`
	PadBase int    `yaml:"padBase"`
}

func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.Player.Host = "127.0.0.1"
	cfg.Player.Port = player.DefaultPort
	cfg.Deck.Brightness = 80
	cfg.MIDI.PadBase = 36

	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	if cfg.Site == "" {
		return nil, fmt.Errorf("config %s: site path is required", path)
	}
	if cfg.Player.Port < 1 || cfg.Player.Port > 65535 {
		return nil, fmt.Errorf("config %s: player port %d out of range", path, cfg.Player.Port)
	}
	if cfg.Deck.Brightness < 0 || cfg.Deck.Brightness > 100 {
		return nil, fmt.Errorf("config %s: deck brightness %d out of range 0..100", path, cfg.Deck.Brightness)
	}
	if cfg.MIDI.PadBase < 0 || cfg.MIDI.PadBase > 127 {
		return nil, fmt.Errorf("config %s: midi padBase %d out of range 0..127", path, cfg.MIDI.PadBase)
	}

	return cfg, nil
}
