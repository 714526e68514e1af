package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"buylist/internal/buylist"
	"buylist/internal/model"
	"buylist/internal/persist"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "buylist.db"
	DefaultLogName        = "buylist.log"
	envConfigPath         = "BUYLIST_CONFIG"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Increment string `toml:"increment"`
	Decrement string `toml:"decrement"`
	Toggle    string `toml:"toggle"`
	Delete    string `toml:"delete"`
	Rename    string `toml:"rename"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
}

type SeedItem struct {
	Name      string `toml:"name"`
	Quantity  int    `toml:"quantity"`
	Purchased bool   `toml:"purchased"`
}

type Config struct {
	DBPath     string     `toml:"db_path"`
	StorageKey string     `toml:"storage_key"`
	LogPath    string     `toml:"log_path"`
	LogLevel   string     `toml:"log_level"`
	Keys       Keymap     `toml:"keys"`
	Seed       []SeedItem `toml:"seed"`
}

// SeedItems returns the configured seed as list records.
func (c Config) SeedItems() []model.Item {
	out := make([]model.Item, 0, len(c.Seed))
	for _, s := range c.Seed {
		out = append(out, model.Item{Name: s.Name, Quantity: s.Quantity, Purchased: s.Purchased})
	}
	return out
}

// ResolveConfigPath picks $BUYLIST_CONFIG, then the XDG config dir, then
// ~/.config/buylist, falling back to the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "buylist", DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Relative db and log paths are resolved against the
// config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return resolvePaths(path, cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	// Array tables append to a non-nil slice, so the default seed only
	// applies when the file has none.
	cfg.Seed = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Seed == nil {
		cfg.Seed = seedFromItems(buylist.DefaultSeed())
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = persist.DefaultKey
	}
	cfg.Keys = fillKeys(cfg.Keys, defaultKeys())
	return resolvePaths(path, cfg), nil
}

func resolvePaths(configPath string, cfg Config) Config {
	dir := filepath.Dir(configPath)
	if cfg.DBPath != "" && !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(dir, cfg.DBPath)
	}
	if cfg.LogPath != "" && !filepath.IsAbs(cfg.LogPath) {
		cfg.LogPath = filepath.Join(dir, cfg.LogPath)
	}
	return cfg
}

func fillKeys(k, d Keymap) Keymap {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Keymap{
		Quit:      pick(k.Quit, d.Quit),
		Add:       pick(k.Add, d.Add),
		Up:        pick(k.Up, d.Up),
		Down:      pick(k.Down, d.Down),
		Increment: pick(k.Increment, d.Increment),
		Decrement: pick(k.Decrement, d.Decrement),
		Toggle:    pick(k.Toggle, d.Toggle),
		Delete:    pick(k.Delete, d.Delete),
		Rename:    pick(k.Rename, d.Rename),
		Confirm:   pick(k.Confirm, d.Confirm),
		Cancel:    pick(k.Cancel, d.Cancel),
	}
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration.
func Default() Config { return defaultConfig() }

func defaultConfig() Config {
	return Config{
		DBPath:     DefaultDBName,
		StorageKey: persist.DefaultKey,
		LogPath:    DefaultLogName,
		LogLevel:   "info",
		Keys:       defaultKeys(),
		Seed:       seedFromItems(buylist.DefaultSeed()),
	}
}

func seedFromItems(items []model.Item) []SeedItem {
	out := make([]SeedItem, 0, len(items))
	for _, it := range items {
		out = append(out, SeedItem{Name: it.Name, Quantity: it.Quantity, Purchased: it.Purchased})
	}
	return out
}

func defaultKeys() Keymap {
	return Keymap{
		Quit:      "q",
		Add:       "a",
		Up:        "k",
		Down:      "j",
		Increment: "+",
		Decrement: "-",
		Toggle:    " ",
		Delete:    "d",
		Rename:    "r",
		Confirm:   "enter",
		Cancel:    "esc",
	}
}
