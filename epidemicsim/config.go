package epidemicsim

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config carries the server/runner settings. Engine behaviour itself is
// driven over the websocket protocol; this only covers process-level knobs.
type Config struct {
	Listen        string // esweb listen address
	Seed          int64  // world RNG seed, 0 = time-based
	RegionsFile   string // region definitions to load at startup, optional
	AutoPolicyLog string // audit log file, optional
	StatsDir      string // directory for CSV exports
}

// LoadConfig reads configuration from file and env. Env var overrides use
// prefix EPIDEMICSERVER_.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("listen", ":8080")
	v.SetDefault("seed", 0)
	v.SetDefault("regions_file", "")
	v.SetDefault("auto_policy_log", "")
	v.SetDefault("stats_dir", ".")

	v.SetConfigType("toml")
	cfgPath := os.Getenv("EPIDEMICSERVER_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("epidemicserver")
	}

	v.SetEnvPrefix("EPIDEMICSERVER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	cfg := Config{
		Listen:        v.GetString("listen"),
		Seed:          v.GetInt64("seed"),
		RegionsFile:   v.GetString("regions_file"),
		AutoPolicyLog: v.GetString("auto_policy_log"),
		StatsDir:      v.GetString("stats_dir"),
	}
	if cfg.Listen == "" {
		return Config{}, fmt.Errorf("listen address must not be empty")
	}
	return cfg, nil
}
