// Package config collects the CSV server settings from defaults, an
// optional JSON file and command line flags, in that order of precedence
// (later wins).
package config

type Config struct {
	Addr  string
	File  string
	Users []string
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.File = "divelog.csv"
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
