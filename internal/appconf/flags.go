package appconf

import "flag"

// Flags are command-line overrides, applied last and only when set.
type Flags struct {
	fs         *flag.FlagSet
	ConfigPath string

	port      int
	env       string
	apiKeys   string
	rateLimit int
	dbPath    string
	logLevel  string
	logFormat string
}

// RegisterFlags defines the server flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to a YAML config file")
	fs.IntVar(&f.port, "port", d.Port, "API server port")
	fs.StringVar(&f.env, "env", d.Env.String(), "Environment (development|test|production)")
	fs.StringVar(&f.apiKeys, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	fs.IntVar(&f.rateLimit, "rate-limit", d.RateLimit, "Requests per second per API key")
	fs.StringVar(&f.dbPath, "db", d.DBPath, "SQLite database path, or :memory:")
	fs.StringVar(&f.logLevel, "log-level", d.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&f.logFormat, "log-format", d.LogFormat, "Log format (json|text)")
	return f
}

// Apply copies the flags that were set on the command line into cfg.
func (f *Flags) Apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "port":
			cfg.Port = f.port
		case "env":
			cfg.Env = EnvFlagToEnvironment(f.env)
		case "api-keys":
			cfg.APIKeys = SplitKeys(f.apiKeys)
		case "rate-limit":
			cfg.RateLimit = f.rateLimit
		case "db":
			cfg.DBPath = f.dbPath
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "log-format":
			cfg.LogFormat = f.logFormat
		}
	})
}
