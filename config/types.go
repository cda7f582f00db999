package config

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Clinic  ClinicConfig  `mapstructure:"clinic"`
	Storage StorageConfig `mapstructure:"storage"`
	Backup  BackupConfig  `mapstructure:"backup"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	Environment    string `mapstructure:"environment"`
}

type ClinicConfig struct {
	// Name seeds the clinic_name slot on first run.
	Name string `mapstructure:"name"`
}

type StorageConfig struct {
	// Backend selects the durable key-value store: "sqlite" (default),
	// "redis" (remote table store, kept available but not the default
	// path), or "memory".
	Backend string `mapstructure:"backend"`

	// Path is the SQLite database file for the sqlite backend.
	Path string `mapstructure:"path"`

	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	DB       int    `mapstructure:"db"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`

	// Namespace prefixes every slot key, e.g. "dental:".
	Namespace string `mapstructure:"namespace"`

	DialTimeoutSeconds  int `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds"`
}

type BackupConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// CheckIntervalMinutes is how often the scheduler re-evaluates the
	// backup condition. The snapshot itself is only taken when the last
	// backup is older than MaxAgeDays.
	CheckIntervalMinutes int `mapstructure:"check_interval_minutes"`
	MaxAgeDays           int `mapstructure:"max_age_days"`

	// Retain is the number of dated snapshot slots kept; older ones are
	// pruned after each successful snapshot.
	Retain int `mapstructure:"retain"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
	Loki   LokiConfig    `mapstructure:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func (c *Config) Validate() error {
	return nil
}

// ApplyDefaults fills the zero values that have a meaningful default.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Clinic.Name == "" {
		c.Clinic.Name = "DentalCare Clinic"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "sqlite"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "dental.db"
	}
	if c.Storage.Redis.Namespace == "" {
		c.Storage.Redis.Namespace = "dental:"
	}
	if c.Backup.CheckIntervalMinutes == 0 {
		c.Backup.CheckIntervalMinutes = 60
	}
	if c.Backup.MaxAgeDays == 0 {
		c.Backup.MaxAgeDays = 7
	}
	if c.Backup.Retain == 0 {
		c.Backup.Retain = 4
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}
