package config

type LoggingConfig struct {
	Level      string
	Format     string
	Output     string
	Caller     bool
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Format:     getEnv("LOG_FORMAT", "json"),
		Output:     getEnv("LOG_OUTPUT", "stdout"),
		Caller:     getEnvAsBool("LOG_CALLER", false),
		MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
		MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
	}
}
