package config

import (
	"os"
	"strconv"
	"time"
)

const (
	botTokenVar     = "BOT_TOKEN"
	appNameVar      = "APP_NAME"
	opsPortVar      = "OPS_PORT"
	sessionFileVar  = "SESSION_FILE"
	userSettingsVar = "USER_SETTINGS_FILE"
	translationsVar = "TRANSLATIONS_FILE"
	redisAddrVar    = "REDIS_ADDR"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetBotToken() string {
	return GetEnv(botTokenVar, "")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Sensor Bot")
}

func (EnvVars) GetOpsPort() string {
	port := GetEnv(opsPortVar, "8080")
	if port != "" && port[0] != ':' {
		port = ":" + port
	}
	return port
}

func (EnvVars) GetLogLevel() string {
	return GetEnv("LOG_LEVEL", "info")
}

func (EnvVars) GetSessionFile() string {
	return GetEnv(sessionFileVar, "authenticated_users.json")
}

func (EnvVars) GetUserSettingsFile() string {
	return GetEnv(userSettingsVar, "user_settings.json")
}

func (EnvVars) GetTranslationsFile() string {
	return GetEnv(translationsVar, "")
}

// GetRedisAddr returns the Redis address for session storage.
// An empty value selects the file-backed session store.
func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func GetIntEnv(envVar string, defaultValue int) int {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
