package config

type Config interface {
	EnvConfig
	SecurityConfig
	SensorConfig
	ClassifierConfig
}

type EnvConfig interface {
	GetBotToken() string
	GetOpsPort() string
	GetAppName() string
	GetLogLevel() string
	GetSessionFile() string
	GetUserSettingsFile() string
	GetTranslationsFile() string
	GetRedisAddr() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Security
	Sensor
	Classifier
}

func New() Config {
	return mainConfig{}
}
