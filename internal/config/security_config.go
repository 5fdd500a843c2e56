package config

import "time"

type SecurityConfig interface {
	GetAuthSecret() string
	GetSessionTimeout() time.Duration
	GetMaxLoginAttempts() int
	GetLockoutTime() time.Duration
	GetDispatchTimeout() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetAuthSecret() string {
	return GetEnv("BOT_AUTH_PASSWORD", "")
}

func (Security) GetSessionTimeout() time.Duration {
	return GetDurationEnv("SESSION_TIMEOUT", time.Hour)
}

func (Security) GetMaxLoginAttempts() int {
	return GetIntEnv("MAX_LOGIN_ATTEMPTS", 3)
}

func (Security) GetLockoutTime() time.Duration {
	return GetDurationEnv("LOCKOUT_TIME", 30*time.Minute)
}

func (Security) GetDispatchTimeout() time.Duration {
	return GetDurationEnv("DISPATCH_TIMEOUT", 25*time.Second)
}
