package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/jrsteele09/go-sensor-bot/actions"
	"github.com/jrsteele09/go-sensor-bot/auth"
	"github.com/jrsteele09/go-sensor-bot/auth/filerepo"
	"github.com/jrsteele09/go-sensor-bot/auth/redisrepo"
	"github.com/jrsteele09/go-sensor-bot/classifier"
	"github.com/jrsteele09/go-sensor-bot/dispatch"
	"github.com/jrsteele09/go-sensor-bot/internal/config"
	"github.com/jrsteele09/go-sensor-bot/sensor"
	"github.com/jrsteele09/go-sensor-bot/sensor/coapclient"
	"github.com/jrsteele09/go-sensor-bot/server"
	"github.com/jrsteele09/go-sensor-bot/settings"
	"github.com/jrsteele09/go-sensor-bot/telegram"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("bot stopped with error")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("bot stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	c := config.New()
	setLogLevel(c.GetLogLevel())
	displayAppname(c.GetAppName())

	sessionRepo := newSessionRepo(c)
	store, err := auth.NewStore(sessionRepo, c)
	if err != nil {
		return errors.Wrap(err, "auth.NewStore")
	}

	userSettings, err := settings.New(c.GetUserSettingsFile(), c.GetTranslationsFile())
	if err != nil {
		return errors.Wrap(err, "settings.New")
	}

	sensorClient, err := coapclient.New(c)
	if err != nil {
		return errors.Wrap(err, "coapclient.New")
	}

	executor, err := sensor.NewExecutor(sensorClient, userSettings)
	if err != nil {
		return errors.Wrap(err, "sensor.NewExecutor")
	}

	registry, err := actions.NewDefaultRegistry(executor, userSettings)
	if err != nil {
		return errors.Wrap(err, "actions.NewDefaultRegistry")
	}

	ollama, err := classifier.NewOllama(c)
	if err != nil {
		return errors.Wrap(err, "classifier.NewOllama")
	}

	resolver, err := actions.NewResolver(registry, ollama)
	if err != nil {
		return errors.Wrap(err, "actions.NewResolver")
	}

	api, err := telegram.NewAPI(c)
	if err != nil {
		return errors.Wrap(err, "telegram.NewAPI")
	}

	orchestrator, err := dispatch.NewOrchestrator(resolver, registry, telegram.NewNotifier(api, userSettings), c)
	if err != nil {
		return errors.Wrap(err, "dispatch.NewOrchestrator")
	}

	bot, err := telegram.NewBot(api, store, orchestrator, registry, userSettings)
	if err != nil {
		return errors.Wrap(err, "telegram.NewBot")
	}

	ops := server.NewOps()
	go func() {
		if err := ops.Start(c.GetOpsPort()); err != nil {
			log.Error().Err(err).Msg("ops server stopped")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go bot.Run(ctx)

	waitForStopSignal()
	cancel()
	return shutdown(ops)
}

// newSessionRepo picks the redis backend when an address is configured,
// otherwise sessions persist to a local JSON file.
func newSessionRepo(c config.Config) auth.Repo {
	if addr := c.GetRedisAddr(); addr != "" {
		log.Info().Str("addr", addr).Msg("using redis session store")
		return redisrepo.New(redis.NewClient(&redis.Options{Addr: addr}))
	}
	return filerepo.New(c.GetSessionFile())
}

func setLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(ops *server.Ops) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ops.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "ops.Shutdown")
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
