package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suchimauz/appointment-reminder-bot/internal/adapters/in/http"
	"github.com/suchimauz/appointment-reminder-bot/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/appointment-reminder-bot/internal/adapters/out/backend"
	"github.com/suchimauz/appointment-reminder-bot/internal/adapters/out/cache"
	"github.com/suchimauz/appointment-reminder-bot/internal/adapters/out/chat"
	"github.com/suchimauz/appointment-reminder-bot/internal/adapters/out/logger"
	"github.com/suchimauz/appointment-reminder-bot/internal/adapters/out/profile"
	outrabbitmq "github.com/suchimauz/appointment-reminder-bot/internal/adapters/out/rabbitmq"
	"github.com/suchimauz/appointment-reminder-bot/internal/config"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/services"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone, cfg.IsNotLocal())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer mainLogger.Sync()
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"backendUrl":      cfg.Backend.URL,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"platformNotify":  cfg.Notify.PlatformEnabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	backendAdapter := backend.NewBackendAdapter(cfg, mainLogger)

	var profileCache out.CachePort
	if cacheAdapter := cache.NewCacheAdapter(cfg, mainLogger); cacheAdapter != nil {
		profileCache = cacheAdapter
	}
	profiles := profile.NewProfileAdapter(cfg, profile.NewFileStore(cfg.Profile.Path), profileCache, mainLogger)

	transcript := chat.NewTranscript(cfg.Transcript.MaxMessages, mainLogger)
	appointmentView := chat.NewAppointmentView()
	captureSurface := chat.NewCaptureSurface()

	var platform out.PlatformNotifierPort
	reminderPublisher, err := outrabbitmq.NewReminderPublisher(cfg, mainLogger)
	if err != nil {
		logger.Error("app.rabbitmq.publisher_init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if reminderPublisher != nil {
		platform = reminderPublisher
		defer func() {
			if err := reminderPublisher.Stop(); err != nil {
				logger.Error("app.rabbitmq.publisher_stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	// Инициализация сервисов
	reminderNotifier := services.NewReminderNotifier(platform, transcript, mainLogger)
	submitter := services.NewSchedulingSubmitter(backendAdapter, reminderNotifier, transcript, mainLogger)
	session := services.NewConversationSession(
		services.NewCaptureMachine(captureSurface, mainLogger),
		services.NewIntentClassifier(),
		submitter,
		profiles,
		transcript,
		mainLogger,
	)
	registry := services.NewAppointmentRegistry(backendAdapter, profiles, appointmentView, transcript, mainLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session.Start(ctx)

	// Настройка HTTP сервера
	controller := http.NewChatController(
		session,
		registry,
		profiles,
		transcript,
		appointmentView,
		captureSurface,
		cfg,
		mainLogger,
	)
	server := &nethttp.Server{
		Addr:    cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler: http.NewRouter(cfg, controller, mainLogger),
	}

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewInboxListener(session, cfg, mainLogger)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		// Добавляем остановку RabbitMQ в defer
		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("app.http.shutdown_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	// Дожидаемся отправленных запросов на бронирование
	session.Wait()

	logger.Info("app.shutdown.completed", out.LogFields{
		"remindersArmed": reminderNotifier.Armed(),
		"remindersFired": reminderNotifier.Fired(),
	})
}
