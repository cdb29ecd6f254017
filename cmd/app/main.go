package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	httpin "github.com/medibook/medibook-booking-gateway/internal/adapters/in/http"
	"github.com/medibook/medibook-booking-gateway/internal/adapters/in/rabbitmq"
	"github.com/medibook/medibook-booking-gateway/internal/adapters/out/cache"
	"github.com/medibook/medibook-booking-gateway/internal/adapters/out/logger"
	"github.com/medibook/medibook-booking-gateway/internal/adapters/out/medibook"
	"github.com/medibook/medibook-booking-gateway/internal/adapters/out/session"
	"github.com/medibook/medibook-booking-gateway/internal/config"
	"github.com/medibook/medibook-booking-gateway/internal/core/ports/out"
	"github.com/medibook/medibook-booking-gateway/internal/core/services"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone, cfg.IsLocal())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"backendUrl":      cfg.Backend.URL,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	backend := medibook.NewMediBookAdapter(cfg, mainLogger.WithModule("MediBookAdapter"))

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	sessions := session.NewStore(cfg, mainLogger.WithModule("SessionStore"))

	doctorService := services.NewDoctorService(backend, cacheAdapter, mainLogger)
	availabilityService := services.NewAvailabilityService(backend, cacheAdapter, doctorService, mainLogger)
	bookingService := services.NewBookingService(backend, cacheAdapter, availabilityService, mainLogger)
	appointmentService := services.NewAppointmentService(backend, cacheAdapter, mainLogger)
	patientService := services.NewPatientService(backend, mainLogger)
	authService := services.NewAuthService(backend, sessions, mainLogger)

	gate := httpin.NewSessionGate(sessions, mainLogger.WithModule("SessionGate"))

	router := gin.Default()
	router.Use(gate.Resolve())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": cfg.App.Version})
	})

	httpin.NewAuthController(authService, gate).RegisterRoutes(router)
	httpin.NewBookingController(
		doctorService,
		availabilityService,
		bookingService,
		gate,
		mainLogger,
	).RegisterRoutes(router)
	httpin.NewAppointmentController(appointmentService, gate).RegisterRoutes(router)
	httpin.NewPatientController(patientService, gate).RegisterRoutes(router)

	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewAppointmentListener(
			cacheAdapter,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
