package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/HelaLetsGo/wheelstreet-api/internal/auth"
	"github.com/HelaLetsGo/wheelstreet-api/internal/editmode"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/cache"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/config"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/database"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/http/handlers"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/http/middleware"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/mail"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/queue"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/worker"
	"github.com/HelaLetsGo/wheelstreet-api/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ connect database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatalf("❌ run migrations: %v", err)
	}

	// Public routes get their own low-privilege connection when configured,
	// so the service credentials never back an unauthenticated endpoint.
	publicDB := db
	if cfg.DatabasePublicURL != "" {
		publicDB, err = database.NewDBConnection(cfg.DatabasePublicURL)
		if err != nil {
			log.Fatalf("❌ connect public database: %v", err)
		}
		defer publicDB.Close()
	}

	// Redis is the persisted cache tier; the API runs without it.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ parse redis url: %v", err)
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("⚠️ redis unreachable, running without persisted cache: %v", err)
			rdb = nil
		}
	}

	// 1. Repositories (the storage gateway)
	sectionRepo := database.NewSectionRepository(db)
	publicSectionRepo := database.NewSectionRepository(publicDB)
	legalRepo := database.NewLegalPageRepository(db)
	publicLegalRepo := database.NewLegalPageRepository(publicDB)
	teamRepo := database.NewTeamMemberRepository(db)
	publicTeamRepo := database.NewTeamMemberRepository(publicDB)
	leadRepo := database.NewLeadRepository(db)
	publicLeadRepo := database.NewLeadRepository(publicDB)
	sessionRepo := database.NewSessionRepository(db)

	// 2. RabbitMQ: best effort. Leads must be captured even with the broker down.
	var rabbitConn *amqp.Connection
	var producer *queue.RabbitMQProducer
	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Printf("⚠️ RabbitMQ unavailable, lead notifications disabled: %v", err)
	} else {
		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
	}

	// 3. Edit-mode state + sessions
	editController := editmode.NewController()
	authService := auth.NewService(sessionRepo, sessionRepo, cfg.SessionTTL, editController)

	if err := auth.EnsureAdminUser(ctx, sessionRepo, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("❌ seed admin user: %v", err)
	}

	// 4. Content cache (public reads only)
	contentCache := cache.NewContentCache(publicSectionRepo, rdb)

	// 5. Use cases
	var producerIface usecase.QueueProducerInterface
	if producer != nil {
		producerIface = producer
	}
	captureLeadUC := usecase.NewCaptureLeadUseCase(publicLeadRepo, producerIface)
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo)
	updateTeamUC := usecase.NewUpdateTeamMemberUseCase(teamRepo)
	updateSectionUC := usecase.NewUpdateSectionUseCase(sectionRepo, contentCache)
	updateLegalUC := usecase.NewUpdateLegalPageUseCase(legalRepo)

	// 6. Lead notification worker
	if rabbitMQ != nil && cfg.SMTPHost != "" && cfg.LeadsInbox != "" {
		sender := mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.LeadsInbox)
		notifyWorker := queue.NewWorker(rabbitMQ.Ch, sender)
		go notifyWorker.Start(queue.QueueName)
	}
	go worker.NewSessionCleanupWorker(sessionRepo).Start(ctx)

	// 7. Handlers
	leadHandler := handlers.NewLeadHandler(captureLeadUC, updateLeadUC, leadRepo)
	teamHandler := handlers.NewTeamHandler(publicTeamRepo, updateTeamUC)
	adminTeamHandler := handlers.NewTeamHandler(teamRepo, updateTeamUC)
	adminHandler := handlers.NewAdminHandler(authService, editController)
	contentHandler := &handlers.ContentHandler{
		Cache:         contentCache,
		LegalPages:    publicLegalRepo,
		UpdateSection: updateSectionUC,
		UpdateLegal:   updateLegalUC,
		EditMode:      editController,
		Auth:          authService,
	}
	adminContentHandler := &handlers.ContentHandler{
		Cache:         contentCache,
		LegalPages:    legalRepo,
		UpdateSection: updateSectionUC,
		UpdateLegal:   updateLegalUC,
		EditMode:      editController,
		Auth:          authService,
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, rdb)

	gate := middleware.NewSessionGate(authService)

	// 8. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(gate.Handler)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/content/{sectionType}", contentHandler.GetSection)
	r.Get("/legal/{pageType}", contentHandler.GetLegalPage)
	r.Get("/team-members", teamHandler.List)
	r.Get("/team-members/{memberId}", teamHandler.GetByMemberID)
	r.Post("/leads", leadHandler.CaptureLead)

	// Staff lead pipeline: authenticated only, JSON errors.
	r.Group(func(r chi.Router) {
		r.Use(gate.RequireSession)
		r.Get("/leads", leadHandler.List)
		r.Put("/leads/{id}", leadHandler.Update)
		r.Delete("/leads/{id}", leadHandler.Delete)
	})

	// Admin surface: everything below passes the session gate except login.
	r.Post("/admin/login", adminHandler.Login)
	r.Post("/admin/logout", adminHandler.Logout)
	r.Get("/admin/edit-mode", adminHandler.GetEditMode)
	r.Post("/admin/edit-mode", adminHandler.SetEditMode)
	r.Get("/admin/get-team-members", adminTeamHandler.AdminList)
	r.Post("/admin/update-team-member", adminTeamHandler.AdminUpdate)
	r.Delete("/admin/delete-team-member", adminTeamHandler.AdminDelete)
	r.Get("/admin/get-legal-pages", adminContentHandler.AdminListLegalPages)
	r.Post("/admin/update-legal-page", adminContentHandler.AdminUpdateLegalPage)
	r.Post("/admin/update-section", adminContentHandler.AdminUpdateSection)

	log.Printf("🔥 wheelstreet API listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
