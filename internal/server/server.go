package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"famhub/internal/config"
	"famhub/internal/handler"
	"famhub/internal/middleware"
	"famhub/internal/model"
	"famhub/internal/repository"
	"famhub/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := db.AutoMigrate(
		&model.Family{},
		&model.User{},
		&model.Task{},
		&model.Schedule{},
		&model.ScheduleAssignment{},
		&model.Reward{},
		&model.Reminder{},
		&model.StudySchedule{},
		&model.PointHistory{},
		&model.JobRun{},
	); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	studyRepo := repository.NewStudyScheduleRepository(db)
	historyRepo := repository.NewPointHistoryRepository(db)
	jobRunRepo := repository.NewJobRunRepository(db)

	// Initialize services
	generator := service.NewTaskGenerator(scheduleRepo, taskRepo)
	approver := service.NewAutoApprover(familyRepo, taskRepo, userRepo, historyRepo, jobRunRepo)
	redeemer := service.NewRedeemer(userRepo, rewardRepo, historyRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userRepo, familyRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, generator)
	scheduleHandler := handler.NewScheduleHandler(scheduleRepo, generator)
	rewardHandler := handler.NewRewardHandler(rewardRepo, redeemer)
	reminderHandler := handler.NewReminderHandler(reminderRepo)
	studyHandler := handler.NewStudyScheduleHandler(studyRepo)
	familyHandler := handler.NewFamilyHandler(familyRepo, userRepo)
	profileHandler := handler.NewProfileHandler(userRepo)
	historyHandler := handler.NewHistoryHandler(historyRepo)
	cronHandler := handler.NewCronHandler(approver)

	// Auth routes
	r.POST("/auth/signup", authHandler.Signup)
	r.POST("/auth/login", authHandler.Login)

	// Task routes
	r.GET("/tasks", taskHandler.GetAll)
	r.POST("/tasks", taskHandler.Create)
	r.PUT("/tasks/:id", taskHandler.Update)
	r.DELETE("/tasks/:id", taskHandler.Delete)
	r.POST("/tasks/generate", taskHandler.Generate)

	// Schedule routes
	r.GET("/schedules", scheduleHandler.GetAll)
	r.POST("/schedules", scheduleHandler.Create)
	r.PUT("/schedules/:id", scheduleHandler.Update)
	r.DELETE("/schedules/:id", scheduleHandler.Delete)

	// Reward routes
	r.GET("/rewards", rewardHandler.GetAll)
	r.POST("/rewards", rewardHandler.Create)
	r.PUT("/rewards/:id", rewardHandler.Update)
	r.DELETE("/rewards/:id", rewardHandler.Delete)
	r.POST("/rewards/redeem", rewardHandler.Redeem)

	// Reminder routes
	r.GET("/reminders", reminderHandler.GetAll)
	r.POST("/reminders", reminderHandler.Create)
	r.PATCH("/reminders/:id", reminderHandler.Patch)
	r.DELETE("/reminders/:id", reminderHandler.Delete)

	// Study schedule routes
	r.GET("/study-schedules", studyHandler.GetAll)
	r.POST("/study-schedules", studyHandler.Create)
	r.PUT("/study-schedules/:id", studyHandler.Update)
	r.DELETE("/study-schedules/:id", studyHandler.Delete)

	// Family settings
	r.GET("/family/settings", familyHandler.GetSettings)
	r.PUT("/family/settings", familyHandler.UpdateSettings)

	// Ledger and profile
	r.GET("/history", historyHandler.Get)
	r.GET("/profile", profileHandler.Get)
	r.PUT("/profile", profileHandler.Update)

	// Cron routes - guarded by the shared secret
	cron := r.Group("/cron")
	cron.Use(middleware.CronAuth(cfg.CronSecret))
	{
		cron.GET("/approve-tasks", cronHandler.ApproveTasks)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
