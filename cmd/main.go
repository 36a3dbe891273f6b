package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Mitesh-Saste/OLP/config"
	"github.com/Mitesh-Saste/OLP/database"
	_ "github.com/Mitesh-Saste/OLP/docs" // Swagger docs - auto-generated
	instructorctrl "github.com/Mitesh-Saste/OLP/internal/controller/instructor"
	studentctrl "github.com/Mitesh-Saste/OLP/internal/controller/student"
	"github.com/Mitesh-Saste/OLP/internal/logger"
	"github.com/Mitesh-Saste/OLP/internal/middleware"
	"github.com/Mitesh-Saste/OLP/internal/model"
	"github.com/Mitesh-Saste/OLP/internal/repository"
	"github.com/Mitesh-Saste/OLP/internal/service"
)

// @title Online Learning Platform API
// @version 1.0
// @description Course delivery backend: courses, sections, lessons, section quizzes, progress tracking, and certificates.
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewCourseRepository,
			repository.NewSectionRepository,
			repository.NewLessonRepository,
			repository.NewEnrollmentRepository,
			repository.NewProgressRepository,
			repository.NewQuizRepository,
			repository.NewAttemptRepository,
			repository.NewCertificateRepository,
		),

		fx.Provide(
			service.NewEnrollmentService,
			service.NewCourseService,
			service.NewProgressService,
			func(
				quizRepo repository.QuizRepository,
				attemptRepo repository.AttemptRepository,
				sectionRepo repository.SectionRepository,
				courseRepo repository.CourseRepository,
				enrollmentSvc service.EnrollmentService,
				db *gorm.DB,
			) service.QuizService {
				return service.NewQuizService(quizRepo, attemptRepo, sectionRepo, courseRepo, enrollmentSvc, db)
			},
			service.NewCertificateService,
		),

		fx.Provide(
			instructorctrl.NewCourseController,
			instructorctrl.NewQuizController,
			studentctrl.NewLearningController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", "X-User-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	courseCtrl *instructorctrl.CourseController,
	quizCtrl *instructorctrl.QuizController,
	learningCtrl *studentctrl.LearningController,
) {
	api := router.Group("/api/v1")
	api.Use(middleware.RequireIdentity())

	instructorGroup := api.Group("/instructor")
	{
		instructorGroup.POST("/courses", courseCtrl.CreateCourse)
		instructorGroup.PUT("/courses/:course_id", courseCtrl.UpdateCourse)
		instructorGroup.POST("/courses/:course_id/publish", courseCtrl.PublishCourse)
		instructorGroup.DELETE("/courses/:course_id", courseCtrl.DeleteCourse)
		instructorGroup.POST("/courses/:course_id/sections", courseCtrl.AddSection)
		instructorGroup.POST("/courses/:course_id/lessons", courseCtrl.AddLesson)
		instructorGroup.POST("/sections/:section_id/quiz", quizCtrl.CreateQuiz)
		instructorGroup.DELETE("/sections/:section_id/quiz", quizCtrl.DeleteQuiz)
	}

	{
		api.GET("/courses", learningCtrl.ListCourses)
		api.GET("/courses/:course_id/outline", learningCtrl.GetCourseOutline)
		api.POST("/courses/:course_id/enroll", learningCtrl.Enroll)
		api.GET("/my-courses", learningCtrl.ListEnrolledCourses)
		api.POST("/lessons/:lesson_id/complete", learningCtrl.MarkLessonComplete)
		api.GET("/courses/:course_id/progress", learningCtrl.GetCourseProgress)
		api.GET("/sections/:section_id/quiz", learningCtrl.GetQuiz)
		api.POST("/quizzes/:quiz_id/submit", learningCtrl.SubmitQuiz)
		api.GET("/quizzes/:quiz_id/status", learningCtrl.GetQuizStatus)
		api.POST("/courses/:course_id/certificate/check", learningCtrl.CheckCertificate)
		api.GET("/courses/:course_id/certificate", learningCtrl.GetCertificate)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Learning platform API starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Section{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.SectionQuiz{},
		&model.QuizQuestion{},
		&model.QuizOption{},
		&model.QuizAttempt{},
		&model.Certificate{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
