package service

import (
	"testing"

	"github.com/Mitesh-Saste/OLP/internal/dto"
	"github.com/Mitesh-Saste/OLP/internal/identity"
	"github.com/Mitesh-Saste/OLP/internal/model"
	"github.com/Mitesh-Saste/OLP/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// testEnv wires every service against one in-memory sqlite database.
type testEnv struct {
	db             *gorm.DB
	enrollmentSvc  EnrollmentService
	courseSvc      CourseService
	progressSvc    ProgressService
	quizSvc        QuizService
	certificateSvc CertificateService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	// Every new connection to :memory: would see a fresh database, so pin
	// the pool to a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
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
	))

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)

	enrollmentSvc := NewEnrollmentService(enrollmentRepo, courseRepo)

	return &testEnv{
		db:            db,
		enrollmentSvc: enrollmentSvc,
		courseSvc:     NewCourseService(courseRepo, sectionRepo, lessonRepo, quizRepo, enrollmentSvc),
		progressSvc:   NewProgressService(progressRepo, lessonRepo, courseRepo, quizRepo, attemptRepo, enrollmentSvc),
		quizSvc:       NewQuizService(quizRepo, attemptRepo, sectionRepo, courseRepo, enrollmentSvc, db),
		certificateSvc: NewCertificateService(
			certificateRepo, userRepo, courseRepo, sectionRepo, lessonRepo, quizRepo, attemptRepo, progressRepo,
		),
	}
}

func (e *testEnv) seedUser(t *testing.T, username, role string) identity.Identity {
	t.Helper()
	user := model.User{Username: username, Role: role}
	require.NoError(t, e.db.Create(&user).Error)
	return identity.Identity{UserID: user.ID, Role: identity.ParseRole(role)}
}

func (e *testEnv) seedCourse(t *testing.T, instructor identity.Identity, published bool) *model.Course {
	t.Helper()
	course := model.Course{
		InstructorID: instructor.UserID,
		Title:        "Intro to Distributed Systems",
		IsPublished:  published,
	}
	require.NoError(t, e.db.Create(&course).Error)
	return &course
}

func (e *testEnv) seedSection(t *testing.T, courseID uint, sortOrder int) *model.Section {
	t.Helper()
	section := model.Section{CourseID: courseID, Title: "Section", SortOrder: sortOrder}
	require.NoError(t, e.db.Create(&section).Error)
	return &section
}

func (e *testEnv) seedLesson(t *testing.T, courseID uint, sectionID *uint, sortOrder int) *model.Lesson {
	t.Helper()
	lesson := model.Lesson{CourseID: courseID, SectionID: sectionID, Title: "Lesson", SortOrder: sortOrder}
	require.NoError(t, e.db.Create(&lesson).Error)
	return &lesson
}

func (e *testEnv) enroll(t *testing.T, student identity.Identity, courseID uint) {
	t.Helper()
	require.NoError(t, e.enrollmentSvc.Enroll(student, courseID))
}

// twoQuestionQuiz is the create request used across quiz and certificate tests.
func twoQuestionQuiz() dto.QuizCreateDTO {
	return dto.QuizCreateDTO{
		Title: "Checkpoint",
		Questions: []dto.QuizQuestionCreateDTO{
			{
				Prompt:        "What does CAP stand for?",
				Options:       []string{"Consistency, Availability, Partition tolerance", "Capacity, Availability, Performance"},
				CorrectAnswer: "Consistency, Availability, Partition tolerance",
			},
			{
				Prompt:        "Which consistency model is strongest?",
				Options:       []string{"Eventual", "Linearizable"},
				CorrectAnswer: "Linearizable",
			},
		},
	}
}

func submitRequest(answers map[uint]uint) dto.QuizSubmitDTO {
	return dto.QuizSubmitDTO{Answers: answers}
}

// correctAnswers maps every question to its correct option id.
func correctAnswers(quiz *dto.QuizResponseDTO) map[uint]uint {
	answers := make(map[uint]uint, len(quiz.Questions))
	for _, question := range quiz.Questions {
		answers[question.ID] = *question.CorrectOptionID
	}
	return answers
}
