package service

import (
	"testing"

	"github.com/Mitesh-Saste/OLP/internal/dto"
	"github.com/Mitesh-Saste/OLP/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateQuizResolvesCorrectOptions(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)

	quiz, err := env.quizSvc.CreateQuiz(instructor, section.ID, twoQuestionQuiz())
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, 60, quiz.PassPercentage)

	for _, question := range quiz.Questions {
		require.NotNil(t, question.CorrectOptionID)
		found := false
		for _, option := range question.Options {
			if option.ID == *question.CorrectOptionID {
				found = true
			}
		}
		assert.True(t, found, "correct option id must reference one of the question's options")
	}
}

func TestCreateQuizDuplicateSection(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)

	_, err := env.quizSvc.CreateQuiz(instructor, section.ID, twoQuestionQuiz())
	require.NoError(t, err)

	_, err = env.quizSvc.CreateQuiz(instructor, section.ID, twoQuestionQuiz())
	assert.ErrorIs(t, err, ErrDuplicateQuiz)

	// After an explicit delete the section accepts a new quiz.
	require.NoError(t, env.quizSvc.DeleteQuiz(instructor, section.ID))
	_, err = env.quizSvc.CreateQuiz(instructor, section.ID, twoQuestionQuiz())
	assert.NoError(t, err)
}

func TestCreateQuizUnmatchedCorrectAnswer(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)

	req := twoQuestionQuiz()
	req.Questions[0].CorrectAnswer = "not one of the options"
	_, err := env.quizSvc.CreateQuiz(instructor, section.ID, req)
	assert.ErrorIs(t, err, ErrInvalidState)

	// The failed transaction must leave nothing behind.
	var count int64
	require.NoError(t, env.db.Model(&model.SectionQuiz{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateQuizDeniedForNonOwner(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	other := env.seedUser(t, "carol", "INSTRUCTOR")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)

	_, err := env.quizSvc.CreateQuiz(other, section.ID, twoQuestionQuiz())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSubmitQuizAllCorrect(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)
	env.enroll(t, student, course.ID)

	quiz, err := env.quizSvc.CreateQuiz(instructor, section.ID, twoQuestionQuiz())
	require.NoError(t, err)

	result, err := env.quizSvc.SubmitQuiz(student, quiz.ID, submitRequest(correctAnswers(quiz)))
	require.NoError(t, err)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 100, result.Percentage)
	assert.True(t, result.Passed)
	assert.EqualValues(t, 1, result.AttemptCount)
}

func TestSubmitQuizMissingAnswersGradeIncorrect(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)
	env.enroll(t, student, course.ID)

	quiz, err := env.quizSvc.CreateQuiz(instructor, section.ID, twoQuestionQuiz())
	require.NoError(t, err)

	answers := correctAnswers(quiz)
	delete(answers, quiz.Questions[0].ID)
	result, err := env.quizSvc.SubmitQuiz(student, quiz.ID, submitRequest(answers))
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 50, result.Percentage)
	assert.False(t, result.Passed)
}

func TestSubmitQuizZeroQuestions(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)
	env.enroll(t, student, course.ID)

	quiz, err := env.quizSvc.CreateQuiz(instructor, section.ID, dto.QuizCreateDTO{Title: "Empty"})
	require.NoError(t, err)

	result, err := env.quizSvc.SubmitQuiz(student, quiz.ID, submitRequest(nil))
	require.NoError(t, err)
	assert.Zero(t, result.Percentage)
	assert.Zero(t, result.TotalQuestions)
	assert.False(t, result.Passed)
}

func TestSubmitQuizNotFound(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedUser(t, "bob", "STUDENT")

	_, err := env.quizSvc.SubmitQuiz(student, 12345, submitRequest(nil))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitQuizRemovedBeforeGrading(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)
	env.enroll(t, student, course.ID)

	quiz, err := env.quizSvc.CreateQuiz(instructor, section.ID, twoQuestionQuiz())
	require.NoError(t, err)

	// Drop the quiz between the submission's access checks (first quiz read)
	// and the graded read inside the transaction (second quiz read).
	reads := 0
	require.NoError(t, env.db.Callback().Query().Before("gorm:query").Register("drop_quiz_before_grading", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*model.SectionQuiz); !ok {
			return
		}
		reads++
		if reads == 2 {
			tx.Session(&gorm.Session{NewDB: true}).Exec("DELETE FROM section_quizzes WHERE id = ?", quiz.ID)
		}
	}))
	defer env.db.Callback().Query().Remove("drop_quiz_before_grading")

	_, err = env.quizSvc.SubmitQuiz(student, quiz.ID, submitRequest(correctAnswers(quiz)))
	assert.ErrorIs(t, err, ErrNotFound)

	var attempts int64
	require.NoError(t, env.db.Model(&model.QuizAttempt{}).Count(&attempts).Error)
	assert.Zero(t, attempts)
}

func TestSubmitQuizDuplicateOptionTexts(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)
	env.enroll(t, student, course.ID)

	// Two options share a text; only the option bound at creation time counts.
	req := dto.QuizCreateDTO{
		Title: "Tricky",
		Questions: []dto.QuizQuestionCreateDTO{
			{Prompt: "Pick one", Options: []string{"Same", "Same", "Other"}, CorrectAnswer: "Same"},
		},
	}
	quiz, err := env.quizSvc.CreateQuiz(instructor, section.ID, req)
	require.NoError(t, err)

	question := quiz.Questions[0]
	var duplicate uint
	for _, option := range question.Options {
		if option.Text == "Same" && option.ID != *question.CorrectOptionID {
			duplicate = option.ID
		}
	}
	require.NotZero(t, duplicate)

	result, err := env.quizSvc.SubmitQuiz(student, quiz.ID, submitRequest(map[uint]uint{question.ID: duplicate}))
	require.NoError(t, err)
	assert.Zero(t, result.CorrectAnswers, "an unbound option with matching text must not grade as correct")
}

func TestQuizStatus(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)
	env.enroll(t, student, course.ID)

	quiz, err := env.quizSvc.CreateQuiz(instructor, section.ID, twoQuestionQuiz())
	require.NoError(t, err)

	status, err := env.quizSvc.QuizStatus(student, quiz.ID)
	require.NoError(t, err)
	assert.Zero(t, status.AttemptCount, "no attempts yet means an empty status")

	// Fail first, then pass; the status reflects the latest attempt.
	answers := correctAnswers(quiz)
	delete(answers, quiz.Questions[0].ID)
	_, err = env.quizSvc.SubmitQuiz(student, quiz.ID, submitRequest(answers))
	require.NoError(t, err)
	_, err = env.quizSvc.SubmitQuiz(student, quiz.ID, submitRequest(correctAnswers(quiz)))
	require.NoError(t, err)

	status, err = env.quizSvc.QuizStatus(student, quiz.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, status.AttemptCount)
	assert.Equal(t, 100, status.Percentage)
	assert.True(t, status.Passed)
}

func TestDeleteQuizCascadesAndKeepsAttempts(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)
	env.enroll(t, student, course.ID)

	quiz, err := env.quizSvc.CreateQuiz(instructor, section.ID, twoQuestionQuiz())
	require.NoError(t, err)
	_, err = env.quizSvc.SubmitQuiz(student, quiz.ID, submitRequest(correctAnswers(quiz)))
	require.NoError(t, err)

	require.NoError(t, env.quizSvc.DeleteQuiz(instructor, section.ID))

	var questions, options, attempts int64
	require.NoError(t, env.db.Model(&model.QuizQuestion{}).Count(&questions).Error)
	require.NoError(t, env.db.Model(&model.QuizOption{}).Count(&options).Error)
	require.NoError(t, env.db.Model(&model.QuizAttempt{}).Count(&attempts).Error)
	assert.Zero(t, questions)
	assert.Zero(t, options)
	assert.EqualValues(t, 1, attempts, "attempts are independent facts and survive quiz deletion")
}

func TestDeleteQuizNotFound(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)

	err := env.quizSvc.DeleteQuiz(instructor, section.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetQuizHidesCorrectOptionsFromStudents(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)
	env.enroll(t, student, course.ID)

	_, err := env.quizSvc.CreateQuiz(instructor, section.ID, twoQuestionQuiz())
	require.NoError(t, err)

	forStudent, err := env.quizSvc.GetQuiz(student, section.ID)
	require.NoError(t, err)
	for _, question := range forStudent.Questions {
		assert.Nil(t, question.CorrectOptionID)
	}

	forOwner, err := env.quizSvc.GetQuiz(instructor, section.ID)
	require.NoError(t, err)
	for _, question := range forOwner.Questions {
		assert.NotNil(t, question.CorrectOptionID)
	}
}
