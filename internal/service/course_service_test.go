package service

import (
	"testing"

	"github.com/Mitesh-Saste/OLP/internal/dto"
	"github.com/Mitesh-Saste/OLP/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourseRequiresInstructor(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedUser(t, "bob", "STUDENT")
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")

	_, err := env.courseSvc.CreateCourse(student, dto.CourseCreateDTO{Title: "Nope"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	course, err := env.courseSvc.CreateCourse(instructor, dto.CourseCreateDTO{
		Title: "Distributed Systems",
		Tags:  []string{"systems"},
	})
	require.NoError(t, err)
	assert.False(t, course.IsPublished, "new courses start unpublished")

	admin := env.seedUser(t, "root", "ADMIN")
	_, err = env.courseSvc.CreateCourse(admin, dto.CourseCreateDTO{Title: "Admin Course"})
	assert.NoError(t, err)
}

func TestUpdateCourseOwnership(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	other := env.seedUser(t, "carol", "INSTRUCTOR")
	admin := env.seedUser(t, "root", "ADMIN")
	course := env.seedCourse(t, instructor, false)

	_, err := env.courseSvc.UpdateCourse(other, course.ID, dto.CourseUpdateDTO{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	updated, err := env.courseSvc.UpdateCourse(admin, course.ID, dto.CourseUpdateDTO{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestPublishCourse(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	course := env.seedCourse(t, instructor, false)

	published, err := env.courseSvc.PublishCourse(instructor, course.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
}

func TestListCoursesVisibility(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	env.seedCourse(t, instructor, true)
	env.seedCourse(t, instructor, false)

	forStudent, err := env.courseSvc.ListCourses(student, "")
	require.NoError(t, err)
	assert.Len(t, forStudent, 1, "students only see published courses")

	forInstructor, err := env.courseSvc.ListCourses(instructor, "")
	require.NoError(t, err)
	assert.Len(t, forInstructor, 2)
}

func TestAddLessonRejectsForeignSection(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	course := env.seedCourse(t, instructor, false)
	otherCourse := env.seedCourse(t, instructor, false)
	foreignSection := env.seedSection(t, otherCourse.ID, 1)

	_, err := env.courseSvc.AddLesson(instructor, course.ID, dto.LessonCreateDTO{
		Title:     "Misplaced",
		SectionID: &foreignSection.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestGetCourseOutline(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	course := env.seedCourse(t, instructor, true)
	section1 := env.seedSection(t, course.ID, 1)
	section2 := env.seedSection(t, course.ID, 2)
	env.seedLesson(t, course.ID, &section1.ID, 1)
	env.seedLesson(t, course.ID, &section1.ID, 2)
	env.seedLesson(t, course.ID, nil, 3)

	quiz, err := env.quizSvc.CreateQuiz(instructor, section1.ID, twoQuestionQuiz())
	require.NoError(t, err)

	outline, err := env.courseSvc.GetCourseOutline(instructor, course.ID)
	require.NoError(t, err)
	require.Len(t, outline.Sections, 2)

	first := outline.Sections[0]
	assert.Equal(t, section1.ID, first.ID)
	assert.Len(t, first.Lessons, 2)
	assert.True(t, first.HasQuiz)
	require.NotNil(t, first.QuizID)
	assert.Equal(t, quiz.ID, *first.QuizID)

	second := outline.Sections[1]
	assert.Equal(t, section2.ID, second.ID)
	assert.Empty(t, second.Lessons)
	assert.False(t, second.HasQuiz)

	assert.Len(t, outline.UngroupedLessons, 1)
}

func TestDeleteCourseCascades(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, true)
	section := env.seedSection(t, course.ID, 1)
	lesson := env.seedLesson(t, course.ID, &section.ID, 1)
	env.enroll(t, student, course.ID)

	quiz, err := env.quizSvc.CreateQuiz(instructor, section.ID, twoQuestionQuiz())
	require.NoError(t, err)
	require.NoError(t, env.progressSvc.MarkLessonComplete(student, lesson.ID))
	_, err = env.quizSvc.SubmitQuiz(student, quiz.ID, submitRequest(correctAnswers(quiz)))
	require.NoError(t, err)

	require.NoError(t, env.courseSvc.DeleteCourse(instructor, course.ID))

	counts := map[string]interface{}{
		"sections":        &model.Section{},
		"lessons":         &model.Lesson{},
		"quizzes":         &model.SectionQuiz{},
		"questions":       &model.QuizQuestion{},
		"options":         &model.QuizOption{},
		"attempts":        &model.QuizAttempt{},
		"enrollments":     &model.Enrollment{},
		"lesson progress": &model.LessonProgress{},
	}
	for name, m := range counts {
		var count int64
		require.NoError(t, env.db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%s must be removed with the course", name)
	}

	_, err = env.courseSvc.GetCourseOutline(instructor, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCourseDeniedForNonOwner(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	other := env.seedUser(t, "carol", "INSTRUCTOR")
	course := env.seedCourse(t, instructor, false)

	err := env.courseSvc.DeleteCourse(other, course.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	var count int64
	require.NoError(t, env.db.Model(&model.Course{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
