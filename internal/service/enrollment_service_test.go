package service

import (
	"testing"

	"github.com/Mitesh-Saste/OLP/internal/identity"
	"github.com/Mitesh-Saste/OLP/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollUnpublishedCourse(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, false)

	err := env.enrollmentSvc.Enroll(student, course.ID)
	assert.ErrorIs(t, err, ErrNotPublished)

	var count int64
	require.NoError(t, env.db.Model(&model.Enrollment{}).Count(&count).Error)
	assert.Zero(t, count, "no enrollment row may be created for an unpublished course")
}

func TestEnrollTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, true)

	require.NoError(t, env.enrollmentSvc.Enroll(student, course.ID))
	err := env.enrollmentSvc.Enroll(student, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollUnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedUser(t, "bob", "STUDENT")

	err := env.enrollmentSvc.Enroll(student, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCanAccess(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	otherInstructor := env.seedUser(t, "carol", "INSTRUCTOR")
	admin := env.seedUser(t, "root", "ADMIN")
	enrolled := env.seedUser(t, "bob", "STUDENT")
	stranger := env.seedUser(t, "dave", "STUDENT")

	course := env.seedCourse(t, instructor, true)
	env.enroll(t, enrolled, course.ID)

	assert.NoError(t, env.enrollmentSvc.CanAccess(admin, course))
	assert.NoError(t, env.enrollmentSvc.CanAccess(instructor, course))
	assert.NoError(t, env.enrollmentSvc.CanAccess(enrolled, course))
	assert.ErrorIs(t, env.enrollmentSvc.CanAccess(stranger, course), ErrAccessDenied)
	assert.ErrorIs(t, env.enrollmentSvc.CanAccess(otherInstructor, course), ErrAccessDenied)
}

func TestCanAccessUnpublishedCourse(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	course := env.seedCourse(t, instructor, false)

	// Owner and admin still get in, students never do on an unpublished course.
	assert.NoError(t, env.enrollmentSvc.CanAccess(instructor, course))
	assert.ErrorIs(t, env.enrollmentSvc.CanAccess(student, course), ErrAccessDenied)
}

func TestListEnrolledCourses(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.seedUser(t, "alice", "INSTRUCTOR")
	student := env.seedUser(t, "bob", "STUDENT")
	first := env.seedCourse(t, instructor, true)
	env.seedCourse(t, instructor, true) // not enrolled

	env.enroll(t, student, first.ID)

	courses, err := env.enrollmentSvc.ListEnrolledCourses(student)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, first.ID, courses[0].ID)
}

func TestIsOwnerOrAdmin(t *testing.T) {
	owner := identity.Identity{UserID: 7, Role: identity.RoleInstructor}
	admin := identity.Identity{UserID: 1, Role: identity.RoleAdmin}
	student := identity.Identity{UserID: 2, Role: identity.RoleStudent}

	assert.True(t, owner.IsOwnerOrAdmin(7))
	assert.False(t, owner.IsOwnerOrAdmin(8))
	assert.True(t, admin.IsOwnerOrAdmin(7))
	assert.False(t, student.IsOwnerOrAdmin(7))
}
