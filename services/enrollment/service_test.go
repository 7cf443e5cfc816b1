package enrollment

import (
	"fmt"
	"sync"
	"testing"

	"uniportal/database"
	"uniportal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	return db
}

func createStudent(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Student", Email: email, Role: "STUDENT", Password: "x", IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createOffering(t *testing.T, db *gorm.DB, maxStudents int) *models.Offering {
	t.Helper()

	course := models.Course{Code: fmt.Sprintf("CS%d", maxStudents), Title: "Course"}
	require.NoError(t, db.Create(&course).Error)
	sem := models.Semester{Code: fmt.Sprintf("FA%d", maxStudents), Name: "Fall"}
	require.NoError(t, db.Create(&sem).Error)

	offering := &models.Offering{
		CourseID:    course.ID,
		SemesterID:  sem.ID,
		Section:     "A",
		Code:        fmt.Sprintf("%s-%s-A", course.Code, sem.Code),
		MaxStudents: maxStudents,
	}
	require.NoError(t, db.Create(offering).Error)
	return offering
}

func TestEnroll(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	offering := createOffering(t, db, 2)
	student := createStudent(t, db, "s1@test.edu")

	enrollment, err := svc.Enroll(offering.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, enrollment.StudentID)

	enrolled, err := svc.IsEnrolled(offering.ID, student.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestEnrollDuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	offering := createOffering(t, db, 5)
	student := createStudent(t, db, "s1@test.edu")

	_, err := svc.Enroll(offering.ID, student.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(offering.ID, student.ID)
	assert.ErrorIs(t, err, ErrDuplicateEnrollment)
}

func TestEnrollInactiveStudentRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	offering := createOffering(t, db, 5)
	student := createStudent(t, db, "s1@test.edu")
	require.NoError(t, db.Model(student).Update("is_active", false).Error)

	_, err := svc.Enroll(offering.ID, student.ID)
	assert.ErrorIs(t, err, ErrStudentInactive)
}

func TestEnrollCapacityExceeded(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	offering := createOffering(t, db, 1)
	s1 := createStudent(t, db, "s1@test.edu")
	s2 := createStudent(t, db, "s2@test.edu")

	_, err := svc.Enroll(offering.ID, s1.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(offering.ID, s2.ID)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	status, err := svc.CanEnroll(offering.ID)
	require.NoError(t, err)
	assert.False(t, status.Ok)
	assert.Equal(t, int64(0), status.Remaining)
}

func TestEnrollConcurrentNeverOversubscribes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	offering := createOffering(t, db, 1)
	s1 := createStudent(t, db, "s1@test.edu")
	s2 := createStudent(t, db, "s2@test.edu")

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, id := range []uint{s1.ID, s2.ID} {
		wg.Add(1)
		go func(studentID uint) {
			defer wg.Done()
			_, err := svc.Enroll(offering.ID, studentID)
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrCapacityExceeded)
		}
	}
	assert.Equal(t, 1, succeeded)

	count, err := activeCount(db, offering.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDropFreesSeat(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	offering := createOffering(t, db, 1)
	s1 := createStudent(t, db, "s1@test.edu")
	s2 := createStudent(t, db, "s2@test.edu")

	_, err := svc.Enroll(offering.ID, s1.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Drop(offering.ID, s1.ID))

	// The dropped row stays, stamped rather than deleted
	var dropped models.Enrollment
	require.NoError(t, db.Where("student_id = ? AND offering_id = ?", s1.ID, offering.ID).
		First(&dropped).Error)
	assert.NotNil(t, dropped.DroppedAt)

	_, err = svc.Enroll(offering.ID, s2.ID)
	assert.NoError(t, err)
}

func TestDropNotEnrolled(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	offering := createOffering(t, db, 1)
	student := createStudent(t, db, "s1@test.edu")

	assert.ErrorIs(t, svc.Drop(offering.ID, student.ID), ErrNotEnrolled)
}

func TestBulkEnrollTruncatesAtCapacityInInputOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	offering := createOffering(t, db, 2)

	var ids []uint
	for i := 0; i < 4; i++ {
		ids = append(ids, createStudent(t, db, fmt.Sprintf("s%d@test.edu", i)).ID)
	}

	result, err := svc.BulkEnroll(offering.ID, ids)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Enrolled)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, ErrCapacityExceeded.Error(), result.Reasons[ids[2]])
	assert.Equal(t, ErrCapacityExceeded.Error(), result.Reasons[ids[3]])

	// The first two in input order got the seats
	for _, id := range ids[:2] {
		enrolled, err := svc.IsEnrolled(offering.ID, id)
		require.NoError(t, err)
		assert.True(t, enrolled)
	}
}

func TestBulkEnrollReportsPerStudentFailures(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	offering := createOffering(t, db, 10)
	ok := createStudent(t, db, "ok@test.edu")
	already := createStudent(t, db, "already@test.edu")
	inactive := createStudent(t, db, "inactive@test.edu")
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	_, err := svc.Enroll(offering.ID, already.ID)
	require.NoError(t, err)

	result, err := svc.BulkEnroll(offering.ID, []uint{ok.ID, already.ID, inactive.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Enrolled)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, ErrDuplicateEnrollment.Error(), result.Reasons[already.ID])
	assert.Equal(t, ErrStudentInactive.Error(), result.Reasons[inactive.ID])
}

func TestCreateOfferingGeneratesCode(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	course := models.Course{Code: "CS101", Title: "Intro"}
	require.NoError(t, db.Create(&course).Error)
	sem := models.Semester{Code: "FA26", Name: "Fall 2026"}
	require.NoError(t, db.Create(&sem).Error)

	offering, err := svc.CreateOffering(OfferingInput{
		CourseID:    course.ID,
		SemesterID:  sem.ID,
		Section:     "A",
		MaxStudents: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, "CS101-FA26-A", offering.Code)

	// Same triple again is rejected
	_, err = svc.CreateOffering(OfferingInput{
		CourseID:    course.ID,
		SemesterID:  sem.ID,
		Section:     "A",
		MaxStudents: 30,
	})
	assert.ErrorIs(t, err, ErrDuplicateOffering)
}

func TestUpdateOfferingRegeneratesCodeOnIdentityChange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	course := models.Course{Code: "CS101", Title: "Intro"}
	require.NoError(t, db.Create(&course).Error)
	sem := models.Semester{Code: "FA26", Name: "Fall 2026"}
	require.NoError(t, db.Create(&sem).Error)

	offering, err := svc.CreateOffering(OfferingInput{
		CourseID: course.ID, SemesterID: sem.ID, Section: "A", MaxStudents: 30,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateOffering(offering.ID, OfferingInput{
		CourseID: course.ID, SemesterID: sem.ID, Section: "B", MaxStudents: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, "CS101-FA26-B", updated.Code)
	assert.Equal(t, 25, updated.MaxStudents)
}

func TestDeleteOfferingWithEnrollmentsRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	offering := createOffering(t, db, 5)
	student := createStudent(t, db, "s1@test.edu")

	_, err := svc.Enroll(offering.ID, student.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteOffering(offering.ID), ErrHasEnrollments)

	// Once the seat is dropped the offering can go
	require.NoError(t, svc.Drop(offering.ID, student.ID))
	assert.NoError(t, svc.DeleteOffering(offering.ID))
}
