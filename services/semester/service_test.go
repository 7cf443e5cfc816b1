package semester

import (
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

func createSemester(t *testing.T, db *gorm.DB, code string) *models.Semester {
	t.Helper()
	sem := &models.Semester{Code: code, Name: "Semester " + code}
	require.NoError(t, db.Create(sem).Error)
	return sem
}

func TestActivateMakesSingleCurrent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	fa := createSemester(t, db, "FA26")
	sp := createSemester(t, db, "SP27")

	_, err := svc.Activate(fa.ID)
	require.NoError(t, err)

	// Activating the second semester demotes the first in the same
	// transaction
	activated, err := svc.Activate(sp.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsCurrent)

	var currentCount int64
	require.NoError(t, db.Model(&models.Semester{}).
		Where("is_current = ?", true).Count(&currentCount).Error)
	assert.Equal(t, int64(1), currentCount)

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, sp.ID, current.ID)
}

func TestActivateUnknownSemester(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.Activate(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeactivateLeavesNoCurrent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	sem := createSemester(t, db, "FA26")
	_, err := svc.Activate(sem.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(sem.ID))

	_, err = svc.Current()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCurrentSemesterRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	sem := createSemester(t, db, "FA26")
	_, err := svc.Activate(sem.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(sem.ID), ErrIsCurrentSemester)
}

func TestDeleteSemesterWithOfferingsRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	sem := createSemester(t, db, "FA26")
	course := models.Course{Code: "CS101", Title: "Intro"}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&models.Offering{
		CourseID:    course.ID,
		SemesterID:  sem.ID,
		Section:     "A",
		Code:        "CS101-FA26-A",
		MaxStudents: 30,
	}).Error)

	assert.ErrorIs(t, svc.Delete(sem.ID), ErrHasOfferings)
}

func TestDeleteSemester(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	sem := createSemester(t, db, "FA26")
	require.NoError(t, svc.Delete(sem.ID))

	var found models.Semester
	err := db.Where("id = ? AND is_deleted = ?", sem.ID, false).First(&found).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
