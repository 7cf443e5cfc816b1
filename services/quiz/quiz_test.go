package quiz

import (
	"fmt"
	"testing"

	"uniportal/database"
	"uniportal/models"

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

var offeringSeq int

func createOffering(t *testing.T, db *gorm.DB) *models.Offering {
	t.Helper()
	offeringSeq++

	course := models.Course{Code: fmt.Sprintf("CS%d", 100+offeringSeq), Title: "Course"}
	require.NoError(t, db.Create(&course).Error)
	sem := models.Semester{Code: fmt.Sprintf("FA%d", offeringSeq), Name: "Fall"}
	require.NoError(t, db.Create(&sem).Error)

	offering := &models.Offering{
		CourseID:    course.ID,
		SemesterID:  sem.ID,
		Section:     "A",
		Code:        fmt.Sprintf("%s-%s-A", course.Code, sem.Code),
		MaxStudents: 30,
	}
	require.NoError(t, db.Create(offering).Error)
	return offering
}

func enrollStudent(t *testing.T, db *gorm.DB, offeringID, studentID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.Enrollment{
		StudentID:  studentID,
		OfferingID: offeringID,
	}).Error)
}

// mcqInput builds a two-option multiple choice question where the
// first option is correct
func mcqInput(text string, points float64, order int) QuestionInput {
	return QuestionInput{
		Type:       "MULTIPLE_CHOICE",
		Difficulty: "EASY",
		Text:       text,
		Points:     points,
		OrderIndex: order,
		Options: []OptionInput{
			{Text: "right", IsCorrect: true, OrderIndex: 0},
			{Text: "wrong", IsCorrect: false, OrderIndex: 1},
		},
	}
}

func shortAnswerInput(text string, points float64, order int) QuestionInput {
	return QuestionInput{
		Type:       "SHORT_ANSWER",
		Difficulty: "MEDIUM",
		Text:       text,
		Points:     points,
		OrderIndex: order,
	}
}

func quizInput(offeringID uint) QuizInput {
	return QuizInput{
		OfferingID:   offeringID,
		Title:        "Midterm",
		Duration:     30,
		PassingScore: 60,
		ShowResults:  true,
		AllowReview:  true,
	}
}
