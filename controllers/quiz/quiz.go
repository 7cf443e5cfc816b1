package quizController

import (
	"errors"
	"log"
	"time"

	"uniportal/database"
	"uniportal/middleware"
	quizModels "uniportal/models/quiz"
	"uniportal/services/grading"
	quizService "uniportal/services/quiz"

	"github.com/gofiber/fiber/v2"
)

var (
	bankService    *quizService.BankService
	attemptService *quizService.AttemptService
	grader         grading.Grader
)

// Init wires the controllers to the shared quiz services. The grader
// may be nil when no AI provider is configured.
func Init(bank *quizService.BankService, attempt *quizService.AttemptService, g grading.Grader) {
	bankService = bank
	attemptService = attempt
	grader = g
}

// quizErrorResponse maps quiz service errors onto HTTP responses
func quizErrorResponse(c *fiber.Ctx, err error, action string) error {
	var ve *quizService.ValidationError
	if errors.As(err, &ve) {
		return middleware.ValidationErrorResponse(c, ve.Fields)
	}

	switch {
	case errors.Is(err, quizService.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	case errors.Is(err, quizService.ErrQuizLocked):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Quiz is no longer editable!", nil)
	case errors.Is(err, quizService.ErrInvalidState):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Operation not allowed in the current state!", nil)
	case errors.Is(err, quizService.ErrQuizNotAvailable):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Quiz is not available!", nil)
	case errors.Is(err, quizService.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this offering!", nil)
	case errors.Is(err, quizService.ErrAttemptExpired):
		return middleware.JsonResponse(c, fiber.StatusGone, false, "Attempt time limit has elapsed!", nil)
	case errors.Is(err, quizService.ErrHasAttempts):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Quiz has existing attempts!", nil)
	case errors.Is(err, quizService.ErrAIUnavailable):
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "AI grading is unavailable!", nil)
	default:
		log.Printf("Error during %s: %v", action, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to "+action+"!", nil)
	}
}

// QuizRequest is the quiz payload shared by create and update
type QuizRequest struct {
	OfferingID       uint       `json:"offering_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Duration         int        `json:"duration"`
	PassingScore     float64    `json:"passing_score"`
	ShuffleQuestions bool       `json:"shuffle_questions"`
	ShuffleOptions   bool       `json:"shuffle_options"`
	ShowResults      bool       `json:"show_results"`
	AllowReview      bool       `json:"allow_review"`
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
}

func (r *QuizRequest) toInput() quizService.QuizInput {
	return quizService.QuizInput{
		OfferingID:       r.OfferingID,
		Title:            r.Title,
		Description:      r.Description,
		Duration:         r.Duration,
		PassingScore:     r.PassingScore,
		ShuffleQuestions: r.ShuffleQuestions,
		ShuffleOptions:   r.ShuffleOptions,
		ShowResults:      r.ShowResults,
		AllowReview:      r.AllowReview,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
	}
}

// QuestionRequest is the question payload shared by create and update
type QuestionRequest struct {
	Type        string  `json:"type"`
	Difficulty  string  `json:"difficulty"`
	Text        string  `json:"text"`
	Points      float64 `json:"points"`
	OrderIndex  int     `json:"order_index"`
	Explanation string  `json:"explanation"`
	Options     []struct {
		Text       string `json:"text"`
		IsCorrect  bool   `json:"is_correct"`
		OrderIndex int    `json:"order_index"`
	} `json:"options"`
}

func (r *QuestionRequest) toInput() quizService.QuestionInput {
	in := quizService.QuestionInput{
		Type:        r.Type,
		Difficulty:  r.Difficulty,
		Text:        r.Text,
		Points:      r.Points,
		OrderIndex:  r.OrderIndex,
		Explanation: r.Explanation,
	}
	for _, opt := range r.Options {
		in.Options = append(in.Options, quizService.OptionInput{
			Text:       opt.Text,
			IsCorrect:  opt.IsCorrect,
			OrderIndex: opt.OrderIndex,
		})
	}
	return in
}

// CreateQuiz creates a draft quiz on an offering
func CreateQuiz(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuiz").(*QuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	q, err := bankService.CreateQuiz(userID, reqData.toInput())
	if err != nil {
		return quizErrorResponse(c, err, "create quiz")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", q)
}

// UpdateQuiz edits a quiz while it is still a draft with no attempts
func UpdateQuiz(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*QuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	q, err := bankService.UpdateQuiz(uint(id), reqData.toInput())
	if err != nil {
		return quizErrorResponse(c, err, "update quiz")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", q)
}

// GetQuiz returns one quiz with its questions in canonical order
func GetQuiz(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	var q quizModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&q).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	questions, err := bankService.Questions(q.ID)
	if err != nil {
		log.Printf("Error fetching questions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      q,
		"questions": questions,
	})
}

// ListQuizzes returns quizzes on an offering
func ListQuizzes(c *fiber.Ctx) error {
	offeringID := c.QueryInt("offering_id")

	query := database.Database.Db.Where("is_deleted = ?", false)
	if offeringID > 0 {
		query = query.Where("offering_id = ?", offeringID)
	}

	var quizzes []quizModels.Quiz
	if err := query.Order("created_at desc").Find(&quizzes).Error; err != nil {
		log.Printf("Error listing quizzes: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", quizzes)
}

// PublishQuiz opens a draft quiz to students
func PublishQuiz(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	q, err := bankService.Publish(uint(id))
	if err != nil {
		return quizErrorResponse(c, err, "publish quiz")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz published successfully!", q)
}

// CloseQuiz closes a published quiz
func CloseQuiz(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	q, err := bankService.Close(uint(id))
	if err != nil {
		return quizErrorResponse(c, err, "close quiz")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz closed successfully!", q)
}

// DeleteQuiz removes a quiz nobody has attempted
func DeleteQuiz(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	if err := bankService.DeleteQuiz(uint(id)); err != nil {
		return quizErrorResponse(c, err, "delete quiz")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}

// AddQuestion appends a question to a draft quiz
func AddQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*QuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	question, err := bankService.AddQuestion(uint(id), reqData.toInput())
	if err != nil {
		return quizErrorResponse(c, err, "add question")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// UpdateQuestion replaces a question's definition and options
func UpdateQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("questionId")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*QuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	question, err := bankService.UpdateQuestion(uint(id), reqData.toInput())
	if err != nil {
		return quizErrorResponse(c, err, "update question")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

// DeleteQuestion removes a question from a draft quiz
func DeleteQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("questionId")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	if err := bankService.DeleteQuestion(uint(id)); err != nil {
		return quizErrorResponse(c, err, "delete question")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}
