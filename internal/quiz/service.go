package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/codequest-labs/codequest-backend/internal/badge"
	"github.com/codequest-labs/codequest-backend/internal/config"
	"github.com/codequest-labs/codequest-backend/internal/grading"
	"github.com/codequest-labs/codequest-backend/internal/lesson"
	"github.com/codequest-labs/codequest-backend/internal/progress"
	"github.com/codequest-labs/codequest-backend/internal/user"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("quiz question not found")
	ErrEmptyQuiz        = errors.New("quiz has no questions")
	ErrInvalidInput     = errors.New("invalid quiz data")
)

type Service interface {
	CreateQuiz(ctx context.Context, input CreateQuizInput) (*Quiz, error)
	GetQuiz(ctx context.Context, id uint) (*QuizView, error)
	ListByLesson(ctx context.Context, lessonID uint) ([]Quiz, error)
	DeleteQuiz(ctx context.Context, id uint) error
	AddQuestion(ctx context.Context, quizID uint, input QuestionInput) (*QuizQuestion, error)
	RemoveQuestion(ctx context.Context, questionID uint) error
	SubmitAttempt(ctx context.Context, input SubmitAttemptInput) (*AttemptResult, error)
	ListAttemptsByUser(ctx context.Context, userID uint) ([]QuizAttempt, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	userRepo   user.Repository
	lessonRepo lesson.Repository
	progress   progress.Service
	badges     badge.Service
}

func NewService(
	db *gorm.DB,
	repo Repository,
	userRepo user.Repository,
	lessonRepo lesson.Repository,
	progressService progress.Service,
	badgeService badge.Service,
) Service {
	return &service{
		db:         db,
		repo:       repo,
		userRepo:   userRepo,
		lessonRepo: lessonRepo,
		progress:   progressService,
		badges:     badgeService,
	}
}

func (s *service) CreateQuiz(ctx context.Context, input CreateQuizInput) (*Quiz, error) {
	log := config.WithContext(ctx)

	if input.Title == "" || input.PointsReward <= 0 {
		return nil, ErrInvalidInput
	}

	l, err := s.lessonRepo.FindByID(input.LessonID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, lesson.ErrLessonNotFound
	}

	questions := make([]*QuizQuestion, 0, len(input.Questions))
	for i, qi := range input.Questions {
		question, err := buildQuestion(qi, i)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	q := &Quiz{
		LessonID:     input.LessonID,
		Title:        input.Title,
		Description:  input.Description,
		PointsReward: input.PointsReward,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, q); err != nil {
			return err
		}
		for _, question := range questions {
			question.QuizID = q.ID
		}
		return s.repo.AddQuestions(tx, questions)
	})
	if err != nil {
		return nil, err
	}

	log.Infof("quiz %q created with %d questions", q.Title, len(questions))
	return q, nil
}

func buildQuestion(input QuestionInput, orderIndex int) (*QuizQuestion, error) {
	if input.Question == "" || len(input.Options) < 2 {
		return nil, ErrInvalidInput
	}
	valid := false
	for _, opt := range input.Options {
		if opt == input.CorrectAnswer {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidInput
	}

	options, err := json.Marshal(input.Options)
	if err != nil {
		return nil, err
	}

	return &QuizQuestion{
		Question:      input.Question,
		Options:       options,
		CorrectAnswer: input.CorrectAnswer,
		Explanation:   input.Explanation,
		OrderIndex:    orderIndex,
	}, nil
}

func (s *service) GetQuiz(ctx context.Context, id uint) (*QuizView, error) {
	q, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	view := &QuizView{
		ID:           q.ID,
		LessonID:     q.LessonID,
		Title:        q.Title,
		Description:  q.Description,
		PointsReward: q.PointsReward,
		Questions:    make([]QuestionView, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		var options []string
		if err := json.Unmarshal(question.Options, &options); err != nil {
			config.WithContext(ctx).WithError(err).Warnf("question %d has unreadable options", question.ID)
		}
		view.Questions = append(view.Questions, QuestionView{
			ID:         question.ID,
			Question:   question.Question,
			Options:    options,
			OrderIndex: question.OrderIndex,
		})
	}
	return view, nil
}

func (s *service) ListByLesson(ctx context.Context, lessonID uint) ([]Quiz, error) {
	l, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, lesson.ErrLessonNotFound
	}
	return s.repo.ListByLesson(lessonID)
}

func (s *service) DeleteQuiz(ctx context.Context, id uint) error {
	q, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if q == nil {
		return ErrQuizNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	config.WithContext(ctx).Infof("quiz %d deleted", id)
	return nil
}

func (s *service) AddQuestion(ctx context.Context, quizID uint, input QuestionInput) (*QuizQuestion, error) {
	q, err := s.repo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	// New questions go after the highest surviving index, which can differ
	// from len(q.Questions) once a mid-list question has been removed.
	next := 0
	for _, existing := range q.Questions {
		if existing.OrderIndex >= next {
			next = existing.OrderIndex + 1
		}
	}
	question, err := buildQuestion(input, next)
	if err != nil {
		return nil, err
	}
	question.QuizID = quizID

	if err := s.repo.AddQuestions(nil, []*QuizQuestion{question}); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *service) RemoveQuestion(ctx context.Context, questionID uint) error {
	return s.repo.DeleteQuestion(questionID)
}

// SubmitAttempt grades the answers positionally against the quiz's ordered
// questions. The attempt row is always persisted; whether its candidate
// points get credited is decided by the progress reconciler, so a worse
// re-attempt never lowers the stored result.
func (s *service) SubmitAttempt(ctx context.Context, input SubmitAttemptInput) (*AttemptResult, error) {
	log := config.WithContext(ctx)

	if input.UserID == 0 || input.QuizID == 0 {
		return nil, ErrInvalidInput
	}

	u, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	q, err := s.repo.FindByID(input.QuizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}
	if len(q.Questions) == 0 {
		return nil, ErrEmptyQuiz
	}

	correct := make([]string, len(q.Questions))
	for i, question := range q.Questions {
		correct[i] = question.CorrectAnswer
	}

	verdict := grading.GradeQuiz(correct, input.Answers)

	answers, err := json.Marshal(input.Answers)
	if err != nil {
		return nil, err
	}
	attempt := &QuizAttempt{
		UserID:         input.UserID,
		QuizID:         input.QuizID,
		Answers:        answers,
		Score:          verdict.CorrectCount,
		TotalQuestions: verdict.TotalCount,
		CompletedAt:    time.Now(),
	}
	if err := s.repo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	result := &AttemptResult{Attempt: attempt, Verdict: verdict}

	candidate := grading.QuizPoints(verdict.CorrectCount, verdict.TotalCount, q.PointsReward)

	courseID, err := s.courseOf(q.LessonID)
	if err != nil {
		log.WithError(err).Warnf("could not resolve course for lesson %d, progress not updated", q.LessonID)
		return result, nil
	}

	target := progress.ForQuiz(q.ID)
	_, credited, err := s.progress.Apply(ctx, input.UserID, courseID, target, progress.StatusCompleted, candidate)
	if err != nil {
		log.WithError(err).Warnf("progress update failed for user %d quiz %d", input.UserID, q.ID)
		return result, nil
	}
	result.PointsEarned = credited

	granted, err := s.badges.Evaluate(ctx, input.UserID)
	if err != nil {
		log.WithError(err).Warnf("badge evaluation failed for user %d", input.UserID)
		return result, nil
	}
	result.NewBadges = granted

	return result, nil
}

func (s *service) courseOf(lessonID uint) (uint, error) {
	l, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		return 0, err
	}
	if l == nil {
		return 0, lesson.ErrLessonNotFound
	}
	return l.CourseID, nil
}

func (s *service) ListAttemptsByUser(ctx context.Context, userID uint) ([]QuizAttempt, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListAttemptsByUser(userID)
}
