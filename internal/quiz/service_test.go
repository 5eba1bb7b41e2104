package quiz_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/codequest-labs/codequest-backend/internal/badge"
	"github.com/codequest-labs/codequest-backend/internal/course"
	"github.com/codequest-labs/codequest-backend/internal/grading"
	"github.com/codequest-labs/codequest-backend/internal/lesson"
	"github.com/codequest-labs/codequest-backend/internal/points"
	"github.com/codequest-labs/codequest-backend/internal/progress"
	"github.com/codequest-labs/codequest-backend/internal/quiz"
	"github.com/codequest-labs/codequest-backend/internal/user"
)

type fixture struct {
	db      *gorm.DB
	service quiz.Service
	user    *user.User
	lesson  *lesson.Lesson
}

func setup(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(
		&user.User{}, &course.Course{}, &lesson.Lesson{},
		&quiz.Quiz{}, &quiz.QuizQuestion{}, &quiz.QuizAttempt{},
		&progress.UserProgress{}, &badge.Badge{}, &badge.UserBadge{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := progress.EnsureIndexes(db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	u := &user.User{Username: "learner", Email: "learner@example.com", PasswordHash: "x"}
	c := &course.Course{Title: "Go Basics", Language: "go", Difficulty: course.DifficultyBeginner}
	if err := db.Create(u).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatal(err)
	}
	l := &lesson.Lesson{CourseID: c.ID, Title: "Slices", OrderIndex: 1}
	if err := db.Create(l).Error; err != nil {
		t.Fatal(err)
	}

	ledger := points.NewLedger(db)
	progressService := progress.NewService(db, progress.NewRepository(db), ledger)
	badgeService := badge.NewService(badge.NewRepository(db))

	service := quiz.NewService(
		db,
		quiz.NewRepository(db),
		user.NewRepository(db),
		lesson.NewRepository(db),
		progressService,
		badgeService,
	)

	return &fixture{db: db, service: service, user: u, lesson: l}
}

func (f *fixture) createQuiz(t *testing.T) *quiz.Quiz {
	t.Helper()
	q, err := f.service.CreateQuiz(context.Background(), quiz.CreateQuizInput{
		LessonID:     f.lesson.ID,
		Title:        "Slices basics",
		PointsReward: 90,
		Questions: []quiz.QuestionInput{
			{Question: "Zero value of a slice?", Options: []string{"nil", "empty"}, CorrectAnswer: "nil"},
			{Question: "len(nil slice)?", Options: []string{"0", "panics"}, CorrectAnswer: "0"},
			{Question: "append reallocates?", Options: []string{"sometimes", "always"}, CorrectAnswer: "sometimes"},
		},
	})
	if err != nil {
		t.Fatalf("failed to create quiz: %v", err)
	}
	return q
}

func (f *fixture) totalPoints(t *testing.T) int {
	t.Helper()
	var u user.User
	if err := f.db.First(&u, f.user.ID).Error; err != nil {
		t.Fatal(err)
	}
	return u.TotalPoints
}

func TestCreateQuiz(t *testing.T) {
	t.Run("WithQuestions", func(t *testing.T) {
		f := setup(t)
		q := f.createQuiz(t)

		var count int64
		f.db.Model(&quiz.QuizQuestion{}).Where("quiz_id = ?", q.ID).Count(&count)
		if count != 3 {
			t.Fatalf("expected 3 questions, got %d", count)
		}
	})

	t.Run("CorrectAnswerMustBeAnOption", func(t *testing.T) {
		f := setup(t)
		_, err := f.service.CreateQuiz(context.Background(), quiz.CreateQuizInput{
			LessonID:     f.lesson.ID,
			Title:        "Broken",
			PointsReward: 10,
			Questions: []quiz.QuestionInput{
				{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: "c"},
			},
		})
		if !errors.Is(err, quiz.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("UnknownLesson", func(t *testing.T) {
		f := setup(t)
		_, err := f.service.CreateQuiz(context.Background(), quiz.CreateQuizInput{
			LessonID:     999,
			Title:        "Orphan",
			PointsReward: 10,
		})
		if !errors.Is(err, lesson.ErrLessonNotFound) {
			t.Fatalf("expected ErrLessonNotFound, got %v", err)
		}
	})
}

func TestGetQuiz(t *testing.T) {
	f := setup(t)
	q := f.createQuiz(t)

	view, err := f.service.GetQuiz(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(view.Questions))
	}
	for i, question := range view.Questions {
		if question.OrderIndex != i {
			t.Errorf("expected questions ordered by order_index, got %d at position %d", question.OrderIndex, i)
		}
		if len(question.Options) != 2 {
			t.Errorf("expected decoded options, got %v", question.Options)
		}
	}

	if _, err := f.service.GetQuiz(context.Background(), 999); !errors.Is(err, quiz.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestSubmitAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialCredit", func(t *testing.T) {
		f := setup(t)
		q := f.createQuiz(t)

		result, err := f.service.SubmitAttempt(ctx, quiz.SubmitAttemptInput{
			UserID:  f.user.ID,
			QuizID:  q.ID,
			Answers: []string{"nil", "0", "always"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Verdict.Outcome != grading.OutcomePartial {
			t.Fatalf("expected partial, got %s", result.Verdict.Outcome)
		}
		if result.Attempt.Score != 2 || result.Attempt.TotalQuestions != 3 {
			t.Errorf("expected score 2/3, got %d/%d", result.Attempt.Score, result.Attempt.TotalQuestions)
		}
		if result.PointsEarned != 60 {
			t.Errorf("expected 60 points credited, got %d", result.PointsEarned)
		}

		var row progress.UserProgress
		if err := f.db.First(&row, "user_id = ? AND quiz_id = ?", f.user.ID, q.ID).Error; err != nil {
			t.Fatalf("expected a progress row: %v", err)
		}
		if row.PointsEarned != 60 || row.CompletedAt == nil {
			t.Errorf("unexpected progress row: %+v", row)
		}
		if got := f.totalPoints(t); got != 60 {
			t.Errorf("expected total_points 60, got %d", got)
		}
	})

	t.Run("WorseReattemptKeepsBest", func(t *testing.T) {
		f := setup(t)
		q := f.createQuiz(t)

		if _, err := f.service.SubmitAttempt(ctx, quiz.SubmitAttemptInput{
			UserID: f.user.ID, QuizID: q.ID, Answers: []string{"nil", "0", "always"},
		}); err != nil {
			t.Fatal(err)
		}
		result, err := f.service.SubmitAttempt(ctx, quiz.SubmitAttemptInput{
			UserID: f.user.ID, QuizID: q.ID, Answers: []string{"nil", "panics", "always"},
		})
		if err != nil {
			t.Fatal(err)
		}
		if result.PointsEarned != 0 {
			t.Errorf("a worse attempt must credit nothing, got %d", result.PointsEarned)
		}

		var row progress.UserProgress
		if err := f.db.First(&row, "user_id = ? AND quiz_id = ?", f.user.ID, q.ID).Error; err != nil {
			t.Fatal(err)
		}
		if row.PointsEarned != 60 {
			t.Errorf("expected points_earned to stay 60, got %d", row.PointsEarned)
		}
		if got := f.totalPoints(t); got != 60 {
			t.Errorf("expected total_points 60, got %d", got)
		}

		var attempts int64
		f.db.Model(&quiz.QuizAttempt{}).Count(&attempts)
		if attempts != 2 {
			t.Errorf("attempt history is append-only, expected 2 rows, got %d", attempts)
		}
	})

	t.Run("ShortAnswersStillGrade", func(t *testing.T) {
		f := setup(t)
		q := f.createQuiz(t)

		result, err := f.service.SubmitAttempt(ctx, quiz.SubmitAttemptInput{
			UserID: f.user.ID, QuizID: q.ID, Answers: []string{"nil"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Attempt.Score != 1 {
			t.Errorf("expected score 1, got %d", result.Attempt.Score)
		}
		if result.PointsEarned != 30 {
			t.Errorf("expected floor(1/3*90)=30 credited, got %d", result.PointsEarned)
		}
	})

	t.Run("EmptyQuiz", func(t *testing.T) {
		f := setup(t)
		q, err := f.service.CreateQuiz(ctx, quiz.CreateQuizInput{
			LessonID: f.lesson.ID, Title: "Empty", PointsReward: 10,
		})
		if err != nil {
			t.Fatal(err)
		}

		_, err = f.service.SubmitAttempt(ctx, quiz.SubmitAttemptInput{
			UserID: f.user.ID, QuizID: q.ID, Answers: []string{"a"},
		})
		if !errors.Is(err, quiz.ErrEmptyQuiz) {
			t.Fatalf("expected ErrEmptyQuiz, got %v", err)
		}
	})

	t.Run("UnknownQuiz", func(t *testing.T) {
		f := setup(t)
		_, err := f.service.SubmitAttempt(ctx, quiz.SubmitAttemptInput{
			UserID: f.user.ID, QuizID: 999, Answers: []string{"a"},
		})
		if !errors.Is(err, quiz.ErrQuizNotFound) {
			t.Fatalf("expected ErrQuizNotFound, got %v", err)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		f := setup(t)
		q := f.createQuiz(t)
		_, err := f.service.SubmitAttempt(ctx, quiz.SubmitAttemptInput{
			UserID: 999, QuizID: q.ID, Answers: []string{"a"},
		})
		if !errors.Is(err, user.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestAddAndRemoveQuestion(t *testing.T) {
	f := setup(t)
	q := f.createQuiz(t)

	question, err := f.service.AddQuestion(context.Background(), q.ID, quiz.QuestionInput{
		Question:      "cap of nil slice?",
		Options:       []string{"0", "undefined"},
		CorrectAnswer: "0",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if question.OrderIndex != 3 {
		t.Errorf("expected the new question appended at index 3, got %d", question.OrderIndex)
	}

	if err := f.service.RemoveQuestion(context.Background(), question.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := f.service.GetQuiz(context.Background(), q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Questions) != 3 {
		t.Errorf("expected 3 questions after removal, got %d", len(view.Questions))
	}
}

func TestAddQuestionAfterMidListRemoval(t *testing.T) {
	f := setup(t)
	q := f.createQuiz(t)

	view, err := f.service.GetQuiz(context.Background(), q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.service.RemoveQuestion(context.Background(), view.Questions[1].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	question, err := f.service.AddQuestion(context.Background(), q.ID, quiz.QuestionInput{
		Question:      "cap of nil slice?",
		Options:       []string{"0", "undefined"},
		CorrectAnswer: "0",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if question.OrderIndex != 3 {
		t.Errorf("expected the new question after the highest index, got %d", question.OrderIndex)
	}

	view, err = f.service.GetQuiz(context.Background(), q.ID)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[int]bool)
	for _, qv := range view.Questions {
		if seen[qv.OrderIndex] {
			t.Fatalf("order index %d assigned twice", qv.OrderIndex)
		}
		seen[qv.OrderIndex] = true
	}
}
