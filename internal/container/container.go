package container

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/codequest-labs/codequest-backend/internal/badge"
	"github.com/codequest-labs/codequest-backend/internal/config"
	"github.com/codequest-labs/codequest-backend/internal/course"
	"github.com/codequest-labs/codequest-backend/internal/exercise"
	"github.com/codequest-labs/codequest-backend/internal/lesson"
	"github.com/codequest-labs/codequest-backend/internal/points"
	"github.com/codequest-labs/codequest-backend/internal/progress"
	"github.com/codequest-labs/codequest-backend/internal/quiz"
	"github.com/codequest-labs/codequest-backend/internal/runner"
	"github.com/codequest-labs/codequest-backend/internal/submission"
	"github.com/codequest-labs/codequest-backend/internal/user"
)

type Container struct {
	UserContainer       *user.UserContainer
	CourseContainer     *course.CourseContainer
	LessonContainer     *lesson.LessonContainer
	ExerciseContainer   *exercise.ExerciseContainer
	ProgressContainer   *progress.ProgressContainer
	SubmissionContainer *submission.SubmissionContainer
	QuizContainer       *quiz.QuizContainer
	BadgeContainer      *badge.BadgeContainer
}

func New() *Container {
	config.Init()
	config.InitCrypto()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&course.Course{},
		&lesson.Lesson{},
		&exercise.Exercise{},
		&progress.UserProgress{},
		&submission.CodeSubmission{},
		&quiz.Quiz{},
		&quiz.QuizQuestion{},
		&quiz.QuizAttempt{},
		&badge.Badge{},
		&badge.UserBadge{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	if err := progress.EnsureIndexes(config.DB); err != nil {
		log.Fatalf("failed to create progress indexes: %v", err)
	}

	codeRunner := runner.NewHTTPRunner(
		config.EnvOr("RUNNER_URL", "http://localhost:9000"),
		runnerTimeout(),
	)

	userContainer := user.NewUserContainer(config.DB)
	courseContainer := course.NewCourseContainer(config.DB)
	lessonContainer := lesson.NewLessonContainer(config.DB, courseContainer.Repo)
	exerciseContainer := exercise.NewExerciseContainer(config.DB, lessonContainer.Repo)
	badgeContainer := badge.NewBadgeContainer(config.DB)

	ledger := points.NewLedger(config.DB)
	progressContainer := progress.NewProgressContainer(config.DB, ledger)

	submissionContainer := submission.NewSubmissionContainer(
		config.DB,
		userContainer.Repo,
		exerciseContainer.Repo,
		lessonContainer.Repo,
		codeRunner,
		progressContainer.Service,
		badgeContainer.Service,
	)
	quizContainer := quiz.NewQuizContainer(
		config.DB,
		userContainer.Repo,
		lessonContainer.Repo,
		progressContainer.Service,
		badgeContainer.Service,
	)

	return &Container{
		UserContainer:       userContainer,
		CourseContainer:     courseContainer,
		LessonContainer:     lessonContainer,
		ExerciseContainer:   exerciseContainer,
		ProgressContainer:   progressContainer,
		SubmissionContainer: submissionContainer,
		QuizContainer:       quizContainer,
		BadgeContainer:      badgeContainer,
	}
}

func runnerTimeout() time.Duration {
	raw := config.EnvOr("RUNNER_TIMEOUT", "30s")
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid RUNNER_TIMEOUT %q, using 30s", raw)
		return 30 * time.Second
	}
	return d
}
