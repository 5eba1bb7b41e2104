package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/codequest-labs/codequest-backend/internal/badge"
	"github.com/codequest-labs/codequest-backend/internal/course"
	"github.com/codequest-labs/codequest-backend/internal/exercise"
	"github.com/codequest-labs/codequest-backend/internal/lesson"
	"github.com/codequest-labs/codequest-backend/internal/middlewares"
	"github.com/codequest-labs/codequest-backend/internal/progress"
	"github.com/codequest-labs/codequest-backend/internal/quiz"
	"github.com/codequest-labs/codequest-backend/internal/submission"
	"github.com/codequest-labs/codequest-backend/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	CourseHandler     *course.Handler
	LessonHandler     *lesson.Handler
	ExerciseHandler   *exercise.Handler
	ProgressHandler   *progress.Handler
	SubmissionHandler *submission.Handler
	QuizHandler       *quiz.Handler
	BadgeHandler      *badge.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)
	r.Use(middlewares.RequestLogger)

	r.Mount("/users", user.Routes(cfg.UserHandler))
	r.Mount("/courses", course.Routes(cfg.CourseHandler))
	r.Mount("/lessons", lesson.Routes(cfg.LessonHandler))
	r.Mount("/exercises", exercise.Routes(cfg.ExerciseHandler))
	r.Mount("/progress", progress.Routes(cfg.ProgressHandler))
	r.Mount("/submissions", submission.Routes(cfg.SubmissionHandler))
	r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
	r.Mount("/badges", badge.Routes(cfg.BadgeHandler))

	r.Get("/courses/{id}/lessons", cfg.LessonHandler.ListByCourse)
	r.Get("/lessons/{id}/exercises", cfg.ExerciseHandler.ListByLesson)
	r.Get("/lessons/{id}/quizzes", cfg.QuizHandler.ListByLesson)
	r.Get("/users/{id}/progress", cfg.ProgressHandler.ListByUser)
	r.Get("/users/{id}/submissions", cfg.SubmissionHandler.ListByUser)
	r.Get("/users/{id}/quiz-attempts", cfg.QuizHandler.ListAttemptsByUser)
	r.Get("/users/{id}/badges", cfg.BadgeHandler.ListUserBadges)
	r.Post("/users/{id}/badges/evaluate", cfg.BadgeHandler.Evaluate)

	return r
}
