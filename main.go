package main

import (
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/sirupsen/logrus"

	"github.com/codequest-labs/codequest-backend/internal/config"
	"github.com/codequest-labs/codequest-backend/internal/container"
	"github.com/codequest-labs/codequest-backend/internal/router"
)

func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		UserHandler:       c.UserContainer.Handler,
		CourseHandler:     c.CourseContainer.Handler,
		LessonHandler:     c.LessonContainer.Handler,
		ExerciseHandler:   c.ExerciseContainer.Handler,
		ProgressHandler:   c.ProgressContainer.Handler,
		SubmissionHandler: c.SubmissionContainer.Handler,
		QuizHandler:       c.QuizContainer.Handler,
		BadgeHandler:      c.BadgeContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(httpadapter.New(handler).ProxyWithContext)
		return
	}

	port := config.EnvOr("PORT", "8080")
	logrus.Infof("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
