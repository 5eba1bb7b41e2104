package progress

// Target identifies what a progress row tracks inside a course. At most one
// of the optional keys is set; an empty Target addresses the course itself.
type Target struct {
	LessonID   *uint
	ExerciseID *uint
	QuizID     *uint
}

func ForCourse() Target {
	return Target{}
}

func ForLesson(lessonID uint) Target {
	return Target{LessonID: &lessonID}
}

func ForExercise(exerciseID uint) Target {
	return Target{ExerciseID: &exerciseID}
}

func ForQuiz(quizID uint) Target {
	return Target{QuizID: &quizID}
}
