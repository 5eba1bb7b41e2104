package badge

type RequirementType string

const (
	RequirementPoints             RequirementType = "points"
	RequirementCoursesCompleted   RequirementType = "courses_completed"
	RequirementExercisesCompleted RequirementType = "exercises_completed"
)

func (t RequirementType) Valid() bool {
	switch t {
	case RequirementPoints, RequirementCoursesCompleted, RequirementExercisesCompleted:
		return true
	}
	return false
}
