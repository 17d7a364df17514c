package models

// Exercise types. Which numeric fields a WorkoutDetail fills in is left to the
// user; cardio rows typically carry a duration, strength rows sets/reps/weight.
const (
	ExerciseTypeStrength = "strength"
	ExerciseTypeCardio   = "cardio"
)

// Exercise is a catalog entry users attach workout detail rows to.
type Exercise struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Type        string `gorm:"size:50;not null" json:"type"`
}
