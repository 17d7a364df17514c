package models

import "time"

// Workout is one logged exercise session: a date and a total duration in
// minutes, owned by a user.
type Workout struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	Date          time.Time       `gorm:"not null" json:"date"`
	TotalDuration int             `gorm:"not null" json:"total_duration"` // minutes
	Details       []WorkoutDetail `gorm:"constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

// WorkoutDetail is a per-exercise breakdown row within a workout. All numeric
// fields are optional; nothing checks that they match the exercise type.
type WorkoutDetail struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	WorkoutID  uint     `gorm:"index;not null" json:"workout_id"`
	ExerciseID uint     `gorm:"not null" json:"exercise_id"`
	Exercise   Exercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
	Sets       *int     `json:"sets,omitempty"`
	Reps       *int     `json:"reps,omitempty"`
	Duration   *int     `json:"duration,omitempty"` // minutes, cardio rows
	Weight     *float64 `json:"weight,omitempty"`   // strength rows
}
