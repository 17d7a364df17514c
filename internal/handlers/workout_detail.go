package handlers

import (
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/vincentcui-ui/workout-logger/internal/flash"
	"github.com/vincentcui-ui/workout-logger/internal/models"
	"github.com/vincentcui-ui/workout-logger/internal/validation"
)

// WorkoutDetailHandler manages the per-exercise rows inside a workout.
type WorkoutDetailHandler struct {
	db *gorm.DB
}

func NewWorkoutDetailHandler(db *gorm.DB) *WorkoutDetailHandler {
	return &WorkoutDetailHandler{db: db}
}

// AddItem handles POST /workouts/{id}/details.
func (h *WorkoutDetailHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	workouts := &WorkoutHandler{db: h.db}
	workout, ok := workouts.ownedWorkout(w, r)
	if !ok {
		return
	}

	v := make(validation.Violations)
	exerciseID := validation.PositiveInt("exercise_id", r.FormValue("exercise_id"), v)
	if !v.Empty() {
		flash.Add(w, r, "Choose an exercise to add.")
		http.Redirect(w, r, "/workouts/"+strconv.FormatUint(uint64(workout.ID), 10), http.StatusSeeOther)
		return
	}

	var exercise models.Exercise
	if err := h.db.First(&exercise, exerciseID).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	detail := models.WorkoutDetail{
		WorkoutID:  workout.ID,
		ExerciseID: exercise.ID,
		Sets:       optionalInt(r.FormValue("sets")),
		Reps:       optionalInt(r.FormValue("reps")),
		Duration:   optionalInt(r.FormValue("duration")),
		Weight:     optionalFloat(r.FormValue("weight")),
	}
	if err := h.db.Create(&detail).Error; err != nil {
		http.Error(w, "Failed to save workout detail", http.StatusInternalServerError)
		return
	}

	flash.Add(w, r, "Exercise added to workout!")
	http.Redirect(w, r, "/workouts/"+strconv.FormatUint(uint64(workout.ID), 10), http.StatusSeeOther)
}

// RemoveItem handles POST /workouts/{id}/details/{detail_id}/delete.
func (h *WorkoutDetailHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	workouts := &WorkoutHandler{db: h.db}
	workout, ok := workouts.ownedWorkout(w, r)
	if !ok {
		return
	}

	detailID := r.PathValue("detail_id")
	var detail models.WorkoutDetail
	if err := h.db.Where("id = ? AND workout_id = ?", detailID, workout.ID).First(&detail).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.db.Delete(&detail).Error; err != nil {
		http.Error(w, "Failed to remove workout detail", http.StatusInternalServerError)
		return
	}

	flash.Add(w, r, "Exercise removed from workout!")
	http.Redirect(w, r, "/workouts/"+strconv.FormatUint(uint64(workout.ID), 10), http.StatusSeeOther)
}

// optionalInt maps an empty or unparseable form value to nil. The schema keeps
// every numeric detail field nullable.
func optionalInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func optionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
