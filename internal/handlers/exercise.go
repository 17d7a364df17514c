package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/vincentcui-ui/workout-logger/internal/flash"
	"github.com/vincentcui-ui/workout-logger/internal/httpx"
	"github.com/vincentcui-ui/workout-logger/internal/models"
	"github.com/vincentcui-ui/workout-logger/internal/validation"
)

type ExerciseHandler struct {
	db *gorm.DB
}

func NewExerciseHandler(db *gorm.DB) *ExerciseHandler {
	return &ExerciseHandler{db: db}
}

// List handles GET /exercises.
func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	var exercises []models.Exercise
	if err := h.db.Order("name").Find(&exercises).Error; err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_exercises", nil)
			return
		}
		http.Error(w, "Failed to list exercises", http.StatusInternalServerError)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": exercises, "total": len(exercises)})
		return
	}
	render(w, r, "exercises.html", map[string]any{"Exercises": exercises})
}

// Create handles POST /exercises.
func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	description := r.FormValue("description")
	exType := r.FormValue("type")

	v := make(validation.Violations)
	validation.Required("name", name, v)
	validation.Required("type", exType, v)
	if exType != "" && exType != models.ExerciseTypeStrength && exType != models.ExerciseTypeCardio {
		v["type"] = "unknown_type"
	}
	if !v.Empty() {
		var exercises []models.Exercise
		h.db.Order("name").Find(&exercises)
		render(w, r, "exercises.html", map[string]any{"Exercises": exercises, "Errors": v, "Name": name, "Description": description})
		return
	}

	exercise := models.Exercise{Name: name, Description: description, Type: exType}
	if err := h.db.Create(&exercise).Error; err != nil {
		http.Error(w, "Failed to create exercise", http.StatusInternalServerError)
		return
	}

	flash.Add(w, r, "Exercise added successfully!")
	http.Redirect(w, r, "/exercises", http.StatusSeeOther)
}

// Delete handles POST /exercises/{id}/delete. An exercise still referenced by
// workout detail rows cannot be removed; the postgres schema would reject the
// delete anyway, so both drivers refuse it up front.
func (h *ExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var exercise models.Exercise
	if err := h.db.First(&exercise, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	var inUse int64
	if err := h.db.Model(&models.WorkoutDetail{}).Where("exercise_id = ?", exercise.ID).Count(&inUse).Error; err != nil {
		http.Error(w, "Failed to delete exercise", http.StatusInternalServerError)
		return
	}
	if inUse > 0 {
		flash.Add(w, r, "Exercise is still used by workout entries and cannot be deleted.")
		http.Redirect(w, r, "/exercises", http.StatusSeeOther)
		return
	}

	if err := h.db.Delete(&exercise).Error; err != nil {
		http.Error(w, "Failed to delete exercise", http.StatusInternalServerError)
		return
	}

	flash.Add(w, r, "Exercise deleted successfully!")
	http.Redirect(w, r, "/exercises", http.StatusSeeOther)
}
