package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/vincentcui-ui/workout-logger/internal/auth"
	"github.com/vincentcui-ui/workout-logger/internal/flash"
	"github.com/vincentcui-ui/workout-logger/internal/httpx"
	"github.com/vincentcui-ui/workout-logger/internal/models"
	"github.com/vincentcui-ui/workout-logger/internal/validation"
)

type WorkoutHandler struct {
	db *gorm.DB
}

func NewWorkoutHandler(db *gorm.DB) *WorkoutHandler {
	return &WorkoutHandler{db: db}
}

// ChartData is the series rendered by the duration chart on the filter page.
// Labels and Data are index-aligned with the filtered workout list.
type ChartData struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// Add handles GET/POST /add_workout.
func (h *WorkoutHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "add_workout.html", nil)
		return
	}

	dateStr := r.FormValue("date")
	durationStr := r.FormValue("duration")

	v := make(validation.Violations)
	date := validation.Date("date", dateStr, v)
	duration := validation.PositiveInt("duration", durationStr, v)
	if !v.Empty() {
		render(w, r, "add_workout.html", map[string]any{"Errors": v, "Date": dateStr, "Duration": durationStr})
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	workout := models.Workout{UserID: userID, Date: date, TotalDuration: duration}
	if err := h.db.Create(&workout).Error; err != nil {
		http.Error(w, "Failed to save workout", http.StatusInternalServerError)
		return
	}

	flash.Add(w, r, "Workout added successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// List handles GET /list_workouts.
func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var workouts []models.Workout
	if err := h.db.Where("user_id = ?", userID).Order("date").Find(&workouts).Error; err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_workouts", nil)
			return
		}
		http.Error(w, "Failed to list workouts", http.StatusInternalServerError)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": workouts, "total": len(workouts)})
		return
	}
	render(w, r, "list_workouts.html", map[string]any{"Workouts": workouts})
}

// View handles GET /workouts/{id}: one workout with its per-exercise rows.
func (h *WorkoutHandler) View(w http.ResponseWriter, r *http.Request) {
	workout, ok := h.ownedWorkout(w, r)
	if !ok {
		return
	}
	if err := h.db.Preload("Exercise").Where("workout_id = ?", workout.ID).Find(&workout.Details).Error; err != nil {
		http.Error(w, "Failed to load workout details", http.StatusInternalServerError)
		return
	}

	var exercises []models.Exercise
	h.db.Order("name").Find(&exercises)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, workout)
		return
	}
	render(w, r, "workout.html", map[string]any{"Workout": workout, "Exercises": exercises})
}

// Edit handles GET/POST /edit_workout/{id}.
func (h *WorkoutHandler) Edit(w http.ResponseWriter, r *http.Request) {
	workout, ok := h.ownedWorkout(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		render(w, r, "edit_workout.html", map[string]any{"Workout": workout})
		return
	}

	dateStr := r.FormValue("date")
	durationStr := r.FormValue("total_duration")

	v := make(validation.Violations)
	date := validation.Date("date", dateStr, v)
	duration := validation.PositiveInt("total_duration", durationStr, v)
	if !v.Empty() {
		render(w, r, "edit_workout.html", map[string]any{"Workout": workout, "Errors": v})
		return
	}

	workout.Date = date
	workout.TotalDuration = duration
	if err := h.db.Save(&workout).Error; err != nil {
		http.Error(w, "Failed to update workout", http.StatusInternalServerError)
		return
	}

	flash.Add(w, r, "Workout updated successfully!")
	http.Redirect(w, r, "/list_workouts", http.StatusSeeOther)
}

// Delete handles POST /delete_workout/{id}.
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	workout, ok := h.ownedWorkout(w, r)
	if !ok {
		return
	}

	// Detail rows go first; sqlite does not enforce the cascade without the
	// foreign_keys pragma.
	if err := h.db.Where("workout_id = ?", workout.ID).Delete(&models.WorkoutDetail{}).Error; err != nil {
		http.Error(w, "Failed to delete workout", http.StatusInternalServerError)
		return
	}
	if err := h.db.Delete(&workout).Error; err != nil {
		http.Error(w, "Failed to delete workout", http.StatusInternalServerError)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"deleted": workout.ID})
		return
	}
	flash.Add(w, r, "Workout deleted successfully!")
	http.Redirect(w, r, "/list_workouts", http.StatusSeeOther)
}

// Filter handles GET/POST /filter_workouts.
func (h *WorkoutHandler) Filter(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "filter_workouts.html", nil)
		return
	}

	startStr := r.FormValue("start_date")
	endStr := r.FormValue("end_date")
	minStr := r.FormValue("min_duration")

	v := make(validation.Violations)
	start := validation.Date("start_date", startStr, v)
	end := validation.Date("end_date", endStr, v)
	minDuration := validation.MinInt("min_duration", minStr, v)
	if !v.Empty() {
		render(w, r, "filter_workouts.html", map[string]any{"Errors": v, "StartDate": startStr, "EndDate": endStr, "MinDuration": minStr})
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	var workouts []models.Workout
	err := h.db.
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", start, end).
		Where("total_duration >= ?", minDuration).
		Order("date").
		Find(&workouts).Error
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_filter_workouts", nil)
			return
		}
		http.Error(w, "Failed to filter workouts", http.StatusInternalServerError)
		return
	}

	chart := ChartData{Labels: make([]string, 0, len(workouts)), Data: make([]int, 0, len(workouts))}
	for _, workout := range workouts {
		chart.Labels = append(chart.Labels, workout.Date.Format(validation.DateLayout))
		chart.Data = append(chart.Data, workout.TotalDuration)
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": workouts, "chart": chart})
		return
	}
	render(w, r, "filtered_workouts.html", map[string]any{"Workouts": workouts, "Chart": chart})
}

// ownedWorkout loads the path workout scoped to the session user. A missing
// row and a row owned by someone else both read as not found.
func (h *WorkoutHandler) ownedWorkout(w http.ResponseWriter, r *http.Request) (models.Workout, bool) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var workout models.Workout
	err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&workout).Error
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		} else {
			http.NotFound(w, r)
		}
		return models.Workout{}, false
	}
	return workout, true
}
