package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vincentcui-ui/workout-logger/internal/auth"
	"github.com/vincentcui-ui/workout-logger/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Exercise{}, &models.Workout{}, &models.WorkoutDetail{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, password string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{Name: "Test User", Email: email, Password: string(hashed)}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	return user
}

func createWorkout(t *testing.T, db *gorm.DB, userID uint, date string, duration int) models.Workout {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	workout := models.Workout{UserID: userID, Date: d, TotalDuration: duration}
	if err := db.Create(&workout).Error; err != nil {
		t.Fatalf("workout: %v", err)
	}
	return workout
}

// formRequest builds an authenticated form POST.
func formRequest(target string, userID uint, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if userID != 0 {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	return req
}

func getRequest(target string, userID uint) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != 0 {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	return req
}
