package handlers

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vincentcui-ui/workout-logger/internal/auth"
	"github.com/vincentcui-ui/workout-logger/internal/flash"
	"github.com/vincentcui-ui/workout-logger/internal/models"
	"github.com/vincentcui-ui/workout-logger/internal/validation"
	"github.com/vincentcui-ui/workout-logger/internal/view"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "register.html", nil)
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	v := make(validation.Violations)
	validation.Required("name", name, v)
	validation.Required("email", email, v)
	validation.Required("password", password, v)
	if !v.Empty() {
		render(w, r, "register.html", map[string]any{"Errors": v, "Name": name, "Email": email})
		return
	}

	// Friendly pre-check; the unique index on email is what actually
	// guarantees uniqueness under concurrent registrations.
	var existing models.User
	err := h.db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		flash.Add(w, r, "Email address already exists")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user := models.User{Name: name, Email: email, Password: string(hashed)}
	if err := h.db.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			flash.Add(w, r, "Email address already exists")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	flash.Add(w, r, "Registration successful! Please login.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		render(w, r, "login.html", nil)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	// One generic message for both unknown email and bad password.
	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		render(w, r, "login.html", map[string]any{"Error": "Login failed. Check email and password.", "Email": email})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		render(w, r, "login.html", map[string]any{"Error": "Login failed. Check email and password.", "Email": email})
		return
	}

	auth.CreateSession(w, user.ID)
	flash.Add(w, r, "Login successful!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	flash.Add(w, r, "Logged out successfully!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// render wraps view.Render with a uniform error response.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name, data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}
