package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/vincentcui-ui/workout-logger/internal/models"
)

func setupE2EDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbi, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbi.AutoMigrate(&models.User{}, &models.Exercise{}, &models.Workout{}, &models.WorkoutDetail{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return dbi
}

// browser is a minimal cookie-carrying client for driving the App handler.
type browser struct {
	t       *testing.T
	app     http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, app http.Handler) *browser {
	return &browser{t: t, app: app, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range b.cookies {
		if c.Value != "" {
			req.AddCookie(c)
		}
	}
	rr := httptest.NewRecorder()
	b.app.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rr
}

func TestFullUserJourneyE2E(t *testing.T) {
	dbi := setupE2EDB(t)
	app := NewApp(dbi)
	b := newBrowser(t, app)

	// anonymous landing page bounces to login with a flash
	rr := b.do(http.MethodGet, "/", nil)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %s", rr.Code, rr.Header().Get("Location"))
	}
	rr = b.do(http.MethodGet, "/login", nil)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Please login first.") {
		t.Fatalf("login page missing flash: %d %s", rr.Code, rr.Body.String())
	}

	// register, then login
	rr = b.do(http.MethodPost, "/register", url.Values{
		"name":     {"E2E User"},
		"email":    {"e2e@example.com"},
		"password": {"hunter2"},
	})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("register: got %d %s", rr.Code, rr.Header().Get("Location"))
	}
	rr = b.do(http.MethodPost, "/login", url.Values{
		"email":    {"e2e@example.com"},
		"password": {"hunter2"},
	})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Fatalf("login: got %d %s body=%s", rr.Code, rr.Header().Get("Location"), rr.Body.String())
	}
	if c, ok := b.cookies["session"]; !ok || c.Value == "" {
		t.Fatal("no session cookie after login")
	}

	// landing page now renders
	rr = b.do(http.MethodGet, "/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("landing page: got %d body=%s", rr.Code, rr.Body.String())
	}

	// add a workout and see it in the list
	rr = b.do(http.MethodPost, "/add_workout", url.Values{
		"date":     {"2024-03-01"},
		"duration": {"45"},
	})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Fatalf("add workout: got %d %s", rr.Code, rr.Header().Get("Location"))
	}
	rr = b.do(http.MethodGet, "/list_workouts", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "2024-03-01") || !strings.Contains(rr.Body.String(), "45") {
		t.Fatalf("workout missing from list: %s", rr.Body.String())
	}

	// filter includes it and renders the chart series
	rr = b.do(http.MethodPost, "/filter_workouts", url.Values{
		"start_date":   {"2024-01-01"},
		"end_date":     {"2024-12-31"},
		"min_duration": {"30"},
	})
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "2024-03-01") {
		t.Fatalf("filter: got %d body=%s", rr.Code, rr.Body.String())
	}

	// logout drops the session; workout routes lock again
	rr = b.do(http.MethodGet, "/logout", nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("logout: got %d", rr.Code)
	}
	rr = b.do(http.MethodGet, "/list_workouts", nil)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("expected session gate after logout, got %d %s", rr.Code, rr.Header().Get("Location"))
	}
}

func TestFilterRouteRequiresSessionE2E(t *testing.T) {
	dbi := setupE2EDB(t)
	app := NewApp(dbi)
	b := newBrowser(t, app)

	for _, target := range []string{"/filter_workouts", "/add_workout", "/list_workouts", "/exercises"} {
		rr := b.do(http.MethodGet, target, nil)
		if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %d %s", target, rr.Code, rr.Header().Get("Location"))
		}
	}
}
