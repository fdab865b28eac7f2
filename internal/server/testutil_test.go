package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mindbridge/internal/config"
	"mindbridge/internal/database"
	"mindbridge/internal/repository"
	"mindbridge/internal/service"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db := setupHandlerTestDB(t)

	userRepo := repository.NewUserRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	postRepo := repository.NewPostRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	instituteRepo := repository.NewInstituteRepository(db)

	s := &Server{
		config:        &config.Config{JWTSecret: "handler-test-secret", Env: "test"},
		db:            db,
		userRepo:      userRepo,
		moodRepo:      moodRepo,
		apptRepo:      apptRepo,
		postRepo:      postRepo,
		resourceRepo:  resourceRepo,
		instituteRepo: instituteRepo,
	}
	s.userService = service.NewUserService(userRepo)
	s.moodService = service.NewMoodService(moodRepo, userRepo)
	s.appointmentService = service.NewAppointmentService(apptRepo, userRepo)
	s.communityService = service.NewCommunityService(postRepo, userRepo, instituteRepo)
	s.resourceService = service.NewResourceService(resourceRepo)
	s.analyticsService = service.NewAnalyticsService(moodRepo, userRepo, instituteRepo)
	s.instituteService = service.NewInstituteService(instituteRepo)

	return s
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
