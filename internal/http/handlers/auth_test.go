package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studymatehq/studymate/internal/config"
	"github.com/studymatehq/studymate/internal/domain/user"
	"github.com/studymatehq/studymate/internal/http/handlers"
	"github.com/studymatehq/studymate/internal/repo/postgres"
	"github.com/studymatehq/studymate/internal/security"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake implementation of the handlers.UserStore interface

type fakeUserStore struct {
	getByEmailFn     func(ctx context.Context, email string) (user.User, error)
	existsByEmailFn  func(ctx context.Context, email string) (bool, error)
	createFn         func(ctx context.Context, u user.User) (user.User, error)
	touchLastLoginFn func(ctx context.Context, id string, at time.Time) error
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}

	return user.User{}, postgres.ErrUserNotFound
}

func (f *fakeUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if f.existsByEmailFn != nil {
		return f.existsByEmailFn(ctx, email)
	}

	return false, nil
}

func (f *fakeUserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}

	return u, nil
}

func (f *fakeUserStore) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	if f.touchLastLoginFn != nil {
		return f.touchLastLoginFn(ctx, id, at)
	}

	return nil
}

type fakeIssuer struct {
	issueFn func(subject, role, uid string) (string, error)
}

func (f *fakeIssuer) Issue(subject, role, uid string) (string, error) {
	if f.issueFn != nil {
		return f.issueFn(subject, role, uid)
	}

	return "fake-token", nil
}

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestSignUpHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		storeSetUp     func(*fakeUserStore)
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "missing_email",
			body:           `{"password": "hunter22"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Email and password are required",
		},
		{
			name:           "missing_password",
			body:           `{"email": "a@b.com"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Email and password are required",
		},
		{
			name: "email_taken",
			body: `{"email": "taken@example.com", "password": "hunter22"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.existsByEmailFn = func(ctx context.Context, email string) (bool, error) {
					return true, nil
				}
			},
			wantStatusCode: http.StatusConflict,
			wantMessage:    "Email already in use",
		},
		{
			name: "create_race_duplicate",
			body: `{"email": "taken@example.com", "password": "hunter22"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.createFn = func(ctx context.Context, u user.User) (user.User, error) {
					return user.User{}, postgres.ErrEmailAlreadyUsed
				}
			},
			wantStatusCode: http.StatusConflict,
			wantMessage:    "Email already in use",
		},
		{
			name: "store_error",
			body: `{"email": "a@b.com", "password": "hunter22"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.existsByEmailFn = func(ctx context.Context, email string) (bool, error) {
					return false, errors.New("db down")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "success",
			body:           `{"email": "newbie@example.com", "password": "hunter22"}`,
			wantStatusCode: http.StatusOK,
			wantMessage:    "Signup successful",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			h := handlers.NewAuthHandler(store, &fakeIssuer{}, config.Config{BcryptCost: 4})

			r := setupRouter(http.MethodPost, "/api/auth/signup", h.SignUp)

			w := postJSON(r, "/api/auth/signup", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantMessage == "" {
				return
			}

			var resp map[string]any

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON response: %v", err)
			}

			if resp["message"] != tt.wantMessage {
				t.Errorf("got message %v, want %q", resp["message"], tt.wantMessage)
			}
		})
	}
}

func TestSignUpDerivesUsernameFromEmail(t *testing.T) {
	var created user.User

	store := &fakeUserStore{
		createFn: func(ctx context.Context, u user.User) (user.User, error) {
			created = u
			return u, nil
		},
	}

	h := handlers.NewAuthHandler(store, &fakeIssuer{}, config.Config{BcryptCost: 4})

	r := setupRouter(http.MethodPost, "/api/auth/signup", h.SignUp)

	w := postJSON(r, "/api/auth/signup", `{"email": "maria.r@example.com", "password": "hunter22"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if created.Username != "maria.r" {
		t.Errorf("got username %q, want %q", created.Username, "maria.r")
	}

	if created.Role != user.RoleStudent {
		t.Errorf("got role %q, want %q", created.Role, user.RoleStudent)
	}

	if !created.IsActive {
		t.Error("new user should be active")
	}

	if created.PasswordHash == "hunter22" {
		t.Error("password stored in plaintext")
	}
}

func TestLoginHandler(t *testing.T) {
	hash, err := security.HashPassword("correct-horse", 4)

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	known := user.User{
		ID:           "uid-1",
		Email:        "maria@example.com",
		Username:     "maria",
		PasswordHash: hash,
		Role:         user.RoleStudent,
		IsActive:     true,
	}

	withKnownUser := func(f *fakeUserStore) {
		f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
			if email == known.Email {
				return known, nil
			}

			return user.User{}, postgres.ErrUserNotFound
		}
	}

	tests := []struct {
		name           string
		body           string
		storeSetUp     func(*fakeUserStore)
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "unknown_email",
			body:           `{"email": "ghost@example.com", "password": "whatever"}`,
			storeSetUp:     withKnownUser,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Invalid email or password",
		},
		{
			name:           "wrong_password",
			body:           `{"email": "maria@example.com", "password": "wrong"}`,
			storeSetUp:     withKnownUser,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Invalid email or password",
		},
		{
			name: "store_error",
			body: `{"email": "maria@example.com", "password": "correct-horse"}`,
			storeSetUp: func(f *fakeUserStore) {
				f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
					return user.User{}, errors.New("connection refused")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "success",
			body:           `{"email": "maria@example.com", "password": "correct-horse"}`,
			storeSetUp:     withKnownUser,
			wantStatusCode: http.StatusOK,
			wantMessage:    "Login successful",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			h := handlers.NewAuthHandler(store, &fakeIssuer{}, config.Config{BcryptCost: 4})

			r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

			w := postJSON(r, "/api/auth/login", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantMessage == "" {
				return
			}

			var resp map[string]any

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON response: %v", err)
			}

			if resp["message"] != tt.wantMessage {
				t.Errorf("got message %v, want %q", resp["message"], tt.wantMessage)
			}

			if tt.wantStatusCode == http.StatusOK {
				if resp["token"] != "fake-token" {
					t.Errorf("got token %v, want fake-token", resp["token"])
				}

				if _, ok := resp["user"]; !ok {
					t.Error("response missing user profile")
				}
			}
		})
	}
}

// unknown email and wrong password must be indistinguishable

func TestLoginFailureResponsesMatch(t *testing.T) {
	hash, err := security.HashPassword("correct-horse", 4)

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	store := &fakeUserStore{
		getByEmailFn: func(ctx context.Context, email string) (user.User, error) {
			if email == "maria@example.com" {
				return user.User{ID: "uid-1", Email: email, PasswordHash: hash}, nil
			}

			return user.User{}, postgres.ErrUserNotFound
		},
	}

	h := handlers.NewAuthHandler(store, &fakeIssuer{}, config.Config{BcryptCost: 4})

	r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

	unknown := postJSON(r, "/api/auth/login", `{"email": "ghost@example.com", "password": "x"}`)
	wrongPass := postJSON(r, "/api/auth/login", `{"email": "maria@example.com", "password": "x"}`)

	if unknown.Code != wrongPass.Code {
		t.Errorf("status differs: %d vs %d", unknown.Code, wrongPass.Code)
	}

	if unknown.Body.String() != wrongPass.Body.String() {
		t.Errorf("body differs: %s vs %s", unknown.Body.String(), wrongPass.Body.String())
	}
}
