package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/runjamaica/auth-api/internal/core/domain"
)

type stubAuthService struct {
	signupFn  func(ctx context.Context, email, firstName, lastName, password string) (*domain.TokenPair, error)
	signinFn  func(ctx context.Context, email, password string) (*domain.TokenPair, error)
	refreshFn func(ctx context.Context, refreshToken string) (string, error)
}

func (s *stubAuthService) Signup(ctx context.Context, email, firstName, lastName, password string) (*domain.TokenPair, error) {
	return s.signupFn(ctx, email, firstName, lastName, password)
}

func (s *stubAuthService) Signin(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	return s.signinFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshFn(ctx, refreshToken)
}

func newTestContext(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, email, firstName, lastName, password string) (*domain.TokenPair, error) {
			if email != "a@x.com" || firstName != "Jo" || lastName != "Doe" || password != "password1" {
				t.Fatalf("unexpected args: %s %s %s %s", email, firstName, lastName, password)
			}
			return &domain.TokenPair{AccessToken: "access123", RefreshToken: "refresh456"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, "/auth/signup", `{"email_address":"a@x.com","first_name":"Jo","last_name":"Doe","password":"password1"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access123" || resp["refresh_token"] != "refresh456" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Signup_EmailTaken(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, email, firstName, lastName, password string) (*domain.TokenPair, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, "/auth/signup", `{"email_address":"bob@x.com","first_name":"Bob","password":"password1"}`)
	if err := h.Signup(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken to propagate, got %v", err)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, email, firstName, lastName, password string) (*domain.TokenPair, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	cases := map[string]string{
		"not json":       `not-json`,
		"missing fields": `{"email_address":"a@x.com"}`,
		"bad email":      `{"email_address":"nope","first_name":"Jo","password":"password1"}`,
		"short password": `{"email_address":"a@x.com","first_name":"Jo","password":"short"}`,
	}
	for name, body := range cases {
		c, _ := newTestContext(t, "/auth/signup", body)
		err := h.Signup(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", name, err)
		}
	}
}

func TestAuthHandler_Signin_Success(t *testing.T) {
	stub := &stubAuthService{
		signinFn: func(ctx context.Context, email, password string) (*domain.TokenPair, error) {
			if email != "a@x.com" || password != "password1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.TokenPair{AccessToken: "access123", RefreshToken: "refresh456"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, "/auth/signin", `{"email_address":"a@x.com","password":"password1"}`)
	if err := h.Signin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access123" || resp["refresh_token"] != "refresh456" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Signin_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		signinFn: func(ctx context.Context, email, password string) (*domain.TokenPair, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, "/auth/signin", `{"email_address":"a@x.com","password":"bad-pass"}`)
	if err := h.Signin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
			if refreshToken != "refresh456" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return "access789", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, "/auth/refresh", `{"refresh_token":"refresh456"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access789" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
			return "", domain.ErrInvalidToken
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, "/auth/refresh", `{"refresh_token":"expired-or-forged"}`)
	if err := h.Refresh(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken to propagate, got %v", err)
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(IdentityContextKey, domain.TokenPayload{
		EmailAddress: "a@x.com",
		FirstName:    "Jo",
		LastName:     "Doe",
		Purpose:      domain.PurposeAccess,
	})

	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email_address"] != "a@x.com" || resp["first_name"] != "Jo" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Profile_MissingClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Profile(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
