package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alekpstro/UGEvents/internal/delivery/http/helpers"
	"github.com/alekpstro/UGEvents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	registerErr  error
	registerUser *domain.User
	loginErr     error
	loginToken   string
	loginUser    *domain.User

	lastRegisterEmail string
	lastRegisterName  string
	lastLoginEmail    string
}

func (f *fakeAuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	f.lastRegisterEmail = email
	f.lastRegisterName = name
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerUser, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	f.lastLoginEmail = email
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func TestAuthController_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fake           *fakeAuthService
		wantStatus     int
		wantErrCode    string
		wantBodySubstr string
	}{
		{
			name: "success",
			body: `{"email":"ada@uni.edu","password":"secret123","name":"Ada"}`,
			fake: &fakeAuthService{registerUser: &domain.User{
				ID: 1, Email: "ada@uni.edu", Name: "Ada",
			}},
			wantStatus: http.StatusCreated,
		},
		{
			name:           "missing email",
			body:           `{"password":"secret123","name":"Ada"}`,
			fake:           &fakeAuthService{},
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "email is required",
		},
		{
			name:           "invalid email format",
			body:           `{"email":"not-an-email","password":"secret123","name":"Ada"}`,
			fake:           &fakeAuthService{},
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "invalid email format",
		},
		{
			name:           "missing name",
			body:           `{"email":"ada@uni.edu","password":"secret123"}`,
			fake:           &fakeAuthService{},
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "name is required",
		},
		{
			name:           "unknown field rejected",
			body:           `{"email":"ada@uni.edu","password":"secret123","name":"Ada","role":"admin"}`,
			fake:           &fakeAuthService{},
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:           "duplicate email maps to conflict",
			body:           `{"email":"ada@uni.edu","password":"secret123","name":"Ada"}`,
			fake:           &fakeAuthService{registerErr: domain.ErrEmailTaken},
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeConflict,
			wantBodySubstr: "already registered",
		},
		{
			name:        "service failure maps to 500",
			body:        `{"email":"ada@uni.edu","password":"secret123","name":"Ada"}`,
			fake:        &fakeAuthService{registerErr: errors.New("db down")},
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/auth/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			ctrl.Register(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var data RegisterResponse
				require.NoError(t, json.Unmarshal(dataBytes, &data))
				assert.Equal(t, "account created", data.Message)
				require.NotNil(t, data.User)
				assert.Equal(t, "ada@uni.edu", data.User.Email)
				assert.NotContains(t, rr.Body.String(), "password", "password hash must never be serialized")
			} else {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
				if tt.wantBodySubstr != "" {
					assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
				}
				if tt.wantStatus == http.StatusInternalServerError {
					assert.Equal(t, helpers.MsgInternalError, envelope.Error.Message)
					assert.NotContains(t, rr.Body.String(), "db down")
				}
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		fake        *fakeAuthService
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "success",
			body:       `{"email":"ada@uni.edu","password":"secret123"}`,
			fake:       &fakeAuthService{loginToken: "tok-123", loginUser: &domain.User{ID: 1}},
			wantStatus: http.StatusOK,
		},
		{
			name:        "invalid credentials",
			body:        `{"email":"ada@uni.edu","password":"wrong"}`,
			fake:        &fakeAuthService{loginErr: domain.ErrInvalidCredentials},
			wantStatus:  http.StatusUnauthorized,
			wantErrCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:        "missing password",
			body:        `{"email":"ada@uni.edu"}`,
			fake:        &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "service failure maps to 500",
			body:        `{"email":"ada@uni.edu","password":"secret123"}`,
			fake:        &fakeAuthService{loginErr: errors.New("db down")},
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var data LoginResponse
				require.NoError(t, json.Unmarshal(dataBytes, &data))
				assert.Equal(t, "tok-123", data.Token)
				assert.Equal(t, "Bearer", data.TokenType)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
				if tt.wantStatus == http.StatusInternalServerError {
					assert.Equal(t, helpers.MsgInternalError, envelope.Error.Message)
					assert.NotContains(t, rr.Body.String(), "db down")
				}
			}
		})
	}
}
