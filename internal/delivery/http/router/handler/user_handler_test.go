package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"picstream/internal/delivery/http/validator"
	"picstream/internal/domain/entity"
	domainerrors "picstream/internal/domain/errors"
	mockUC "picstream/internal/mocks/usecase"
	"picstream/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestUserHandler_Register_Success(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	uc.EXPECT().
		Register(t.Context(), &usecase.RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "s3cretPass",
		}).
		Return(&usecase.RegisterOutput{User: &entity.User{
			ID:           7,
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "never-shown",
		}}, nil)

	h := NewUserHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/users/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cretPass"}`)
	c.SetRequest(c.Request().WithContext(t.Context()))

	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	// The password hash never appears in a response.
	assert.NotContains(t, rec.Body.String(), "never-shown")
}

func TestUserHandler_Register_ValidationFailure(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	h := NewUserHandler(uc, newDiscardLogger())

	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@example.com","password":"s3cretPass"}`},
		{"short username", `{"username":"ab","email":"a@example.com","password":"s3cretPass"}`},
		{"bad email", `{"username":"alice","email":"not-an-email","password":"s3cretPass"}`},
		{"short password", `{"username":"alice","email":"a@example.com","password":"123"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			c, rec := newJSONContext(e, http.MethodPost, "/users/register", tc.body)

			require.NoError(t, h.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUserHandler_Register_Conflict(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	uc.EXPECT().
		Register(t.Context(), &usecase.RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "s3cretPass",
		}).
		Return(nil, domainerrors.ErrUserAlreadyExists)

	h := NewUserHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, _ := newJSONContext(e, http.MethodPost, "/users/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cretPass"}`)
	c.SetRequest(c.Request().WithContext(t.Context()))

	err := h.Register(c)

	// The error middleware turns this into a 409 envelope.
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserHandler_Login_Success(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	uc.EXPECT().
		Login(t.Context(), &usecase.LoginInput{
			Username: "alice",
			Password: "s3cretPass",
		}).
		Return(&usecase.LoginOutput{
			AccessToken: "signed.jwt.token",
			TokenType:   "Bearer",
			User:        &entity.User{ID: 7, Username: "alice"},
		}, nil)

	h := NewUserHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/token",
		`{"username":"alice","password":"s3cretPass"}`)
	c.SetRequest(c.Request().WithContext(t.Context()))

	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "signed.jwt.token", body["access_token"])
	assert.Equal(t, "Bearer", body["token_type"])
}

func TestUserHandler_Login_FormEncoded(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	uc.EXPECT().
		Login(t.Context(), &usecase.LoginInput{
			Username: "alice",
			Password: "s3cretPass",
		}).
		Return(&usecase.LoginOutput{
			AccessToken: "signed.jwt.token",
			TokenType:   "Bearer",
		}, nil)

	h := NewUserHandler(uc, newDiscardLogger())

	e := newTestEcho()
	form := url.Values{"username": {"alice"}, "password": {"s3cretPass"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetRequest(c.Request().WithContext(t.Context()))

	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed.jwt.token")
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	uc := mockUC.NewMockUserUsecase(t)
	uc.EXPECT().
		Login(t.Context(), &usecase.LoginInput{
			Username: "alice",
			Password: "wrong",
		}).
		Return(nil, domainerrors.ErrInvalidCredentials)

	h := NewUserHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, _ := newJSONContext(e, http.MethodPost, "/token",
		`{"username":"alice","password":"wrong"}`)
	c.SetRequest(c.Request().WithContext(t.Context()))

	err := h.Login(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestRoot(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, Root(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"hello"}`, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, HealthCheck(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
