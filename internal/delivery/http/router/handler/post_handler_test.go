package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"picstream/internal/delivery/http/middleware"
	"picstream/internal/domain/entity"
	domainerrors "picstream/internal/domain/errors"
	mockUC "picstream/internal/mocks/usecase"
	"picstream/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = entity.Identity{UserID: 42, Username: "alice"}

func TestPostHandler_List(t *testing.T) {
	uc := mockUC.NewMockPostUsecase(t)
	uc.EXPECT().ListPosts(t.Context()).Return([]*entity.Post{
		{
			ID:           2,
			ImageURL:     "https://img.example.com/b.jpg",
			ImageURLType: "absolute",
			Caption:      "newer",
			Timestamp:    time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			UserID:       1,
			Owner:        &entity.User{ID: 1, Username: "bob"},
		},
		{
			ID:           1,
			ImageURL:     "images/a.jpg",
			ImageURLType: "relative",
			Caption:      "older",
			Timestamp:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			UserID:       42,
			Owner:        &entity.User{ID: 42, Username: "alice"},
		},
	}, nil)

	h := NewPostHandler(uc, newDiscardLogger())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetRequest(c.Request().WithContext(t.Context()))

	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "newer", body[0]["caption"])
	assert.Equal(t, map[string]any{"username": "bob"}, body[0]["user"])
}

func TestPostHandler_List_Empty(t *testing.T) {
	uc := mockUC.NewMockPostUsecase(t)
	uc.EXPECT().ListPosts(t.Context()).Return([]*entity.Post{}, nil)

	h := NewPostHandler(uc, newDiscardLogger())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetRequest(c.Request().WithContext(t.Context()))

	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	// An empty feed is an empty array, never null.
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPostHandler_Create_Success(t *testing.T) {
	uc := mockUC.NewMockPostUsecase(t)
	uc.EXPECT().
		CreatePost(t.Context(), testIdentity, &usecase.CreatePostInput{
			ImageURL:     "https://img.example.com/cat.jpg",
			ImageURLType: "absolute",
			Caption:      "my cat",
		}).
		Return(&entity.Post{
			ID:           7,
			ImageURL:     "https://img.example.com/cat.jpg",
			ImageURLType: "absolute",
			Caption:      "my cat",
			Timestamp:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			UserID:       42,
			Owner:        &entity.User{ID: 42, Username: "alice"},
		}, nil)

	h := NewPostHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/create",
		`{"image_url":"https://img.example.com/cat.jpg","image_url_type":"absolute","caption":"my cat"}`)
	c.SetRequest(c.Request().WithContext(t.Context()))
	middleware.SetIdentity(c, testIdentity)

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, map[string]any{"username": "alice"}, body["user"])
}

func TestPostHandler_Create_MissingIdentity(t *testing.T) {
	uc := mockUC.NewMockPostUsecase(t)
	h := NewPostHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/create",
		`{"image_url":"https://img.example.com/cat.jpg","image_url_type":"absolute"}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostHandler_Create_ValidationFailure(t *testing.T) {
	uc := mockUC.NewMockPostUsecase(t)
	h := NewPostHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/create", `{"caption":"no image"}`)
	middleware.SetIdentity(c, testIdentity)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostHandler_Update_Success(t *testing.T) {
	uc := mockUC.NewMockPostUsecase(t)
	uc.EXPECT().
		UpdatePost(t.Context(), testIdentity, int64(7), &usecase.UpdatePostInput{
			ImageURL:     "images/dog.jpg",
			ImageURLType: "relative",
			Caption:      "new caption",
		}).
		Return(nil)

	h := NewPostHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPut, "/7",
		`{"image_url":"images/dog.jpg","image_url_type":"relative","caption":"new caption"}`)
	c.SetRequest(c.Request().WithContext(t.Context()))
	c.SetParamNames("post_id")
	c.SetParamValues("7")
	middleware.SetIdentity(c, testIdentity)

	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"updated"}`, rec.Body.String())
}

func TestPostHandler_Update_NotOwner(t *testing.T) {
	uc := mockUC.NewMockPostUsecase(t)
	uc.EXPECT().
		UpdatePost(t.Context(), testIdentity, int64(7), &usecase.UpdatePostInput{
			ImageURL:     "images/dog.jpg",
			ImageURLType: "relative",
		}).
		Return(domainerrors.ErrNotPostOwner)

	h := NewPostHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, _ := newJSONContext(e, http.MethodPut, "/7",
		`{"image_url":"images/dog.jpg","image_url_type":"relative"}`)
	c.SetRequest(c.Request().WithContext(t.Context()))
	c.SetParamNames("post_id")
	c.SetParamValues("7")
	middleware.SetIdentity(c, testIdentity)

	err := h.Update(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotPostOwner))
}

func TestPostHandler_Update_BadPostID(t *testing.T) {
	uc := mockUC.NewMockPostUsecase(t)
	h := NewPostHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPut, "/abc",
		`{"image_url":"images/dog.jpg","image_url_type":"relative"}`)
	c.SetParamNames("post_id")
	c.SetParamValues("abc")
	middleware.SetIdentity(c, testIdentity)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostHandler_Delete_Success(t *testing.T) {
	uc := mockUC.NewMockPostUsecase(t)
	uc.EXPECT().DeletePost(t.Context(), testIdentity, int64(7)).Return(nil)

	h := NewPostHandler(uc, newDiscardLogger())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetRequest(c.Request().WithContext(t.Context()))
	c.SetParamNames("post_id")
	c.SetParamValues("7")
	middleware.SetIdentity(c, testIdentity)

	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"POST DELETED!"}`, rec.Body.String())
}

func TestPostHandler_Delete_NotFound(t *testing.T) {
	uc := mockUC.NewMockPostUsecase(t)
	uc.EXPECT().
		DeletePost(t.Context(), testIdentity, int64(99)).
		Return(domainerrors.ErrPostNotFound)

	h := NewPostHandler(uc, newDiscardLogger())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetRequest(c.Request().WithContext(t.Context()))
	c.SetParamNames("post_id")
	c.SetParamValues("99")
	middleware.SetIdentity(c, testIdentity)

	err := h.Delete(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
}

func TestPostHandler_Mine(t *testing.T) {
	uc := mockUC.NewMockPostUsecase(t)
	uc.EXPECT().
		ListOwnPosts(t.Context(), testIdentity).
		Return([]*entity.Post{
			{ID: 1, UserID: 42, Owner: &entity.User{ID: 42, Username: "alice"}},
		}, nil)

	h := NewPostHandler(uc, newDiscardLogger())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetRequest(c.Request().WithContext(t.Context()))
	middleware.SetIdentity(c, testIdentity)

	require.NoError(t, h.Mine(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, map[string]any{"username": "alice"}, body[0]["user"])
}
