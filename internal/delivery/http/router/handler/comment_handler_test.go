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

func TestCommentHandler_Add_Success(t *testing.T) {
	uc := mockUC.NewMockCommentUsecase(t)
	uc.EXPECT().
		AddComment(t.Context(), testIdentity, int64(7), &usecase.AddCommentInput{
			Text: "nice shot",
		}).
		Return(&entity.Comment{
			ID:        3,
			Text:      "nice shot",
			Username:  "alice",
			Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			PostID:    7,
		}, nil)

	h := NewCommentHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/posts/7/comments", `{"text":"nice shot"}`)
	c.SetRequest(c.Request().WithContext(t.Context()))
	c.SetParamNames("post_id")
	c.SetParamValues("7")
	middleware.SetIdentity(c, testIdentity)

	require.NoError(t, h.Add(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "nice shot", body["text"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, float64(7), body["post_id"])
}

func TestCommentHandler_Add_PostNotFound(t *testing.T) {
	uc := mockUC.NewMockCommentUsecase(t)
	uc.EXPECT().
		AddComment(t.Context(), testIdentity, int64(99), &usecase.AddCommentInput{
			Text: "nice shot",
		}).
		Return(nil, domainerrors.ErrPostNotFound)

	h := NewCommentHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, _ := newJSONContext(e, http.MethodPost, "/posts/99/comments", `{"text":"nice shot"}`)
	c.SetRequest(c.Request().WithContext(t.Context()))
	c.SetParamNames("post_id")
	c.SetParamValues("99")
	middleware.SetIdentity(c, testIdentity)

	err := h.Add(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
}

func TestCommentHandler_Add_EmptyText(t *testing.T) {
	uc := mockUC.NewMockCommentUsecase(t)
	h := NewCommentHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/posts/7/comments", `{"text":""}`)
	c.SetParamNames("post_id")
	c.SetParamValues("7")
	middleware.SetIdentity(c, testIdentity)

	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentHandler_Add_MissingIdentity(t *testing.T) {
	uc := mockUC.NewMockCommentUsecase(t)
	h := NewCommentHandler(uc, newDiscardLogger())

	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/posts/7/comments", `{"text":"nice shot"}`)
	c.SetParamNames("post_id")
	c.SetParamValues("7")

	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCommentHandler_List(t *testing.T) {
	uc := mockUC.NewMockCommentUsecase(t)
	uc.EXPECT().
		ListComments(t.Context(), int64(7)).
		Return([]*entity.Comment{
			{ID: 1, Text: "first", Username: "bob", PostID: 7},
			{ID: 2, Text: "second", Username: "alice", PostID: 7},
		}, nil)

	h := NewCommentHandler(uc, newDiscardLogger())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/posts/7/comments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetRequest(c.Request().WithContext(t.Context()))
	c.SetParamNames("post_id")
	c.SetParamValues("7")

	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "first", body[0]["text"])
	assert.Equal(t, "alice", body[1]["username"])
}

func TestCommentHandler_List_BadPostID(t *testing.T) {
	uc := mockUC.NewMockCommentUsecase(t)
	h := NewCommentHandler(uc, newDiscardLogger())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/posts/abc/comments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("post_id")
	c.SetParamValues("abc")

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
