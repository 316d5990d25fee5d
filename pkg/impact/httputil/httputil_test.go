package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPagination(t *testing.T, query string) (*httptest.ResponseRecorder, Pagination, bool) {
	gin.SetMode(gin.TestMode)
	var (
		p  Pagination
		ok bool
	)
	r := gin.New()
	r.GET("/items", func(c *gin.Context) {
		p, ok = GetPagination(c)
		if ok {
			c.JSON(http.StatusOK, NewList([]string{"a"}, p, 1))
		}
	})
	req, _ := http.NewRequest("GET", "/items"+query, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp, p, ok
}

func TestGetPaginationDefaults(t *testing.T) {
	resp, p, ok := runPagination(t, "")
	require.True(t, ok)
	assert.Equal(t, Pagination{Page: 1, Limit: 20, Offset: 0}, p)

	var body struct {
		Items      []string           `json:"items"`
		Pagination PaginationResponse `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, []string{"a"}, body.Items)
	assert.Equal(t, int64(1), body.Pagination.Total)
}

func TestGetPaginationOffset(t *testing.T) {
	_, p, ok := runPagination(t, "?page=3&limit=10")
	require.True(t, ok)
	assert.Equal(t, 20, p.Offset)
}

func TestGetPaginationRejectsOutOfRange(t *testing.T) {
	for _, q := range []string{"?page=0", "?page=x", "?limit=0", "?limit=101"} {
		resp, _, ok := runPagination(t, q)
		assert.False(t, ok, q)
		assert.Equal(t, http.StatusBadRequest, resp.Code, q)
	}
}

func TestNewListNeverNull(t *testing.T) {
	l := NewList[int](nil, Pagination{Page: 1, Limit: 20}, 0)
	b, _ := json.Marshal(l)
	assert.JSONEq(t, `{"items":[],"pagination":{"page":1,"limit":20,"total":0}}`, string(b))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), *d)

	d, err = ParseDate("2025-03-04T10:00:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC), *d)

	d, err = ParseDate("")
	assert.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("03/04/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		id, ok := ParseID(c, "id")
		if ok {
			c.JSON(http.StatusOK, gin.H{"id": id})
		}
	})

	resp := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/things/42", nil)
	r.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"id":42}`, resp.Body.String())

	resp = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/things/abc", nil)
	r.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
