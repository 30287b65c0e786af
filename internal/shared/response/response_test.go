package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name           string
		page, pageSize int
		want           []int
		meta           PaginationMeta
	}{
		{"first page", 1, 3, []int{1, 2, 3}, PaginationMeta{Total: 7, TotalPages: 3, Page: 1, PageSize: 3}},
		{"last partial page", 3, 3, []int{7}, PaginationMeta{Total: 7, TotalPages: 3, Page: 3, PageSize: 3}},
		{"past the end", 5, 3, []int{}, PaginationMeta{Total: 7, TotalPages: 3, Page: 5, PageSize: 3}},
		{"defaults", 0, 0, items, PaginationMeta{Total: 7, TotalPages: 1, Page: 1, PageSize: DefaultPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta := Paginate(items, tt.page, tt.pageSize)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.meta, meta)
		})
	}
}

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Success(c, http.StatusOK, map[string]string{"id": "run-1"}, nil)

		assert.JSONEq(t, `{"ok":true,"data":{"id":"run-1"}}`, w.Body.String())
	})

	t.Run("error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Error(c, http.StatusConflict, "INVALID_STATE", "transition not allowed", map[string]string{"from": "locked"})

		require.Equal(t, http.StatusConflict, w.Code)
		var env struct {
			Ok    bool      `json:"ok"`
			Error ErrorBody `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
		assert.Equal(t, "transition not allowed", env.Error.Message)
	})
}
