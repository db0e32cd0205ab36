package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidosbek/labtrack/internal/lending/repository"
)

// The handler registers its Prometheus collectors on the default
// registry, so the test binary builds it exactly once.
var (
	testOnce   sync.Once
	testRouter *mux.Router
)

func router() *mux.Router {
	testOnce.Do(func() {
		store := repository.NewMemoryStoreWithFixtures()
		handler := NewLendingHandler(store, nil)

		testRouter = mux.NewRouter()
		handler.RegisterRoutes(testRouter)
		handler.RegisterHealthCheck(testRouter, nil)
	})
	return testRouter
}

func doJSON(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router().ServeHTTP(rec, req)

	var resp Response
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

func dataSlice(t *testing.T, resp Response) []any {
	t.Helper()
	list, ok := resp.Data.([]any)
	require.True(t, ok, "expected list payload, got %T", resp.Data)
	return list
}

func TestReadEndpoints(t *testing.T) {
	t.Run("list inventory", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/inventory", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
		assert.Len(t, dataSlice(t, resp), 3)
	})

	t.Run("inventory schema", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/inventory/schema", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, dataSlice(t, resp), 5)
	})

	t.Run("items filtered by status", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/items?status=Available", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, dataSlice(t, resp), 4)
	})

	t.Run("item search by term", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/items?q=ard", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, dataSlice(t, resp), 4)
	})

	t.Run("current holder", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/items/3/holder", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "John Doe", data["holder"])
		assert.Equal(t, true, data["held"])
	})

	t.Run("holder of unknown item", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/items/99/holder", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec, _ := doJSON(t, "GET", "/api/items/abc/holder", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("student search", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/students?q=jane", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, dataSlice(t, resp), 1)
	})

	t.Run("student loans", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/students/2/loans", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, dataSlice(t, resp), 1)
	})

	t.Run("staff roster", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/staff", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, dataSlice(t, resp), 3)
	})

	t.Run("recent activity", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/activity?limit=5", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, dataSlice(t, resp), 2)
	})

	t.Run("overdue items", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/overdue?days=7", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, dataSlice(t, resp), 1)
	})

	t.Run("stats", func(t *testing.T) {
		rec, resp := doJSON(t, "GET", "/api/stats", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, dataSlice(t, resp), 3)
	})

	t.Run("health on memory backend", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"backend":"memory"`)
	})
}

func TestTransactionEndpoints(t *testing.T) {
	var txnID float64

	t.Run("issue creates a transaction", func(t *testing.T) {
		rec, resp := doJSON(t, "POST", "/api/transactions/issue", map[string]any{
			"student_id": 3,
			"item_ids":   []uint{1},
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		txnID, ok = data["transaction_id"].(float64)
		require.True(t, ok)
		require.NotZero(t, txnID)
	})

	t.Run("issuing an item that is out conflicts", func(t *testing.T) {
		rec, resp := doJSON(t, "POST", "/api/transactions/issue", map[string]any{
			"student_id": 1,
			"item_ids":   []uint{1},
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.False(t, resp.Success)
	})

	t.Run("damaged item without override conflicts", func(t *testing.T) {
		rec, _ := doJSON(t, "POST", "/api/transactions/issue", map[string]any{
			"student_id": 1,
			"item_ids":   []uint{4},
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("empty item list is a bad request", func(t *testing.T) {
		rec, _ := doJSON(t, "POST", "/api/transactions/issue", map[string]any{
			"student_id": 1,
			"item_ids":   []uint{},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("return closes the loan", func(t *testing.T) {
		path := "/api/transactions/" + itoa(txnID) + "/return"
		rec, resp := doJSON(t, "POST", path, map[string]any{"item_id": 1})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
	})

	t.Run("returning again conflicts", func(t *testing.T) {
		path := "/api/transactions/" + itoa(txnID) + "/return"
		rec, _ := doJSON(t, "POST", path, map[string]any{"item_id": 1})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("damage report on an open line", func(t *testing.T) {
		_, resp := doJSON(t, "POST", "/api/transactions/issue", map[string]any{
			"student_id": 3,
			"item_ids":   []uint{1},
		})
		data := resp.Data.(map[string]any)
		id := data["transaction_id"].(float64)

		rec, _ := doJSON(t, "POST", "/api/transactions/"+itoa(id)+"/damage", map[string]any{"item_id": 1})
		assert.Equal(t, http.StatusOK, rec.Code)

		_, items := doJSON(t, "GET", "/api/items?q=ARD001", nil)
		list := dataSlice(t, items)
		require.Len(t, list, 1)
		assert.Equal(t, "Damaged", list[0].(map[string]any)["status"])
	})

	t.Run("unknown transaction", func(t *testing.T) {
		rec, _ := doJSON(t, "POST", "/api/transactions/999/return", map[string]any{"item_id": 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRosterEndpoints(t *testing.T) {
	t.Run("create student", func(t *testing.T) {
		rec, resp := doJSON(t, "POST", "/api/students", map[string]any{
			"student_id": "STU010",
			"name":       "Alice Wu",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, resp.Success)
	})

	t.Run("duplicate student code conflicts", func(t *testing.T) {
		rec, _ := doJSON(t, "POST", "/api/students", map[string]any{
			"student_id": "STU010",
			"name":       "Someone Else",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing name is a bad request", func(t *testing.T) {
		rec, _ := doJSON(t, "POST", "/api/students", map[string]any{"student_id": "STU011"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete student", func(t *testing.T) {
		rec, _ := doJSON(t, "DELETE", "/api/students/3", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, _ = doJSON(t, "DELETE", "/api/students/3", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("create inventory", func(t *testing.T) {
		rec, _ := doJSON(t, "POST", "/api/inventory", map[string]any{
			"name":      "Power Supply",
			"total_qty": 2,
			"course":    "ECE101",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate inventory name conflicts", func(t *testing.T) {
		rec, _ := doJSON(t, "POST", "/api/inventory", map[string]any{"name": "arduino"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("bulk import", func(t *testing.T) {
		rec, resp := doJSON(t, "POST", "/api/inventory/import", map[string]any{
			"rows": []map[string]any{
				{"component_name": "Oscilloscope", "quantity": 2},
				{"component_name": "", "quantity": 5},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(1), data["inventories_created"])
		assert.Equal(t, float64(2), data["items_created"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/students", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func itoa(id float64) string {
	return strconv.FormatUint(uint64(id), 10)
}
