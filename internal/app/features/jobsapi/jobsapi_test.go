package jobsapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	errorsfeature "github.com/dalemusser/stratajobs/internal/app/features/errors"
	"github.com/dalemusser/stratajobs/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testKey = "api-test-key"

func newRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	emp := testutil.InsertEmployer(t, db, primitive.NewObjectID(), "Initech")
	base := time.Now().Add(-time.Hour)
	var last string
	for i := 0; i < 4; i++ {
		j := testutil.InsertJob(t, db, emp.ID, fmt.Sprintf("Analyst %d", i), "$70,000", base.Add(time.Duration(i)*time.Minute))
		last = j.ID.Hex()
	}

	logger := zap.NewNop()
	h := NewHandler(db, 3, errorsfeature.NewErrorLogger(logger))
	return Routes(h, testKey, nil, logger), last
}

func get(router http.Handler, target, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestList(t *testing.T) {
	router, newest := newRouter(t)

	rec := get(router, "/", testKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Jobs) != 3 || !body.HasMore || body.Page != 1 {
		t.Fatalf("page 1 = %d jobs, has_more %v, page %d", len(body.Jobs), body.HasMore, body.Page)
	}
	if body.Jobs[0].ID != newest {
		t.Errorf("first job = %s, want newest %s", body.Jobs[0].ID, newest)
	}
	if body.Jobs[0].Employer == nil || body.Jobs[0].Employer.Name != "Initech" {
		t.Errorf("employer not embedded: %+v", body.Jobs[0].Employer)
	}

	rec = get(router, "/?page=2", testKey)
	body = ListResponse{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if len(body.Jobs) != 1 || body.HasMore {
		t.Errorf("page 2 = %d jobs, has_more %v; want 1, false", len(body.Jobs), body.HasMore)
	}
}

func TestList_BadPage(t *testing.T) {
	router, _ := newRouter(t)
	if rec := get(router, "/?page=zero", testKey); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestList_PastLastPage(t *testing.T) {
	router, _ := newRouter(t)

	rec := get(router, "/?page=9223372036854775807", testKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Jobs) != 0 || body.HasMore {
		t.Errorf("got %d jobs, has_more %v; want none", len(body.Jobs), body.HasMore)
	}
}

func TestGet(t *testing.T) {
	router, newest := newRouter(t)

	tests := []struct {
		name   string
		target string
		key    string
		want   int
	}{
		{"found", "/" + newest, testKey, http.StatusOK},
		{"unknown", "/" + primitive.NewObjectID().Hex(), testKey, http.StatusNotFound},
		{"malformed", "/xyz", testKey, http.StatusNotFound},
		{"missing key", "/" + newest, "", http.StatusUnauthorized},
		{"wrong key", "/" + newest, "nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := get(router, tt.target, tt.key); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
