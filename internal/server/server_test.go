package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jsnanigans/reanchor/pkg/reanchor"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestUpdateAndRemap(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(nil, reg, 0)

	rec := do(t, s, http.MethodPost, "/update", `{"filename":"a.txt","content":"keep this, drop that"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decode[UpdateResponse](t, rec).Created)

	rec = do(t, s, http.MethodPost, "/annotate", `{"filename":"a.txt","pattern":"keep","id":"k"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, AnnotateResponse{ID: "k", Positions: []int{0, 1, 2, 3}}, decode[AnnotateResponse](t, rec))

	rec = do(t, s, http.MethodPost, "/annotate", `{"filename":"a.txt","pattern":"drop","id":"d"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/update", `{"filename":"a.txt","content":"oh, keep this"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[UpdateResponse](t, rec)
	assert.False(t, resp.Created)
	assert.Equal(t, []reanchor.AnnotationID{"d"}, resp.Lost)
	assert.Equal(t, map[reanchor.AnnotationID][]int{"k": {4, 5, 6, 7}}, resp.Current)

	rec = do(t, s, http.MethodGet, "/annotations?filename=a.txt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[reanchor.AnnotationID][]int{"k": {4, 5, 6, 7}}, decode[AnnotationsResponse](t, rec).Annotations)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.cycles))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.lost))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.annotations))

	rec = do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reanchor_cycles_total 1")
}

func TestAnnotateGeneratesID(t *testing.T) {
	s := New(nil, nil, 0)
	do(t, s, http.MethodPost, "/update", `{"filename":"a","content":"aaa"}`)

	rec := do(t, s, http.MethodPost, "/annotate", `{"filename":"a","pattern":"aa"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[AnnotateResponse](t, rec)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, []int{0, 1, 2}, resp.Positions)
}

func TestRequestErrors(t *testing.T) {
	s := New(nil, nil, 0)
	do(t, s, http.MethodPost, "/update", `{"filename":"a","content":"abc"}`)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{name: "Update wrong method", method: http.MethodGet, target: "/update", want: http.StatusMethodNotAllowed},
		{name: "Update bad body", method: http.MethodPost, target: "/update", body: "{", want: http.StatusBadRequest},
		{name: "Update missing filename", method: http.MethodPost, target: "/update", body: `{"content":"x"}`, want: http.StatusBadRequest},
		{name: "Annotate unknown file", method: http.MethodPost, target: "/annotate", body: `{"filename":"zzz","pattern":"a"}`, want: http.StatusNotFound},
		{name: "Annotate empty pattern", method: http.MethodPost, target: "/annotate", body: `{"filename":"a","pattern":""}`, want: http.StatusBadRequest},
		{name: "Annotate wrong method", method: http.MethodGet, target: "/annotate", want: http.StatusMethodNotAllowed},
		{name: "Annotations unknown file", method: http.MethodGet, target: "/annotations?filename=zzz", want: http.StatusNotFound},
		{name: "Annotations wrong method", method: http.MethodPost, target: "/annotations", want: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, s, tt.method, tt.target, tt.body).Code)
		})
	}
}

func TestUpdateLogsFirstChange(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := New(zap.New(core), nil, 0)

	do(t, s, http.MethodPost, "/update", `{"filename":"f","content":"hello cruel world"}`)
	do(t, s, http.MethodPost, "/update", `{"filename":"f","content":"hello world"}`)
	do(t, s, http.MethodPost, "/update", `{"filename":"f","content":"hello world"}`)

	changes := logs.FilterMessage("changes detected").All()
	require.Len(t, changes, 1)
	fields := changes[0].ContextMap()
	assert.Equal(t, "cruel ", fields["removed"])
	assert.Equal(t, int64(6), fields["firstChangeAt"])
	assert.Equal(t, 1, logs.FilterMessage("no changes detected").Len())
	assert.Equal(t, 1, logs.FilterMessage("caching initial content").Len())
}

func TestBodyLimit(t *testing.T) {
	s := New(nil, nil, 64)
	big := `{"filename":"a","content":"` + strings.Repeat("x", 128) + `"}`

	rec := do(t, s, http.MethodPost, "/update", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "64 bytes")

	rec = do(t, s, http.MethodPost, "/update", `{"filename":"a","content":"small"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodPost, "/annotate", `{"filename":"a","pattern":"`+strings.Repeat("y", 128)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Len(t, s.files, 1, "an oversized update must not be cached")
}
