package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buffos/go-roadmap/internal/export"
	"github.com/buffos/go-roadmap/internal/render"
	"github.com/buffos/go-roadmap/internal/roadmap"
	"github.com/buffos/go-roadmap/internal/store"
	"github.com/buffos/go-roadmap/internal/textmetrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type fakeExporter struct {
	calls   []export.Format
	lastCtx context.Context
	err     error
}

func (f *fakeExporter) Export(ctx context.Context, svg []byte, format export.Format, w io.Writer) error {
	f.calls = append(f.calls, format)
	f.lastCtx = ctx
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, "converted:"+string(format)+":"+string(svg[:4]))
	return err
}

func newTestServer(t *testing.T) (*Server, *fakeExporter) {
	t.Helper()
	db, err := store.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	exp := &fakeExporter{}
	return New(Options{
		Service:  render.NewService(textmetrics.Monospace{}, 42, nil),
		Repo:     store.NewRoadmaps(db),
		Exporter: exp,
	}), exp
}

const validBody = `{"plan_key":6,"target_monthly_income":40,"monthly_savings":25,"start_date":"2024-01-01","show_grid":true,"show_icons":true}`

func do(t *testing.T, s *Server, method, target, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(b)
}

func TestHealthAndPlans(t *testing.T) {
	s, _ := newTestServer(t)

	resp, body := do(t, s, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"alive"}`, body)

	resp, body = do(t, s, http.MethodGet, "/plans", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var plans []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &plans))
	assert.Len(t, plans, 6)
}

func TestRenderStateless(t *testing.T) {
	s, exp := newTestServer(t)

	resp, body := do(t, s, http.MethodPost, "/render", validBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "image/svg+xml")
	assert.True(t, strings.HasPrefix(body, "<svg "))
	assert.Empty(t, exp.calls)

	resp, body = do(t, s, http.MethodPost, "/render?format=png", validBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "converted:png:<svg", body)

	resp, _ = do(t, s, http.MethodPost, "/render?format=gif", validBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRender_BadInput(t *testing.T) {
	s, _ := newTestServer(t)

	resp, _ := do(t, s, http.MethodPost, "/render", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, s, http.MethodPost, "/render", "{")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := do(t, s, http.MethodPost, "/roadmaps",
		`{"plan_key":6,"target_monthly_income":10,"monthly_savings":20,"start_date":"2024-01-01"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var out struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "validation failed", out.Error)
	assert.Contains(t, out.Fields, "monthly_savings")
}

func TestRenderTree(t *testing.T) {
	s, _ := newTestServer(t)
	resp, body := do(t, s, http.MethodPost, "/tree", validBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var tree struct {
		Width float64 `json:"width"`
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &tree))
	assert.Equal(t, 1200.0, tree.Width)
	assert.NotEmpty(t, tree.Nodes)
}

func TestRoadmapLifecycle(t *testing.T) {
	s, exp := newTestServer(t)

	resp, body := do(t, s, http.MethodPost, "/roadmaps", validBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	var created struct {
		ID   string `json:"id"`
		Data struct {
			FreelanceMonths int `json:"freelance_months"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 54, created.Data.FreelanceMonths)
	assert.Equal(t, "/roadmaps/"+created.ID, resp.Header.Get("Location"))

	resp, body = do(t, s, http.MethodGet, "/roadmaps/"+created.ID, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"plan_key":6`)
	assert.NotContains(t, body, "<svg")

	resp, body = do(t, s, http.MethodGet, "/roadmaps/"+created.ID+"/svg", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "<svg "))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "roadmap.svg")

	resp, body = do(t, s, http.MethodGet, "/roadmaps/"+created.ID+"/pdf", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "converted:pdf:<svg", body)
	assert.Equal(t, []export.Format{export.PDF}, exp.calls)

	resp, body = do(t, s, http.MethodGet, "/roadmaps", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0]["id"])
}

func TestRoadmapErrors(t *testing.T) {
	s, exp := newTestServer(t)

	resp, _ := do(t, s, http.MethodGet, "/roadmaps/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, s, http.MethodGet, "/roadmaps/nope/png", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, s, http.MethodGet, "/roadmaps?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := do(t, s, http.MethodGet, "/roadmaps", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	_, created := do(t, s, http.MethodPost, "/roadmaps", validBody)
	var rec struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(created), &rec))

	resp, _ = do(t, s, http.MethodGet, "/roadmaps/"+rec.ID+"/gif", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	exp.err = errors.New("chrome missing")
	resp, _ = do(t, s, http.MethodGet, "/roadmaps/"+rec.ID+"/png", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	exp.err = context.DeadlineExceeded
	resp, _ = do(t, s, http.MethodGet, "/roadmaps/"+rec.ID+"/jpg", "")
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
}

type requestKey struct{}

func TestSend_ExportFollowsRequestContext(t *testing.T) {
	s, exp := newTestServer(t)

	c := s.App().AcquireCtx(&fasthttp.RequestCtx{})
	defer s.App().ReleaseCtx(c)

	reqCtx, cancel := context.WithCancel(context.Background())
	c.SetContext(context.WithValue(reqCtx, requestKey{}, "req-1"))
	cancel() // client went away

	require.NoError(t, s.send(c, []byte("<svg/>"), export.PNG))
	require.NotNil(t, exp.lastCtx)
	assert.Equal(t, "req-1", exp.lastCtx.Value(requestKey{}))
	assert.ErrorIs(t, exp.lastCtx.Err(), context.Canceled)
	_, hasDeadline := exp.lastCtx.Deadline()
	assert.True(t, hasDeadline)
	assert.Equal(t, http.StatusInternalServerError, c.Response().StatusCode())
}

type failingRenderer struct{}

func (failingRenderer) Render(roadmap.Input) (*render.Result, error) {
	return nil, errors.New("encoding roadmap: disk full at /var/secret")
}

func TestRender_InternalErrorIsGeneric(t *testing.T) {
	s := New(Options{Service: failingRenderer{}, Exporter: &fakeExporter{}})

	resp, body := do(t, s, http.MethodPost, "/render", validBody)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"could not render roadmap"}`, body)
	assert.NotContains(t, body, "/var/secret")
}
