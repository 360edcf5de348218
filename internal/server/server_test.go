package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexchase32/lessbuilder/internal/config"
	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/store"
)

const validLesson = `{
  "name": "Lección 3",
  "date": "2024-04-02",
  "blocks": [
    {"id": 1, "type": "translation", "config": {
      "instructions": "Translate",
      "sentences": [{"sentence": "I am tall", "correctAnswer": "Soy alto", "vocabulary": ["alto"]}]
    }}
  ]
}`

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	name := strings.NewReplacer("/", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	srv := New(st.LessonRepo(), config.ServerConfig{}, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestGetEmptyLesson(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/lesson")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	v, ok := body["lesson"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestSaveAndGetLesson(t *testing.T) {
	ts, st := newTestServer(t)

	for _, method := range []string{http.MethodPost, http.MethodPut} {
		req, err := http.NewRequest(method, ts.URL+"/api/lesson", strings.NewReader(validLesson))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, method)

		var out saveResponse
		decode(t, resp, &out)
		assert.True(t, out.Success, method)
	}

	l, err := st.LessonRepo().Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "Lección 3", l.Name)
	assert.Equal(t, lesson.VersionCurrent, l.Blocks[0].Version)

	resp, err := http.Get(ts.URL + "/api/lesson")
	require.NoError(t, err)
	var got lessonResponse
	decode(t, resp, &got)
	require.NotNil(t, got.Lesson)
	assert.Len(t, got.Lesson.Blocks, 1)
}

func TestSaveRejectsInvalid(t *testing.T) {
	ts, st := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"missing name", `{"date":"2024-01-01","blocks":[]}`},
		{"missing date", `{"name":"x","blocks":[]}`},
		{"blocks not array", `{"name":"x","date":"2024-01-01","blocks":{}}`},
		{"blocks missing", `{"name":"x","date":"2024-01-01"}`},
		{"unknown type", `{"name":"x","date":"2024-01-01","blocks":[{"id":1,"type":"quiz","config":{}}]}`},
		{"schema violation", `{"name":"x","date":"2024-01-01","blocks":[{"id":1,"type":"flashcard","config":{"cards":[{"english":"dog"}]}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/lesson", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var out saveResponse
			decode(t, resp, &out)
			assert.False(t, out.Success)
			assert.NotEmpty(t, out.Error)
		})
	}

	l, err := st.LessonRepo().Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/lesson", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestClientRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t)
	c := NewClient(ts.URL + "/")
	ctx := context.Background()

	l, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, l)

	want, err := lesson.Decode([]byte(validLesson))
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, want))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Name, got.Name)

	require.NoError(t, c.Clear(ctx))
	got, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = store.RequireLesson(ctx, c)
	assert.ErrorIs(t, err, store.ErrNoLesson)
}

func TestClientPutInvalid(t *testing.T) {
	ts, _ := newTestServer(t)
	c := NewClient(ts.URL)

	err := c.Put(context.Background(), &lesson.Lesson{Name: "x", Date: "2024-01-01", Blocks: []lesson.Block{
		{ID: 1, Type: lesson.TypeFlashcard, Config: json.RawMessage(`{"cards":[{"english":"dog"}]}`)},
	}})
	assert.ErrorIs(t, err, lesson.ErrInvalid)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	_, st := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(st.LessonRepo(), config.ServerConfig{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ServeListener(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
