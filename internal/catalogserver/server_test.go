package catalogserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizcraft/internal/catalog"
	"github.com/abhisek/quizcraft/internal/quiz"
)

func testCatalog() *catalog.Catalog {
	c := catalog.New()
	c.Insert("pets", quiz.Quiz{
		Title: "Which pet are you?",
		Questions: []quiz.Question{{
			Text:    "Ideal evening?",
			Answers: []quiz.Answer{{Text: "Nap", Points: 1}, {Text: "Run", Points: 3}},
		}},
		Results: []quiz.Result{{Title: "Cat", Description: "Aloof.", Threshold: 3}},
	})
	c.Insert("coffee", quiz.Quiz{
		Title:     "Coffee order",
		Questions: []quiz.Question{{Text: "Milk?", Answers: []quiz.Answer{{Text: "Yes", Points: 2}}}},
		Results:   []quiz.Result{{Title: "Latte", Description: "Smooth.", Threshold: 2, ImageURL: "https://img.example/latte.png"}},
	})
	return c
}

func newServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	opts.Quiet = true
	srv := httptest.NewServer(NewHandler(testCatalog(), opts))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newServer(t, Options{})
	resp := getJSON(t, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalogDocumentRoundTrips(t *testing.T) {
	srv := newServer(t, Options{})

	resp, err := http.Get(srv.URL + "/quiz.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var buf json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&buf))

	c, err := catalog.Decode(catalog.Document{Data: buf, Format: catalog.FormatJSON})
	require.NoError(t, err)
	assert.Equal(t, []string{"pets", "coffee"}, c.IDs())
}

func TestListQuizzes(t *testing.T) {
	srv := newServer(t, Options{})

	var got []Summary
	resp := getJSON(t, srv.URL+"/quizzes", &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []Summary{
		{ID: "pets", Title: "Which pet are you?", Questions: 1, Results: 1, MaxScore: 3},
		{ID: "coffee", Title: "Coffee order", Questions: 1, Results: 1, MaxScore: 2},
	}, got)
}

func TestGetQuiz(t *testing.T) {
	srv := newServer(t, Options{})

	var got struct {
		ID      string        `json:"id"`
		Title   string        `json:"title"`
		Results []quiz.Result `json:"results"`
	}
	resp := getJSON(t, srv.URL+"/quizzes/coffee", &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "coffee", got.ID)
	assert.Equal(t, "Coffee order", got.Title)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "https://img.example/latte.png", got.Results[0].ImageURL)
}

func TestGetQuizNotFound(t *testing.T) {
	srv := newServer(t, Options{})

	var got errResp
	resp := getJSON(t, srv.URL+"/quizzes/nope", &got)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, got.Error, "nope")
}

func TestCORS(t *testing.T) {
	srv := newServer(t, Options{CORSOrigins: []string{"https://quiz.example.com"}})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/quizzes", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://quiz.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://quiz.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example.com")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestListenAndServeShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ListenAndServe(ctx, addr, NewHandler(testCatalog(), Options{Quiet: true})) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
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
