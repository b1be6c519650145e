package newsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/headlines/internal/model"
)

func serve(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var got http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = *r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestTopHeadlinesRequestShape(t *testing.T) {
	srv, got := serve(t, http.StatusOK, `{"status":"ok","articles":[]}`)

	c := New("secret", WithBaseURL(srv.URL+"/"), WithCountry("us"))
	arts, err := c.TopHeadlines(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, arts)
	assert.Empty(t, arts)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/v2/top-headlines", got.URL.Path)
	assert.Equal(t, "us", got.URL.Query().Get("country"))
	assert.Equal(t, "secret", got.URL.Query().Get("apiKey"))
}

func TestTopHeadlinesPreservesOrderAndContent(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"articles":[
		{"title":"Storm warning","urlToImage":"https://x/img.jpg"},
		{"title":"Local election results"},
		{"title":"Storm warning","urlToImage":null},
		{"title":"Zebra","urlToImage":"   "}
	]}`)

	arts, err := New("k", WithBaseURL(srv.URL)).TopHeadlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Article{
		{Title: "Storm warning", ImageURL: "https://x/img.jpg"},
		{Title: "Local election results"},
		{Title: "Storm warning"},
		{Title: "Zebra"},
	}, arts)
}

func TestTopHeadlinesMissingTitleGetsPlaceholder(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"articles":[{"urlToImage":"https://x/a.png"},{"title":null},{"title":"  "}]}`)

	arts, err := New("k", WithBaseURL(srv.URL)).TopHeadlines(context.Background())
	require.NoError(t, err)
	require.Len(t, arts, 3)
	for _, a := range arts {
		assert.Equal(t, model.Untitled, a.Title)
	}
	assert.True(t, arts[0].HasImage())
}

func TestTopHeadlinesMalformed(t *testing.T) {
	cases := map[string]string{
		"api error body with 200": `{"status":"error","code":"apiKeyInvalid"}`,
		"not json":                `<html>nope</html>`,
		"array at top level":      `[{"title":"x"}]`,
		"articles is null":        `{"articles":null}`,
		"articles wrong type":     `{"articles":"many"}`,
		"article wrong type":      `{"articles":[1,2]}`,
		"empty body":              ``,
		"trailing data":           `{"articles":[{"title":"a"}]}<html>proxy error</html>`,
		"two json values":         `{"articles":[]}{"articles":[]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv, _ := serve(t, http.StatusOK, body)
			arts, err := New("k", WithBaseURL(srv.URL)).TopHeadlines(context.Background())
			require.Error(t, err)
			assert.Nil(t, arts)
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.NotEmpty(t, err.Error())
		})
	}
}

func TestTopHeadlinesAllowsTrailingWhitespace(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, "{\"articles\":[{\"title\":\"a\"}]}\n\n")
	arts, err := New("k", WithBaseURL(srv.URL)).TopHeadlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Article{{Title: "a"}}, arts)
}

func TestTopHeadlinesStripsTerminalEscapes(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"articles":[
		{"title":"hi\u001b]0;pwned\u0007\u001b[2J","urlToImage":"https://x/\u001b[31mred.png"},
		{"title":"line\none\u0000two"},
		{"title":"\u001b[2J"}
	]}`)

	arts, err := New("k", WithBaseURL(srv.URL)).TopHeadlines(context.Background())
	require.NoError(t, err)
	require.Len(t, arts, 3)

	assert.Equal(t, "hi", arts[0].Title)
	assert.Equal(t, "https://x/red.png", arts[0].ImageURL)
	assert.Equal(t, "line onetwo", arts[1].Title)
	assert.Equal(t, model.Untitled, arts[2].Title)
	for _, a := range arts {
		assert.NotContains(t, a.Title, "\x1b")
		assert.NotContains(t, a.Title, "\x07")
		assert.NotContains(t, a.ImageURL, "\x1b")
	}
}

func TestTopHeadlinesMalformedMentionsAPICode(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"status":"error","code":"apiKeyInvalid"}`)
	_, err := New("k", WithBaseURL(srv.URL)).TopHeadlines(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
}

func TestTopHeadlinesHTTPStatus(t *testing.T) {
	srv, _ := serve(t, http.StatusUnauthorized,
		`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid or incorrect."}`)

	_, err := New("bad", WithBaseURL(srv.URL)).TopHeadlines(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPStatus)
	assert.NotErrorIs(t, err, ErrMalformedResponse)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "apiKeyInvalid", se.Code)
	assert.Equal(t, "HTTP 401 (apiKeyInvalid): Your API key is invalid or incorrect.", err.Error())
}

func TestTopHeadlinesHTTPStatusWithoutBody(t *testing.T) {
	srv, _ := serve(t, http.StatusServiceUnavailable, `oops`)

	_, err := New("k", WithBaseURL(srv.URL)).TopHeadlines(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPStatus)
	assert.Equal(t, "HTTP 503: Service Unavailable", err.Error())
}

func TestTopHeadlinesNetworkFailureHidesKey(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{}`)
	addr := srv.URL
	srv.Close() // nothing listens any more

	_, err := New("very-secret", WithBaseURL(addr)).TopHeadlines(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.NotContains(t, err.Error(), "very-secret")
	assert.True(t, strings.HasPrefix(err.Error(), "network failure: "), err.Error())
}

func TestTopHeadlinesTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	_, err := New("k", WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond)).TopHeadlines(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), "Timeout")
}

func TestTimeoutSurvivesHTTPClientOption(t *testing.T) {
	custom := &http.Client{}

	c := New("k", WithTimeout(time.Second), WithHTTPClient(custom))
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.Zero(t, custom.Timeout, "caller's client must not be mutated")

	c = New("k", WithHTTPClient(nil), WithTimeout(time.Second))
	require.NotNil(t, c.httpClient)
	assert.Equal(t, time.Second, c.httpClient.Timeout)

	c = New("k", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
}

func TestTopHeadlinesCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := New("k", WithBaseURL(srv.URL)).TopHeadlines(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTopHeadlinesInvalidBaseURL(t *testing.T) {
	_, err := New("k", WithBaseURL("not a url")).TopHeadlines(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}
