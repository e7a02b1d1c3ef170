package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/binder"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

var signup = schema.New(map[string]any{
	"email":    schema.String().Trim().ToLowerCase(),
	"age":      schema.Number().Integer().Min(18).Optional(),
	"password": schema.String().Min(8),
})

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		got, err := binder.JSON(signup)(jsonRequest(`{"email":" Ann@Example.com ","age":30,"password":"secret123","extra":true}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"email":    "ann@example.com",
			"age":      30,
			"password": "secret123",
		}, got)
	})

	t.Run("invalid body", func(t *testing.T) {
		t.Parallel()
		_, err := binder.JSON(signup)(jsonRequest(`{"email":1,"age":17.5,"password":"x"}`))

		verr, ok := schema.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, `age: Expect value to be an integer`, verr.Message)
		assert.Len(t, verr.Errors, 3)
	})

	t.Run("numbers", func(t *testing.T) {
		t.Parallel()
		body := `{"n":[1,2.5,-3,1e2,12345678901234567890]}`

		got, err := binder.JSON(schema.Unknown)(jsonRequest(body))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"n": []any{1, 2.5, -3, 1e2, 12345678901234567890.0}}, got)

		got, err = binder.JSON(schema.Unknown, binder.WithFloatNumbers())(jsonRequest(body))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"n": []any{1.0, 2.5, -3.0, 100.0, 12345678901234567890.0}}, got)
	})

	t.Run("enum over decoded numbers", func(t *testing.T) {
		t.Parallel()
		plan := binder.JSON(schema.New(map[string]any{"plan": schema.Enum([]int{1, 2, 3})}))

		_, err := plan(jsonRequest(`{"plan":2}`))
		require.NoError(t, err)

		_, err = plan(jsonRequest(`{"plan":4}`))
		assert.EqualError(t, err, "plan: Unknown enum value")
	})

	t.Run("content type", func(t *testing.T) {
		t.Parallel()
		bind := binder.JSON(schema.Unknown)

		req := jsonRequest(`{}`)
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		_, err := bind(req)
		require.NoError(t, err)

		req = jsonRequest(`{}`)
		req.Header.Set("Content-Type", "application/merge-patch+json")
		_, err = bind(req)
		require.NoError(t, err)

		req = jsonRequest(`{}`)
		req.Header.Del("Content-Type")
		_, err = bind(req)
		assert.ErrorIs(t, err, binder.ErrMissingContentType)

		req = jsonRequest(`{}`)
		req.Header.Set("Content-Type", "text/plain")
		_, err = bind(req)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		for _, body := range []string{``, `{`, `{"a":1}{"b":2}`, `{"a":1} x`, `nul`} {
			_, err := binder.JSON(schema.Unknown)(jsonRequest(body))
			assert.ErrorIs(t, err, binder.ErrFailedToParseJSON, "body %q", body)
		}

		got, err := binder.JSON(schema.Unknown)(jsonRequest("  [1, \"a\"]\n "))
		require.NoError(t, err)
		assert.Equal(t, []any{1, "a"}, got)
	})

	t.Run("body size", func(t *testing.T) {
		t.Parallel()
		body := `{"name":"` + strings.Repeat("a", 100) + `"}`

		_, err := binder.JSON(schema.Unknown, binder.WithMaxBodySize(64))(jsonRequest(body))
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)

		_, err = binder.JSON(schema.Unknown, binder.WithConfig(binder.Config{MaxBodySize: 1024, IntegerNumbers: true}))(jsonRequest(body))
		assert.NoError(t, err)
	})
}

func TestForm(t *testing.T) {
	t.Parallel()

	v := schema.New(map[string]any{
		"title": schema.String().Min(1),
		"tags":  schema.Array().Of(schema.String()).Optional(),
	})

	t.Run("url-encoded", func(t *testing.T) {
		t.Parallel()
		form := url.Values{"title": {"Hello"}, "tags": {"a", "b"}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		got, err := binder.Form(v)(req)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"title": "Hello", "tags": []any{"a", "b"}}, got)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		require.NoError(t, mw.WriteField("title", "Report"))
		fw, err := mw.CreateFormFile("file", "report.txt")
		require.NoError(t, err)
		_, err = fw.Write([]byte("content"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		got, err := binder.Form(v)(req)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"title": "Report"}, got)
		require.NotNil(t, req.MultipartForm)
		assert.Len(t, req.MultipartForm.File["file"], 1)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("other=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		_, err := binder.Form(v)(req)
		assert.EqualError(t, err, `title: Expect value to be "string"`)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("title="+strings.Repeat("a", 100)))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		_, err := binder.Form(v, binder.WithMaxBodySize(16))(req)
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
	})

	t.Run("content type", func(t *testing.T) {
		t.Parallel()
		req := jsonRequest(`{"title":"x"}`)
		_, err := binder.Form(v)(req)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	v := schema.New(map[string]any{
		"q":    schema.String().Trim().Min(1),
		"sort": schema.Either("asc", "desc", nil),
	})

	got, err := binder.Query(v)(httptest.NewRequest(http.MethodGet, "/?q=+go+&sort=asc", nil))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"q": "go", "sort": "asc"}, got)

	got, err = binder.Query(v)(httptest.NewRequest(http.MethodGet, "/?q=go", nil))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"q": "go"}, got)

	_, err = binder.Query(v)(httptest.NewRequest(http.MethodGet, "/?q=go&sort=up", nil))
	assert.True(t, schema.IsValidationError(err))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.RawQuery = "q=%zz"
	_, err = binder.Query(v)(req)
	assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
}

func TestPath(t *testing.T) {
	t.Parallel()

	v := schema.New(map[string]any{
		"id":   schema.String().UUID(),
		"slug": schema.String().Optional(),
	})

	var (
		got any
		err error
	)
	r := chi.NewRouter()
	r.Get("/items/{id}", func(w http.ResponseWriter, req *http.Request) {
		got, err = binder.Path(v, "id", "slug")(req)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/6BA7B810-9DAD-11D1-80B4-00C04FD430C8", nil))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}, got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))
	assert.EqualError(t, err, "id: Expect value to be a valid UUID")
}
