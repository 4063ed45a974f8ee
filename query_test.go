package thrust

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryParams(t *testing.T) {
	cases := []struct {
		name   string
		target string
		want   url.Values
	}{
		{
			name:   "single value",
			target: "/search?hello=world",
			want:   url.Values{"hello": {"world"}},
		},
		{
			name:   "multiple values",
			target: "/search?tag=a&tag=b&page=2",
			want:   url.Values{"tag": {"a", "b"}, "page": {"2"}},
		},
		{
			name:   "escaped value",
			target: "/search?q=hello%20world",
			want:   url.Values{"q": {"hello world"}},
		},
		{
			name:   "no query",
			target: "/search",
			want:   url.Values{},
		},
		{
			name:   "malformed pair is skipped",
			target: "/search?a=%zz&b=ok",
			want:   url.Values{"b": {"ok"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewContext(httptest.NewRequest(http.MethodGet, tc.target, nil), nil)
			var got url.Values
			chain := Chain{QueryParams(), func(c *Context, next Next) error {
				got = c.QueryParams()
				return nil
			}}
			require.NoError(t, chain.Run(c))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQueryParams_NotParsedImplicitly(t *testing.T) {
	app := MustNew()
	app.Get("/search", func(c *Context, _ Next) error {
		assert.Nil(t, c.QueryParams())
		c.Body(c.QueryParam("q"))
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/search?q=foo", nil)
	resp, err := app.Resolve(req, app.Match(req.Method, req.RequestURI))
	require.NoError(t, err)
	assert.Empty(t, resp.Body)
}
