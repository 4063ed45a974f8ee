package thrusttest

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tigerwill90/thrust"
)

func newApp() *thrust.App {
	app := thrust.MustNew()
	app.Use("/", thrust.QueryParams())
	app.Get("/test/:hello", func(c *thrust.Context, _ thrust.Next) error {
		c.Body(c.Param("hello"))
		return nil
	})
	app.Get("/query", func(c *thrust.Context, _ thrust.Next) error {
		c.Body(c.QueryParam("hello"))
		return nil
	})
	app.Get("/header", func(c *thrust.Context, _ thrust.Next) error {
		c.SetHeader("X-Echo", c.RequestHeader("X-Input"))
		return nil
	})
	app.Post("/echo", func(c *thrust.Context, _ thrust.Next) error {
		return c.Stream(http.StatusCreated, thrust.MIMETextPlain, c.Request().Body)
	})
	app.Put("/echo", func(c *thrust.Context, _ thrust.Next) error {
		return c.Stream(http.StatusOK, thrust.MIMETextPlain, c.Request().Body)
	})
	app.Patch("/echo", func(c *thrust.Context, _ thrust.Next) error {
		c.SetStatus(http.StatusAccepted)
		c.SetReason("Patched")
		return nil
	})
	app.Delete("/echo", func(c *thrust.Context, _ thrust.Next) error {
		c.SetStatus(http.StatusNoContent)
		return nil
	})
	app.Get("/fail", func(c *thrust.Context, _ thrust.Next) error {
		return errors.New("boom")
	})
	return app
}

func TestGet(t *testing.T) {
	app := newApp()

	resp, err := Get(app, "/test/world")
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "Ok", resp.Reason)
	assert.Equal(t, "world", resp.Body)

	resp, err = Get(app, "/query?hello=world")
	require.NoError(t, err)
	assert.Equal(t, "world", resp.Body)

	resp, err = Get(app, "/header", Header{Key: "X-Input", Value: "foo"})
	require.NoError(t, err)
	assert.Equal(t, "foo", resp.Headers["X-Echo"])
}

func TestRequestWithBody(t *testing.T) {
	app := newApp()

	resp, err := Post(app, "/echo", "hello body")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "Created", resp.Reason)
	assert.Equal(t, thrust.MIMETextPlain, resp.Headers[thrust.HeaderContentType])
	assert.Equal(t, "hello body", resp.Body)

	resp, err = Put(app, "/echo", "put body")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "put body", resp.Body)

	resp, err = Patch(app, "/echo", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.Status)
	assert.Equal(t, "Patched", resp.Reason)

	resp, err = Delete(app, "/echo")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Equal(t, "No Content", resp.Reason)
}

func TestRequestNotFound(t *testing.T) {
	resp, err := Get(newApp(), "/missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "Not Found", resp.Body)
}

func TestRequestUsesMethod(t *testing.T) {
	resp, err := Post(newApp(), "/test/world", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestRequestChainError(t *testing.T) {
	resp, err := Get(newApp(), "/fail")
	assert.EqualError(t, err, "boom")
	assert.Nil(t, resp)
}

func TestRequestMalformed(t *testing.T) {
	resp, err := Get(newApp(), "/with space")
	assert.Error(t, err)
	assert.Nil(t, resp)
}
