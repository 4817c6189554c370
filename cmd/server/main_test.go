package main

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/baditaflorin/go_text_normalizer/pkg/normalizer"
	"github.com/baditaflorin/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestMain(m *testing.M) {
	var err error
	logger, err = l.NewStandardFactory().CreateLogger(l.Config{Output: io.Discard, JsonFormat: true})
	if err != nil {
		panic(err)
	}
	textNormalizer, err = normalizer.New(normalizer.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func doRequest(t *testing.T, method, path string, body []byte) *fasthttp.RequestCtx {
	t.Helper()
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	ctx.Request.SetBody(body)
	requestHandler(ctx)
	return ctx
}

func decodeNormalizeResponse(t *testing.T, ctx *fasthttp.RequestCtx) NormalizeResponse {
	t.Helper()
	var resp NormalizeResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	ctx := doRequest(t, fasthttp.MethodGet, "/health", nil)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"status":"ok"`)
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name string
		body string
		text string
		kind string
	}{
		{name: "String", body: `{"value":"héllo"}`, text: "héllo", kind: "text"},
		{name: "Integer keeps literal", body: `{"value":42}`, text: "42", kind: "other"},
		{name: "Bool", body: `{"value":true}`, text: "true", kind: "other"},
		{name: "Null", body: `{"value":null}`, text: "<nil>", kind: "other"},
		// "/v8=" is base64 for 0xff 0xfe
		{name: "Invalid bytes", body: `{"bytes":"//4="}`, text: "��", kind: "bytes"},
		{name: "Bytes win over value", body: `{"value":"ignored","bytes":"aMOpbGxv"}`, text: "héllo", kind: "bytes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := doRequest(t, fasthttp.MethodPost, "/normalize", []byte(tc.body))
			require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

			resp := decodeNormalizeResponse(t, ctx)
			assert.Equal(t, tc.text, resp.Text)
			assert.Equal(t, tc.kind, resp.Kind)
		})
	}
}

func TestNormalizeReportsReplacements(t *testing.T) {
	ctx := doRequest(t, fasthttp.MethodPost, "/normalize", []byte(`{"bytes":"//4="}`))
	resp := decodeNormalizeResponse(t, ctx)
	assert.Equal(t, 2, resp.Replacements)
	assert.False(t, resp.FellBack)
}

func TestNormalizeRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{name: "Wrong method", method: fasthttp.MethodGet, body: "", status: fasthttp.StatusMethodNotAllowed},
		{name: "Malformed JSON", method: fasthttp.MethodPost, body: `{`, status: fasthttp.StatusBadRequest},
		{name: "Nothing to normalize", method: fasthttp.MethodPost, body: `{}`, status: fasthttp.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := doRequest(t, tc.method, "/normalize", []byte(tc.body))
			assert.Equal(t, tc.status, ctx.Response.StatusCode())

			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &errResp))
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestNormalizeRaw(t *testing.T) {
	ctx := doRequest(t, fasthttp.MethodPost, "/normalize/raw", []byte("caf\xc3\xa9 \xff"))
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	resp := decodeNormalizeResponse(t, ctx)
	assert.Equal(t, "café �", resp.Text)
	assert.Equal(t, "bytes", resp.Kind)
	assert.Equal(t, 1, resp.Replacements)
}

func TestLocalized(t *testing.T) {
	body := `{"values":{"C":"Text Editor","de":"Texteditor","version":3}}`
	ctx := doRequest(t, fasthttp.MethodPost, "/localized", []byte(body))
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var resp LocalizedResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "Text Editor", resp.Untranslated)
	assert.Equal(t, map[string]string{"C": "Text Editor", "de": "Texteditor", "version": "3"}, resp.Values)
}

func TestLocalizedRequiresValues(t *testing.T) {
	ctx := doRequest(t, fasthttp.MethodPost, "/localized", []byte(`{"values":{}}`))
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestUnknownPath(t *testing.T) {
	ctx := doRequest(t, fasthttp.MethodGet, "/nope", nil)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}
