// Package testutil builds gin contexts and decodes API envelopes for
// handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/hotline-inc/hotline/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestContext returns a context for method and path. A non-nil body is
// sent as JSON.
func NewTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	var (
		r           io.Reader
		contentType string
	)
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return newContext(method, path, r, contentType)
}

// MultipartBody encodes data as a single file part named field. An empty
// field produces a form without any file.
func MultipartBody(field, filename string, data []byte) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &body, mw.FormDataContentType(), nil
}

// NewMultipartContext returns a context whose request uploads data the way
// the image upload form does.
func NewMultipartContext(method, path, field, filename string, data []byte) (*gin.Context, *httptest.ResponseRecorder, error) {
	body, contentType, err := MultipartBody(field, filename, data)
	if err != nil {
		return nil, nil, err
	}
	c, w := newContext(method, path, body, contentType)
	return c, w, nil
}

func newContext(method, path string, body io.Reader, contentType string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, body)
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	return c, w
}

// SetActor does what the actor middleware does for an authenticated request.
func SetActor(c *gin.Context, actor string) {
	c.Set(middleware.ActorContextKey, actor)
}

func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

// APIResponse mirrors utils.APIResponse with the data left raw.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func ParseResponse(w *httptest.ResponseRecorder, target any) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// DecodeData parses the envelope and unmarshals its data into target.
func DecodeData(w *httptest.ResponseRecorder, target any) (*APIResponse, error) {
	var resp APIResponse
	if err := ParseResponse(w, &resp); err != nil {
		return nil, err
	}
	if target != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, target); err != nil {
			return &resp, err
		}
	}
	return &resp, nil
}
