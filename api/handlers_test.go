package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/cobscan/domain"
	"github.com/ludo-technologies/cobscan/internal/config"
	"github.com/ludo-technologies/cobscan/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := NewHandler(
		service.NewAnalysisService(service.NewHeuristicClassifier(), nil),
		service.NewTextExtractor(),
		nil,
	)
	srv := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0, AllowedOrigins: []string{"*"}}, handler, nil)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func postAnalyze(t *testing.T, ts *httptest.Server, code string) *http.Response {
	t.Helper()
	body, err := json.Marshal(map[string]string{"code": code})
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/analyze", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeAnalyzeResponse(t *testing.T, resp *http.Response) domain.AnalyzeResponse {
	t.Helper()
	defer resp.Body.Close()
	var decoded domain.AnalyzeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func TestAPI_Root(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["message"], "running")
}

func TestAPI_Analyze(t *testing.T) {
	ts := newTestServer(t)
	source := "01 WS-A PIC 9.\nIF WS-A = 1\nEND-IF\n"

	resp := postAnalyze(t, ts, source)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decoded := decodeAnalyzeResponse(t, resp)
	assert.Equal(t, 3, decoded.Metrics.LOC)
	assert.Equal(t, 1, decoded.Metrics.VariableCount)
	assert.True(t, decoded.Complexity.Classification.Valid())
	assert.Equal(t, domain.ChartLabels, decoded.ChartData.Labels)
	require.Len(t, decoded.ChartData.Datasets, 1)
	assert.Equal(t, domain.ChartBorderWidth, decoded.ChartData.Datasets[0].BorderWidth)
}

func TestAPI_AnalyzeRejectsEmptyCode(t *testing.T) {
	ts := newTestServer(t)

	for _, code := range []string{"", "   \n"} {
		resp := postAnalyze(t, ts, code)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestAPI_AnalyzeRejectsMalformedJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/analyze", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Detail)
}

func uploadFile(t *testing.T, ts *httptest.Server, filename string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp, err := http.Post(ts.URL+"/upload", writer.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func TestAPI_Upload(t *testing.T) {
	ts := newTestServer(t)
	source := "01 WS-A PIC 9.\nIF WS-A = 1\nEND-IF\n"

	resp := uploadFile(t, ts, "program.cbl", []byte(source))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decoded := decodeAnalyzeResponse(t, resp)
	assert.Equal(t, 3, decoded.Metrics.LOC)
}

// Submitting the same bytes inline and as an upload yields identical metrics.
func TestAPI_UploadMatchesDirectSubmission(t *testing.T) {
	ts := newTestServer(t)
	source := "01 WS-A PIC 9.\nIF WS-A = 1\n  PERFORM PARA-1\nEND-IF\n"

	direct := decodeAnalyzeResponse(t, postAnalyze(t, ts, source))
	uploaded := decodeAnalyzeResponse(t, uploadFile(t, ts, "program.txt", []byte(source)))

	assert.Equal(t, direct.Metrics, uploaded.Metrics)
	assert.Equal(t, direct.Complexity, uploaded.Complexity)
}

func TestAPI_UploadRejectsCorruptDocument(t *testing.T) {
	ts := newTestServer(t)

	resp := uploadFile(t, ts, "broken.docx", []byte("not a zip archive"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Detail, "Error extracting text")
}

func TestAPI_UploadRequiresFileField(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("other", "value"))
	require.NoError(t, writer.Close())

	resp, err := http.Post(ts.URL+"/upload", writer.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_CORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/analyze", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}
