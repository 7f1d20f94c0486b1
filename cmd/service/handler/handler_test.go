package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowscan-ai/knowscan/pkg/utils"
)

func bindJSON(t *testing.T, body string, req interface{}) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return utils.BindArgsWithGin(c, req)
}

func TestGenerateKnowledgeScanRequestBinding(t *testing.T) {
	var req GenerateKnowledgeScanRequest
	require.NoError(t, bindJSON(t, `{"query":"coastal adaptation","documents":["a1","b1"]}`, &req))
	assert.Equal(t, "coastal adaptation", req.Query)
	assert.Equal(t, []string{"a1", "b1"}, req.DocumentIDs)

	var missingDocs GenerateKnowledgeScanRequest
	require.Error(t, bindJSON(t, `{"query":"coastal adaptation"}`, &missingDocs))

	var missingQuery GenerateKnowledgeScanRequest
	require.Error(t, bindJSON(t, `{"documents":["a1"]}`, &missingQuery))
}

func TestGenerateBibliographiesRequestBinding(t *testing.T) {
	var req GenerateBibliographiesRequest
	require.NoError(t, bindJSON(t, `{"documents":["a1"]}`, &req))
	assert.Equal(t, []string{"a1"}, req.DocumentIDs)

	var empty GenerateBibliographiesRequest
	require.Error(t, bindJSON(t, `{}`, &empty))
}

func TestIngestDocumentRequestBinding(t *testing.T) {
	var req IngestDocumentRequest
	require.NoError(t, bindJSON(t, `{"object_path":"uploads/report.pdf","file_name":"report.pdf"}`, &req))
	assert.Equal(t, "uploads/report.pdf", req.ObjectPath)

	var missing IngestDocumentRequest
	require.Error(t, bindJSON(t, `{"file_name":"report.pdf"}`, &missing))
}
