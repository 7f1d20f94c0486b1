package report

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowscan-ai/knowscan/pkg/types"
)

func renderedDocumentXML(t *testing.T, payload []byte) string {
	t.Helper()
	archive, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		require.NoError(t, err)
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(raw)
	}
	t.Fatal("word/document.xml not found in rendered payload")
	return ""
}

func TestRender(t *testing.T) {
	scan := &types.KnowledgeScan{
		ID:             "scan-1",
		Query:          "coastal adaptation",
		OverallSummary: "Both studies agree on managed retreat [1] [2].",
		GeneralNotes:   "Generated based on query: coastal adaptation.",
		Keywords:       []string{"erosion", "retreat"},
		ResourcesSearched: []string{
			"coastal archive",
		},
		CombinedSummaries: types.CombinedSummaries{
			{
				FileName:     "alpha.pdf",
				Summary:      "Alpha argues for managed retreat.",
				Bibliography: "Smith, J. (2021). Alpha Study. Marine Institute.",
			},
			{
				FileName:     "beta.pdf",
				Summary:      "Beta quantifies shoreline loss.",
				Bibliography: types.NoBibliography,
			},
		},
	}

	payload, err := Render(scan, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("PK")))

	xml := renderedDocumentXML(t, payload)
	assert.Contains(t, xml, "Knowledge Scan")
	assert.Contains(t, xml, "General notes:")
	assert.Contains(t, xml, "Document 1: alpha.pdf")
	assert.Contains(t, xml, "Document 2: beta.pdf")
	assert.Contains(t, xml, "Smith, J. (2021). Alpha Study. Marine Institute.")
	assert.Contains(t, xml, types.NoBibliography)
	assert.Contains(t, xml, "Overall Summary:")

	assert.Less(t,
		strings.Index(xml, "Document 1: alpha.pdf"),
		strings.Index(xml, "Document 2: beta.pdf"),
	)
}

func TestRenderEmptyScan(t *testing.T) {
	payload, err := Render(&types.KnowledgeScan{ID: "scan-empty"}, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("PK")))
}
