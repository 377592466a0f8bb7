package extract

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/memogen/internal/model"
)

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Acme Corp sells B2B SaaS for logistics.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Founded in 2024 by </w:t></w:r><w:r><w:t>two repeat founders.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Columns:</w:t><w:tab/><w:t>ARR</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeTestDocx(t *testing.T, dir, documentXML string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, "deck.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestProcessDocuments_Docx(t *testing.T) {
	path := writeTestDocx(t, t.TempDir(), docxBody)

	text, err := ProcessDocuments([]model.UploadedFile{
		{Path: path, OriginalName: "deck.docx", ContentType: mimeDocx},
	})
	require.NoError(t, err)

	assert.Contains(t, text, "Acme Corp sells B2B SaaS for logistics.")
	assert.Contains(t, text, "Founded in 2024 by two repeat founders.")
	assert.Contains(t, text, "Columns:\tARR")

	// The blob is deleted after processing.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessDocuments_UnsupportedTypeSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain notes"), 0644))

	text, err := ProcessDocuments([]model.UploadedFile{
		{Path: path, OriginalName: "notes.txt", ContentType: "text/plain"},
	})
	require.NoError(t, err)
	assert.Empty(t, text)

	// Skipped blobs are still deleted.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessDocuments_CorruptPDFFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0644))

	_, err := ProcessDocuments([]model.UploadedFile{
		{Path: path, OriginalName: "broken.pdf", ContentType: mimePDF},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse PDF broken.pdf")

	// Deletion happens even when parsing fails.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessDocuments_CorruptDocxFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := ProcessDocuments([]model.UploadedFile{
		{Path: path, OriginalName: "broken.docx", ContentType: mimeDocx},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse DOCX broken.docx")
}

func TestProcessDocuments_DocxMissingDocumentXML(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, "odd.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	_, err = ProcessDocuments([]model.UploadedFile{
		{Path: path, OriginalName: "odd.docx", ContentType: mimeDocx},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document.xml not found")
}

func TestProcessDocuments_FailureReleasesRemainingBlobs(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(broken, []byte("not a pdf"), 0644))
	unprocessed := writeTestDocx(t, dir, docxBody)

	_, err := ProcessDocuments([]model.UploadedFile{
		{Path: broken, OriginalName: "broken.pdf", ContentType: mimePDF},
		{Path: unprocessed, OriginalName: "deck.docx", ContentType: mimeDocx},
	})
	require.Error(t, err)

	_, statErr := os.Stat(broken)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(unprocessed)
	assert.True(t, os.IsNotExist(statErr), "blobs after the failing one must also be released")
}

func TestProcessDocuments_Empty(t *testing.T) {
	text, err := ProcessDocuments(nil)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestDocxText_LineBreaks(t *testing.T) {
	xml := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>line one</w:t><w:br/><w:t>line two</w:t></w:r></w:p></w:body></w:document>`

	text, err := docxText(bytes.NewReader([]byte(xml)))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)
}
