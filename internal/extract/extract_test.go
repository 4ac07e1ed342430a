package extract_test

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/extract"
)

func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_PlainText(t *testing.T) {
	text, err := extract.Extract(context.Background(), "notes.MD", []byte("\xef\xbb\xbf# Title\n\nBody text.\n"))
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nBody text.", text)
}

func TestExtract_InvalidUTF8IsRepaired(t *testing.T) {
	text, err := extract.Extract(context.Background(), "data.csv", []byte("a,b\xff,c"))
	require.NoError(t, err)
	assert.Equal(t, "a,b�,c", text)
}

func TestExtract_Docx(t *testing.T) {
	doc := zipOf(t, map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Quarterly</w:t></w:r><w:r><w:t xml:space="preserve"> report</w:t></w:r></w:p>
    <w:p><w:r><w:t>Revenue</w:t><w:tab/><w:t>4M</w:t></w:r></w:p>
  </w:body>
</w:document>`,
	})

	text, err := extract.Extract(context.Background(), "report.docx", doc)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly report\nRevenue\t4M", text)
}

func TestExtract_Xlsx(t *testing.T) {
	book := zipOf(t, map[string]string{
		"xl/sharedStrings.xml": `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <si><t>Quarter</t></si><si><t>Revenue</t></si><si><r><t>Q</t></r><r><t>3</t></r></si>
</sst>`,
		"xl/worksheets/sheet1.xml": `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
    <row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>4000000</v></c></row>
    <row r="3"><c r="A3" t="inlineStr"><is><t>Total</t></is></c></row>
  </sheetData>
</worksheet>`,
	})

	text, err := extract.Extract(context.Background(), "figures.xlsx", book)
	require.NoError(t, err)
	assert.Equal(t, "Quarter\tRevenue\nQ3\t4000000\nTotal", text)
}

func TestExtract_Errors(t *testing.T) {
	cases := map[string]struct {
		name string
		data []byte
	}{
		"unsupported extension": {"image.png", []byte("PNG")},
		"corrupt docx":          {"broken.docx", []byte("not a zip")},
		"docx without body":     {"empty.docx", zipOf(t, map[string]string{"other.xml": "<a/>"})},
		"whitespace only":       {"blank.txt", []byte("  \n\t ")},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := extract.Extract(context.Background(), tc.name, tc.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, app_errors.ErrExtraction)
		})
	}
}

func TestSupportedExtension(t *testing.T) {
	assert.True(t, extract.SupportedExtension("a.PDF"))
	assert.True(t, extract.SupportedExtension("a.docx"))
	assert.True(t, extract.SupportedExtension("a.markdown"))
	assert.False(t, extract.SupportedExtension("a.exe"))
	assert.False(t, extract.SupportedExtension("noext"))
}

func TestDetectType(t *testing.T) {
	assert.Equal(t, "text/plain; charset=utf-8", extract.DetectType([]byte("hello world")))
	assert.Equal(t, "application/pdf", extract.DetectType([]byte("%PDF-1.7\n")))
}
