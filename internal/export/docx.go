package export

import (
	"archive/zip"
	"bytes"

	"github.com/rotisserie/eris"
)

// Filename is the fixed download filename for exported memoranda.
const Filename = "investment_memorandum.docx"

// ContentType is the media type of the exported document.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Default Extension="htm" ContentType="text/html"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>
</Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// The document body is a single altChunk: the HTML part is embedded as-is
// and converted by the consuming word processor on open. The section
// properties attach the page-number footer.
const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body>
<w:altChunk r:id="rId1"/>
<w:sectPr>
<w:footerReference w:type="default" r:id="rId2"/>
<w:pgSz w:w="11906" w:h="16838"/>
<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720"/>
</w:sectPr>
</w:body>
</w:document>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/aFChunk" Target="afchunk.htm"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>
</Relationships>`

const footerXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:p>
<w:pPr><w:jc w:val="center"/></w:pPr>
<w:r><w:fldChar w:fldCharType="begin"/></w:r>
<w:r><w:instrText xml:space="preserve"> PAGE </w:instrText></w:r>
<w:r><w:fldChar w:fldCharType="end"/></w:r>
</w:p>
</w:ftr>`

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<style>table tr { page-break-inside: avoid; }</style>
</head>
<body>
`

const htmlTail = `
</body>
</html>`

// ConvertHTML renders an HTML memorandum into a Word-compatible OOXML
// package. The conversion is pure and deterministic: identical input yields
// byte-identical output (zip entry metadata is fixed, no timestamps).
func ConvertHTML(content string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/document.xml", documentXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/footer1.xml", footerXML},
		{"word/afchunk.htm", htmlHead + content + htmlTail},
	}

	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   p.name,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, eris.Wrapf(err, "export: create part %s", p.name)
		}
		if _, err := w.Write([]byte(p.data)); err != nil {
			return nil, eris.Wrapf(err, "export: write part %s", p.name)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, eris.Wrap(err, "export: finalize archive")
	}

	return buf.Bytes(), nil
}
