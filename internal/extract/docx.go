package extract

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// extractDocx pulls the raw text out of a Word document. OOXML is a zip
// archive; the document body lives in word/document.xml as w:t text runs
// grouped into w:p paragraphs.
func extractDocx(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", eris.Wrap(err, "open archive")
	}
	defer zr.Close() //nolint:errcheck

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", eris.New("word/document.xml not found")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", eris.Wrap(err, "open document.xml")
	}
	defer rc.Close() //nolint:errcheck

	return docxText(rc)
}

// docxText walks document.xml collecting text runs. Paragraph and line-break
// elements become newlines, tabs become tab characters.
func docxText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var sb strings.Builder
	var inRun bool
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", eris.Wrap(err, "decode document.xml")
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inRun = true
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inRun = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inRun {
				sb.Write(el)
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}
