package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"

	"github.com/ludo-technologies/cobscan/domain"
)

// TextExtractorImpl implements the TextExtractor interface. It turns
// uploaded file bytes into plain source text based on the file extension.
type TextExtractorImpl struct{}

// NewTextExtractor creates a new text extractor service
func NewTextExtractor() *TextExtractorImpl {
	return &TextExtractorImpl{}
}

// Extract dispatches on the file extension: PDF and Word documents get
// format-specific extraction, everything else is treated as encoded text.
func (e *TextExtractorImpl) Extract(content []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return e.extractPDF(content, filename)
	case ".doc", ".docx":
		return e.extractWordDocument(content, filename)
	default:
		return e.decodeText(content), nil
	}
}

func (e *TextExtractorImpl) extractPDF(content []byte, filename string) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", domain.NewExtractionError(filename, err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", domain.NewExtractionError(filename, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plainText); err != nil {
		return "", domain.NewExtractionError(filename, err)
	}

	return buf.String(), nil
}

// extractWordDocument pulls paragraph text out of the WordprocessingML
// main document part (word/document.xml inside the zip container).
func (e *TextExtractorImpl) extractWordDocument(content []byte, filename string) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", domain.NewExtractionError(filename, err)
	}

	document, err := archive.Open("word/document.xml")
	if err != nil {
		return "", domain.NewExtractionError(filename, errors.New("missing word/document.xml"))
	}
	defer document.Close()

	text, err := wordprocessingText(document)
	if err != nil {
		return "", domain.NewExtractionError(filename, err)
	}
	return text, nil
}

// wordprocessingText collects the character data of every <w:t> run,
// separating paragraphs with newlines.
func wordprocessingText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var builder strings.Builder
	inRun := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inRun {
				builder.Write(t)
			}
		}
	}

	return strings.TrimRight(builder.String(), "\n"), nil
}

// decodeText decodes raw bytes as text. Valid UTF-8 passes through;
// otherwise the encoding is detected and, when decoding still fails,
// Latin-1 applies as the single-byte-per-character last resort.
func (e *TextExtractorImpl) decodeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}

	detected, _, _ := charset.DetermineEncoding(content, "")
	if decoded, err := detected.NewDecoder().Bytes(content); err == nil {
		return string(decoded)
	}

	// Latin-1 maps every byte, so this cannot fail.
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(content)
	return string(decoded)
}
