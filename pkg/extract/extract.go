// Package extract pulls plain text out of uploaded CV documents.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/artem13815/cvdesk/pkg/cv"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyText         = errors.New("no text found in document")
)

// Text extracts plain text by media type, falling back to the file extension.
func Text(contentType, fileName string, data []byte) (string, error) {
	kind := contentType
	if kind == "" {
		kind = cv.MediaTypeFromName(fileName)
	}
	var (
		text string
		err  error
	)
	switch kind {
	case cv.MediaTypePDF:
		text, err = fromPDF(data)
	case cv.MediaTypeDOCX:
		text, err = fromDOCX(data)
	case cv.MediaTypeDOC:
		text = fromDOC(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, strings.ToLower(filepath.Ext(fileName)))
	}
	if err != nil {
		return "", err
	}
	text = normalizeWhitespace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

func fromPDF(data []byte) (string, error) {
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("new pdf reader: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		p := doc.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

var (
	reTags = regexp.MustCompile(`<[^>]+>`)
	// Legacy .doc keeps its text as plain runs inside the OLE container.
	reDocRun = regexp.MustCompile(`[\p{L}\p{N}\p{P}\p{Zs}]{4,}`)
)

func fromDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()
	xml := doc.Editable().GetContent()
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return reTags.ReplaceAllString(xml, " "), nil
}

// fromDOC is best-effort: it keeps readable runs and drops binary noise.
func fromDOC(data []byte) string {
	runs := reDocRun.FindAllString(strings.ToValidUTF8(string(data), " "), -1)
	return strings.Join(runs, "\n")
}

var (
	reSpaces   = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlines = regexp.MustCompile(`\n\s*\n+`)
)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
