// Package extract pulls plain text out of uploaded files.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	app_errors "docuchat/backend/internal/errors"
)

var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".markdown": true, ".csv": true, ".json": true, ".log": true,
}

// SupportedExtension reports whether Extract can handle files with this name.
func SupportedExtension(fileName string) bool {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".docx", ".xlsx", ".pdf", ".doc":
		return true
	default:
		return textExtensions[ext]
	}
}

// DetectType returns the MIME type of a file's content.
func DetectType(data []byte) string {
	return mimetype.Detect(data).String()
}

// Extract returns the text of a file, choosing the parser by extension. All
// failures wrap app_errors.ErrExtraction.
func Extract(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))

	var text string
	var err error
	switch {
	case textExtensions[ext]:
		text = plainText(data)
	case ext == ".docx":
		text, err = docxText(data)
	case ext == ".xlsx":
		text, err = xlsxText(data)
	case ext == ".pdf":
		text, err = runTool(ctx, data, "pdftotext", "-layout", "-enc", "UTF-8", "-", "-")
	case ext == ".doc":
		text, err = runTool(ctx, data, "antiword", "-")
	default:
		return "", fmt.Errorf("%w: unsupported file type %q", app_errors.ErrExtraction, ext)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %s", app_errors.ErrExtraction, fileName, err.Error())
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s contains no extractable text", app_errors.ErrExtraction, fileName)
	}
	return text, nil
}

func plainText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}

// runTool pipes data through an external converter and returns its stdout.
func runTool(ctx context.Context, data []byte, name string, args ...string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s is not installed", name)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s failed: %s", name, msg)
	}
	return plainText(stdout.Bytes()), nil
}
