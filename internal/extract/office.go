package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

func openZip(data []byte) (*zip.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a valid office document: %w", err)
	}
	return r, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// docxText walks word/document.xml, emitting run text and a newline per paragraph.
func docxText(data []byte) (string, error) {
	r, err := openZip(data)
	if err != nil {
		return "", err
	}

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		content, err := readZipFile(f)
		if err != nil {
			return "", fmt.Errorf("failed to read document body: %w", err)
		}
		return parseDocumentXML(content)
	}
	return "", errors.New("document body word/document.xml is missing")
}

func parseDocumentXML(content []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document body: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

// xlsxText renders every worksheet as tab separated rows, sheets in name order.
func xlsxText(data []byte) (string, error) {
	r, err := openZip(data)
	if err != nil {
		return "", err
	}

	var shared []string
	var sheets []*zip.File
	for _, f := range r.File {
		switch {
		case f.Name == "xl/sharedStrings.xml":
			content, err := readZipFile(f)
			if err != nil {
				return "", fmt.Errorf("failed to read shared strings: %w", err)
			}
			if shared, err = parseSharedStrings(content); err != nil {
				return "", err
			}
		case strings.HasPrefix(f.Name, "xl/worksheets/") && strings.HasSuffix(f.Name, ".xml"):
			sheets = append(sheets, f)
		}
	}
	if len(sheets) == 0 {
		return "", errors.New("workbook has no worksheets")
	}
	sort.Slice(sheets, func(i, j int) bool { return sheets[i].Name < sheets[j].Name })

	parts := make([]string, 0, len(sheets))
	for _, f := range sheets {
		content, err := readZipFile(f)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		text, err := parseSheet(content, shared)
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", f.Name, err)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

type richText struct {
	Text string     `xml:"t"`
	Runs []richText `xml:"r"`
}

func (r richText) String() string {
	if len(r.Runs) == 0 {
		return r.Text
	}
	var sb strings.Builder
	sb.WriteString(r.Text)
	for _, run := range r.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

type sharedStringsXML struct {
	Items []richText `xml:"si"`
}

func parseSharedStrings(content []byte) ([]string, error) {
	var sst sharedStringsXML
	if err := xml.Unmarshal(content, &sst); err != nil {
		return nil, fmt.Errorf("malformed shared strings: %w", err)
	}
	out := make([]string, len(sst.Items))
	for i, item := range sst.Items {
		out[i] = item.String()
	}
	return out, nil
}

type worksheetXML struct {
	Rows []struct {
		Cells []struct {
			Type   string   `xml:"t,attr"`
			Value  string   `xml:"v"`
			Inline richText `xml:"is"`
		} `xml:"c"`
	} `xml:"sheetData>row"`
}

func parseSheet(content []byte, shared []string) (string, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(content, &ws); err != nil {
		return "", err
	}

	var lines []string
	for _, row := range ws.Rows {
		var cells []string
		for _, c := range row.Cells {
			var v string
			switch c.Type {
			case "s":
				i, err := strconv.Atoi(strings.TrimSpace(c.Value))
				if err == nil && i >= 0 && i < len(shared) {
					v = shared[i]
				}
			case "inlineStr":
				v = c.Inline.String()
			default:
				v = c.Value
			}
			if v = strings.TrimSpace(v); v != "" {
				cells = append(cells, v)
			}
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, "\t"))
		}
	}
	return strings.Join(lines, "\n"), nil
}
