package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// stampTitle rewrites the serialized container to carry the document title in
// its core properties. DOCX files are ZIP archives; the title lives in
// docProps/core.xml, which needs a content-type override and a package
// relationship to be picked up by readers.
func stampTitle(data []byte, title string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reopen container: %w", err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	seenCore := false
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}

		switch f.Name {
		case "docProps/core.xml":
			seenCore = true
			content = coreXML(title)
		case "[Content_Types].xml":
			content = ensureCoreContentType(content)
		case "_rels/.rels":
			content = ensureCoreRelationship(content)
		}

		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.Name, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}

	if !seenCore {
		w, err := zw.Create("docProps/core.xml")
		if err != nil {
			return nil, fmt.Errorf("create core properties: %w", err)
		}
		if _, err := w.Write(coreXML(title)); err != nil {
			return nil, fmt.Errorf("write core properties: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize container: %w", err)
	}
	return out.Bytes(), nil
}

const coreTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>%s</dc:title></cp:coreProperties>`

func coreXML(title string) []byte {
	var esc bytes.Buffer
	xml.EscapeText(&esc, []byte(title)) // only fails on a failing writer
	return []byte(fmt.Sprintf(coreTemplate, esc.String()))
}

const (
	coreOverride = `<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`
	coreRel      = `<Relationship Id="rIdCore" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>`
)

func ensureCoreContentType(content []byte) []byte {
	s := string(content)
	if strings.Contains(s, "/docProps/core.xml") {
		return content
	}
	return []byte(strings.Replace(s, "</Types>", coreOverride+"</Types>", 1))
}

func ensureCoreRelationship(content []byte) []byte {
	s := string(content)
	if strings.Contains(s, "docProps/core.xml") {
		return content
	}
	return []byte(strings.Replace(s, "</Relationships>", coreRel+"</Relationships>", 1))
}
