package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

// fakeContainer builds a minimal DOCX-shaped zip for stamping tests.
func fakeContainer(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`,
		"_rels/.rels":         `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml":   `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body/></w:document>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func readEntry(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reopen zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(content)
	}
	t.Fatalf("entry %s not found", name)
	return ""
}

func TestStampTitle(t *testing.T) {
	out, err := stampTitle(fakeContainer(t), "Quarterly Report")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	core := readEntry(t, out, "docProps/core.xml")
	if !strings.Contains(core, "<dc:title>Quarterly Report</dc:title>") {
		t.Errorf("core.xml missing title, got: %s", core)
	}

	types := readEntry(t, out, "[Content_Types].xml")
	if !strings.Contains(types, "/docProps/core.xml") {
		t.Errorf("content types missing core override, got: %s", types)
	}

	rels := readEntry(t, out, "_rels/.rels")
	if !strings.Contains(rels, "docProps/core.xml") {
		t.Errorf("package rels missing core relationship, got: %s", rels)
	}

	// Existing entries survive.
	if doc := readEntry(t, out, "word/document.xml"); !strings.Contains(doc, "w:body") {
		t.Errorf("document.xml was corrupted: %s", doc)
	}
}

func TestStampTitleEscapes(t *testing.T) {
	out, err := stampTitle(fakeContainer(t), `Q&A <draft>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	core := readEntry(t, out, "docProps/core.xml")
	if !strings.Contains(core, "Q&amp;A &lt;draft&gt;") {
		t.Errorf("title not escaped, got: %s", core)
	}
}

func TestStampTitleRejectsGarbage(t *testing.T) {
	if _, err := stampTitle([]byte("not a zip"), "t"); err == nil {
		t.Error("expected error for non-zip input")
	}
}
