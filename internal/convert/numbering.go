package convert

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// finalizeParts completes the serialized container for list and styled
// output. go-docx's default template ships neither a word/numbering.xml part
// nor heading or code style definitions, so the w:numId and w:pStyle
// references the renderer emits would dangle and readers would degrade the
// paragraphs to Normal. This pass injects the numbering part with its
// content-type override and document relationship, and appends the missing
// style definitions to word/styles.xml.
func finalizeParts(data []byte, styles *StyleConfig) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reopen container: %w", err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	seenNumbering := false
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
		case "word/numbering.xml":
			seenNumbering = true
		case "word/styles.xml":
			content = ensureParagraphStyles(content, styles)
		case "[Content_Types].xml":
			content = ensureNumberingContentType(content)
		case "word/_rels/document.xml.rels":
			content = ensureNumberingRelationship(content)
		}

		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.Name, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}

	if !seenNumbering {
		w, err := zw.Create("word/numbering.xml")
		if err != nil {
			return nil, fmt.Errorf("create numbering part: %w", err)
		}
		if _, err := w.Write(numberingXML()); err != nil {
			return nil, fmt.Errorf("write numbering part: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize container: %w", err)
	}
	return out.Bytes(), nil
}

// numberingXML builds the numbering part backing the three instances the
// renderer references: the bullet scheme, the three-level decimal scheme
// with every level rendered "%1." and left-aligned, and a marker-less
// instance carrying indent-only paragraphs.
func numberingXML() []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)

	b.WriteString(`<w:abstractNum w:abstractNumId="0">`)
	for i := 0; i < 9; i++ {
		fmt.Fprintf(&b, `<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="`+""+`"/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr><w:rPr><w:rFonts w:ascii="Symbol" w:hAnsi="Symbol" w:hint="default"/></w:rPr></w:lvl>`, i, 720*(i+1))
	}
	b.WriteString(`</w:abstractNum>`)

	b.WriteString(`<w:abstractNum w:abstractNumId="1">`)
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, `<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%%1."/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr></w:lvl>`, i, 720*(i+1))
	}
	b.WriteString(`</w:abstractNum>`)

	b.WriteString(`<w:abstractNum w:abstractNumId="2">`)
	for i := 0; i < 9; i++ {
		fmt.Fprintf(&b, `<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="none"/><w:lvlText w:val=""/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="%d"/></w:pPr></w:lvl>`, i, 720*(i+1))
	}
	b.WriteString(`</w:abstractNum>`)

	fmt.Fprintf(&b, `<w:num w:numId="%s"><w:abstractNumId w:val="0"/></w:num>`, numBullet)
	fmt.Fprintf(&b, `<w:num w:numId="%s"><w:abstractNumId w:val="1"/></w:num>`, numDecimal)
	fmt.Fprintf(&b, `<w:num w:numId="%s"><w:abstractNumId w:val="2"/></w:num>`, numPlain)
	b.WriteString(`</w:numbering>`)
	return []byte(b.String())
}

const (
	numberingOverride = `<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>`
	numberingRel      = `<Relationship Id="rIdNumbering" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>`
)

func ensureNumberingContentType(content []byte) []byte {
	s := string(content)
	if strings.Contains(s, "/word/numbering.xml") {
		return content
	}
	return []byte(strings.Replace(s, "</Types>", numberingOverride+"</Types>", 1))
}

func ensureNumberingRelationship(content []byte) []byte {
	s := string(content)
	if strings.Contains(s, "numbering.xml") {
		return content
	}
	return []byte(strings.Replace(s, "</Relationships>", numberingRel+"</Relationships>", 1))
}

// ensureParagraphStyles appends the Heading1-6 and code style definitions the
// renderer references; the default styles part only defines Normal and table
// styles.
func ensureParagraphStyles(content []byte, styles *StyleConfig) []byte {
	s := string(content)
	if strings.Contains(s, `w:styleId="Heading1"`) {
		return content
	}
	return []byte(strings.Replace(s, "</w:styles>", paragraphStylesXML(styles)+"</w:styles>", 1))
}

func paragraphStylesXML(styles *StyleConfig) string {
	// heading run sizes in half-points, level 1 through 6
	sizes := [6]int{48, 36, 28, 26, 24, 22}

	var b strings.Builder
	for i, size := range sizes {
		level := i + 1
		fmt.Fprintf(&b, `<w:style w:type="paragraph" w:styleId="Heading%d"><w:name w:val="heading %d"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="%d"/></w:pPr><w:rPr><w:b/><w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr></w:style>`,
			level, level, i, size, size)
	}
	fmt.Fprintf(&b, `<w:style w:type="paragraph" w:styleId="%s"><w:name w:val="%s"/><w:basedOn w:val="Normal"/><w:qFormat/><w:rPr><w:rFonts w:ascii="%s" w:hAnsi="%s"/><w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr></w:style>`,
		StyleCode, StyleCode, styles.Code.Font, styles.Code.Font, styles.Code.Size*2, styles.Code.Size*2)
	return b.String()
}
