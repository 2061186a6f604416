package convert

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fumiama/go-docx"
)

// Numbering instances referenced by list paragraphs. Instance 1 is the
// bullet scheme, instance 2 the "numberLi" decimal scheme (three levels,
// each rendered "%1." and left-aligned), instance 3 renders no marker and
// carries indent-only paragraphs. The definitions are injected into
// word/numbering.xml by finalizeParts.
const (
	numBullet  = "1"
	numDecimal = "2"
	numPlain   = "3"
)

// render maps the ordered block sequence onto a go-docx document and
// serializes it.
func render(blocks []Block, styles *StyleConfig) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	for _, block := range blocks {
		if block.Image != "" {
			para := doc.AddParagraph()
			if _, err := para.AddInlineDrawingFrom(block.Image); err != nil {
				return nil, fmt.Errorf("embed image %s: %w", block.Image, err)
			}
			continue
		}
		renderParagraph(doc, block.Para, styles)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write container: %w", err)
	}
	return buf.Bytes(), nil
}

func renderParagraph(doc *docx.Docx, attrs *ParaAttrs, styles *StyleConfig) {
	para := doc.AddParagraph()

	if attrs.Heading >= 1 && attrs.Heading <= 6 {
		para.Style("Heading" + strconv.Itoa(attrs.Heading))
	}
	if attrs.Alignment != "" {
		para.Justification(justification(attrs.Alignment))
	}

	switch attrs.List.Kind {
	case ListBullet:
		para.NumPr(numBullet, strconv.Itoa(attrs.List.Depth))
	case ListNumber:
		para.NumPr(numDecimal, strconv.Itoa(attrs.List.Depth))
	case ListIndent:
		para.NumPr(numPlain, strconv.Itoa(attrs.List.Depth))
	}

	code := attrs.Style == StyleCode
	if code {
		para.Style(StyleCode)
	}

	for _, r := range attrs.Runs {
		run := para.AddText(r.Text)
		if r.Bold {
			run.Bold()
		}
		if r.Italic {
			run.Italic()
		}
		if r.Underline {
			run.Underline("single")
		}
		if r.Strike {
			run.Strike(true)
		}
		if r.Color != "" {
			run.Color(r.Color)
		}
		switch {
		case r.Size > 0:
			run.Size(strconv.Itoa(r.Size))
		case code:
			run.Size(strconv.Itoa(styles.Code.Size * 2))
		}
		if code {
			run.Font(styles.Code.Font, styles.Code.Font, styles.Code.Font, "default")
		}
	}
}

// justification maps an HTML alignment to its OOXML w:jc value.
func justification(a Alignment) string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "both"
	default:
		return "left"
	}
}
