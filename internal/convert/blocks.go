package convert

// Block model accumulated during a conversion run. One builder owns one
// ordered block slice; blocks are appended in document order and never
// removed or reordered.

// Alignment is a paragraph justification value.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// ListKind selects at most one list decoration for a paragraph.
type ListKind int

const (
	ListNone ListKind = iota
	ListBullet
	ListNumber
	ListIndent
)

// NumberingRef is the numbering scheme list paragraphs reference.
const NumberingRef = "numberLi"

// StyleCode is the paragraph style id for code blocks.
const StyleCode = "code"

// ListDecoration carries a list kind with its nesting depth. Numbered lists
// also name the numbering scheme they reference.
type ListDecoration struct {
	Kind  ListKind
	Depth int
	Ref   string
}

// runFormat is the inline formatting accumulated along one ancestor path.
// It is threaded by value, so sibling subtrees never see each other's flags,
// and flags only accumulate on the way down.
type runFormat struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Color     string // hex, no leading #
	Size      int    // half-points, 0 = inherit
}

// Run is one formatted inline text fragment.
type Run struct {
	Text string
	runFormat
}

// ParaAttrs is the accumulated block-level formatting of one paragraph.
type ParaAttrs struct {
	Heading   int // 1..6, 0 = none
	Alignment Alignment
	Style     string // paragraph style id, e.g. StyleCode
	List      ListDecoration
	Runs      []Run
}

// Block is one output unit: a paragraph or an embedded image.
type Block struct {
	Para  *ParaAttrs
	Image string // materialized file path, set for image blocks
}
