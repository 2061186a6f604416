// Package convert turns rich-text-editor HTML into a Word document. It walks
// the parsed tree, accumulates paragraph- and run-level formatting, flattens
// nested lists, materializes images, and serializes the result through
// go-docx.
package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/editorconv/htmldocx/internal/htmltree"
	"github.com/editorconv/htmldocx/internal/imagestore"
)

// Sentinel errors surfaced by Convert. Each aborts the whole conversion;
// there is no partial document output.
var (
	ErrParse        = errors.New("html parse failed")
	ErrImageResolve = errors.New("image resolution failed")
	ErrSerialize    = errors.New("document serialization failed")
)

// Options configures one conversion run.
type Options struct {
	// Title is stamped into the document's core properties.
	Title string

	// OutputDir is where materialized images are written. Empty means
	// "files". Ignored when Images is set.
	OutputDir string

	// Styles overrides the default color palette and code style.
	Styles *StyleConfig

	// Images overrides the default image materializer.
	Images ImageResolver
}

// ImageResolver materializes an image reference to a file on disk.
type ImageResolver interface {
	Resolve(ctx context.Context, src string) (string, error)
}

// builder is the document build context for a single conversion run. It owns
// the ordered block slice; the walker and flattener only ever append.
type builder struct {
	ctx    context.Context
	styles *StyleConfig
	images ImageResolver
	blocks []Block
}

func newBuilder(ctx context.Context, opts Options) *builder {
	styles := opts.Styles
	if styles == nil {
		styles = DefaultStyles()
	}
	images := opts.Images
	if images == nil {
		images = imagestore.New(opts.OutputDir)
	}
	return &builder{ctx: ctx, styles: styles, images: images}
}

func (b *builder) appendParagraph(attrs ParaAttrs) {
	b.blocks = append(b.blocks, Block{Para: &attrs})
}

func (b *builder) appendImage(path string) {
	b.blocks = append(b.blocks, Block{Image: path})
}

// Convert parses src and produces a .docx container. A parse error, image
// resolution error, or serialization error fails the whole conversion.
func Convert(ctx context.Context, src string, opts Options) ([]byte, error) {
	// Resolve the style config once so the walker and the renderer share it.
	if opts.Styles == nil {
		opts.Styles = DefaultStyles()
	}

	blocks, err := buildBlocks(ctx, src, opts)
	if err != nil {
		return nil, err
	}

	buf, err := render(blocks, opts.Styles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	buf, err = finalizeParts(buf, opts.Styles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	if opts.Title != "" {
		buf, err = stampTitle(buf, opts.Title)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
		}
	}
	return buf, nil
}

// buildBlocks runs the tree walk and returns the ordered block sequence.
func buildBlocks(ctx context.Context, src string, opts Options) ([]Block, error) {
	body, err := htmltree.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	b := newBuilder(ctx, opts)
	if err := b.walkBody(body); err != nil {
		return nil, err
	}
	return b.blocks, nil
}
