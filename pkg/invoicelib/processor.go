package invoicelib

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rezonia/ubl-reader/internal/model"
	"github.com/rezonia/ubl-reader/internal/processor"
	"github.com/rezonia/ubl-reader/internal/validation"
)

// Options configures a Processor
type Options struct {
	// LenientNumbers reads unparseable line ids and counts as 0 instead of
	// failing the parse
	LenientNumbers bool

	// MaxMemberBytes bounds the decompressed XML member of a zip archive;
	// 0 keeps the default
	MaxMemberBytes int64

	// Concurrency caps parallel parses in ParseBatch; 0 means GOMAXPROCS
	Concurrency int
}

// Input is one named upload for ParseBatch
type Input struct {
	Name string
	Data []byte
}

// BatchResult is the outcome for the Input at the same index
type BatchResult struct {
	Name     string
	Document *Document
	Err      error
}

// Processor parses documents. It is safe for concurrent use.
type Processor struct {
	pipeline *processor.Pipeline
	options  Options
}

// NewProcessor creates a new processor with the given options
func NewProcessor(opts Options) *Processor {
	var pipelineOpts []processor.Option
	if opts.LenientNumbers {
		pipelineOpts = append(pipelineOpts, processor.WithLenientNumbers())
	}
	if opts.MaxMemberBytes > 0 {
		pipelineOpts = append(pipelineOpts, processor.WithMaxMemberSize(opts.MaxMemberBytes))
	}

	return &Processor{
		pipeline: processor.NewPipeline(pipelineOpts...),
		options:  opts,
	}
}

// NewDefaultProcessor creates a processor with default options
func NewDefaultProcessor() *Processor {
	return NewProcessor(Options{})
}

// Parse parses data, selecting the container from filename
func (p *Processor) Parse(data []byte, filename string) (*Document, error) {
	return p.pipeline.Parse(data, filename)
}

// ParseReader reads r fully and parses it
func (p *Processor) ParseReader(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return p.Parse(data, filename)
}

// Validate checks a parsed document without failing it
func (p *Processor) Validate(doc *Document) *ValidationReport {
	return validation.Validate(doc)
}

// ParseBatch parses inputs concurrently. Per-input failures are reported in
// the matching BatchResult; the returned error is non-nil only when ctx is
// cancelled before every input was started, and the inputs that never
// started carry that error.
func (p *Processor) ParseBatch(ctx context.Context, inputs []Input) ([]BatchResult, error) {
	results := make([]BatchResult, len(inputs))

	limit := p.options.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(inputs); j++ {
				results[j] = BatchResult{Name: inputs[j].Name, Err: err}
			}
			_ = g.Wait()
			return results, err
		}
		g.Go(func() error {
			doc, err := p.pipeline.Parse(in.Data, in.Name)
			results[i] = BatchResult{Name: in.Name, Document: doc, Err: err}
			return nil
		})
	}

	return results, g.Wait()
}

// Parse is a convenience for NewDefaultProcessor().Parse
func Parse(data []byte, filename string) (*model.Document, error) {
	return NewDefaultProcessor().Parse(data, filename)
}

// ParseReader is a convenience for NewDefaultProcessor().ParseReader
func ParseReader(r io.Reader, filename string) (*model.Document, error) {
	return NewDefaultProcessor().ParseReader(r, filename)
}
