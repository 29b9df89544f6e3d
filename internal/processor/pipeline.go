// Package processor is the single entry point joining container resolution
// and document assembly.
package processor

import (
	"github.com/rezonia/ubl-reader/internal/container"
	"github.com/rezonia/ubl-reader/internal/model"
	"github.com/rezonia/ubl-reader/internal/parser/ubl"
)

// Result is a parsed document plus where it was found
type Result struct {
	Document  *model.Document
	Container container.Kind
	Member    string
	Source    container.Source
}

// Pipeline parses invoice uploads. It holds only configuration, so one
// Pipeline may serve concurrent calls.
type Pipeline struct {
	resolver  *container.Resolver
	assembler *ubl.Assembler
}

type pipelineConfig struct {
	lenient       bool
	maxMemberSize int64
}

// Option configures a Pipeline
type Option func(*pipelineConfig)

// WithLenientNumbers reads unparseable line ids and counts as 0 instead of
// failing the parse
func WithLenientNumbers() Option {
	return func(c *pipelineConfig) {
		c.lenient = true
	}
}

// WithMaxMemberSize bounds the decompressed size of an archive's XML member
func WithMaxMemberSize(n int64) Option {
	return func(c *pipelineConfig) {
		c.maxMemberSize = n
	}
}

// NewPipeline creates a new processing pipeline
func NewPipeline(opts ...Option) *Pipeline {
	cfg := pipelineConfig{maxMemberSize: container.DefaultMaxMemberSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	var assemblerOpts []ubl.Option
	if cfg.lenient {
		assemblerOpts = append(assemblerOpts, ubl.WithLenientNumbers())
	}

	return &Pipeline{
		resolver:  container.NewResolver(container.WithMaxMemberSize(cfg.maxMemberSize)),
		assembler: ubl.NewAssembler(assemblerOpts...),
	}
}

// Parse resolves data using filenameHint and assembles the document.
// Errors are *model.ContainerError, *model.StructureError or
// *model.FieldError.
func (p *Pipeline) Parse(data []byte, filenameHint string) (*model.Document, error) {
	result, err := p.Process(data, filenameHint)
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// Process is Parse that also reports the container and locator used
func (p *Pipeline) Process(data []byte, filenameHint string) (*Result, error) {
	payload, err := p.resolver.Resolve(data, filenameHint)
	if err != nil {
		return nil, err
	}

	doc, err := p.assembler.Assemble(payload.Root)
	if err != nil {
		return nil, err
	}

	return &Result{
		Document:  doc,
		Container: payload.Container,
		Member:    payload.Member,
		Source:    payload.Source,
	}, nil
}

// Resolve runs only the container step
func (p *Pipeline) Resolve(data []byte, filenameHint string) (*container.Payload, error) {
	return p.resolver.Resolve(data, filenameHint)
}

// Parse is a convenience for NewPipeline(opts...).Parse(data, filenameHint)
func Parse(data []byte, filenameHint string, opts ...Option) (*model.Document, error) {
	return NewPipeline(opts...).Parse(data, filenameHint)
}
