package server

import (
	"github.com/rezonia/ubl-reader/internal/container"
	"github.com/rezonia/ubl-reader/internal/model"
	"github.com/rezonia/ubl-reader/internal/processor"
)

// InvoiceResponse is the JSON response for the invoice endpoint
type InvoiceResponse struct {
	File      string          `json:"file"`
	Container string          `json:"container"`
	Member    string          `json:"member,omitempty"`
	Source    string          `json:"source"`
	Document  *model.Document `json:"document"`
}

func newInvoiceResponse(filename string, r *processor.Result) InvoiceResponse {
	return InvoiceResponse{
		File:      filename,
		Container: string(r.Container),
		Member:    r.Member,
		Source:    string(r.Source),
		Document:  r.Document,
	}
}

// ValidationResponse is the response for validate endpoint
type ValidationResponse struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// InfoResponse is the response for info endpoint
type InfoResponse struct {
	File      string             `json:"file"`
	Format    string             `json:"format"`
	MimeType  string             `json:"mime_type"`
	Size      int                `json:"size"`
	Container string             `json:"container"`
	Members   []container.Member `json:"members,omitempty"`
	Member    string             `json:"member,omitempty"`
	Source    string             `json:"source,omitempty"`
	Root      string             `json:"root,omitempty"`
	Signed    bool               `json:"signed"`
	Error     string             `json:"error,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
