package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/rezonia/ubl-reader/internal/container"
	"github.com/rezonia/ubl-reader/internal/model"
	"github.com/rezonia/ubl-reader/internal/processor"
	"github.com/rezonia/ubl-reader/internal/signature"
)

const errorCodeKey = "error_code"

// upload is a request body plus the filename used as container hint
type upload struct {
	data     []byte
	filename string
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleInvoice(c *gin.Context) {
	up, ok := s.readUpload(c)
	if !ok {
		return
	}

	result, err := s.pipeline.Process(up.data, up.filename)
	if err != nil {
		s.abortParse(c, err)
		return
	}

	switch c.NegotiateFormat(binding.MIMEJSON, binding.MIMEHTML) {
	case binding.MIMEHTML:
		c.HTML(http.StatusOK, summaryTemplateName, newSummary(result.Document))
	default:
		c.JSON(http.StatusOK, newInvoiceResponse(up.filename, result))
	}
}

func (s *Server) handleValidate(c *gin.Context) {
	up, ok := s.readUpload(c)
	if !ok {
		return
	}

	doc, err := s.pipeline.Parse(up.data, up.filename)
	if err != nil {
		s.abortParse(c, err)
		return
	}

	report := s.validator.Validate(doc)
	c.JSON(http.StatusOK, ValidationResponse{
		File:     up.filename,
		Valid:    report.Valid,
		Errors:   report.Errors,
		Warnings: report.Warnings,
	})
}

func (s *Server) handleInfo(c *gin.Context) {
	up, ok := s.readUpload(c)
	if !ok {
		return
	}

	resp := InfoResponse{
		File:      up.filename,
		Format:    processor.DetectFormat(up.data).String(),
		MimeType:  processor.DetectMIME(up.data),
		Size:      len(up.data),
		Container: string(container.Classify(up.filename)),
	}

	if members, err := container.Members(up.data); err == nil {
		resp.Members = members
	}

	if payload, err := s.pipeline.Resolve(up.data, up.filename); err != nil {
		resp.Error = err.Error()
	} else {
		resp.Member = payload.Member
		resp.Source = string(payload.Source)
		resp.Root = payload.Root.Tag
		resp.Signed = signature.Signed(payload.XML, payload.Root)
	}

	c.JSON(http.StatusOK, resp)
}

// readUpload takes the multipart "file" field when present, otherwise the
// raw body with the filename query parameter. A raw body without a filename
// is named after its sniffed format.
func (s *Server) readUpload(c *gin.Context) (upload, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxUploadBytes)

	var (
		up  upload
		err error
	)
	if strings.HasPrefix(c.ContentType(), binding.MIMEMultipartPOSTForm) {
		up, err = readMultipart(c)
	} else {
		up.filename = c.Query("filename")
		up.data, err = c.GetRawData()
	}

	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit),
			})
			return up, false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body", Details: err.Error()})
		return up, false
	}

	if len(up.data) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return up, false
	}

	if up.filename == "" {
		up.filename = sniffedName(up.data)
	}
	return up, true
}

func readMultipart(c *gin.Context) (upload, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return upload{}, err
	}

	f, err := fh.Open()
	if err != nil {
		return upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return upload{}, err
	}
	return upload{data: data, filename: fh.Filename}, nil
}

func sniffedName(data []byte) string {
	switch processor.DetectFormat(data) {
	case processor.FormatZip:
		return "upload.zip"
	case processor.FormatXML:
		return "upload.xml"
	default:
		return ""
	}
}

// abortParse maps a parse failure to its status code
func (s *Server) abortParse(c *gin.Context, err error) {
	status, code := statusFor(err)
	c.Set(errorCodeKey, code)
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func statusFor(err error) (int, string) {
	var (
		containerErr *model.ContainerError
		structureErr *model.StructureError
		fieldErr     *model.FieldError
	)

	switch {
	case errors.As(err, &containerErr):
		if containerErr.Code == model.CodeUnsupportedContainer {
			return http.StatusUnsupportedMediaType, containerErr.Code
		}
		return http.StatusBadRequest, containerErr.Code
	case errors.As(err, &structureErr):
		return http.StatusUnprocessableEntity, structureErr.Code
	case errors.As(err, &fieldErr):
		return http.StatusUnprocessableEntity, fieldErr.Code
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
