package container

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rezonia/ubl-reader/internal/model"
)

// Member describes one entry of a zip archive
type Member struct {
	Name string `json:"name"`
	Size uint64 `json:"size"`
	XML  bool   `json:"xml"`
}

// Members lists the non-directory entries of a zip archive in listing order
func Members(data []byte) ([]Member, error) {
	zr, err := openArchive(data)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		members = append(members, Member{
			Name: f.Name,
			Size: f.UncompressedSize64,
			XML:  isXMLMember(f.Name),
		})
	}
	return members, nil
}

func openArchive(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, model.NewContainerError(model.CodeUnreadableArchive, "", "cannot open zip archive", err)
	}
	return zr, nil
}

func isXMLMember(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".xml")
}

// firstXMLMember reads the first member whose name ends in .xml, by archive
// listing order. Members larger than limit are rejected before and during
// decompression; limit <= 0 disables the check.
func firstXMLMember(data []byte, limit int64) (string, []byte, error) {
	zr, err := openArchive(data)
	if err != nil {
		return "", nil, err
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !isXMLMember(f.Name) {
			continue
		}
		content, err := readMember(f, limit)
		if err != nil {
			return f.Name, nil, err
		}
		return f.Name, content, nil
	}

	return "", nil, model.NewContainerError(model.CodeNoXMLInArchive, "", "no XML file found in archive", nil)
}

var errLimitExceeded = errors.New("size limit exceeded")

func readMember(f *zip.File, limit int64) ([]byte, error) {
	if limit > 0 && f.UncompressedSize64 > uint64(limit) {
		return nil, model.NewContainerError(model.CodeMemberTooLarge, f.Name,
			fmt.Sprintf("member declares %d bytes, limit is %d", f.UncompressedSize64, limit), errLimitExceeded)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, model.NewContainerError(model.CodeUnreadableArchive, f.Name, "cannot open archive member", err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		// the declared size can lie
		r = io.LimitReader(rc, limit+1)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewContainerError(model.CodeUnreadableArchive, f.Name, "cannot read archive member", err)
	}
	if limit > 0 && int64(len(content)) > limit {
		return nil, model.NewContainerError(model.CodeMemberTooLarge, f.Name,
			fmt.Sprintf("member exceeds %d bytes", limit), errLimitExceeded)
	}
	return content, nil
}
