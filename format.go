package rpcad

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format is a CAD file format the host can import or export, detected from
// the file extension the same way the host's import/export managers pick
// their options objects.
type Format string

const (
	STEP    Format = "step"
	SMT     Format = "smt"
	SAT     Format = "sat"
	IGES    Format = "iges"
	Archive Format = "f3d"
	STL     Format = "stl"
)

func formatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch Format(ext) {
	case STEP, SMT, SAT, IGES, Archive, STL:
		return Format(ext), true
	}
	return "", false
}

// ImportFormatFromPath resolves the import format for path. STL is export
// only: the host cannot open meshes as parametric documents.
func ImportFormatFromPath(path string) (Format, error) {
	format, ok := formatFromPath(path)
	if !ok || format == STL {
		return "", errors.WithMessagef(ErrUnsupportedFormat, "import %q", filepath.Ext(path))
	}
	return format, nil
}

func ExportFormatFromPath(path string) (Format, error) {
	format, ok := formatFromPath(path)
	if !ok {
		return "", errors.WithMessagef(ErrUnsupportedFormat, "export %q", filepath.Ext(path))
	}
	return format, nil
}
