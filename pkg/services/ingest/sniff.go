package ingest

import (
	"bytes"
	"path/filepath"
	"strings"
)

type fileKind int

const (
	kindUnknown fileKind = iota
	kindXLSX
	kindXLS
)

var (
	zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}
	cfbMagic = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
)

// sniff accepts a file only when the extension and the leading bytes
// agree on a supported spreadsheet container: .xlsx must be a zip
// archive, .xls a compound file.
func sniff(filename string, content []byte) fileKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		if bytes.HasPrefix(content, zipMagic) {
			return kindXLSX
		}
	case ".xls":
		if bytes.HasPrefix(content, cfbMagic) {
			return kindXLS
		}
	}
	return kindUnknown
}
