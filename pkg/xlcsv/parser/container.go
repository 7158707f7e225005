package parser

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/richardlehane/mscfb"
)

// Container identifies the physical format of a workbook file.
type Container int

const (
	// ContainerUnknown is anything that is neither ZIP nor OLE.
	ContainerUnknown Container = iota
	// ContainerOOXML is a ZIP package with an XML workbook part (xlsx, xlsm).
	ContainerOOXML
	// ContainerXLSB is a ZIP package with a binary workbook part.
	ContainerXLSB
	// ContainerBIFF is an OLE compound file holding a legacy workbook stream (xls).
	ContainerBIFF
	// ContainerEncrypted is an OLE compound file wrapping an encrypted package.
	ContainerEncrypted
)

func (c Container) String() string {
	switch c {
	case ContainerOOXML:
		return "ooxml"
	case ContainerXLSB:
		return "xlsb"
	case ContainerBIFF:
		return "biff"
	case ContainerEncrypted:
		return "encrypted"
	}
	return "unknown"
}

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Sniff inspects the file at path and reports its container. Errors
// opening or reading the file are returned as-is; a file that opens but
// cannot be inspected is reported as ContainerUnknown.
func Sniff(path string) (Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return ContainerUnknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ContainerUnknown, err
	}

	head := make([]byte, len(oleMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ContainerUnknown, err
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, zipMagic):
		return sniffZip(f, info.Size()), nil
	case bytes.Equal(head, oleMagic):
		return sniffOLE(f), nil
	}
	return ContainerUnknown, nil
}

func sniffZip(r io.ReaderAt, size int64) Container {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return ContainerUnknown
	}
	for _, zf := range zr.File {
		switch strings.ToLower(zf.Name) {
		case "xl/workbook.xml":
			return ContainerOOXML
		case "xl/workbook.bin":
			return ContainerXLSB
		}
	}
	return ContainerUnknown
}

func sniffOLE(r io.ReaderAt) Container {
	doc, err := mscfb.New(r)
	if err != nil {
		return ContainerUnknown
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "Workbook", "Book":
			return ContainerBIFF
		case "EncryptedPackage":
			return ContainerEncrypted
		}
	}
	return ContainerUnknown
}

// unsupportedContainer explains why a container has no reader.
func unsupportedContainer(c Container) error {
	switch c {
	case ContainerXLSB:
		return decodeError("binary workbooks (xlsb) are not supported by the reader")
	case ContainerEncrypted:
		return decodeError("workbook is encrypted")
	}
	return fmt.Errorf("%w: not a spreadsheet container", ErrDecode)
}
