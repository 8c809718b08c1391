// Package rom loads program images into the 8080 address space.
package rom

import (
	"compress/gzip"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DiagOrigin is the load address and entry point of CP/M programs,
// such as the 8080 diagnostic images.
const DiagOrigin = 0x0100

// Part describes a single chip of a ROM set.
type Part struct {
	Name string // File name.
	Addr uint16 // Load address.
}

// InvadersSet lists the Space Invaders ROM chips.
var InvadersSet = []Part{
	{"invaders.h", 0x0000},
	{"invaders.g", 0x0800},
	{"invaders.f", 0x1000},
	{"invaders.e", 0x1800},
}

// Segment is a block of data loaded at a fixed address.
type Segment struct {
	Name string
	Addr uint16
	Data []byte
}

// Image defines a loadable program.
type Image struct {
	Segments []Segment
	Entry    uint16 // Initial program counter.
}

// Add appends a segment to the image.
func (img *Image) Add(name string, addr uint16, data []byte) {
	img.Segments = append(img.Segments, Segment{Name: name, Addr: addr, Data: data})
}

// Size returns the total number of bytes in the image.
func (img *Image) Size() int {
	var n int
	for _, s := range img.Segments {
		n += len(s.Data)
	}
	return n
}

// CopyTo writes all segments into mem. Data running past the end of
// mem is dropped. Returns the number of bytes written.
func (img *Image) CopyTo(mem []byte) int {
	var n int
	for _, s := range img.Segments {
		if int(s.Addr) < len(mem) {
			n += copy(mem[s.Addr:], s.Data)
		}
	}
	return n
}

// LoadFile loads a single file at the given address. The image entry point
// is set to the same address.
func LoadFile(path string, addr uint16) (*Image, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	var img Image
	img.Add(filepath.Base(path), addr, data)
	img.Entry = addr
	return &img, nil
}

// LoadSet loads the given chips from dir. Each chip may be stored
// gzip compressed, with a .gz extension appended to its name.
func LoadSet(dir string, parts []Part) (*Image, error) {
	var img Image

	for _, p := range parts {
		path := filepath.Join(dir, p.Name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if _, err := os.Stat(path + ".gz"); err == nil {
				path += ".gz"
			}
		}

		data, err := ReadFile(path)
		if err != nil {
			return nil, err
		}

		img.Add(p.Name, p.Addr, data)
	}

	return &img, nil
}

// ReadFile reads the given file, decompressing it if the name ends in .gz.
func ReadFile(path string) ([]byte, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %q", path)
	}

	defer fd.Close()

	var r io.Reader = fd
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(fd)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decompress %q", path)
		}

		defer zr.Close()
		r = zr
	}

	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", path)
	}

	return data, nil
}
