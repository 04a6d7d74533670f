// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iofile

import (
	"errors"
	"io"
	"os"

	"code.hybscloud.com/forge/resource"
)

// ErrReadOnly is returned when a write operation targets a resource
// path; every resource.Manager-backed path is read-only.
var ErrReadOnly = errors.New("iofile: resource paths are read-only")

// File is an open handle to either a host filesystem file or an
// in-memory view of an embedded resource. Resource-backed Files never
// hold an *os.File and serve Read from a byte slice captured at Open
// time.
type File struct {
	path string
	mode Mode

	osFile *os.File // nil for a resource-backed File

	resData []byte // snapshot of resource contents, nil for host files
	resOff  int64
}

// Open opens path under mode. Paths addressing a resource.Manager
// environment (resource.IsResourcePath) are read-only: Open returns
// ErrReadOnly for them if mode includes Write.
func Open(path string, mode Mode) (*File, error) {
	if resource.IsResourcePath(path) {
		if mode.writable() {
			return nil, ErrReadOnly
		}
		data, err := resource.Default().Read(path)
		if err != nil {
			return nil, err
		}
		return &File{path: path, mode: mode, resData: data}, nil
	}

	f, err := os.OpenFile(path, mode.osFlag(), 0o644)
	if err != nil {
		return nil, err
	}
	return &File{path: path, mode: mode, osFile: f}, nil
}

// Close releases the File's underlying host handle, if any.
func (f *File) Close() error {
	if f.osFile == nil {
		return nil
	}
	return f.osFile.Close()
}

// Read copies into buf starting at offset, returning the number of
// bytes copied. It never grows buf. A host file follows os.File.ReadAt
// (io.EOF whenever fewer than len(buf) bytes were read); a
// resource-backed File returns io.EOF only once offset has reached the
// end of the data, and a short read there returns a nil error.
func (f *File) Read(buf []byte, offset int64) (int, error) {
	if !f.mode.readable() {
		return 0, errors.New("iofile: file not opened for reading")
	}
	if f.resData != nil {
		if offset >= int64(len(f.resData)) {
			return 0, io.EOF
		}
		n := copy(buf, f.resData[offset:])
		return n, nil
	}
	n, err := f.osFile.ReadAt(buf, offset)
	return n, err
}

// Write writes buf at offset into the host file. It always returns
// ErrReadOnly for a resource-backed File.
func (f *File) Write(buf []byte, offset int64) (int, error) {
	if f.resData != nil {
		return 0, ErrReadOnly
	}
	if !f.mode.writable() {
		return 0, errors.New("iofile: file not opened for writing")
	}
	return f.osFile.WriteAt(buf, offset)
}

// FileSize returns the file's current size in bytes.
func (f *File) FileSize() (int64, error) {
	if f.resData != nil {
		return int64(len(f.resData)), nil
	}
	info, err := f.osFile.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Exists reports whether path names a file or resource that can be
// opened for reading.
func Exists(path string) bool {
	if resource.IsResourcePath(path) {
		return resource.Default().Exists(path)
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FileSize returns the byte size of the file or resource at path
// without requiring the caller to Open it first.
func FileSize(path string) (int64, error) {
	if resource.IsResourcePath(path) {
		return resource.Default().FileSize(path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// byteString is the constraint ReadAll/WriteAll use to hand callers
// back either a []byte or a string view without an extra conversion
// at every call site.
type byteString interface {
	~[]byte | ~string
}

// ReadAll reads the entirety of path into C, dispatching to
// resource.Manager or the host filesystem as path dictates.
func ReadAll[C byteString](path string) (C, error) {
	var zero C
	if resource.IsResourcePath(path) {
		data, err := resource.Default().Read(path)
		if err != nil {
			return zero, err
		}
		return C(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, err
	}
	return C(data), nil
}

// WriteAll writes all of data to path, creating or truncating the
// host file as needed. It returns ErrReadOnly for a resource path.
func WriteAll[C byteString](path string, data C) error {
	if resource.IsResourcePath(path) {
		return ErrReadOnly
	}
	return os.WriteFile(path, []byte(data), 0o644)
}

// Copy copies src to dst. A resource.Manager src may be copied to a
// host-filesystem dst; dst may never be a resource path.
func Copy(dst, src string) error {
	if resource.IsResourcePath(dst) {
		return ErrReadOnly
	}
	data, err := ReadAll[[]byte](src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// Move copies src to dst and then removes src. src must be a host
// filesystem path; resource.Manager entries cannot be removed.
func Move(dst, src string) error {
	if resource.IsResourcePath(src) {
		return ErrReadOnly
	}
	if err := Copy(dst, src); err != nil {
		return err
	}
	return Remove(src)
}

// Remove deletes the host file at path. It returns ErrReadOnly for a
// resource path.
func Remove(path string) error {
	if resource.IsResourcePath(path) {
		return ErrReadOnly
	}
	return os.Remove(path)
}
