// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iofile

import "os"

// Mode selects the access pattern a File is opened with.
type Mode int

const (
	Read Mode = iota
	Write
	ReadAndWrite
	ReadBinary
	WriteBinary
	ReadAndWriteBinary
)

func (m Mode) String() string {
	switch m {
	case Read:
		return "Read"
	case Write:
		return "Write"
	case ReadAndWrite:
		return "ReadAndWrite"
	case ReadBinary:
		return "ReadBinary"
	case WriteBinary:
		return "WriteBinary"
	case ReadAndWriteBinary:
		return "ReadAndWriteBinary"
	default:
		return "Mode(unknown)"
	}
}

func (m Mode) readable() bool {
	switch m {
	case Read, ReadAndWrite, ReadBinary, ReadAndWriteBinary:
		return true
	default:
		return false
	}
}

func (m Mode) writable() bool {
	switch m {
	case Write, ReadAndWrite, WriteBinary, ReadAndWriteBinary:
		return true
	default:
		return false
	}
}

func (m Mode) binary() bool {
	switch m {
	case ReadBinary, WriteBinary, ReadAndWriteBinary:
		return true
	default:
		return false
	}
}

func (m Mode) osFlag() int {
	switch m {
	case Read, ReadBinary:
		return os.O_RDONLY
	case Write, WriteBinary:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	default:
		return os.O_RDWR | os.O_CREATE
	}
}
