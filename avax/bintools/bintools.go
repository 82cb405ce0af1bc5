// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package bintools

import (
	"encoding/binary"

	"avalanche/internal/bytereader"
)

// AppendUint16 appends v to b as 2 big-endian bytes.
func AppendUint16(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

// AppendUint32 appends v to b as 4 big-endian bytes.
func AppendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// AppendUint64 appends v to b as 8 big-endian bytes.
func AppendUint64(b []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(b, v)
}

// AppendBytes appends raw bytes prefixed with 4-byte big-endian length.
func AppendBytes(b, data []byte) []byte {
	b = AppendUint32(b, uint32(len(data)))

	return append(b, data...)
}

// AppendString appends UTF-8 bytes of s prefixed with 2-byte big-endian length.
func AppendString(b []byte, s string) []byte {
	b = AppendUint16(b, uint16(len(s)))

	return append(b, s...)
}

// ReadString reads a 2-byte length prefix and that many following UTF-8 bytes.
func ReadString(r *bytereader.Reader) (string, error) {
	size, err := r.ReadUint16()
	if err != nil {
		return "", err
	}

	raw, err := r.Read(int(size))
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

// ReadBytes reads a 4-byte length prefix and that many following bytes.
func ReadBytes(r *bytereader.Reader) ([]byte, error) {
	size, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	return r.Read(int(size))
}
