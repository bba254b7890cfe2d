// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package binio implements the little-endian binary I/O primitives
// shared by the WAD, BIN, and ModPkg codecs: fixed-width integers,
// length-prefixed and padded strings, vector/matrix/color literals,
// and the seek-measure/seek-window helpers used by the various
// builders to back-patch a header or table of contents after
// streaming a body.
//
// Every format in this module is little-endian, with the single
// documented exception of the packed RGBA color value, which is
// stored as four bytes in R, G, B, A order with no further encoding.
package binio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

func ReadU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func WriteU8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func ReadU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func WriteU16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func ReadU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func WriteU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func ReadU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func WriteU64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func ReadI8(r io.Reader) (int8, error) {
	v, err := ReadU8(r)
	return int8(v), err
}

func WriteI8(w io.Writer, v int8) error { return WriteU8(w, uint8(v)) }

func ReadI16(r io.Reader) (int16, error) {
	v, err := ReadU16(r)
	return int16(v), err
}

func WriteI16(w io.Writer, v int16) error { return WriteU16(w, uint16(v)) }

func ReadI32(r io.Reader) (int32, error) {
	v, err := ReadU32(r)
	return int32(v), err
}

func WriteI32(w io.Writer, v int32) error { return WriteU32(w, uint32(v)) }

func ReadI64(r io.Reader) (int64, error) {
	v, err := ReadU64(r)
	return int64(v), err
}

func WriteI64(w io.Writer, v int64) error { return WriteU64(w, uint64(v)) }

func ReadF32(r io.Reader) (float32, error) {
	v, err := ReadU32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func WriteF32(w io.Writer, v float32) error {
	return WriteU32(w, math.Float32bits(v))
}

func ReadBool(r io.Reader) (bool, error) {
	v, err := ReadU8(r)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func WriteBool(w io.Writer, v bool) error {
	if v {
		return WriteU8(w, 1)
	}
	return WriteU8(w, 0)
}

// ReadU24 reads a 24-bit little-endian unsigned integer (low, mid,
// high byte), zero-extended to 32 bits.
func ReadU24(r io.Reader) (uint32, error) {
	var buf [3]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16, nil
}

// WriteU24 writes the low 24 bits of v as a 3-byte little-endian
// integer.
func WriteU24(w io.Writer, v uint32) error {
	buf := [3]byte{byte(v), byte(v >> 8), byte(v >> 16)}
	_, err := w.Write(buf[:])
	return err
}

// ReadLenString16 reads a u16 length prefix followed by that many
// bytes of UTF-8.
func ReadLenString16(r io.Reader) (string, error) {
	n, err := ReadU16(r)
	if err != nil {
		return "", err
	}
	return readStringBytes(r, int(n))
}

// WriteLenString16 writes s as a u16 length prefix followed by its
// UTF-8 bytes. It returns an error if len(s) overflows a u16.
func WriteLenString16(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("binio: string of %d bytes too long for a u16 length prefix", len(s))
	}
	if err := WriteU16(w, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// ReadLenString32 reads a u32 length prefix followed by that many
// bytes of UTF-8.
func ReadLenString32(r io.Reader) (string, error) {
	n, err := ReadU32(r)
	if err != nil {
		return "", err
	}
	return readStringBytes(r, int(n))
}

// WriteLenString32 writes s as a u32 length prefix followed by its
// UTF-8 bytes.
func WriteLenString32(w io.Writer, s string) error {
	if err := WriteU32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readStringBytes(r io.Reader, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("binio: invalid UTF-8 in length-prefixed string")
	}
	return string(buf), nil
}

// ReadPaddedString reads a fixed-width, NUL-terminated-or-padded
// string of exactly width bytes: the bytes before the first NUL (or
// all width bytes, if there is none) are validated as UTF-8 and
// returned; the remaining pad bytes are discarded.
func ReadPaddedString(r io.Reader, width int) (string, error) {
	buf := make([]byte, width)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	end := len(buf)
	for i, b := range buf {
		if b == 0 {
			end = i
			break
		}
	}
	if !utf8.Valid(buf[:end]) {
		return "", fmt.Errorf("binio: invalid UTF-8 in padded string")
	}
	return string(buf[:end]), nil
}

// WritePaddedString writes s into exactly width bytes, zero-padding
// (or NUL-terminating, for shorter strings) as needed. It is an error
// for len(s) to exceed width.
func WritePaddedString(w io.Writer, s string, width int) error {
	if len(s) > width {
		return fmt.Errorf("binio: string of %d bytes does not fit in %d-byte padded field", len(s), width)
	}
	buf := make([]byte, width)
	copy(buf, s)
	_, err := w.Write(buf)
	return err
}

// Vec2, Vec3, Vec4 are the BIN float-vector primitives.
type Vec2 struct{ X, Y float32 }
type Vec3 struct{ X, Y, Z float32 }
type Vec4 struct{ X, Y, Z, W float32 }

func ReadVec2(r io.Reader) (Vec2, error) {
	x, err := ReadF32(r)
	if err != nil {
		return Vec2{}, err
	}
	y, err := ReadF32(r)
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{X: x, Y: y}, nil
}

func WriteVec2(w io.Writer, v Vec2) error {
	if err := WriteF32(w, v.X); err != nil {
		return err
	}
	return WriteF32(w, v.Y)
}

func ReadVec3(r io.Reader) (Vec3, error) {
	x, err := ReadF32(r)
	if err != nil {
		return Vec3{}, err
	}
	y, err := ReadF32(r)
	if err != nil {
		return Vec3{}, err
	}
	z, err := ReadF32(r)
	if err != nil {
		return Vec3{}, err
	}
	return Vec3{X: x, Y: y, Z: z}, nil
}

func WriteVec3(w io.Writer, v Vec3) error {
	if err := WriteF32(w, v.X); err != nil {
		return err
	}
	if err := WriteF32(w, v.Y); err != nil {
		return err
	}
	return WriteF32(w, v.Z)
}

func ReadVec4(r io.Reader) (Vec4, error) {
	x, err := ReadF32(r)
	if err != nil {
		return Vec4{}, err
	}
	y, err := ReadF32(r)
	if err != nil {
		return Vec4{}, err
	}
	z, err := ReadF32(r)
	if err != nil {
		return Vec4{}, err
	}
	ww, err := ReadF32(r)
	if err != nil {
		return Vec4{}, err
	}
	return Vec4{X: x, Y: y, Z: z, W: ww}, nil
}

func WriteVec4(w io.Writer, v Vec4) error {
	if err := WriteF32(w, v.X); err != nil {
		return err
	}
	if err := WriteF32(w, v.Y); err != nil {
		return err
	}
	if err := WriteF32(w, v.Z); err != nil {
		return err
	}
	return WriteF32(w, v.W)
}

// Mat4 is a row-major 4x4 matrix of 16 float32s.
type Mat4 [16]float32

func ReadMat4(r io.Reader) (Mat4, error) {
	var m Mat4
	for i := range m {
		v, err := ReadF32(r)
		if err != nil {
			return Mat4{}, err
		}
		m[i] = v
	}
	return m, nil
}

func WriteMat4(w io.Writer, m Mat4) error {
	for _, v := range m {
		if err := WriteF32(w, v); err != nil {
			return err
		}
	}
	return nil
}

// Color is a packed 8-bit-per-channel RGBA value, stored on disk as
// four bytes R, G, B, A with no further encoding — the sole exception
// to this package's otherwise little-endian numeric encoding.
type Color struct{ R, G, B, A uint8 }

func ReadColor(r io.Reader) (Color, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Color{}, err
	}
	return Color{R: buf[0], G: buf[1], B: buf[2], A: buf[3]}, nil
}

func WriteColor(w io.Writer, c Color) error {
	_, err := w.Write([]byte{c.R, c.G, c.B, c.A})
	return err
}

// AABB and Sphere are not BIN kinds, but are read/written the same
// way by peripheral mesh readers built on top of this package, so
// they share this package's codec rather than each inventing its own.
type AABB struct{ Min, Max Vec3 }
type Sphere struct {
	Center Vec3
	Radius float32
}

func ReadAABB(r io.Reader) (AABB, error) {
	min, err := ReadVec3(r)
	if err != nil {
		return AABB{}, err
	}
	max, err := ReadVec3(r)
	if err != nil {
		return AABB{}, err
	}
	return AABB{Min: min, Max: max}, nil
}

func WriteAABB(w io.Writer, a AABB) error {
	if err := WriteVec3(w, a.Min); err != nil {
		return err
	}
	return WriteVec3(w, a.Max)
}

func ReadSphere(r io.Reader) (Sphere, error) {
	center, err := ReadVec3(r)
	if err != nil {
		return Sphere{}, err
	}
	radius, err := ReadF32(r)
	if err != nil {
		return Sphere{}, err
	}
	return Sphere{Center: center, Radius: radius}, nil
}

func WriteSphere(w io.Writer, s Sphere) error {
	if err := WriteVec3(w, s.Center); err != nil {
		return err
	}
	return WriteF32(w, s.Radius)
}
