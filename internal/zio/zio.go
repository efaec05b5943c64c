/*
 * zio.go, part of maptool.
 *
 * Copyright 2024 The maptool authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package zio opens files for whole-buffer reading and writing, choosing the
//compression from the file name: ".gz" is gzip, ".zst" is zstd, anything else
//is plain text.
package zio

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Compression is the kind of compression used for a file.
type Compression int

const (
	Plain Compression = iota
	Gzip
	Zstd
)

//For reports the compression implied by the name of a file.
func For(name string) Compression {
	l := strings.ToLower(name)
	switch {
	case strings.HasSuffix(l, ".gz"):
		return Gzip
	case strings.HasSuffix(l, ".zst"), strings.HasSuffix(l, ".zstd"):
		return Zstd
	}
	return Plain
}

//zstd's Decoder.Close does not return an error, so it can't be used
//directly as an io.ReadCloser together with the file.
type readCloser struct {
	io.Reader
	closers []func() error
}

func (r readCloser) Close() error {
	var err error
	for _, c := range r.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//Open opens name for reading, decompressing it if needed.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch For(name) {
	case Gzip:
		g, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, err
		}
		return readCloser{g, []func() error{g.Close, f.Close}}, nil
	case Zstd:
		z, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, err
		}
		return readCloser{z, []func() error{func() error { z.Close(); return nil }, f.Close}}, nil
	}
	return f, nil
}

type writeCloser struct {
	io.Writer
	closers []func() error
}

func (w writeCloser) Close() error {
	var err error
	for _, c := range w.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//Create creates (or truncates) name for writing, compressing if needed.
//The returned writer must be closed for the data to be complete.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	switch For(name) {
	case Gzip:
		g := gzip.NewWriter(f)
		return writeCloser{g, []func() error{g.Close, f.Close}}, nil
	case Zstd:
		z, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return nil, err
		}
		return writeCloser{z, []func() error{z.Close, f.Close}}, nil
	}
	return f, nil
}

//ReadAll reads the whole content of name.
func ReadAll(name string) ([]byte, error) {
	r, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

//WriteAll writes data to name, replacing its content.
func WriteAll(name string, data []byte) error {
	w, err := Create(name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
