// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filesys

import (
	"bytes"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
)

const (
	// sniffLen is the number of bytes read to sniff a content type,
	// which covers every header that filetype matches.
	sniffLen = 262

	mimeDirectory = "inode/directory"
	mimeSymlink   = "inode/symlink"
	mimeSpecial   = "inode/x-special"
	mimeEmpty     = "application/x-zerosize"
	mimeText      = "text/plain"
	mimeBinary    = "application/octet-stream"
)

// ContentTypeForName guesses the content type of a file from its
// name alone, returning "" if the extension is not known.
func ContentTypeForName(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return ""
	}
	if t := filetype.GetType(strings.ToLower(ext)); t != filetype.Unknown {
		return t.MIME.Value
	}
	mt, _, _ := strings.Cut(mime.TypeByExtension("."+ext), ";")
	return mt
}

// SniffContentType returns the content type of data, the start of a
// file called name, by its magic numbers, falling back on the file
// name and then on whether the data looks like text.
func SniffContentType(name string, data []byte) string {
	if len(data) == 0 {
		if mt := ContentTypeForName(name); mt != "" {
			return mt
		}
		return mimeEmpty
	}
	if t, err := filetype.Match(data); err == nil && t != filetype.Unknown {
		return t.MIME.Value
	}
	if mt := ContentTypeForName(name); mt != "" {
		return mt
	}
	if utf8.Valid(data) && !bytes.ContainsRune(data, 0) {
		return mimeText
	}
	return mimeBinary
}

// contentType returns the content type of the local file at path
// with the given info.
func contentType(path string, info *Info) string {
	switch info.Type {
	case TypeDirectory:
		return mimeDirectory
	case TypeSymlink:
		return mimeSymlink
	case TypeSpecial:
		return mimeSpecial
	}
	f, err := os.Open(path)
	if err != nil {
		if mt := ContentTypeForName(info.Name); mt != "" {
			return mt
		}
		return mimeBinary
	}
	defer f.Close()
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return mimeBinary
	}
	return SniffContentType(info.Name, buf[:n])
}
