// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treedata

import (
	"cmp"
	"log/slog"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Compare returns the order of a and b: -1 if a sorts before b,
// 0 if they are equal and +1 if a sorts after b. Strings are
// compared with the collation of the user's language. The second
// result is false if the values are of different kinds or of a kind
// that has no order (Pointer, Boxed and Object).
func Compare(a, b Value) (int, bool) {
	if a.kind != b.kind {
		return 0, false
	}
	switch {
	case a.kind == Bool:
		return cmp.Compare(a.i, b.i), true
	case a.kind.isSigned():
		return cmp.Compare(a.i, b.i), true
	case a.kind.isUnsigned():
		return cmp.Compare(a.u, b.u), true
	case a.kind.isFloat():
		return cmp.Compare(a.f, b.f), true
	case a.kind == String:
		return CompareStrings(a.s, b.s), true
	}
	return 0, false
}

var collation struct {
	sync.Mutex
	c *collate.Collator
}

// CompareStrings compares two strings with the collation of the
// current collation language, which defaults to the user's locale.
func CompareStrings(a, b string) int {
	collation.Lock()
	defer collation.Unlock()
	if collation.c == nil {
		collation.c = collate.New(userLanguage())
	}
	return collation.c.CompareString(a, b)
}

// SetCollationLanguage sets the language used by [CompareStrings].
func SetCollationLanguage(tag language.Tag) {
	collation.Lock()
	collation.c = collate.New(tag)
	collation.Unlock()
}

// userLanguage returns the language of the user's locale, or the
// root language if it cannot be determined.
func userLanguage() language.Tag {
	name, err := locale.GetLocale()
	if err != nil || name == "" {
		return language.Und
	}
	// POSIX locales look like en_US.UTF-8
	name, _, _ = strings.Cut(name, ".")
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		slog.Debug("treedata: unknown locale", "locale", name, "err", err)
		return language.Und
	}
	return tag
}
