// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filefilter provides [Filter], a set of rules selecting
// files by name pattern, MIME type or custom function.
package filefilter

import (
	"log/slog"
	"strings"

	"github.com/gobwas/glob"
)

// Needs are the parts of [Info] that a filter uses.
type Needs int32

const (
	NeedsFilename Needs = 1 << iota
	NeedsURI
	NeedsDisplayName
	NeedsMimeType
)

// Has returns whether all of the given needs are set.
func (n Needs) Has(need Needs) bool {
	return n&need == need
}

// Info is the information about a file that a filter is applied to.
// Contains says which fields are set: callers only need to fill in
// the fields that [Filter.Needed] reports.
type Info struct {
	Contains    Needs
	Filename    string
	URI         string
	DisplayName string
	MimeType    string
}

// CustomFunc is a custom filter rule.
type CustomFunc func(info *Info) bool

type ruleType int32

const (
	rulePattern ruleType = iota
	ruleMimeType
	ruleCustom
)

type rule struct {
	typ    ruleType
	needs  Needs
	source string
	glob   glob.Glob
	custom CustomFunc
}

// Filter selects files that match any of its rules. A filter with
// no rules selects nothing.
type Filter struct {
	// Name is a name for the filter that may be shown to users.
	Name string

	rules  []*rule
	needed Needs
}

// New returns a new filter with the given name and no rules.
func New(name string) *Filter {
	return &Filter{Name: name}
}

func (f *Filter) add(r *rule) {
	f.rules = append(f.rules, r)
	f.needed |= r.needs
}

// AddPattern adds a rule matching display names against a shell
// style pattern such as "*.go" or "[a-c]*.{png,jpg}". It returns
// false and logs if the pattern is invalid.
func (f *Filter) AddPattern(pattern string) bool {
	g, err := glob.Compile(pattern)
	if err != nil {
		slog.Error("filefilter.AddPattern: invalid pattern", "pattern", pattern, "err", err)
		return false
	}
	f.add(&rule{typ: rulePattern, needs: NeedsDisplayName, source: pattern, glob: g})
	return true
}

// AddMimeType adds a rule matching MIME types. The subtype may be
// "*" to match every type of the media type, as in "image/*".
func (f *Filter) AddMimeType(mimeType string) {
	f.add(&rule{typ: ruleMimeType, needs: NeedsMimeType, source: strings.ToLower(mimeType)})
}

// AddCustom adds a rule calling fun with the parts of the info
// given by needs.
func (f *Filter) AddCustom(needs Needs, fun CustomFunc) {
	f.add(&rule{typ: ruleCustom, needs: needs, custom: fun})
}

// Needed returns the parts of the info that the rules use.
func (f *Filter) Needed() Needs {
	return f.needed
}

// Patterns returns the sources of the pattern and MIME type rules.
func (f *Filter) Patterns() []string {
	var ps []string
	for _, r := range f.rules {
		if r.typ != ruleCustom {
			ps = append(ps, r.source)
		}
	}
	return ps
}

// Filter returns whether the file described by info matches any
// rule. Rules whose needs are not in info.Contains are skipped.
func (f *Filter) Filter(info *Info) bool {
	for _, r := range f.rules {
		if !info.Contains.Has(r.needs) {
			continue
		}
		switch r.typ {
		case rulePattern:
			if r.glob.Match(info.DisplayName) {
				return true
			}
		case ruleMimeType:
			if MimeTypeMatches(r.source, info.MimeType) {
				return true
			}
		case ruleCustom:
			if r.custom(info) {
				return true
			}
		}
	}
	return false
}

// MimeTypeMatches returns whether mimeType is the type described by
// pattern, which may have a "*" subtype. Parameters are ignored.
func MimeTypeMatches(pattern, mimeType string) bool {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if mimeType == "" {
		return false
	}
	if pattern == mimeType || pattern == "*" || pattern == "*/*" {
		return true
	}
	media, sub, ok := strings.Cut(pattern, "/")
	if !ok || sub != "*" {
		return false
	}
	return strings.HasPrefix(mimeType, media+"/")
}
