// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package treedata provides the dynamically typed column values
// stored in tree models, together with their conversion, copying,
// release and default ordering, and the per-row cell [List] used
// by list stores.
//
// Every model column is declared with a [Type]. Values written to a
// column are converted with [Convert], so that the [Kind] of a stored
// value always matches the kind of its column.
package treedata
