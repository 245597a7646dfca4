// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal holds build switches shared by the packages of this module.
//
// Debug enables additional invariant checks that panic when violated.
// It is only set when building with the gofuzz tag.
package internal
