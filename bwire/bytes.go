// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package bwire

// AppendZero appends n zero bytes to buf, growing it in one allocation the
// way the teacher's sszutils.AppendZeroPadding does for padding runs.
func AppendZero(buf []byte, n int) []byte {
	if n <= 0 {
		return buf
	}
	return append(buf, make([]byte, n)...)
}
