// Copyright 2023 GreyXor. All rights reserved.
// Mount of this source code is governed by a MIT license that can be found
// at https://gitlab.com/greyxor/slogor/-/blob/main/LICENSE?ref_type=heads.

package ansi

// SGR sequences used by the diagnostic handler.
const (
	Reset           = "\033[0m"
	Bold            = "\033[1m"
	Faint           = "\033[2m"
	NormalIntensity = "\033[22m"

	FgRed     = "\033[31m"
	FgGreen   = "\033[32m"
	FgYellow  = "\033[33m"
	FgMagenta = "\033[35m"
	FgCyan    = "\033[36m"
)
