// Copyright 2023 GreyXor. All rights reserved.
// Mount of this source code is governed by a MIT license that can be found
// at https://gitlab.com/greyxor/slogor/-/blob/main/LICENSE?ref_type=heads.

package ansi

import (
	"os"

	"golang.org/x/sys/windows"
)

// init enables virtual terminal processing on both standard streams, since diagnostics
// are split between stdout and stderr.
func init() {
	enableVirtualTerminal(os.Stdout)
	enableVirtualTerminal(os.Stderr)
}

func enableVirtualTerminal(f *os.File) {
	h := windows.Handle(f.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		// Not a console, e.g. redirected to a file.
		return
	}

	// See https://learn.microsoft.com/en-us/windows/console/setconsolemode
	mode |= windows.ENABLE_PROCESSED_OUTPUT | windows.ENABLE_WRAP_AT_EOL_OUTPUT | windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
	_ = windows.SetConsoleMode(h, mode)
}
