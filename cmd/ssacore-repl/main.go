// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"ssacore/repl"
)

func main() {
	repl.Start(os.Stdin)
}
