// DoubleSpace lays out photo prints on standard paper sizes.
//
// Build:
//   go build -o doublespace ./cmd/doublespace
package main

import "github.com/piwi3910/DoubleSpace/cmd/doublespace/cmd"

func main() {
	cmd.Execute()
}
