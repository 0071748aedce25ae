package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-drive/dsp/buffer"
)

func ExampleRing() {
	r, _ := buffer.NewRing[string](2)

	fmt.Println(r.Push("a"), r.Push("b"), r.Push("c"))

	var s string
	for r.Pull(&s) {
		fmt.Print(s, " ")
	}
	fmt.Println()

	// Output:
	// true true false
	// a b
}
