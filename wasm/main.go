//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("OwnerlintNewValidator", js.FuncOf(newValidator))
	js.Global().Set("OwnerlintValidate", js.FuncOf(validate))
	js.Global().Set("OwnerlintParse", js.FuncOf(parseContent))
	js.Global().Set("OwnerlintCloseValidator", js.FuncOf(closeValidator))
	js.Global().Set("OwnerlintChecks", js.FuncOf(listChecks))

	// Keep WASM running
	<-make(chan struct{})
}
