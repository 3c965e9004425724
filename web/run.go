//go:build js && wasm

package main

import (
	"bytes"
	"context"
	"syscall/js"

	"github.com/posidron/rusty/pkg/rusty"
	"github.com/posidron/rusty/pkg/stdlib"
)

func main() {
	c := make(chan struct{})
	js.Global().Set("rusty", js.FuncOf(run))
	<-c
}

// run executes rusty(source) and returns what it printed, followed by the
// error text if it failed.
func run(this js.Value, args []js.Value) any {
	if len(args) != 1 {
		return "error: rusty(source) takes a single argument"
	}
	var out bytes.Buffer
	interp := rusty.New(rusty.WithOutput(&out), rusty.WithGlobals(stdlib.Bindings()))
	if err := interp.Run(context.Background(), args[0].String()); err != nil {
		out.WriteString(err.Error())
		out.WriteString("\n")
	}
	return js.ValueOf(out.String())
}
