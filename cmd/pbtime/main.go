// Command pbtime serves and queries the pbtime clock service.
//
//	pbtime serve --config pbtime.toml
//	pbtime now --addr 127.0.0.1:7443
//	pbtime format 1431680400 500000000
//	pbtime parse 2015-05-15T09:00:00.5Z
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
