package main

import (
	_ "github.com/tliron/commonlog/simple"

	"cstamp/internal/cli"
)

func main() {
	cli.Execute()
}
