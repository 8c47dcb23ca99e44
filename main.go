package main

import (
	_ "embed"

	"github.com/linkgrove/link-page-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
