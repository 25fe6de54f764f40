package main

import (
	_ "embed"

	"github.com/listkeep/list-note-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
