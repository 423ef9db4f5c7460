package main

import (
	"github.com/jkwiatkowski/cfm/cmd/cfm"
)

func main() {
	cfm.Execute()
}
