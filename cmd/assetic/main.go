// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/assetic/cmd/assetic/cmd"
)

func main() {
	cmd.Execute()
}
