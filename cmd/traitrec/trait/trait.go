// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package trait is a metapackage for commands
// that dealt with trait data.
package trait

import (
	"github.com/js-arias/command"
	"github.com/js-arias/traitrec/cmd/traitrec/trait/add"
	"github.com/js-arias/traitrec/cmd/traitrec/trait/cats"
	"github.com/js-arias/traitrec/cmd/traitrec/trait/colors"
)

var Command = &command.Command{
	Usage: "trait <command> [<argument>...]",
	Short: "commands for trait data",
}

func init() {
	Command.Add(add.Command)
	Command.Add(cats.Command)
	Command.Add(colors.Command)
}
