package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const complete = `#! /bin/bash

_annotext_autocomplete() {
    local cur opts

    cur="${COMP_WORDS[COMP_CWORD]}"

    # the app lists the candidates of the words typed so far
    opts=$("${COMP_WORDS[@]:0:$COMP_CWORD}" --generate-bash-completion 2>/dev/null)

    if [ $? -eq 0 ]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    fi
}

complete -o default -F _annotext_autocomplete annotext
`

func bashCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "bash",
		Usage: "print the bash completion script",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprint(a.ui.Out, complete)
			return err
		},
	}
}
