// Copyright (c) 2026 The a2p Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/arxivtools/a2p/internal/meta"
)

const bashCompletionScript = `# bash completion for a2p
_a2p()
{
    local cur prev cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "prompt fetch check completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--cache-dir -d --use-cache --no-use-cache --repair --no-repair --lock-timeout"

    case "$cmd" in
        prompt)
            local opts="$common --no-comments --output -o"
            ;;
        fetch|check)
            local opts="$common"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" || "$prev" == "--cache-dir" || "$prev" == "-d" ]]; then
        COMPREPLY=( $(compgen -o filenames -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _a2p a2p
`

const zshCompletionScript = `#compdef a2p

_a2p() {
  local -a cmds
  cmds=(
    'prompt:download and flatten a paper'
    'fetch:download a paper into the cache'
    'check:probe availability and cache state'
    'completion:generate shell completion script'
  )

  if (( CURRENT == 2 )); then
    _describe 'command' cmds
    return
  fi

  _arguments \
    '--cache-dir[directory for downloaded sources]:dir:_files -/' \
    '--use-cache[serve an existing valid entry]' \
    '--no-use-cache[always re-download]' \
    '--repair[rebuild a stale entry]' \
    '--no-repair[fail on a stale entry]' \
    '--lock-timeout[lock wait bound]:duration' \
    '--no-comments[strip LaTeX comments]' \
    '--output[output file]:file:_files'
}

_a2p "$@"
`

// CompletionCommandAction emits the requested shell completion script.
func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := cmd.Args().First()
	switch strings.ToLower(shell) {
	case "bash", "":
		fmt.Print(bashCompletionScript)
	case "zsh":
		fmt.Print(zshCompletionScript)
	default:
		return fmt.Errorf("unsupported shell %q (bash and zsh are supported)", shell)
	}
	return nil
}

// CompletionCommandBuilder constructs the cli.Command definition for the
// "completion" command.
func CompletionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: `a2p completion [bash|zsh]`,
		Metadata:  map[string]interface{}{"meta": m},
		Action:    CompletionCommandAction,
	}
}
