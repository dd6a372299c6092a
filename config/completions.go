package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// GenCompletions writes the completion script for shell to out.
func GenCompletions(command *cobra.Command, shell string, out io.Writer) error {
	root := command.Root()

	switch shell {
	case "bash":
		return root.GenBashCompletion(out)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(out)
	default:
		return fmt.Errorf("unsupported shell %q, use one of bash, zsh, fish, powershell", shell)
	}
}
