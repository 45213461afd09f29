package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/barscript/barscript/internal/builtins"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List the registered namespaces and global builtins",
	Long: `Print every dotted builtin name known to the registry, grouped by
namespace, plus the non-namespaced global conversion functions.`,
	RunE: listBuiltins,
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}

func listBuiltins(_ *cobra.Command, _ []string) error {
	namespaces := builtins.Namespaces()
	names := make([]string, 0, len(namespaces))
	for name := range namespaces {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ns := namespaces[name]
		keys := ns.Keys()
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s.%s\n", name, k)
		}
	}

	globals := builtins.Globals()
	globalNames := make([]string, 0, len(globals))
	for name := range globals {
		globalNames = append(globalNames, name)
	}
	sort.Strings(globalNames)
	for _, name := range globalNames {
		fmt.Println(name)
	}
	return nil
}
