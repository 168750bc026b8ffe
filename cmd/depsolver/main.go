// Command depsolver resolves a target package installation state from
// a repository, an initial state, and a set of install/uninstall
// constraints, printing the resulting command sequence as JSON.
package main

import "depsolver/internal/cli"

func main() {
	cli.Execute()
}
