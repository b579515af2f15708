package main

import "github.com/Mohsinsiddi/vinutoken/cmd"

func main() {
	cmd.Execute()
}
