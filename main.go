package main

import "github.com/ArtuomMerkulov/WEB-analitic-logs/internal/cmd"

func main() {
	cmd.Execute()
}
