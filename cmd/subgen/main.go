package main

import (
	"subtitle-whisper/cmd/subgen/cmd"
)

func main() {
	cmd.Execute()
}
