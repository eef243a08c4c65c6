package main

import "github.com/amryshahrul0/auto-youtube-clipper/internal/cli"

func main() {
	cli.Main()
}
