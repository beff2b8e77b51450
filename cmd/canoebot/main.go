package main

import "github.com/nuscanoeing/canoebot/internal/cli"

func main() {
	cli.Execute()
}
