package main

import "hospital_queue/internal/cli"

func main() {
	cli.Execute()
}
