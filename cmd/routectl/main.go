package main

import "github.com/Domenick1991/airroutes/internal/cli"

func main() {
	cli.Execute()
}
