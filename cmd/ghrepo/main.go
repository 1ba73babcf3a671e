package main

import "github.com/aalvaropc/ghrepo/internal/cli"

func main() {
	cli.Execute()
}
