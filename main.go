package main

import "github.com/passdig/passdig/cmd/passdig"

func main() { passdig.Execute() }
