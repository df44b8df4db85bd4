// Command apideps computes the API dependency closure of a set of types.
package main

import "github.com/dbsmedya/apideps/cmd/apideps/cmd"

func main() {
	cmd.Execute()
}
