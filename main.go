package main

import "field-service.com/field-service/cmd"

func main() {
	cmd.Execute()
}
