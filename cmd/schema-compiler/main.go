// Package main is the entry point for schema-compiler.
package main

func main() {
	Execute()
}
