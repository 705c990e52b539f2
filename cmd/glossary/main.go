// Command glossary browses a glossary of terms and records user feedback.
package main

import "github.com/mesh-intelligence/glossary/internal/cli"

func main() {
	cli.Execute()
}
