// Command combatlogctl is a development smoke-test tool for the combat log
// engine — NOT the product's HTTP server (that driver program is external
// and out of scope for this module). It exists to exercise the parser and
// cache end to end from a terminal.
package main

func main() {
	Execute()
}
