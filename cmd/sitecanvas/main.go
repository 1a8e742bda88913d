// Command sitecanvas edits single-page website documents from the terminal
// and serves them over HTTP or MCP.
package main

func main() {
	Execute()
}
