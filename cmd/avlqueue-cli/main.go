// Command avlqueue-cli is an interactive demo and inspection shell for a
// file-backed AVL-queue: each invocation opens the queue rooted at
// --db-dir, performs one operation, persists the result, and exits.
package main

func main() {
	Execute()
}
