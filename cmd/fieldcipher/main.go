// Command fieldcipher applies field-level encryption or decryption to
// newline-delimited JSON records.
package main

func main() {
	Execute()
}
