// Package common contains small shared utilities.
package common

// WipeByteArray zeroes b in place. Password buffers are wiped as soon
// as the call that needed them returns.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
