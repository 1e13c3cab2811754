//nolint:closeguard
package a

import "os"

func skipped() {
	os.Open("f")
}
