// Code generated by hand. DO NOT EDIT.

package gen

import "os"

func generated() {
	os.Open("g") // want "IDISP004"
}
