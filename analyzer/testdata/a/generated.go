// Code generated by hand. DO NOT EDIT.

package a

import "os"

func generated() {
	os.Open("g")
}
