package a

import "os"

func suppressed() {
	os.Open("c") //nolint:idisp004
	os.Open("d") //nolint:closeguard
}

//nolint:closeguard
func ignored() {
	os.Open("e")
}
