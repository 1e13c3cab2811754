package severity

import "os"

type conn struct{}

func (*conn) Close() error { return nil }

func anyConn() any {
	return &conn{}
}

func leak() {
	f, _ := os.Open("a")
	f.Name()
}

func discard() {
	os.Open("b") // want "IDISP004"
}
