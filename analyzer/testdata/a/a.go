package a

import (
	"net/http"
	"os"

	"test/lib"
)

var shared = &http.Client{}

func leak() {
	f, _ := os.Open("a") // want "IDISP001"
	f.Name()
}

func discard() {
	os.Open("b")        // want "IDISP004"
	_, _ = os.Open("c") // want "IDISP004"
	lib.Make()          // want "IDISP004"
}

func handOver() {
	c := lib.Make()
	lib.Shut(c)
}

func reassign() {
	f, _ := os.Create("a")
	f, _ = os.Create("b") // want "IDISP003"
	f.Close()
}

func client() *http.Client {
	return &http.Client{} // want "IDISP014"
}

type conn struct{}

func (*conn) Close() error { return nil }

func anyConn() any {
	return &conn{} // want "IDISP005"
}

func closed() *os.File { // want closed:`returns=\[Yes\]`
	f, _ := os.Open("a")
	f.Close()
	return f // want "IDISP011"
}

func useClosed() {
	f, _ := os.Open("a")
	f.Close()
	f.Name() // want "IDISP016"
}

func closeStdout() {
	os.Stdout.Close() // want "IDISP007"
}
