package a

import "os"

type holder struct {
	f *os.File // want "IDISP006"
}

func newHolder() *holder {
	f, _ := os.Open("a")
	return &holder{f: f}
}

type owner struct {
	f *os.File // want "IDISP002"
}

func (*owner) Close() error { return nil }

func newOwner() *owner { // want newOwner:`returns=\[Yes\]`
	f, _ := os.Open("a")
	return &owner{f: f}
}

type mixed struct {
	f *os.File // want "IDISP008"
}

func withFile(f *os.File) *mixed {
	return &mixed{f: f}
}

func withOpen() *mixed {
	f, _ := os.Open("m")
	return &mixed{f: f}
}

type shut struct{}

func (shut) Close() {} // want "IDISP009"

type base struct{}

func (*base) Close() error { return nil }

type derived struct{ base }

func (*derived) Close() error { return nil } // want "IDISP010"

type lazy struct{ f *os.File }

func (l *lazy) get() *os.File {
	if l.f == nil {
		l.f, _ = os.Open("a")
	}

	return l.f
}

func (l *lazy) Close() error { return l.f.Close() }
