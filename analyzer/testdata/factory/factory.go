package factory

type res struct{}

func (*res) Close() error { return nil }

var pool = []*res{{}}

func build() *res {
	r := pool[0]
	return r
}

func use() {
	build() // want "IDISP004"
}
