package lib

import "os"

type Conn struct{ f *os.File }

func (c *Conn) Close() error { return c.f.Close() }

func Make() *Conn { // want Make:`returns=\[Yes\]`
	return &Conn{}
}

func Shut(c *Conn) { // want Shut:`returns=\[\] closes=0`
	c.Close()
}
