// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package registry

type knownFunc struct {
	name QualifiedMethod
	kind Kind
}

var (
	osFile       = Type("os", "File")
	osRoot       = Type("os", "Root")
	netDialer    = Type("net", "Dialer")
	netListener  = Type("net", "Listener")
	netListenCfg = Type("net", "ListenConfig")
	netTCPLis    = Type("net", "TCPListener")
	netUnixLis   = Type("net", "UnixListener")
	tlsDialer    = Type("crypto/tls", "Dialer")
	sqlDB        = Type("database/sql", "DB")
	sqlConn      = Type("database/sql", "Conn")
	sqlTx        = Type("database/sql", "Tx")
	sqlStmt      = Type("database/sql", "Stmt")
	zipFile      = Type("archive/zip", "File")
	multipartFH  = Type("mime/multipart", "FileHeader")
	fsFS         = Type("io/fs", "FS")
	execCmd      = Type("os/exec", "Cmd")
	httpServer   = Type("net/http", "Server")
	syncMap      = Type("sync", "Map")
	syncPool     = Type("sync", "Pool")
	bytesBuffer  = Type("bytes", "Buffer")
	logLogger    = Type("log", "Logger")
	testingTB    = Type("testing", "TB")
	testingCommn = Type("testing", "common")
)

// knownFuncs are functions and methods with known resource semantics.
var knownFuncs = [...]knownFunc{
	// keep-sorted start
	{Func("archive/tar", "NewReader"), Borrows},
	{Func("archive/tar", "NewWriter"), Borrows},
	{Func("archive/zip", "NewWriter"), Borrows},
	{Func("archive/zip", "OpenReader"), Factory},
	{Func("bufio", "NewReadWriter"), Borrows},
	{Func("bufio", "NewReader"), Borrows},
	{Func("bufio", "NewReaderSize"), Borrows},
	{Func("bufio", "NewScanner"), Borrows},
	{Func("bufio", "NewWriter"), Borrows},
	{Func("bufio", "NewWriterSize"), Borrows},
	{Func("compress/flate", "NewReader"), Factory | Borrows},
	{Func("compress/flate", "NewWriter"), Factory | Borrows},
	{Func("compress/gzip", "NewReader"), Factory | Borrows},
	{Func("compress/gzip", "NewWriter"), Factory | Borrows},
	{Func("compress/gzip", "NewWriterLevel"), Factory | Borrows},
	{Func("compress/zlib", "NewReader"), Factory | Borrows},
	{Func("compress/zlib", "NewWriter"), Factory | Borrows},
	{Func("compress/zlib", "NewWriterLevel"), Factory | Borrows},
	{Func("crypto/tls", "Client"), Factory | TakesOwnership},
	{Func("crypto/tls", "Dial"), Factory},
	{Func("crypto/tls", "DialWithDialer"), Factory},
	{Func("crypto/tls", "Listen"), Factory},
	{Func("crypto/tls", "NewListener"), Factory | TakesOwnership},
	{Func("crypto/tls", "Server"), Factory | TakesOwnership},
	{Func("database/sql", "Open"), Factory},
	{Func("database/sql", "OpenDB"), Factory},
	{Func("debug/elf", "Open"), Factory},
	{Func("debug/macho", "Open"), Factory},
	{Func("debug/pe", "Open"), Factory},
	{Func("encoding/csv", "NewReader"), Borrows},
	{Func("encoding/csv", "NewWriter"), Borrows},
	{Func("encoding/gob", "NewDecoder"), Borrows},
	{Func("encoding/gob", "NewEncoder"), Borrows},
	{Func("encoding/json", "NewDecoder"), Borrows},
	{Func("encoding/json", "NewEncoder"), Borrows},
	{Func("encoding/xml", "NewDecoder"), Borrows},
	{Func("encoding/xml", "NewEncoder"), Borrows},
	{Func("fmt", "Fprint"), Borrows},
	{Func("fmt", "Fprintf"), Borrows},
	{Func("fmt", "Fprintln"), Borrows},
	{Func("fmt", "Fscan"), Borrows},
	{Func("fmt", "Fscanf"), Borrows},
	{Func("fmt", "Fscanln"), Borrows},
	{Func("io", "Copy"), Borrows},
	{Func("io", "CopyBuffer"), Borrows},
	{Func("io", "CopyN"), Borrows},
	{Func("io", "LimitReader"), Borrows},
	{Func("io", "MultiReader"), Borrows},
	{Func("io", "MultiWriter"), Borrows},
	{Func("io", "NewSectionReader"), Borrows},
	{Func("io", "NopCloser"), NotCreation | Borrows},
	{Func("io", "Pipe"), Factory},
	{Func("io", "ReadAll"), Borrows},
	{Func("io", "ReadAtLeast"), Borrows},
	{Func("io", "ReadFull"), Borrows},
	{Func("io", "TeeReader"), Borrows},
	{Func("io", "WriteString"), Borrows},
	{Func("log", "New"), Borrows},
	{Func("log/slog", "NewJSONHandler"), Borrows},
	{Func("log/slog", "NewTextHandler"), Borrows},
	{Func("log/syslog", "Dial"), Factory},
	{Func("log/syslog", "New"), Factory},
	{Func("net", "Dial"), Factory},
	{Func("net", "DialIP"), Factory},
	{Func("net", "DialTCP"), Factory},
	{Func("net", "DialTimeout"), Factory},
	{Func("net", "DialUDP"), Factory},
	{Func("net", "DialUnix"), Factory},
	{Func("net", "FileConn"), Factory},
	{Func("net", "FileListener"), Factory},
	{Func("net", "Listen"), Factory},
	{Func("net", "ListenPacket"), Factory},
	{Func("net", "ListenTCP"), Factory},
	{Func("net", "ListenUDP"), Factory},
	{Func("net", "ListenUnix"), Factory},
	{Func("net", "Pipe"), Factory},
	{Func("net/http", "Serve"), TakesOwnership},
	{Func("net/http", "ServeTLS"), TakesOwnership},
	{Func("net/http/httptest", "NewServer"), Factory},
	{Func("net/http/httptest", "NewTLSServer"), Factory},
	{Func("net/http/httptest", "NewUnstartedServer"), Factory},
	{Func("net/rpc", "Dial"), Factory},
	{Func("net/rpc", "DialHTTP"), Factory},
	{Func("net/smtp", "Dial"), Factory},
	{Func("net/textproto", "Dial"), Factory},
	{Func("os", "Create"), Factory},
	{Func("os", "CreateTemp"), Factory},
	{Func("os", "NewFile"), Factory},
	{Func("os", "Open"), Factory},
	{Func("os", "OpenFile"), Factory},
	{Func("os", "OpenInRoot"), Factory},
	{Func("os", "OpenRoot"), Factory},
	{Func("os", "Pipe"), Factory},
	{Func("runtime", "SetFinalizer"), Borrows},
	// keep-sorted end

	{bytesBuffer.Method("ReadFrom"), Borrows},
	{bytesBuffer.Method("WriteTo"), Borrows},
	{execCmd.Method("StderrPipe"), NotCreation},
	{execCmd.Method("StdinPipe"), NotCreation},
	{execCmd.Method("StdoutPipe"), NotCreation},
	{fsFS.Method("Open"), Factory},
	{httpServer.Method("Serve"), TakesOwnership},
	{httpServer.Method("ServeTLS"), TakesOwnership},
	{multipartFH.Method("Open"), Factory},
	{netDialer.Method("Dial"), Factory},
	{netDialer.Method("DialContext"), Factory},
	{netListenCfg.Method("Listen"), Factory},
	{netListenCfg.Method("ListenPacket"), Factory},
	{netListener.Method("Accept"), Factory},
	{netTCPLis.Method("Accept"), Factory},
	{netTCPLis.Method("AcceptTCP"), Factory},
	{netUnixLis.Method("Accept"), Factory},
	{netUnixLis.Method("AcceptUnix"), Factory},
	{osFile.Method("ReadFrom"), Borrows},
	{osRoot.Method("Create"), Factory},
	{osRoot.Method("Open"), Factory},
	{osRoot.Method("OpenFile"), Factory},
	{osRoot.Method("OpenRoot"), Factory},
	{sqlConn.Method("PrepareContext"), Factory},
	{sqlConn.Method("QueryContext"), Factory},
	{sqlDB.Method("Conn"), Factory},
	{sqlDB.Method("Prepare"), Factory},
	{sqlDB.Method("PrepareContext"), Factory},
	{sqlDB.Method("Query"), Factory},
	{sqlDB.Method("QueryContext"), Factory},
	{sqlStmt.Method("Query"), Factory},
	{sqlStmt.Method("QueryContext"), Factory},
	{sqlTx.Method("Prepare"), Factory},
	{sqlTx.Method("PrepareContext"), Factory},
	{sqlTx.Method("Query"), Factory},
	{sqlTx.Method("QueryContext"), Factory},
	{sqlTx.Method("Stmt"), Factory},
	{sqlTx.Method("StmtContext"), Factory},
	{syncMap.Method("Load"), Cached},
	{syncMap.Method("LoadOrStore"), Cached | TakesOwnership},
	{syncMap.Method("Store"), TakesOwnership},
	{syncPool.Method("Get"), Cached},
	{syncPool.Method("Put"), TakesOwnership},
	{tlsDialer.Method("Dial"), Factory},
	{tlsDialer.Method("DialContext"), Factory},
	{zipFile.Method("Open"), Factory},

	// Functions that do not return.
	{Func("log", "Fatal"), NoReturn},
	{Func("log", "Fatalf"), NoReturn},
	{Func("log", "Fatalln"), NoReturn},
	{Func("log", "Panic"), NoReturn},
	{Func("log", "Panicf"), NoReturn},
	{Func("log", "Panicln"), NoReturn},
	{logLogger.Method("Fatal"), NoReturn},
	{logLogger.Method("Fatalf"), NoReturn},
	{logLogger.Method("Fatalln"), NoReturn},
	{logLogger.Method("Panic"), NoReturn},
	{logLogger.Method("Panicf"), NoReturn},
	{logLogger.Method("Panicln"), NoReturn},
	{Func("os", "Exit"), NoReturn},
	{Func("syscall", "Exit"), NoReturn},
	{Func("runtime", "Goexit"), NoReturn},
	{testingCommn.Method("FailNow"), NoReturn},
	{testingCommn.Method("Fatal"), NoReturn},
	{testingCommn.Method("Fatalf"), NoReturn},
	{testingCommn.Method("Skip"), NoReturn},
	{testingCommn.Method("SkipNow"), NoReturn},
	{testingCommn.Method("Skipf"), NoReturn},
	{testingTB.Method("FailNow"), NoReturn},
	{testingTB.Method("Fatal"), NoReturn},
	{testingTB.Method("Fatalf"), NoReturn},
	{testingTB.Method("Skip"), NoReturn},
	{testingTB.Method("SkipNow"), NoReturn},
	{testingTB.Method("Skipf"), NoReturn},
	{Type("github.com/sirupsen/logrus", "Entry").Method("Panic"), NoReturn},
	{Type("github.com/sirupsen/logrus", "Entry").Method("Panicf"), NoReturn},
	{Type("github.com/sirupsen/logrus", "Entry").Method("Panicln"), NoReturn},
	{Type("github.com/sirupsen/logrus", "Logger").Method("Exit"), NoReturn},
	{Type("github.com/sirupsen/logrus", "Logger").Method("Panic"), NoReturn},
	{Type("github.com/sirupsen/logrus", "Logger").Method("Panicf"), NoReturn},
	{Type("github.com/sirupsen/logrus", "Logger").Method("Panicln"), NoReturn},
	{Type("go.uber.org/zap", "Logger").Method("Fatal"), NoReturn},
	{Type("go.uber.org/zap", "Logger").Method("Panic"), NoReturn},
	{Type("go.uber.org/zap", "SugaredLogger").Method("Fatal"), NoReturn},
	{Type("go.uber.org/zap", "SugaredLogger").Method("Fatalf"), NoReturn},
	{Type("go.uber.org/zap", "SugaredLogger").Method("Fatalln"), NoReturn},
	{Type("go.uber.org/zap", "SugaredLogger").Method("Fatalw"), NoReturn},
	{Type("go.uber.org/zap", "SugaredLogger").Method("Panic"), NoReturn},
	{Type("go.uber.org/zap", "SugaredLogger").Method("Panicf"), NoReturn},
	{Type("go.uber.org/zap", "SugaredLogger").Method("Panicln"), NoReturn},
	{Type("go.uber.org/zap", "SugaredLogger").Method("Panicw"), NoReturn},
	{Func("k8s.io/klog", "Exit"), NoReturn},
	{Func("k8s.io/klog", "ExitDepth"), NoReturn},
	{Func("k8s.io/klog", "Exitf"), NoReturn},
	{Func("k8s.io/klog", "Exitln"), NoReturn},
	{Func("k8s.io/klog", "Fatal"), NoReturn},
	{Func("k8s.io/klog", "FatalDepth"), NoReturn},
	{Func("k8s.io/klog", "Fatalf"), NoReturn},
	{Func("k8s.io/klog", "Fatalln"), NoReturn},
	{Func("k8s.io/klog/v2", "Exit"), NoReturn},
	{Func("k8s.io/klog/v2", "ExitDepth"), NoReturn},
	{Func("k8s.io/klog/v2", "Exitf"), NoReturn},
	{Func("k8s.io/klog/v2", "Exitln"), NoReturn},
	{Func("k8s.io/klog/v2", "Fatal"), NoReturn},
	{Func("k8s.io/klog/v2", "FatalDepth"), NoReturn},
	{Func("k8s.io/klog/v2", "Fatalf"), NoReturn},
	{Func("k8s.io/klog/v2", "Fatalln"), NoReturn},
}

// knownTypes are types with known resource semantics.
var knownTypes = map[QualifiedType]Kind{
	Type("net/http", "Client"): SingleInstance,
}

// knownVars are package level variables holding shared resources.
var knownVars = map[QualifiedType]Kind{
	Type("os", "Stdin"):  Cached,
	Type("os", "Stdout"): Cached,
	Type("os", "Stderr"): Cached,
}

// factoryVerbs are name prefixes of functions returning new resources.
var factoryVerbs = [...]string{
	"Accept", "Acquire", "Connect", "Create", "Dial", "Listen", "New", "Open", "Start",
}

// fixtures maps test fixture setup methods to their teardown counterparts.
var fixtures = map[string]string{
	"SetupSuite":   "TearDownSuite",
	"SetupTest":    "TearDownTest",
	"SetupSubTest": "TearDownSubTest",
	"BeforeTest":   "AfterTest",
}
