package intervalreload

import (
	"log"
	"os"
)

var (
	Info  = log.New(os.Stderr, "[INFO] ", log.LstdFlags)
	Warn  = log.New(os.Stderr, "[WARN] ", log.LstdFlags)
	Error = log.New(os.Stderr, "[EROR] ", log.LstdFlags)
)
