//go:build debug

package intervalreload

import "log"

const debug = true

func init() {
	log.SetFlags(log.Lshortfile | log.LstdFlags)
	log.SetPrefix("[DEBG] ")
	Info.SetFlags(log.Lshortfile | log.LstdFlags)
}
