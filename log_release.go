//go:build !debug

package intervalreload

const debug = false
