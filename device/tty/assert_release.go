//go:build !vtdebug

package tty

const debugAsserts = false
