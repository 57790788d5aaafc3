//go:build vtdebug

package tty

const debugAsserts = true
