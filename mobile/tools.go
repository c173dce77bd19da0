//go:build tools

package mobile

// gomobile bind resolves its runtime support from this module.
import _ "golang.org/x/mobile/bind"
