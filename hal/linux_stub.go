//go:build !linux && !tinygo

package hal

import "errors"

func NewLinux(_ Layout, _ LinuxConfig) (HAL, error) {
	return nil, errors.New("linux board requires a linux host")
}
