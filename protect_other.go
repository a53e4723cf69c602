//go:build !openbsd

package main

func protect_serve(_ *config_serve) error {
	return nil
}
