//go:build openbsd

package main

import (
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const (
	promises        = "inet stdio rpath wpath cpath tmppath flock dns"
	execpromises    = ""
	unveilflags_db  = "rwc"
	unveilflags_tmp = "rwc"
	unveilflags_tpl = "r"
)

func protect_serve(sc *config_serve) error {
	if sc.db_driver == "sqlite" {
		dir := filepath.Dir(sc.path_db)
		log.Printf("unveil database directory: path=%q, flags=%q\n", dir, unveilflags_db)
		if err := unix.Unveil(dir, unveilflags_db); err != nil {
			return err
		}
	}
	if sc.path_template != "" {
		log.Printf("unveil template: path=%q, flags=%q\n", sc.path_template, unveilflags_tpl)
		if err := unix.Unveil(sc.path_template, unveilflags_tpl); err != nil {
			return err
		}
	}
	log.Printf("unveil temp directory: path=%q, flags=%q\n", os.TempDir(), unveilflags_tmp)
	if err := unix.Unveil(os.TempDir(), unveilflags_tmp); err != nil {
		return err
	}
	if err := unix.UnveilBlock(); err != nil {
		return err
	}
	log.Printf("pledge: promises=%q, execpromises=%q\n", promises, execpromises)
	if err := unix.Pledge(promises, execpromises); err != nil {
		return err
	}
	return nil
}
