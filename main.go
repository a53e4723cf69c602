package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

func make_sure_not_root() {
	if syscall.Geteuid() == 0 && os.Getenv("AREAGRAPH_PERMIT_ROOT") != "live_dangerously" {
		log.Println("This program will not run as root.")
		os.Exit(20)
	}
}

func main() {
	var p_serve params_serve
	var p_render params_render

	if len(os.Args) <= 1 {
		fmt.Printf("usage: %s [subcommand]\n", filepath.Base(os.Args[0]))
		fmt.Println("subcommand is either `serve', `render', or `help'.")
		os.Exit(1)
	}

	cmd_serve := flag.NewFlagSet("serve", flag.ExitOnError)
	cmd_serve.StringVar(&p_serve.config_path, FLAG_CONFIG_PATH, DEFAULT_CONFIG_PATH, HELP_CONFIG_PATH)

	cmd_render := flag.NewFlagSet("render", flag.ExitOnError)
	cmd_render.StringVar(&p_render.config_path, FLAG_CONFIG_PATH, DEFAULT_CONFIG_PATH, HELP_CONFIG_PATH)
	cmd_render.Float64Var(&p_render.r, FLAG_R, DEFAULT_R, HELP_R)
	cmd_render.StringVar(&p_render.format, FLAG_FORMAT, "", HELP_FORMAT)
	cmd_render.StringVar(&p_render.out, FLAG_OUT, DEFAULT_OUT, HELP_OUT)
	cmd_render.BoolVar(&p_render.chart, FLAG_CHART, false, HELP_CHART)

	switch os.Args[1] {
	case "serve":
		cmd_serve.Parse(os.Args[2:])
		make_sure_not_root()
		serve(&p_serve)
	case "render":
		cmd_render.Parse(os.Args[2:])
		make_sure_not_root()
		render_main(&p_render)
	case "help":
		fmt.Println("The subcommands are:")
		fmt.Println()
		fmt.Println("    serve            serve the graph and take samples via HTTP")
		fmt.Println("    render           render one graph from stored samples")
		fmt.Println("    help             show this help")
		fmt.Println()
		fmt.Println("Graph formats: ", strings.Join(surface_formats(), ", "))
		os.Exit(0)
	default:
		fmt.Println("unknown subcommand: ", os.Args[1])
		os.Exit(2)
	}
}
