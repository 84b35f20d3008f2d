package main

import (
	"strings"

	flags "github.com/jessevdk/go-flags"
)

type options struct {
	Addr     string `long:"addr" default:":9001" description:"WebSocket listen address"`
	Path     string `long:"path" default:"/pipe" description:"WebSocket endpoint path"`
	MaxSize  uint64 `long:"max-size" default:"4096" description:"total channel allocation limit in bytes, header included"`
	Mmap     bool   `long:"mmap" description:"back channel storage with anonymous mappings"`
	CPU      int    `long:"cpu" default:"-1" description:"pin the session worker thread to this CPU (-1 = no pinning)"`
	Origins  string `long:"origins" description:"comma-separated list of permitted Origin values (empty = any)"`
	LogLevel string `long:"log-level" default:"warn" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"log level"`
	LogJSON  bool   `long:"log-json" description:"emit JSON structured logs"`
}

// parseOptions parses args (without the program name).
func parseOptions(args []string) (*options, error) {
	var o options
	if _, err := flags.ParseArgs(&o, args); err != nil {
		return nil, err
	}
	return &o, nil
}

func (o *options) origins() []string {
	if o.Origins == "" {
		return nil
	}
	return strings.Split(o.Origins, ",")
}
