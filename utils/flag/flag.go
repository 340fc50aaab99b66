/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and
	service-agnostic. For service dependent flags please define in their
	respective package. Parse must be called once from main, never from
	package init, so that test binaries can register their own flags first.
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ServiceName   string
	ByPassAuth    bool
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "name under which the service reports itself")
	flag.BoolVar(&ByPassAuth, "no_auth", false, "trust the 'sub' header as-is instead of resolving auth tokens, local development only")
}

func Parse() {
	flag.Parse()
}
