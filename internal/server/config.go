package server

import "github.com/termii-notify/smsadmin/util/conf"

// HttpConfig configures the standalone http server.
type HttpConfig struct {
	Host string `conf:"host"`
	Port int    `conf:"port"`

	// H2c enables HTTP/2 without TLS.
	H2c bool `conf:"h2c"`
}

var DefaultConfig = conf.DefaultConfig{
	"host": "localhost",
	"port": 8080,
	"h2c":  false,
}
