package client

import (
	"crypto/tls"
)

type Option func(o *clientOptions)

type clientOptions struct {
	tls *tls.Config
}

func newClientOptions() *clientOptions {
	return &clientOptions{}
}

func ClientTls(cfg *tls.Config) Option {
	return func(o *clientOptions) {
		o.tls = cfg
	}
}
