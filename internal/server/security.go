package server

import (
	"crypto/tls"
	"fmt"
	"net"
)

// TLSListener produces TLS-enabled network listeners from a certificate
// and private key file.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string
}

// NewTLSListener creates a new TLSListener instance.
func NewTLSListener(certFileName, privateKeyFileName string) *TLSListener {
	return &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
	}
}

// Listen loads the certificate pair and opens a TLS listener on addr.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
	}
	return tls.Listen(protocol, addr, tlsConfig)
}

// PlainListener produces unencrypted network listeners.
type PlainListener struct{}

// NewPlainListener creates a new PlainListener instance.
func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

// Listen opens a plain TCP listener on addr.
func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	return net.Listen(protocol, addr)
}
