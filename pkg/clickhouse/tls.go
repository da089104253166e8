package clickhouse

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pkg/errors"
)

// TLS holds the files used to connect to ClickHouse over mTLS.
type TLS struct {
	CertFile string `yaml:"cert_file,omitempty" env:"CMDREG_TLS_CERT_FILE"`
	KeyFile  string `yaml:"key_file,omitempty" env:"CMDREG_TLS_KEY_FILE"`
	CAFile   string `yaml:"ca_file,omitempty" env:"CMDREG_TLS_CA_FILE"`
}

// Enabled reports whether a client certificate is configured.
func (t TLS) Enabled() bool {
	return t.CertFile != "" || t.KeyFile != ""
}

// Config loads the client key pair and CA bundle.
//
// Example:
//
//	cfg, err := settings.Config()
//	if err != nil {
//		return err
//	}
func (t TLS) Config() (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load certfile/keyfile")
	}

	ca, err := os.ReadFile(t.CAFile)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load CA file")
	}

	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(ca)

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
