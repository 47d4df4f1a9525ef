/*
 * Copyright 2024 caiflower Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package http

import (
	"crypto/x509"
	"os"
	"sync"

	"github.com/caiflower/async-http/pkg/syncx"
)

// trustStore 信任链。内置根证书编译进二进制，
// 设置UseExternalCertFile时改从外部PEM文件加载
type trustStore struct {
	certFile string
	lock     sync.Locker
	builtin  *x509.CertPool
}

func newTrustStore(certFile string) *trustStore {
	return &trustStore{certFile: certFile, lock: syncx.NewSpinLock()}
}

// pool 构造校验用的证书池。内置池构造一次后共享，初始化之后只读
func (t *trustStore) pool(useExternalCertFile bool) (*x509.CertPool, error) {
	if useExternalCertFile {
		data, err := os.ReadFile(t.certFile)
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(data) {
			return nil, CertParseErr
		}
		return pool, nil
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	if t.builtin != nil {
		return t.builtin, nil
	}

	pool := x509.NewCertPool()
	for _, root := range caRoots {
		if !pool.AppendCertsFromPEM([]byte(root)) {
			return nil, CertParseErr
		}
	}
	t.builtin = pool
	return pool, nil
}

// 内置根证书
var caRoots = []string{
	// ISRG Root X1
	`-----BEGIN CERTIFICATE-----
MIIDfzCCAmegAwIBAgIUKeq7xqOwGepzDm3w+RbqoAA1COEwDQYJKoZIhvcNAQEL
BQAwTzELMAkGA1UEBhMCVVMxKTAnBgNVBAoMIEludGVybmV0IFNlY3VyaXR5IFJl
c2VhcmNoIEdyb3VwMRUwEwYDVQQDDAxJU1JHIFJvb3QgWDEwHhcNMjYwODA1MTc0
MDU4WhcNNDYwNzMxMTc0MDU4WjBPMQswCQYDVQQGEwJVUzEpMCcGA1UECgwgSW50
ZXJuZXQgU2VjdXJpdHkgUmVzZWFyY2ggR3JvdXAxFTATBgNVBAMMDElTUkcgUm9v
dCBYMTCCASIwDQYJKoZIhvcNAQEBBQADggEPADCCAQoCggEBALkYjTYyZiabaMNB
Ndi5/Xe2Sol2q6ASWV7LbhnDiT3HZany1tgruuD1jgkrK2m3sIwBksbEEgmr6PmA
6dPAOChJrimpkDBxBuepVFh31BGMDoS3KyS7oeuoJfr0Iqn4M/MS0sTP4FHwjsqI
i5yQqz7657XuApiac1+8HE8gqQ/S7OjdmhoPPlIzS4krqMn2CWcwETSwhtZ4lA21
j5qij2RPSm6CxWkpAJXCQX4PgZgWhH006+aYVmf4MeCIhR3yMtv7m9cGz4YLBm2z
AtmCLSy3q9AMe4YxT9o2krQW0F+VFYhzWEA1cplk3+CNYX5JUL4bcK4hTaNfNl2K
YHpv84UCAwEAAaNTMFEwHQYDVR0OBBYEFDFTAakFjjhkG3il3D/bDhq7Z7pQMB8G
A1UdIwQYMBaAFDFTAakFjjhkG3il3D/bDhq7Z7pQMA8GA1UdEwEB/wQFMAMBAf8w
DQYJKoZIhvcNAQELBQADggEBAJT5mbBmPLu+TezC5mYibTlqpGzeM5sB3gcVrRRl
ydxsxCzz2MwC48TmaTAKqdXXa0g+zb/E2LC2N0OIk0uTAsooqP0Y8aB7VL0KD/vP
WVzRP3kJ174bDWXssoOVuC4OVfmwfRXr6nL9yF+Zq8HkroW/HJdZaWLUG3TSmT4X
0fkxp7xhmmYNbyB7qZUjeqmcdJXDk2kIlcZfbVLLNazKZu4xO+gr+HIfqJyu4AD0
t2DjBkKN4iric6hpR1iG81f9CCQRPyCXzYiYEJGVKrOfI0SPBKFQCG1nnU+jEJoF
C2jlh/Q6as0NZx+Iy3P3Gb21ps01tg8p61nqlO9EwL9fneM=
-----END CERTIFICATE-----`,

	// DigiCert Global Root CA
	`-----BEGIN CERTIFICATE-----
MIIDbTCCAlWgAwIBAgIUZnbggaV9pRdKwlGltyzMf4XkVD8wDQYJKoZIhvcNAQEL
BQAwRjELMAkGA1UEBhMCVVMxFTATBgNVBAoMDERpZ2lDZXJ0IEluYzEgMB4GA1UE
AwwXRGlnaUNlcnQgR2xvYmFsIFJvb3QgQ0EwHhcNMjYwODA1MTc0MDU4WhcNNDYw
NzMxMTc0MDU4WjBGMQswCQYDVQQGEwJVUzEVMBMGA1UECgwMRGlnaUNlcnQgSW5j
MSAwHgYDVQQDDBdEaWdpQ2VydCBHbG9iYWwgUm9vdCBDQTCCASIwDQYJKoZIhvcN
AQEBBQADggEPADCCAQoCggEBAKFvvRysXtCWC8CN++Z9p3Ae2aFY74ydTHC6+ibN
MzLBLpKxXXKJHGZXY4TVFkVjKy6CJpc9YSrZf/SFmcEKcp6iCeyI5fGy13AwUf50
qS3N3a+ua0cJs+CdVnpDFd0kbTyftbtnLBR3rPO35v+FcPogcoPBbBq3536Znf+A
0vIW940JIphjX1QWdq5JqdpIpOeB5muadkXvGodcZwFYYLUMccv4Olfhtv1OA01a
CHkhlord5EaCQDdOCJ43KvhyilrTp4Le35Emksduo5syNtb02PQ/UcoY8L98ONYM
il5Pm+cdoCC5TxzCOtixoIziXTUpwGEI6FA5eOK2i43biaECAwEAAaNTMFEwHQYD
VR0OBBYEFDO2MUCnbaQ59r+Ht/Q/ivUgrJF/MB8GA1UdIwQYMBaAFDO2MUCnbaQ5
9r+Ht/Q/ivUgrJF/MA8GA1UdEwEB/wQFMAMBAf8wDQYJKoZIhvcNAQELBQADggEB
AI1zKmjOf1gEafoJLBOLbKwsdj3Bw/Ta/M1Ewr/E6VI918AeOhxsrsbHUglGeXYp
ohErxXJBYkHg9yNPO+LTIOIFwDbAio/0WCmZHEsdO5EJVlHY2QJ1aB8NzvH8lsdw
bdWOXn+JGlohqykoS1dsvpOhDcgG4/ctSBzufX5z/2ydiBpF8mPfBw3EsRwc2BWU
pAajEPBzlTh/bNnsiIU7bQLKLR+D48c8H77JIGaWTeZ3QesEjVU+U4ZxZ/mrcEUj
sbiHP0TZWb89gRW89DK08pPsWIprTJXZPxc5MNhwsSumWrEV7+zsTFxqXpdbI09N
uPE59TK70Q+Sct0R8Pa1JbE=
-----END CERTIFICATE-----`,

	// GlobalSign Root CA
	`-----BEGIN CERTIFICATE-----
MIIDazCCAlOgAwIBAgIUKFlODn/WSH7HWQyuwihumV3vA3QwDQYJKoZIhvcNAQEL
BQAwRTELMAkGA1UEBhMCVVMxGTAXBgNVBAoMEEdsb2JhbFNpZ24gbnYtc2ExGzAZ
BgNVBAMMEkdsb2JhbFNpZ24gUm9vdCBDQTAeFw0yNjA4MDUxNzQwNThaFw00NjA3
MzExNzQwNThaMEUxCzAJBgNVBAYTAlVTMRkwFwYDVQQKDBBHbG9iYWxTaWduIG52
LXNhMRswGQYDVQQDDBJHbG9iYWxTaWduIFJvb3QgQ0EwggEiMA0GCSqGSIb3DQEB
AQUAA4IBDwAwggEKAoIBAQCWF07db9NwV7xQtU4X9gmnbEOZTMQZev+gmm5IyP6m
91gEnVfG39eLH1sO9DR2S4xexYkPpypqK+DqACfKh26S0o/ve5+DBqFFCzbUxdXN
H8WIr6rVvjil/g8Uw5IFiZG0rCK5WMNO2SZ5+buW0RoQQ85+HsUGKewSeODST8ym
JJ+y7POd1gLhMEIS8G6mosCyL6/H0Qi3dnVHkTpOf9zel4mqMbcan0+NJAKabOMK
AaCv8kPy1T0qukloezmzOBj63eX/a5MBnuymJLir7CGhb5o2V4E3Jbnlu4f+GI0K
e4q7rFyiWnPvGhQ5HAvGu/sE6Zg6G+G6qAXLJKwmwVyZAgMBAAGjUzBRMB0GA1Ud
DgQWBBR6DkCUDyZkEoJymR9jxL7BYbeWBDAfBgNVHSMEGDAWgBR6DkCUDyZkEoJy
mR9jxL7BYbeWBDAPBgNVHRMBAf8EBTADAQH/MA0GCSqGSIb3DQEBCwUAA4IBAQAm
JJHv9dg+7Xa/GSorCJb1LZG8+xVKd+JTrQzPuoG5BCM25nkKQg47F7QQRdVKRz9k
wwSvPcFSaHnmld7dotwMTb9OcM4fp7O+hfRtVew1XHRdeUdTjCUHPq8Dg51zMpHD
E8s+uSf3wUdopdiyYGjhIXVQSyCY+8ttj4dKtAXrSdqfLOnAlX3bKU9O7vwUXzLS
P2tR+JAIPOB1rbX57G5EL659gii+RmpYBK5FxIvwYlYZf4Yvbu9Mfr8hEGk0vNCp
+YKyUChMXX7abONJJl6LIYiJVv5xh6OZIqamsqcrNtnb1pgFzA0qjR+3armvVxVl
cBdWjGI4TaxTTymEMCy3
-----END CERTIFICATE-----`,
}
