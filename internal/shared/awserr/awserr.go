// Package awserr classifica os erros de API devolvidos pelo SDK.
package awserr

import (
	"errors"
	"net"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// Codes devolvidos pelos serviços para condições esperadas.
const (
	CodeResourceNotFound   = "ResourceNotFoundException"
	CodeDBInstanceNotFound = "DBInstanceNotFound"
	CodeNotFound           = "NotFound"
	CodeNoSuchBucket       = "NoSuchBucket"
	CodeParameterNotFound  = "ParameterNotFound"
)

// Code returns the API error code wrapped in err, or "" when err is not an API error.
func Code(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// HasCode reports whether err carries one of codes.
func HasCode(err error, codes ...string) bool {
	code := Code(err)
	if code == "" {
		return false
	}
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// Message devolve a mensagem da API, ou err.Error() quando não houver.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	return err.Error()
}

// IsConnectionError reports whether err happened before the request reached the service,
// e.g. an endpoint that does not resolve in an opt-in region.
func IsConnectionError(err error) bool {
	var sendErr *smithyhttp.RequestSendError
	var opErr *net.OpError
	var dnsErr *net.DNSError
	return errors.As(err, &sendErr) || errors.As(err, &opErr) || errors.As(err, &dnsErr)
}
