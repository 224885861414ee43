package calldata

import "fmt"

const (
	DecodeErrorCode = -32700
	EncodeErrorCode = -32705
)

// DecodeError reports Ethereum calldata that could not be translated to native words.
type DecodeError struct {
	Code    int
	Message string
}

func (e *DecodeError) Error() string {
	return e.Message
}

func decodeErrorf(format string, args ...any) *DecodeError {
	return &DecodeError{Code: DecodeErrorCode, Message: fmt.Sprintf(format, args...)}
}

// EncodeError reports native call results that could not be translated to Ethereum
// return data.
type EncodeError struct {
	Code    int
	Message string
}

func (e *EncodeError) Error() string {
	return e.Message
}

func encodeErrorf(format string, args ...any) *EncodeError {
	return &EncodeError{Code: EncodeErrorCode, Message: fmt.Sprintf(format, args...)}
}
