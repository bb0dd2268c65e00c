package charset

import "github.com/pkg/errors"

// ErrInvalidEncoding is returned by Decode when the input bytes cannot be
// interpreted under the requested Encoding.
var ErrInvalidEncoding = errors.New("invalid encoding")
