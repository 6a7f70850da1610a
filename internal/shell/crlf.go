// ABOUTME: CRLF output translation for raw mode, where the terminal no longer maps LF to CR LF
// ABOUTME: Implemented as an x/text transform.Transformer so any writer can be wrapped

package shell

import (
	"io"

	"golang.org/x/text/transform"
)

// crlf rewrites a bare LF as CR LF. An LF already preceded by CR, even
// across Write calls, passes through unchanged.
type crlf struct {
	prevCR bool
}

var _ transform.Transformer = (*crlf)(nil)

func (t *crlf) Reset() { t.prevCR = false }

func (t *crlf) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		if b == '\n' && !t.prevCR {
			if nDst+2 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst], dst[nDst+1] = '\r', '\n'
			nDst += 2
		} else {
			if nDst+1 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = b
			nDst++
		}
		t.prevCR = b == '\r'
		nSrc++
	}
	return nDst, nSrc, nil
}

// NewCRLFWriter wraps w so every bare LF written reaches w as CR LF.
func NewCRLFWriter(w io.Writer) io.Writer {
	return transform.NewWriter(w, &crlf{})
}
