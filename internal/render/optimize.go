package render

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

// optimized runs the finished document through an optimization pass that
// deduplicates resources and drops unused objects. Failures never surface;
// the unoptimized document is returned instead.
func (e *Engine) optimized(doc []byte) []byte {
	var buf bytes.Buffer
	conf := pdfmodel.NewDefaultConfiguration()

	if err := api.Optimize(bytes.NewReader(doc), &buf, conf); err != nil {
		e.log.Warn("document optimization failed, keeping original", zap.Error(err))
		return doc
	}
	if buf.Len() == 0 {
		return doc
	}
	return buf.Bytes()
}
