package responses

import (
	"fmt"
	"log"
	"net/http"
)

// WritePDFBytesWithFilename streams a finished document inline with a
// download filename.
func WritePDFBytesWithFilename(w http.ResponseWriter, filename string, pdfBytes []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK) // headers frozen from here
	if _, err := w.Write(pdfBytes); err != nil {
		log.Printf("[ERROR][responses] writing PDF: %v", err)
	}
}
