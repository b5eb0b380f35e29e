package split

import "github.com/jackzampolin/pdfchunk/version"

// Producer returns the tool identifier written into output file metadata.
func Producer() string {
	return "pdfchunk " + version.GitRelease
}
